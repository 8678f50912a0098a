package lang

//go:generate go tool stringer --linecomment --type Kind --output kind_string.go

import "strings"

// Kind identifies the type of a [Value].
type Kind int

const (
	KindUndefined Kind = iota // UNDEFINED
	KindFloating              // FLOATING
	KindIntegral              // INTEGRAL
	KindString                // STRING
	KindSection               // SECTION

	// KindVector is reserved. The grammar has no list literal, so no value of
	// this kind is ever constructed.
	KindVector // VECTOR
)

// kindAlias maps accepted spellings to kinds.
var kindAlias = map[string]Kind{
	"undefined": KindUndefined,
	"floating":  KindFloating,
	"float":     KindFloating,
	"double":    KindFloating,
	"integral":  KindIntegral,
	"integer":   KindIntegral,
	"int":       KindIntegral,
	"string":    KindString,
	"str":       KindString,
	"section":   KindSection,
	"vector":    KindVector,
}

// ParseKind parses a kind name such as "FLOATING" or "int".
// Matching is case-insensitive.
func ParseKind(s string) (Kind, bool) {
	k, ok := kindAlias[strings.ToLower(strings.TrimSpace(s))]

	return k, ok
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	kind, ok := ParseKind(string(text))
	if !ok {
		return ErrTypeMismatch.Wrapf("unknown kind %q", text)
	}

	*k = kind

	return nil
}
