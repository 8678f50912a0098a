package lang

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
)

// Value is a named, typed node of a parsed configuration tree.
// It is implemented by *[Leaf] and *[Section] only.
type Value interface {
	Name() string
	Kind() Kind
}

// scalar is the payload of a [Leaf]. Its concrete type determines the kind,
// so a leaf's kind and payload can never disagree.
type scalar interface {
	kind() Kind
}

type (
	integral int64
	floating float64
	text     string
)

func (integral) kind() Kind { return KindIntegral }
func (floating) kind() Kind { return KindFloating }
func (text) kind() Kind     { return KindString }

// Leaf is a scalar value: FLOATING, INTEGRAL or STRING.
type Leaf struct {
	name string
	data scalar
}

// NewInt returns an INTEGRAL leaf.
func NewInt(name string, v int64) *Leaf { return &Leaf{name: name, data: integral(v)} }

// NewFloat returns a FLOATING leaf.
func NewFloat(name string, v float64) *Leaf { return &Leaf{name: name, data: floating(v)} }

// NewString returns a STRING leaf.
func NewString(name, v string) *Leaf { return &Leaf{name: name, data: text(v)} }

// Name returns the key the leaf was assigned to.
func (l *Leaf) Name() string {
	if l == nil {
		return ""
	}

	return l.name
}

// Kind returns the kind of the payload.
func (l *Leaf) Kind() Kind {
	if l == nil || l.data == nil {
		return KindUndefined
	}

	return l.data.kind()
}

// Int returns the INTEGRAL payload.
func (l *Leaf) Int() (int64, error) {
	v, ok := l.data.(integral)
	if !ok {
		return 0, mismatch(l, KindIntegral)
	}

	return int64(v), nil
}

// Float returns the FLOATING payload.
func (l *Leaf) Float() (float64, error) {
	v, ok := l.data.(floating)
	if !ok {
		return 0, mismatch(l, KindFloating)
	}

	return float64(v), nil
}

// Text returns the STRING payload.
func (l *Leaf) Text() (string, error) {
	v, ok := l.data.(text)
	if !ok {
		return "", mismatch(l, KindString)
	}

	return string(v), nil
}

// Native returns the payload as int64, float64 or string.
func (l *Leaf) Native() any {
	switch v := l.data.(type) {
	case integral:
		return int64(v)
	case floating:
		return float64(v)
	case text:
		return string(v)
	default:
		return nil
	}
}

// String returns the payload as it would be written in a config file.
func (l *Leaf) String() string {
	switch v := l.data.(type) {
	case integral:
		return strconv.FormatInt(int64(v), 10)
	case floating:
		return formatFloat(float64(v))
	case text:
		return strconv.Quote(string(v))
	default:
		return ""
	}
}

// formatFloat renders f so that it lexes back as FLOATING.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEIN") {
		s += ".0"
	}

	return s
}

// Scalar is the set of Go types a [Leaf] converts to.
type Scalar interface {
	int | int8 | int16 | int32 | int64 |
		uint | uint8 | uint16 | uint32 | uint64 |
		float32 | float64 |
		string
}

// As converts v to T.
//
// Integer types read the INTEGRAL payload and fail with [ErrOutOfRange] when
// it does not fit. Float types read the FLOATING payload and string reads the
// STRING payload. Any other combination, including a *[Section], fails with
// [ErrTypeMismatch].
func As[T Scalar](v Value) (T, error) {
	var out T

	leaf, ok := v.(*Leaf)
	if !ok || leaf == nil {
		return out, mismatch(v, wantKind(out))
	}

	var err error

	switch p := any(&out).(type) {
	case *string:
		*p, err = leaf.Text()
	case *float64:
		*p, err = leaf.Float()
	case *float32:
		err = convertFloat32(leaf, p)
	case *int:
		err = convertInt(leaf, p)
	case *int8:
		err = convertInt(leaf, p)
	case *int16:
		err = convertInt(leaf, p)
	case *int32:
		err = convertInt(leaf, p)
	case *int64:
		*p, err = leaf.Int()
	case *uint:
		err = convertUint(leaf, p)
	case *uint8:
		err = convertUint(leaf, p)
	case *uint16:
		err = convertUint(leaf, p)
	case *uint32:
		err = convertUint(leaf, p)
	case *uint64:
		err = convertUint(leaf, p)
	}

	return out, err
}

func convertInt[I int | int8 | int16 | int32](l *Leaf, p *I) error {
	n, err := l.Int()
	if err != nil {
		return err
	}

	if int64(I(n)) != n {
		return outOfRange(l, fmt.Sprintf("%T", *p))
	}

	*p = I(n)

	return nil
}

func convertUint[U uint | uint8 | uint16 | uint32 | uint64](l *Leaf, p *U) error {
	n, err := l.Int()
	if err != nil {
		return err
	}

	if n < 0 || uint64(U(n)) != uint64(n) {
		return outOfRange(l, fmt.Sprintf("%T", *p))
	}

	*p = U(n)

	return nil
}

func convertFloat32(l *Leaf, p *float32) error {
	f, err := l.Float()
	if err != nil {
		return err
	}

	if math.Abs(f) > math.MaxFloat32 {
		return outOfRange(l, "float32")
	}

	*p = float32(f)

	return nil
}

// wantKind returns the kind a Go scalar is read from.
func wantKind(v any) Kind {
	switch v.(type) {
	case string:
		return KindString
	case float32, float64:
		return KindFloating
	default:
		return KindIntegral
	}
}

// kindOf returns v's kind, treating nil as UNDEFINED.
func kindOf(v Value) Kind {
	if v == nil {
		return KindUndefined
	}

	return v.Kind()
}

func nameOf(v Value) string {
	if v == nil {
		return ""
	}

	return v.Name()
}

func mismatch(v Value, want Kind) error {
	have := kindOf(v)

	return ErrTypeMismatch.
		Wrapf("%q is %s, not %s", nameOf(v), have, want).
		With(
			slog.String("key", nameOf(v)),
			slog.String("want", want.String()),
			slog.String("have", have.String()),
		)
}

func outOfRange(l *Leaf, typ string) error {
	return ErrOutOfRange.
		Wrapf("%q (%s) does not fit in %s", l.name, l.String(), typ).
		With(
			slog.String("key", l.name),
			slog.String("type", typ),
		)
}
