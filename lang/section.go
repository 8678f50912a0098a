package lang

import (
	"iter"
	"log/slog"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
)

// maxSuggestions bounds the "did you mean" candidates of a missing key.
const maxSuggestions = 3

// Section is a named mapping of unique child names to values.
// Lookups are case-sensitive and iteration is ordered by name.
type Section struct {
	name   string
	values map[string]Value
}

func newSection(name string) *Section {
	return &Section{name: name, values: make(map[string]Value)}
}

// Name returns the key the section was assigned to, "" for the root.
func (s *Section) Name() string {
	if s == nil {
		return ""
	}

	return s.name
}

// Kind returns [KindSection].
func (s *Section) Kind() Kind { return KindSection }

// Len returns the number of children.
func (s *Section) Len() int {
	if s == nil {
		return 0
	}

	return len(s.values)
}

// Lookup returns the immediate child named key.
func (s *Section) Lookup(key string) (Value, bool) {
	if s == nil {
		return nil, false
	}

	v, ok := s.values[key]

	return v, ok
}

// Find walks path through nested sections and returns the value at its end.
// An empty path returns s itself.
func (s *Section) Find(path ...string) (Value, bool) {
	var v Value = s

	for _, key := range path {
		sec, ok := v.(*Section)
		if !ok {
			return nil, false
		}

		if v, ok = sec.Lookup(key); !ok {
			return nil, false
		}
	}

	return v, true
}

// Value is like [Section.Find] but explains a failed walk: a missing segment
// fails with [ErrMissingKey] and a segment that is not a section fails with
// [ErrTypeMismatch].
func (s *Section) Value(path ...string) (Value, error) {
	sec := s

	for i, key := range path {
		if i == len(path)-1 {
			v, ok := sec.Lookup(key)
			if !ok {
				return nil, missingKey(sec, key)
			}

			return v, nil
		}

		next, err := sec.Section(key)
		if err != nil {
			return nil, err
		}

		sec = next
	}

	return s, nil
}

// Keys returns the child names in order.
func (s *Section) Keys() []string {
	if s == nil {
		return nil
	}

	keys := make([]string, 0, len(s.values))
	for key := range s.values {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	return keys
}

// All returns an iterator over the children in name order.
func (s *Section) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, key := range s.Keys() {
			if !yield(key, s.values[key]) {
				return
			}
		}
	}
}

// HasValue reports whether key names a scalar child.
func (s *Section) HasValue(key string) bool {
	v, ok := s.Lookup(key)
	if !ok {
		return false
	}

	_, isSection := v.(*Section)

	return !isSection
}

// HasSection reports whether key names a child section.
func (s *Section) HasSection(key string) bool {
	v, ok := s.Lookup(key)
	if !ok {
		return false
	}

	_, isSection := v.(*Section)

	return isSection
}

// Section returns the child section named name.
func (s *Section) Section(name string) (*Section, error) {
	v, ok := s.Lookup(name)
	if !ok {
		return nil, missingKey(s, name)
	}

	sec, ok := v.(*Section)
	if !ok {
		return nil, mismatch(v, KindSection)
	}

	return sec, nil
}

// set adds v as a child. Names must be unique within a section.
func (s *Section) set(v Value) error {
	name := v.Name()
	if _, ok := s.values[name]; ok {
		return ErrDuplicateKey.
			Wrapf("%q already defined in section %q", name, s.name).
			With(slog.String("key", name), slog.String("section", s.name))
	}

	s.values[name] = v

	return nil
}

// Getter is implemented by *[Section] and *[Config].
type Getter interface {
	Lookup(key string) (Value, bool)
	Keys() []string
}

// Get returns the immediate child key of g converted to T with [As].
// A missing key fails with [ErrMissingKey].
func Get[T Scalar](g Getter, key string) (T, error) {
	v, ok := g.Lookup(key)
	if !ok {
		var zero T

		return zero, missingKey(g, key)
	}

	return As[T](v)
}

// GetDefault is like [Get] but returns def when key is absent.
func GetDefault[T Scalar](g Getter, key string, def T) (T, error) {
	if _, ok := g.Lookup(key); !ok {
		return def, nil
	}

	return Get[T](g, key)
}

// missingKey reports key absent from g, suggesting similar sibling names.
func missingKey(g Getter, key string) error {
	var suggest []string

	for _, m := range fuzzy.Find(key, g.Keys()) {
		if len(suggest) == maxSuggestions {
			break
		}

		suggest = append(suggest, m.Str)
	}

	err := ErrMissingKey.Wrapf("%q", key)
	if len(suggest) > 0 {
		err = ErrMissingKey.Wrapf("%q (did you mean %s?)",
			key, strings.Join(suggest, ", "))
	}

	return err.With(
		slog.String("key", key),
		slog.Any("suggest", suggest),
	)
}
