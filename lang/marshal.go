package lang

import "encoding/json"

// MarshalJSON implements json.Marshaler for Section.
func (s *Section) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.ToMap())
}

// MarshalJSON implements json.Marshaler for Leaf.
func (l *Leaf) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Native())
}

// ToMap converts the section to native Go values: nested sections become
// map[string]any and leaves become int64, float64 or string.
func (s *Section) ToMap() map[string]any {
	result := make(map[string]any, s.Len())

	for key, v := range s.All() {
		result[key] = toNative(v)
	}

	return result
}

func toNative(v Value) any {
	switch v := v.(type) {
	case *Section:
		return v.ToMap()
	case *Leaf:
		return v.Native()
	default:
		return nil
	}
}
