// Package entities holds the persisted domain types: the flat character
// state and the custom-item catalog.
package entities

import "encoding/json"

// CharacterState is the whole sheet and tracker as a flat field-key to value
// mapping, persisted wholesale. Values are strings, booleans, or string
// lists. Computed fields (summaries, the synthesized size) live alongside
// user-entered ones and are rewritten by the reconciler; only the size field
// carries a manual-override flag that detaches it from recomputation.
type CharacterState map[string]any

// NewCharacterState returns an empty state.
func NewCharacterState() CharacterState {
	return CharacterState{}
}

// String returns the string value for key, or "" when absent or of another
// type.
func (s CharacterState) String(key string) string {
	v, _ := s[key].(string)
	return v
}

// Bool returns the boolean value for key. Persisted payloads sometimes carry
// flags as strings, so "true" is accepted too.
func (s CharacterState) Bool(key string) bool {
	switch v := s[key].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	}
	return false
}

// List returns the string-list value for key. JSON round-trips turn lists
// into []any, so both shapes are handled.
func (s CharacterState) List(key string) []string {
	switch v := s[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	}
	return nil
}

// Clone returns a deep copy; list values are copied, not shared.
func (s CharacterState) Clone() CharacterState {
	out := make(CharacterState, len(s))
	for k, v := range s {
		switch t := v.(type) {
		case []string:
			out[k] = append([]string(nil), t...)
		case []any:
			out[k] = append([]any(nil), t...)
		default:
			out[k] = v
		}
	}
	return out
}

// Equal compares two states by their canonical JSON encoding.
func (s CharacterState) Equal(other CharacterState) bool {
	a, err := json.Marshal(s)
	if err != nil {
		return false
	}
	b, err := json.Marshal(other)
	if err != nil {
		return false
	}
	return string(a) == string(b)
}
