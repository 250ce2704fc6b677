// Package ident canonicalizes the heterogeneous entity-id encodings the
// backend emits. Mongo-backed documents arrive with ids as bare strings,
// as objects carrying "id" or "_id", or as extended-JSON objects like
// {"$oid": "..."}. Every cross-entity comparison in the engine goes
// through Equal so the encoding never leaks into business logic.
package ident

import (
	"encoding/json"
	"fmt"
)

// Normalize returns the canonical string form of an identifier value.
// Accepted shapes: nil, string, fmt.Stringer, map[string]any with one of
// the keys "id", "_id" or "$oid" (checked in that order, recursively).
// Anything else normalizes to the empty string — malformed input yields a
// non-matching identity rather than an error.
func Normalize(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case map[string]any:
		for _, key := range []string{"id", "_id", "$oid"} {
			if inner, ok := val[key]; ok {
				if s := Normalize(inner); s != "" {
					return s
				}
			}
		}
		return ""
	case fmt.Stringer:
		return val.String()
	default:
		return ""
	}
}

// Equal reports whether two identifier values denote the same entity,
// regardless of encoding. Two empty identities never match.
func Equal(a, b any) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return false
	}
	return na == nb
}

// ID is a canonical identifier that decodes from any supported wire shape.
// The zero value is the "unassigned" identity.
type ID string

// IsZero reports whether the id carries no identity.
func (id ID) IsZero() bool { return id == "" }

func (id ID) String() string { return string(id) }

// UnmarshalJSON accepts a JSON string, null, or an object exposing
// "id", "_id" or "$oid". Unrecognized shapes decode to the zero ID.
func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID(s)
		return nil
	}
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err == nil {
		*id = ID(Normalize(obj))
		return nil
	}
	// null, numbers, arrays: degrade to the unassigned identity.
	*id = ""
	return nil
}

// MarshalJSON always emits the canonical string form.
func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}
