package match

import (
	"encoding/json"
	"sort"
	"strings"
)

// AmenitySet is a set of amenity tags. Tags match by exact string equality.
type AmenitySet map[string]struct{}

// NewAmenitySet builds a set from the given tags, dropping duplicates
func NewAmenitySet(tags ...string) AmenitySet {
	s := make(AmenitySet, len(tags))
	for _, t := range tags {
		s[t] = struct{}{}
	}
	return s
}

// ParseAmenities decodes a stored amenity field.
//
// Two encodings exist in stored data: a JSON array of strings
// (`["parks","schools"]`) and a comma-delimited list (`parks,schools`).
// An empty or blank field is the empty set. A JSON null, or input that
// cannot be read as either encoding, is rejected with a *MalformedDataError
// rather than coerced to an empty set.
func ParseAmenities(raw string) (AmenitySet, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return AmenitySet{}, nil
	}
	if trimmed == "null" {
		return nil, &MalformedDataError{Field: "amenities", Reason: "null is not a tag list"}
	}

	if looksLikeJSON(trimmed) {
		var tags []string
		if err := json.Unmarshal([]byte(trimmed), &tags); err != nil {
			return nil, &MalformedDataError{
				Field:  "amenities",
				Reason: "not a JSON array of strings",
				Err:    err,
			}
		}
		for _, t := range tags {
			if strings.TrimSpace(t) == "" {
				return nil, &MalformedDataError{Field: "amenities", Reason: "empty tag in JSON array"}
			}
		}
		return NewAmenitySet(tags...), nil
	}

	parts := strings.Split(trimmed, ",")
	set := make(AmenitySet, len(parts))
	for _, p := range parts {
		tag := strings.TrimSpace(p)
		if tag == "" {
			return nil, &MalformedDataError{Field: "amenities", Reason: "empty tag in delimited list"}
		}
		set[tag] = struct{}{}
	}
	return set, nil
}

func looksLikeJSON(s string) bool {
	switch s[0] {
	case '[', '{', '"':
		return true
	}
	return s == "true" || s == "false"
}

// Has reports whether tag is in the set
func (s AmenitySet) Has(tag string) bool {
	_, ok := s[tag]
	return ok
}

// Len returns the number of distinct tags
func (s AmenitySet) Len() int {
	return len(s)
}

// Sorted returns the tags in lexical order
func (s AmenitySet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// CountIn returns how many tags of s are also present in other
func (s AmenitySet) CountIn(other AmenitySet) int {
	n := 0
	for t := range s {
		if other.Has(t) {
			n++
		}
	}
	return n
}

// String encodes the set as a comma-delimited list in lexical order
func (s AmenitySet) String() string {
	return strings.Join(s.Sorted(), ",")
}

// MarshalJSON encodes the set as a sorted JSON array
func (s AmenitySet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON accepts either a JSON array of tags or a JSON string holding
// one of the stored encodings
func (s *AmenitySet) UnmarshalJSON(data []byte) error {
	var tags []string
	if err := json.Unmarshal(data, &tags); err == nil {
		*s = NewAmenitySet(tags...)
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return &MalformedDataError{Field: "amenities", Reason: "expected an array or string", Err: err}
	}
	parsed, err := ParseAmenities(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
