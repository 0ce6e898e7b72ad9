package model

import (
	"time"

	"github.com/secmon-lab/buildnotice/pkg/domain/types"
)

// SuggestionSet is a partial form state proposed by an extractor. Keys are
// always settable declared fields.
type SuggestionSet map[types.FieldID]any

// Fields returns the suggested fields in declaration order
func (s SuggestionSet) Fields() []types.FieldID {
	var out []types.FieldID
	for _, f := range types.AllFieldIDs() {
		if _, ok := s[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// Clone returns a copy of the set
func (s SuggestionSet) Clone() SuggestionSet {
	if s == nil {
		return nil
	}
	c := make(SuggestionSet, len(s))
	for k, v := range s {
		c[k] = CloneValue(v)
	}
	return c
}

// CloneValue copies the mutable values that flow through suggestions and
// events. Other values are returned as is.
func CloneValue(v any) any {
	switch x := v.(type) {
	case *time.Time:
		return cloneDate(x)
	case *BuildNotice:
		return x.Clone()
	case SuggestionSet:
		return x.Clone()
	case ValidationMap:
		return x.Clone()
	default:
		return v
	}
}

// Sanitize drops keys that are undeclared or read-only
func (s SuggestionSet) Sanitize() SuggestionSet {
	out := make(SuggestionSet, len(s))
	for k, v := range s {
		if k.IsValid() && !k.IsReadOnly() {
			out[k] = v
		}
	}
	return out
}
