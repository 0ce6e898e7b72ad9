package model

import (
	"time"

	"github.com/secmon-lab/buildnotice/pkg/domain/types"
)

// ConversationEntry is one message exchanged with the assist panel
type ConversationEntry struct {
	Speaker   types.Speaker `json:"speaker"`
	Text      string        `json:"text"`
	Timestamp time.Time     `json:"timestamp"`
}

// Event is an entry of the append-only audit log. Field is nil for events
// that are not about a single field.
type Event struct {
	Kind      types.EventKind `json:"kind"`
	Field     *types.FieldID  `json:"field,omitempty"`
	Value     any             `json:"value,omitempty"`
	Origin    types.Origin    `json:"origin"`
	Timestamp time.Time       `json:"timestamp"`
}

// SubmitResult is returned by a submission attempt. Notice is set on success,
// Errors on failure.
type SubmitResult struct {
	Success bool          `json:"success"`
	Notice  *BuildNotice  `json:"notice,omitempty"`
	Errors  ValidationMap `json:"errors,omitempty"`
}
