package types

import (
	"fmt"
	"strings"
)

// Status represents the lifecycle state of a build notice
type Status string

const (
	StatusDraft      Status = "draft"
	StatusSubmitted  Status = "submitted"
	StatusApproved   Status = "approved"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// AllStatuses returns all valid statuses
func AllStatuses() []Status {
	return []Status{
		StatusDraft,
		StatusSubmitted,
		StatusApproved,
		StatusInProgress,
		StatusCompleted,
	}
}

// IsValid checks if the status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft,
		StatusSubmitted,
		StatusApproved,
		StatusInProgress,
		StatusCompleted:
		return true
	default:
		return false
	}
}

// Normalize returns the status, treating empty as StatusDraft
func (s Status) Normalize() Status {
	if s == "" {
		return StatusDraft
	}
	return s
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// ParseStatus parses a case-insensitive string into a Status
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", fmt.Errorf("invalid status: %s", s)
	}
	return status, nil
}
