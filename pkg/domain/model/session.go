package model

import "github.com/google/uuid"

// SessionID identifies one form-filling session
type SessionID string

// NewSessionID generates a new UUID v4 SessionID
func NewSessionID() SessionID {
	return SessionID(uuid.New().String())
}

// String returns the string representation of the session ID
func (id SessionID) String() string {
	return string(id)
}
