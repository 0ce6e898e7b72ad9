package usecase

import "errors"

// Sentinel errors for use case layer
var (
	ErrInvalidOrigin  = errors.New("invalid origin")
	ErrSessionStore   = errors.New("session store is not configured")
	ErrInvalidRequest = errors.New("invalid request")
)

// Context keys for error values
const (
	SessionIDKey = "session_id"
	OriginKey    = "origin"
	InputIndex   = "input_index"
	ParallelKey  = "parallel"
)
