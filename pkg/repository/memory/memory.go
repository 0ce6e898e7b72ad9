package memory

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrNotFound is returned when a session does not exist
	ErrNotFound = goerr.New("not found")
)

// Context keys for error values
const (
	SessionIDKey = "session_id"
)
