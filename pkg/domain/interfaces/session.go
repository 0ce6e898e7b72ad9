package interfaces

import (
	"context"

	"github.com/secmon-lab/buildnotice/pkg/domain/model"
)

// SessionStore keeps live sessions isolated from each other. With runs fn
// while holding exclusive access to the session; a session must not be used
// outside of fn.
type SessionStore[T any] interface {
	Create(ctx context.Context, session T) (model.SessionID, error)
	With(ctx context.Context, id model.SessionID, fn func(T) error) error
	Delete(ctx context.Context, id model.SessionID) error
	List(ctx context.Context) ([]model.SessionID, error)
}
