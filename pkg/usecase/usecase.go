package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/buildnotice/pkg/domain/interfaces"
	"github.com/secmon-lab/buildnotice/pkg/domain/model"
	"github.com/secmon-lab/buildnotice/pkg/service/extractor"
)

type UseCases struct {
	extractor interfaces.Extractor
	catalog   *model.ProjectCatalog
	sessions  interfaces.SessionStore[*Session]
	now       func() time.Time
}

type Option func(*UseCases)

func WithExtractor(x interfaces.Extractor) Option {
	return func(uc *UseCases) {
		uc.extractor = x
	}
}

func WithProjectCatalog(catalog *model.ProjectCatalog) Option {
	return func(uc *UseCases) {
		uc.catalog = catalog
	}
}

func WithSessionStore(store interfaces.SessionStore[*Session]) Option {
	return func(uc *UseCases) {
		uc.sessions = store
	}
}

func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

func New(opts ...Option) *UseCases {
	uc := &UseCases{
		extractor: extractor.Pattern{},
		catalog:   model.DefaultProjectCatalog(),
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// NewSession creates a standalone session sharing the use case dependencies
func (uc *UseCases) NewSession() *Session {
	return NewSession(
		WithSessionExtractor(uc.extractor),
		WithSessionCatalog(uc.catalog),
		WithSessionClock(uc.now),
	)
}

// OpenSession creates a session in the session store and returns its ID
func (uc *UseCases) OpenSession(ctx context.Context) (model.SessionID, error) {
	if uc.sessions == nil {
		return "", goerr.Wrap(ErrSessionStore, "cannot open session")
	}
	id, err := uc.sessions.Create(ctx, uc.NewSession())
	if err != nil {
		return "", goerr.Wrap(err, "failed to create session")
	}
	return id, nil
}

// WithSession runs fn with exclusive access to a stored session
func (uc *UseCases) WithSession(ctx context.Context, id model.SessionID, fn func(*Session) error) error {
	if uc.sessions == nil {
		return goerr.Wrap(ErrSessionStore, "cannot access session")
	}
	if err := uc.sessions.With(ctx, id, fn); err != nil {
		return goerr.Wrap(err, "session operation failed", goerr.V(SessionIDKey, id))
	}
	return nil
}

// CloseSession drops a stored session
func (uc *UseCases) CloseSession(ctx context.Context, id model.SessionID) error {
	if uc.sessions == nil {
		return goerr.Wrap(ErrSessionStore, "cannot close session")
	}
	if err := uc.sessions.Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete session", goerr.V(SessionIDKey, id))
	}
	return nil
}

// ListSessions returns stored session IDs in creation order
func (uc *UseCases) ListSessions(ctx context.Context) ([]model.SessionID, error) {
	if uc.sessions == nil {
		return nil, goerr.Wrap(ErrSessionStore, "cannot list sessions")
	}
	ids, err := uc.sessions.List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list sessions")
	}
	return ids, nil
}
