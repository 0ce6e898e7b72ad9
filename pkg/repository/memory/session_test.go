package memory_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/buildnotice/pkg/domain/model"
	"github.com/secmon-lab/buildnotice/pkg/repository/memory"
)

type counter struct {
	n int
}

func TestSessionStore_Lifecycle(t *testing.T) {
	ctx := t.Context()
	store := memory.NewSessionStore[*counter]()

	id1, err := store.Create(ctx, &counter{})
	gt.NoError(t, err).Required()
	id2, err := store.Create(ctx, &counter{n: 10})
	gt.NoError(t, err).Required()
	gt.Value(t, id1).NotEqual(id2)

	ids, err := store.List(ctx)
	gt.NoError(t, err).Required()
	gt.Array(t, ids).Length(2)
	gt.Array(t, ids).Has(id1)
	gt.Array(t, ids).Has(id2)

	gt.NoError(t, store.With(ctx, id1, func(c *counter) error {
		c.n++
		return nil
	})).Required()

	var got1, got2 int
	gt.NoError(t, store.With(ctx, id1, func(c *counter) error { got1 = c.n; return nil })).Required()
	gt.NoError(t, store.With(ctx, id2, func(c *counter) error { got2 = c.n; return nil })).Required()
	gt.Value(t, got1).Equal(1)
	gt.Value(t, got2).Equal(10)

	gt.NoError(t, store.Delete(ctx, id1)).Required()
	gt.Error(t, store.With(ctx, id1, func(c *counter) error { return nil })).Is(memory.ErrNotFound)
	gt.Error(t, store.Delete(ctx, id1)).Is(memory.ErrNotFound)
}

func TestSessionStore_WithPropagatesError(t *testing.T) {
	ctx := t.Context()
	store := memory.NewSessionStore[*counter]()
	id, err := store.Create(ctx, &counter{})
	gt.NoError(t, err).Required()

	sentinel := errors.New("boom")
	gt.Error(t, store.With(ctx, id, func(c *counter) error { return sentinel })).Is(sentinel)
}

func TestSessionStore_UnknownSession(t *testing.T) {
	store := memory.NewSessionStore[*counter]()
	err := store.With(t.Context(), model.SessionID("missing"), func(c *counter) error { return nil })
	gt.Error(t, err).Is(memory.ErrNotFound)
}

func TestSessionStore_ExclusiveAccess(t *testing.T) {
	ctx := t.Context()
	store := memory.NewSessionStore[*counter]()
	id, err := store.Create(ctx, &counter{})
	gt.NoError(t, err).Required()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.With(ctx, id, func(c *counter) error {
				c.n++
				return nil
			})
		}()
	}
	wg.Wait()

	var n int
	gt.NoError(t, store.With(ctx, id, func(c *counter) error { n = c.n; return nil })).Required()
	gt.Value(t, n).Equal(50)
}
