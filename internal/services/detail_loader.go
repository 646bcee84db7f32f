package services

import (
	"context"
	"sync/atomic"
)

// RevalidatingLoader implements stale-while-revalidate for detail views:
// seed data already known to the caller is applied immediately, then the
// fresh fetch result replaces it. A monotonic sequence token ensures a slow
// fetch kicked off earlier can never overwrite the result of a later one.
type RevalidatingLoader[M any] struct {
	seq atomic.Uint64
}

// Load applies seed (when present) via apply, runs fetch, and applies the
// fresh result unless a newer Load has started in the meantime. The fetch
// error is returned either way so callers can surface it.
func (l *RevalidatingLoader[M]) Load(ctx context.Context, seed *M, fetch func(context.Context) (M, error), apply func(M)) error {
	token := l.seq.Add(1)

	if seed != nil {
		apply(*seed)
	}

	fresh, err := fetch(ctx)
	if err != nil {
		return err
	}

	// A later Load superseded this one; its data is newer, keep it.
	if l.seq.Load() != token {
		return nil
	}

	apply(fresh)
	return nil
}
