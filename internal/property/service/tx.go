package service

import (
	"context"
	"sync"

	dErrors "propertyguard/pkg/domain-errors"
)

// StoreTx runs a function inside a transactional boundary. Property creation
// spans four stores (property, items, gaps, score write-back); the postgres
// implementation opens one database transaction carried in the context, the
// in-memory one serializes callers with a mutex.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error
}

type inMemoryStoreTx struct {
	mu sync.Mutex
}

func newInMemoryStoreTx() *inMemoryStoreTx {
	return &inMemoryStoreTx{}
}

func (t *inMemoryStoreTx) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}
