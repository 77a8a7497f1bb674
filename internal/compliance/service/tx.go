package service

import (
	"context"
	"sync"

	dErrors "propertyguard/pkg/domain-errors"
)

// StoreTx runs a function inside a transactional boundary. The postgres
// implementation opens a database transaction and carries it in the context
// so stores join it; the in-memory implementation serializes callers with a
// mutex, which is enough for the memory stores' coarse locking.
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
