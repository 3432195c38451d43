package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5"
)

// txGuard serializes access to a transaction handle. A pgx transaction is not
// safe for concurrent use: exactly one statement may be in flight at a time.
// Logically only one goroutine ever touches the handle, but the lock makes
// the ownership contract structural instead of conventional.
type txGuard struct {
	mu sync.Mutex
	tx pgx.Tx
}

func newTxGuard(tx pgx.Tx) *txGuard {
	return &txGuard{tx: tx}
}

func (g *txGuard) exec(ctx context.Context, stmt string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, err := g.tx.Exec(ctx, stmt)
	return err
}

// rollback ends the transaction. It is the only transaction-ending action the
// engine ever takes.
func (g *txGuard) rollback(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		slog.Warn("rollback failed", "error", err)
	}
}
