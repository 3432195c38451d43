// Package engine runs a single revision's full lifecycle inside one
// database transaction.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/DjordjeVuckovic/qbench/internal/bench/result"
	"github.com/DjordjeVuckovic/qbench/internal/bench/script"
	"github.com/DjordjeVuckovic/qbench/internal/bench/suite"
	"github.com/DjordjeVuckovic/qbench/internal/storage/pg"
)

// Executor runs one revision to completion and reports the outcome. All
// failure is carried in the outcome's status; Execute never returns an error.
type Executor interface {
	Execute(ctx context.Context, rev suite.Revision, iterations int) result.Revision
}

// PgExecutor benchmarks revisions against a PostgreSQL pool. Every execution
// owns its connection and transaction exclusively for its whole lifetime, and
// the transaction is rolled back on every exit path. Commit is never issued:
// the database state after an execution equals the state before it, modulo
// engine-level counters such as sequences that advance even on rollback.
type PgExecutor struct {
	pool *pg.ConnectionPool
}

func NewPgExecutor(pool *pg.ConnectionPool) *PgExecutor {
	return &PgExecutor{pool: pool}
}

// Execute runs pre-script, N timed iterations of the query, and post-script
// sequentially against one transaction, then rolls it back.
//
// A pre-script failure skips the timed loop and the post-script. A query
// failure stops iterating immediately; durations from completed iterations
// are dropped. A post-script failure drops the query-phase durations and
// average from the reported outcome. Compatibility behavior, do not change
// without coordinating with result consumers.
func (e *PgExecutor) Execute(ctx context.Context, rev suite.Revision, iterations int) result.Revision {
	conn, err := e.pool.Acquire(ctx)
	if err != nil {
		return result.Failure(rev.Name, err)
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return result.Failure(rev.Name, fmt.Errorf("begin transaction: %w", err))
	}
	guard := newTxGuard(tx)
	defer guard.rollback(ctx)

	var preDuration time.Duration
	if rev.PreScript != "" {
		preDuration, err = runScript(ctx, guard, rev.PreScript)
		if err != nil {
			return result.PreScriptFailure(rev.Name, err)
		}
	}

	durations := make([]time.Duration, 0, iterations)
	for i := 0; i < iterations; i++ {
		start := time.Now()
		if err := guard.exec(ctx, rev.Query); err != nil {
			return result.Failure(rev.Name, err)
		}
		durations = append(durations, time.Since(start))
	}

	var postDuration time.Duration
	if rev.PostScript != "" {
		postDuration, err = runScript(ctx, guard, rev.PostScript)
		if err != nil {
			return result.PostScriptFailure(rev.Name, err)
		}
	}

	return result.Success(rev.Name, durations, preDuration, postDuration)
}

// runScript executes each non-empty statement of a multi-statement script
// sequentially, returning the total elapsed wall-clock time across all of
// them.
func runScript(ctx context.Context, guard *txGuard, s string) (time.Duration, error) {
	start := time.Now()
	for _, stmt := range script.Split(s) {
		if stmt == "" {
			continue
		}
		if err := guard.exec(ctx, stmt); err != nil {
			return 0, err
		}
	}
	return time.Since(start), nil
}

var _ Executor = (*PgExecutor)(nil)
