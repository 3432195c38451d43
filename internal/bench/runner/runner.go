// Package runner fans a benchmark suite out into concurrent per-revision
// executions and collects the outcome tree.
package runner

import (
	"context"
	"log/slog"
	"sync"

	"github.com/DjordjeVuckovic/qbench/internal/bench/engine"
	"github.com/DjordjeVuckovic/qbench/internal/bench/result"
	"github.com/DjordjeVuckovic/qbench/internal/bench/suite"
)

const DefaultIterations = 1

type Config struct {
	Iterations int
}

type Runner struct {
	config Config
	exec   engine.Executor
}

func New(cfg Config, exec engine.Executor) *Runner {
	if cfg.Iterations <= 0 {
		cfg.Iterations = DefaultIterations
	}
	return &Runner{config: cfg, exec: exec}
}

// Run launches one goroutine per benchmark and one per revision. Outcomes are
// written into index-addressed slots so the result order always matches the
// definition order, whatever order executions complete in. Revision failures
// are structural outcomes and never abort siblings; the connection pool is
// the only bound on fan-out.
func (r *Runner) Run(ctx context.Context, s *suite.Suite) *result.Run {
	progress := NewProgressTracker(s.NumRevisions())

	benchmarks := make([]result.Benchmark, len(s.Queries))
	var wg sync.WaitGroup
	for i := range s.Queries {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			benchmarks[i] = r.runBenchmark(ctx, s.Queries[i], progress)
		}(i)
	}
	wg.Wait()

	return &result.Run{Benchmarks: benchmarks}
}

func (r *Runner) runBenchmark(ctx context.Context, b suite.Benchmark, progress *ProgressTracker) result.Benchmark {
	revisions := make([]result.Revision, len(b.Revisions))
	var wg sync.WaitGroup
	for i := range b.Revisions {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcome := r.exec.Execute(ctx, b.Revisions[i], r.config.Iterations)
			if outcome.Failed() {
				slog.Warn("revision failed",
					"benchmark", b.Name,
					"revision", outcome.RevisionName,
					"status", outcome.Status,
					"error", outcome.Error)
			}
			progress.Update(b.Name, outcome.RevisionName)
			revisions[i] = outcome
		}(i)
	}
	wg.Wait()

	return result.Benchmark{Name: b.Name, Revisions: revisions}
}
