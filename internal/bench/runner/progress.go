package runner

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ProgressTracker counts completed revisions across all concurrently running
// benchmarks and logs progress as outcomes land.
type ProgressTracker struct {
	mu        sync.Mutex
	total     int
	completed int
	startTime time.Time
}

func NewProgressTracker(total int) *ProgressTracker {
	return &ProgressTracker{
		total:     total,
		startTime: time.Now(),
	}
}

func (pt *ProgressTracker) Update(benchmark, revision string) {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	pt.completed++
	slog.Info("revision complete",
		"benchmark", benchmark,
		"revision", revision,
		"progress", fmt.Sprintf("%d/%d", pt.completed, pt.total),
		"elapsed", time.Since(pt.startTime).Round(time.Millisecond))
}

// Completed returns how many revisions have finished so far.
func (pt *ProgressTracker) Completed() int {
	pt.mu.Lock()
	defer pt.mu.Unlock()
	return pt.completed
}
