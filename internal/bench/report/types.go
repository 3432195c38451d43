// Package report renders a benchmark run for humans and for export. The
// result model stays the engine's contract; everything here is presentation.
package report

import (
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/DjordjeVuckovic/qbench/internal/bench/result"
)

type Report struct {
	Meta       Meta              `json:"meta" toml:"meta"`
	Benchmarks []BenchmarkReport `json:"benchmarks" toml:"benchmarks"`
}

type Meta struct {
	RunID      uuid.UUID `json:"run_id" toml:"run_id"`
	Timestamp  time.Time `json:"timestamp" toml:"timestamp"`
	Iterations int       `json:"iterations" toml:"iterations"`
	GoVersion  string    `json:"go_version" toml:"go_version"`
	OS         string    `json:"os" toml:"os"`
	Arch       string    `json:"arch" toml:"arch"`
	NumCPU     int       `json:"num_cpu" toml:"num_cpu"`
}

type BenchmarkReport struct {
	Name      string           `json:"name" toml:"name"`
	Revisions []RevisionReport `json:"revisions" toml:"revisions"`
}

// RevisionReport carries the engine outcome plus display-layer latency
// statistics computed from the per-iteration durations.
type RevisionReport struct {
	result.Revision
	Latency LatencyStats `json:"latency" toml:"latency"`
}

func NewMeta(iterations int) Meta {
	return Meta{
		RunID:      uuid.New(),
		Timestamp:  time.Now().UTC(),
		Iterations: iterations,
		GoVersion:  runtime.Version(),
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		NumCPU:     runtime.NumCPU(),
	}
}

// Generate builds a report from a finished run.
func Generate(run *result.Run, iterations int) *Report {
	r := &Report{Meta: NewMeta(iterations)}

	for _, b := range run.Benchmarks {
		br := BenchmarkReport{Name: b.Name}
		for _, rev := range b.Revisions {
			entry := RevisionReport{Revision: rev}
			if !rev.Failed() {
				entry.Latency = ComputeLatencyStats(rev.Durations)
			}
			br.Revisions = append(br.Revisions, entry)
		}
		r.Benchmarks = append(r.Benchmarks, br)
	}

	return r
}
