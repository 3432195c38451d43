// Package result holds the structured outcome tree of a benchmark run.
// Values are created by the runner as executions complete and are immutable
// afterwards. Duration fields serialize as nanosecond integers with an
// explicit _ns suffix.
package result

import "time"

// Status tags the outcome of a single revision execution.
type Status string

const (
	StatusSuccess           Status = "success"
	StatusFailure           Status = "failure"
	StatusPreScriptFailure  Status = "pre_script_failure"
	StatusPostScriptFailure Status = "post_script_failure"
)

// Revision is the outcome of benchmarking one query revision. The duration
// fields are populated only on success; Error only on the failure statuses.
type Revision struct {
	RevisionName       string          `json:"revision_name" toml:"revision_name"`
	Status             Status          `json:"status" toml:"status"`
	Durations          []time.Duration `json:"durations_ns,omitempty" toml:"durations_ns,omitempty"`
	AvgDuration        time.Duration   `json:"avg_duration_ns" toml:"avg_duration_ns"`
	PreScriptDuration  time.Duration   `json:"pre_script_duration_ns" toml:"pre_script_duration_ns"`
	PostScriptDuration time.Duration   `json:"post_script_duration_ns" toml:"post_script_duration_ns"`
	Error              string          `json:"error,omitempty" toml:"error,omitempty"`
}

// Benchmark collects the outcomes of all revisions under one benchmark name,
// in definition order.
type Benchmark struct {
	Name      string     `json:"name" toml:"name"`
	Revisions []Revision `json:"revisions" toml:"revisions"`
}

// Run is the full output of one benchmark run, in definition order.
type Run struct {
	Benchmarks []Benchmark `json:"benchmarks" toml:"benchmarks"`
}

// Success builds a success outcome. The average is derived from the
// per-iteration durations.
func Success(name string, durations []time.Duration, pre, post time.Duration) Revision {
	return Revision{
		RevisionName:       name,
		Status:             StatusSuccess,
		Durations:          durations,
		AvgDuration:        Average(durations),
		PreScriptDuration:  pre,
		PostScriptDuration: post,
	}
}

// Failure builds a query-failure outcome. Durations collected before the
// failing iteration are not carried over.
func Failure(name string, err error) Revision {
	return failure(name, StatusFailure, err)
}

// PreScriptFailure builds the outcome for a setup script that failed before
// the timed loop ran.
func PreScriptFailure(name string, err error) Revision {
	return failure(name, StatusPreScriptFailure, err)
}

// PostScriptFailure builds the outcome for a teardown script failure. The
// query-phase durations and average are dropped from the reported outcome;
// only name and error survive.
func PostScriptFailure(name string, err error) Revision {
	return failure(name, StatusPostScriptFailure, err)
}

func failure(name string, status Status, err error) Revision {
	return Revision{
		RevisionName: name,
		Status:       status,
		Error:        err.Error(),
	}
}

// Failed reports whether the revision ended in any non-success status.
func (r Revision) Failed() bool {
	return r.Status != StatusSuccess
}

// Average returns the mean of the given durations. It is defined only for a
// non-empty set and returns zero otherwise.
func Average(durations []time.Duration) time.Duration {
	if len(durations) == 0 {
		return 0
	}
	var sum time.Duration
	for _, d := range durations {
		sum += d
	}
	return sum / time.Duration(len(durations))
}
