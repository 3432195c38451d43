// Package suite holds the benchmark definition model and its file loader.
// A suite is built once per run and read-only afterwards.
package suite

// Suite is an ordered collection of benchmark definitions, merged from all
// matched definition files.
type Suite struct {
	Queries []Benchmark `json:"queries" toml:"queries" yaml:"queries"`
}

// Benchmark is a named group of query revisions that are compared against
// each other. Name uniqueness is not enforced.
type Benchmark struct {
	Name      string     `json:"name" toml:"name" yaml:"name"`
	Revisions []Revision `json:"revisions" toml:"revisions" yaml:"revisions"`
}

// Revision is one candidate formulation of the benchmarked query. Query is
// the statement whose latency is measured. PreScript and PostScript are
// optional multi-statement setup/teardown scripts run once per revision
// outside the timed loop; the empty string means absent.
type Revision struct {
	Name       string `json:"name" toml:"name" yaml:"name"`
	Query      string `json:"query" toml:"query" yaml:"query"`
	PreScript  string `json:"pre_script,omitempty" toml:"pre_script" yaml:"pre_script"`
	PostScript string `json:"post_script,omitempty" toml:"post_script" yaml:"post_script"`
}

// NumRevisions counts the revisions across all benchmarks in the suite.
func (s *Suite) NumRevisions() int {
	n := 0
	for _, q := range s.Queries {
		n += len(q.Revisions)
	}
	return n
}
