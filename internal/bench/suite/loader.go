package suite

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Discover returns the definition files under dir matching the glob pattern.
// Directories and other non-files are filtered out.
func Discover(dir, pattern string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}

	var files []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, m)
	}
	return files, nil
}

// Load parses every definition file and merges the benchmarks into a single
// suite. A file that fails to parse is logged and skipped; the run proceeds
// with whatever loaded. An empty merged suite is an error.
func Load(paths []string) (*Suite, error) {
	merged := &Suite{}
	for _, p := range paths {
		s, err := ParseFile(p)
		if err != nil {
			slog.Warn("Skipping definition file", "path", p, "error", err)
			continue
		}
		merged.Queries = append(merged.Queries, s.Queries...)
	}

	if len(merged.Queries) == 0 {
		return nil, fmt.Errorf("no benchmark definitions loaded")
	}
	return merged, nil
}

// ParseFile reads one definition file, dispatching on its extension.
// Supported formats: TOML, JSON and YAML.
func ParseFile(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definition file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return ParseTOML(data)
	case ".json":
		return ParseJSON(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return nil, fmt.Errorf("unsupported definition format %q", filepath.Ext(path))
	}
}

func ParseTOML(data []byte) (*Suite, error) {
	var s Suite
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse TOML definitions: %w", err)
	}
	return validated(&s)
}

func ParseJSON(data []byte) (*Suite, error) {
	var s Suite
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse JSON definitions: %w", err)
	}
	return validated(&s)
}

func ParseYAML(data []byte) (*Suite, error) {
	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse YAML definitions: %w", err)
	}
	return validated(&s)
}

func validated(s *Suite) (*Suite, error) {
	if len(s.Queries) == 0 {
		return nil, fmt.Errorf("definition has no queries")
	}
	for _, q := range s.Queries {
		if len(q.Revisions) == 0 {
			return nil, fmt.Errorf("benchmark %q has no revisions", q.Name)
		}
		for _, rev := range q.Revisions {
			if rev.Query == "" {
				return nil, fmt.Errorf("benchmark %q revision %q has no query", q.Name, rev.Name)
			}
		}
	}
	return s, nil
}
