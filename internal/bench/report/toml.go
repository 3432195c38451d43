package report

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

func WriteTOML(r *Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
