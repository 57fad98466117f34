package metadata

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// sidecarEntry pairs an ISBN with its resolved record in the YAML dump.
type sidecarEntry struct {
	ISBN   string `yaml:"isbn"`
	Record Record `yaml:"metadata"`
}

// WriteSidecar saves resolved metadata records to a YAML file, one entry
// per ISBN in ascending ISBN order.
func WriteSidecar(path string, records map[string]Record) error {
	isbns := make([]string, 0, len(records))
	for isbn := range records {
		isbns = append(isbns, isbn)
	}
	sort.Strings(isbns)

	entries := make([]sidecarEntry, 0, len(isbns))
	for _, isbn := range isbns {
		entries = append(entries, sidecarEntry{ISBN: isbn, Record: records[isbn]})
	}

	out, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}

	return nil
}
