// Package input gathers raw ISBN candidates from the command line and
// optional input files.
package input

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Collect merges positional arguments with the lines of an optional
// file, arguments first. Lines are whitespace-trimmed but otherwise
// passed through untouched; validation happens downstream. An empty
// file path means no file input. A missing or unreadable file is a
// fatal error.
func Collect(args []string, file string) ([]string, error) {
	raw := make([]string, 0, len(args))
	raw = append(raw, args...)

	if file == "" {
		return raw, nil
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open ISBN file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		raw = append(raw, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ISBN file: %w", err)
	}

	return raw, nil
}
