// Package metadata resolves bibliographic metadata for ISBNs from
// external lookup services.
package metadata

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Record holds the bibliographic fields a lookup service returned for an
// ISBN. It is used for display only and never parsed further.
type Record struct {
	Title     string   `json:"title" yaml:"title"`
	Authors   []string `json:"authors,omitempty" yaml:"authors,omitempty"`
	Publisher string   `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	Year      string   `json:"year,omitempty" yaml:"year,omitempty"`
	Language  string   `json:"language,omitempty" yaml:"language,omitempty"`
}

// IsEmpty reports whether the record carries no usable fields.
func (r Record) IsEmpty() bool {
	return r.Title == "" && len(r.Authors) == 0
}

// String renders the record as a single human-readable line.
func (r Record) String() string {
	if r.IsEmpty() {
		return "(no metadata)"
	}

	var b strings.Builder
	b.WriteString(r.Title)
	if len(r.Authors) > 0 {
		fmt.Fprintf(&b, " - %s", strings.Join(r.Authors, ", "))
	}
	if r.Publisher != "" || r.Year != "" {
		b.WriteString(" (")
		b.WriteString(r.Publisher)
		if r.Publisher != "" && r.Year != "" {
			b.WriteString(", ")
		}
		b.WriteString(r.Year)
		b.WriteString(")")
	}
	return b.String()
}

// Source is a single external metadata service queried by ISBN.
// Lookup returns an empty record and nil error when the service has no
// entry for the ISBN; errors are reserved for transport and decode
// failures.
type Source interface {
	Name() string
	Lookup(ctx context.Context, isbn string) (Record, error)
}

// Resolver queries an ordered list of sources and takes the first
// non-empty result. Individual source failures never abort resolution.
type Resolver struct {
	Sources []Source
	Logger  *slog.Logger
}

// NewResolver creates a resolver over the conventional source order:
// Google Books, then the Wikipedia citation service, then Open Library.
func NewResolver(logger *slog.Logger) *Resolver {
	return &Resolver{
		Sources: []Source{NewGoogleBooks(), NewWikipedia(), NewOpenLibrary()},
		Logger:  logger,
	}
}

// Resolve returns the metadata for isbn and the name of the winning
// source. When every source fails or comes up empty it returns a zero
// record and an empty source name.
func (r *Resolver) Resolve(ctx context.Context, isbn string) (Record, string) {
	for _, src := range r.Sources {
		record, err := src.Lookup(ctx, isbn)
		if err != nil {
			r.Logger.Debug("Metadata lookup failed", "source", src.Name(), "isbn", isbn, "err", err)
			continue
		}
		if record.IsEmpty() {
			r.Logger.Debug("No metadata found", "source", src.Name(), "isbn", isbn)
			continue
		}
		return record, src.Name()
	}

	return Record{}, ""
}

// yearOf extracts the first four-digit year from a free-form date string
// such as "November 1994" or "2011-03-01".
func yearOf(date string) string {
	run := 0
	for i, c := range date {
		if c >= '0' && c <= '9' {
			run++
			if run == 4 {
				return date[i-3 : i+1]
			}
		} else {
			run = 0
		}
	}
	return ""
}
