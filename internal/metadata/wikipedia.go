package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Wikipedia queries the Wikimedia citation REST API, which resolves
// ISBNs to citation records in mediawiki format.
type Wikipedia struct {
	HTTPClient *http.Client
	BaseURL    string
}

// NewWikipedia creates a Wikipedia citation client with a sane timeout.
func NewWikipedia() *Wikipedia {
	return &Wikipedia{
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		BaseURL: "https://en.wikipedia.org",
	}
}

// Name returns the conventional short identifier for this source.
func (w *Wikipedia) Name() string {
	return "wiki"
}

// wikipediaCitation mirrors one entry of the citation API response.
// Authors come as ["first", "last"] pairs.
type wikipediaCitation struct {
	Title     string     `json:"title"`
	Author    [][]string `json:"author"`
	Publisher string     `json:"publisher"`
	Date      string     `json:"date"`
	Language  string     `json:"language"`
}

// Lookup resolves the ISBN through the citation endpoint.
func (w *Wikipedia) Lookup(ctx context.Context, isbn string) (Record, error) {
	citeURL := fmt.Sprintf("%s/api/rest_v1/data/citation/mediawiki/%s", w.BaseURL, url.PathEscape(isbn))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, citeURL, nil)
	if err != nil {
		return Record{}, fmt.Errorf("failed to create Wikipedia request: %w", err)
	}

	resp, err := w.HTTPClient.Do(req)
	if err != nil {
		return Record{}, fmt.Errorf("failed to fetch from Wikipedia: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Record{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return Record{}, fmt.Errorf("Wikipedia citation API returned status %d", resp.StatusCode)
	}

	var citations []wikipediaCitation
	if err := json.NewDecoder(resp.Body).Decode(&citations); err != nil {
		return Record{}, fmt.Errorf("failed to decode Wikipedia response: %w", err)
	}

	if len(citations) == 0 {
		return Record{}, nil
	}

	cite := citations[0]
	authors := make([]string, 0, len(cite.Author))
	for _, pair := range cite.Author {
		name := strings.TrimSpace(strings.Join(pair, " "))
		if name != "" {
			authors = append(authors, name)
		}
	}

	return Record{
		Title:     cite.Title,
		Authors:   authors,
		Publisher: cite.Publisher,
		Year:      yearOf(cite.Date),
		Language:  cite.Language,
	}, nil
}
