package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// OpenLibrary queries the Open Library Books API.
type OpenLibrary struct {
	HTTPClient *http.Client
	BaseURL    string
}

// NewOpenLibrary creates an Open Library client with a sane timeout.
func NewOpenLibrary() *OpenLibrary {
	return &OpenLibrary{
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		BaseURL: "https://openlibrary.org",
	}
}

// Name returns the conventional short identifier for this source.
func (o *OpenLibrary) Name() string {
	return "openl"
}

// openLibraryBooksResponse represents the Open Library Books API
// response, keyed by "ISBN:<isbn>" bib keys.
type openLibraryBooksResponse map[string]struct {
	Title   string `json:"title"`
	Authors []struct {
		Name string `json:"name"`
	} `json:"authors"`
	Publishers []struct {
		Name string `json:"name"`
	} `json:"publishers"`
	PublishDate string `json:"publish_date"`
}

// Lookup fetches book data for the ISBN from the Books API.
func (o *OpenLibrary) Lookup(ctx context.Context, isbn string) (Record, error) {
	bibKey := "ISBN:" + isbn
	booksURL := fmt.Sprintf("%s/api/books?bibkeys=%s&format=json&jscmd=data", o.BaseURL, url.QueryEscape(bibKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, booksURL, nil)
	if err != nil {
		return Record{}, fmt.Errorf("failed to create Open Library request: %w", err)
	}

	resp, err := o.HTTPClient.Do(req)
	if err != nil {
		return Record{}, fmt.Errorf("failed to fetch from Open Library: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Record{}, fmt.Errorf("Open Library API returned status %d", resp.StatusCode)
	}

	var books openLibraryBooksResponse
	if err := json.NewDecoder(resp.Body).Decode(&books); err != nil {
		return Record{}, fmt.Errorf("failed to decode Open Library response: %w", err)
	}

	book, found := books[bibKey]
	if !found {
		return Record{}, nil
	}

	authors := make([]string, 0, len(book.Authors))
	for _, a := range book.Authors {
		authors = append(authors, a.Name)
	}

	publisher := ""
	if len(book.Publishers) > 0 {
		publisher = book.Publishers[0].Name
	}

	return Record{
		Title:     book.Title,
		Authors:   authors,
		Publisher: publisher,
		Year:      yearOf(book.PublishDate),
	}, nil
}
