package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// GoogleBooks queries the Google Books volumes API.
type GoogleBooks struct {
	HTTPClient *http.Client
	BaseURL    string
}

// NewGoogleBooks creates a Google Books client with a sane timeout.
func NewGoogleBooks() *GoogleBooks {
	return &GoogleBooks{
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		BaseURL: "https://www.googleapis.com",
	}
}

// Name returns the conventional short identifier for this source.
func (g *GoogleBooks) Name() string {
	return "goob"
}

// googleBooksResponse mirrors the slice of the volumes API response we
// care about.
type googleBooksResponse struct {
	TotalItems int `json:"totalItems"`
	Items      []struct {
		VolumeInfo struct {
			Title         string   `json:"title"`
			Authors       []string `json:"authors"`
			Publisher     string   `json:"publisher"`
			PublishedDate string   `json:"publishedDate"`
			Language      string   `json:"language"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// Lookup searches Google Books by ISBN and returns the first volume.
func (g *GoogleBooks) Lookup(ctx context.Context, isbn string) (Record, error) {
	searchURL := fmt.Sprintf("%s/books/v1/volumes?q=%s", g.BaseURL, url.QueryEscape("isbn:"+isbn))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return Record{}, fmt.Errorf("failed to create Google Books request: %w", err)
	}

	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		return Record{}, fmt.Errorf("failed to fetch from Google Books: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Record{}, fmt.Errorf("Google Books API returned status %d", resp.StatusCode)
	}

	var volumes googleBooksResponse
	if err := json.NewDecoder(resp.Body).Decode(&volumes); err != nil {
		return Record{}, fmt.Errorf("failed to decode Google Books response: %w", err)
	}

	if volumes.TotalItems == 0 || len(volumes.Items) == 0 {
		return Record{}, nil
	}

	info := volumes.Items[0].VolumeInfo
	return Record{
		Title:     info.Title,
		Authors:   info.Authors,
		Publisher: info.Publisher,
		Year:      yearOf(info.PublishedDate),
		Language:  info.Language,
	}, nil
}
