// Package scrape fetches business web pages through an ordered list of
// channel strategies with block detection and fallback.
package scrape

import "context"

// Page holds fetched page content ready for extraction.
type Page struct {
	URL        string
	Title      string
	Text       string
	StatusCode int
	Channel    string // which fetch channel produced it
}

// Fetcher retrieves a single URL's content through one channel.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Page, error)
	Name() string
	Available() bool
}
