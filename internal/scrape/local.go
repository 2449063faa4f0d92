package scrape

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
)

// LocalFetcher fetches HTML via net/http, detects blocks, and converts the
// document to plaintext. Free, no API calls; blocked or JS-only pages fall
// through to the reader channel.
type LocalFetcher struct {
	client  *http.Client
	maxBody int64
}

// NewLocalFetcher creates a LocalFetcher. maxBodyKB bounds how much of a
// response body is read; zero means 512KB.
func NewLocalFetcher(timeout time.Duration, maxBodyKB int) *LocalFetcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if maxBodyKB <= 0 {
		maxBodyKB = 512
	}
	return &LocalFetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		maxBody: int64(maxBodyKB) * 1024,
	}
}

func (l *LocalFetcher) Name() string    { return "local_http" }
func (l *LocalFetcher) Available() bool { return true }

// Fetch retrieves a URL and strips the HTML to plaintext.
func (l *LocalFetcher) Fetch(ctx context.Context, targetURL string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "local_http: create request")
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; LeadScoutBot/1.0)")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "local_http: fetch")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, l.maxBody))
	if err != nil {
		return nil, eris.Wrap(err, "local_http: read body")
	}

	if blocked, blockType := DetectBlock(resp, body); blocked {
		return nil, eris.Errorf("local_http: blocked (%s)", blockType)
	}

	if resp.StatusCode >= 400 {
		return nil, eris.Errorf("local_http: status %d", resp.StatusCode)
	}

	title, text := htmlToText(body)

	return &Page{
		URL:        targetURL,
		Title:      title,
		Text:       text,
		StatusCode: resp.StatusCode,
		Channel:    "local_http",
	}, nil
}

// htmlToText parses HTML and returns the title plus visible text with
// script/style/nav/footer content removed. Non-HTML input comes back as-is.
func htmlToText(body []byte) (title, text string) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", string(body)
	}

	title = strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find("script, style, nav, footer, noscript").Remove()
	raw := doc.Find("body").Text()
	if strings.TrimSpace(raw) == "" {
		raw = doc.Text()
	}

	// Collapse runs of whitespace while preserving line structure.
	var b strings.Builder
	for _, line := range strings.Split(raw, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return title, strings.TrimSpace(b.String())
}
