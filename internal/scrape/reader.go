package scrape

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadscout/pkg/jina"
)

// circuitBreaker tracks consecutive failures to skip a flaky upstream.
type circuitBreaker struct {
	mu        sync.Mutex
	failures  int
	lastFail  time.Time
	openUntil time.Time
	threshold int           // consecutive failures to trip
	window    time.Duration // failures must occur within this window
	cooldown  time.Duration // how long the circuit stays open
}

func newCircuitBreaker(threshold int, window, cooldown time.Duration) *circuitBreaker {
	return &circuitBreaker{
		threshold: threshold,
		window:    window,
		cooldown:  cooldown,
	}
}

func (cb *circuitBreaker) isOpen() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return time.Now().Before(cb.openUntil)
}

func (cb *circuitBreaker) recordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	now := time.Now()
	if now.Sub(cb.lastFail) > cb.window {
		cb.failures = 0
	}
	cb.failures++
	cb.lastFail = now
	if cb.failures >= cb.threshold {
		cb.openUntil = now.Add(cb.cooldown)
		zap.L().Warn("scrape: reader circuit breaker opened",
			zap.Int("failures", cb.failures),
			zap.Duration("cooldown", cb.cooldown),
		)
	}
}

func (cb *circuitBreaker) recordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failures = 0
}

// ReaderFetcher wraps a Jina Reader client as a fetch channel with a
// circuit breaker, for pages the local channel cannot reach.
type ReaderFetcher struct {
	client  jina.Client
	breaker *circuitBreaker
}

// NewReaderFetcher creates a ReaderFetcher. trips consecutive failures
// within 30s open the circuit for cooldown, causing immediate fallback.
func NewReaderFetcher(client jina.Client, trips int, cooldown time.Duration) *ReaderFetcher {
	if trips <= 0 {
		trips = 3
	}
	if cooldown <= 0 {
		cooldown = 60 * time.Second
	}
	return &ReaderFetcher{
		client:  client,
		breaker: newCircuitBreaker(trips, 30*time.Second, cooldown),
	}
}

func (r *ReaderFetcher) Name() string { return "jina_reader" }

// Available returns false while the circuit breaker is open.
func (r *ReaderFetcher) Available() bool {
	return !r.breaker.isOpen()
}

// Fetch retrieves a URL via Jina Reader and validates the response.
func (r *ReaderFetcher) Fetch(ctx context.Context, targetURL string) (*Page, error) {
	if r.breaker.isOpen() {
		return nil, eris.New("jina_reader: circuit breaker open")
	}

	resp, err := r.client.Read(ctx, targetURL)
	if err != nil {
		r.breaker.recordFailure()
		return nil, err
	}

	if needsFallback(resp) {
		r.breaker.recordFailure()
		return nil, eris.New("jina_reader: response needs fallback")
	}

	r.breaker.recordSuccess()
	return &Page{
		URL:        resp.Data.URL,
		Title:      resp.Data.Title,
		Text:       resp.Data.Content,
		StatusCode: resp.Code,
		Channel:    "jina_reader",
	}, nil
}

// needsFallback reports whether a reader response is blocked or empty and
// should be retried through another channel.
func needsFallback(resp *jina.ReadResponse) bool {
	if resp == nil {
		return true
	}

	if resp.Code != 0 && resp.Code != 200 {
		return true
	}

	content := strings.TrimSpace(resp.Data.Content)
	if len(content) < 100 {
		return true
	}

	lower := strings.ToLower(content)
	challengeSignatures := []string{
		"checking your browser",
		"enable javascript",
		"please enable cookies",
		"access denied",
		"403 forbidden",
		"just a moment",
		"cloudflare",
		"attention required",
	}
	for _, sig := range challengeSignatures {
		if strings.Contains(lower, sig) && len(content) < 1000 {
			return true
		}
	}

	return false
}
