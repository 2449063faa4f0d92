package access

import (
	"sync"
	"time"
)

// Entitlements tracks per-caller daily search usage in memory. The core
// only reads tier and counter state; subscription changes are the
// surrounding application's job.
type Entitlements struct {
	mu         sync.Mutex
	dailyQuota int
	usage      map[string]*usageWindow
	now        func() time.Time // injectable for testing
}

type usageWindow struct {
	day   string
	count int
}

// NewEntitlements creates an Entitlements tracker. dailyQuota bounds free
// searches per caller per UTC day; zero or negative means 3.
func NewEntitlements(dailyQuota int) *Entitlements {
	if dailyQuota <= 0 {
		dailyQuota = 3
	}
	return &Entitlements{
		dailyQuota: dailyQuota,
		usage:      make(map[string]*usageWindow),
		now:        time.Now,
	}
}

// WithNow sets a fixed clock for testing.
func (e *Entitlements) WithNow(now func() time.Time) *Entitlements {
	e.now = now
	return e
}

// Consume records one search for the caller and reports whether it was
// allowed. Premium callers are never limited. Exhaustion is an upgrade
// prompt, not an error.
func (e *Entitlements) Consume(callerID string, isPremium bool) bool {
	if isPremium {
		return true
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	day := e.now().UTC().Format("2006-01-02")
	w := e.usage[callerID]
	if w == nil || w.day != day {
		w = &usageWindow{day: day}
		e.usage[callerID] = w
	}
	if w.count >= e.dailyQuota {
		return false
	}
	w.count++
	return true
}

// Remaining reports how many free searches the caller has left today.
func (e *Entitlements) Remaining(callerID string, isPremium bool) int {
	if isPremium {
		return -1 // unlimited
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	day := e.now().UTC().Format("2006-01-02")
	w := e.usage[callerID]
	if w == nil || w.day != day {
		return e.dailyQuota
	}
	if w.count >= e.dailyQuota {
		return 0
	}
	return e.dailyQuota - w.count
}
