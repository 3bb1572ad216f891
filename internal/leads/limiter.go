package leads

import (
	"net/http"
	"strings"
	"sync"
	"time"
)

// Limiter is a fixed-window counter per client key. A window opens on the
// first request from a key and admits max requests until it expires.
// State is in memory only and resets with the process.
type Limiter struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	now     func() time.Time
	windows map[string]*fixedWindow
}

type fixedWindow struct {
	count   int
	resetAt time.Time
}

// sweepThreshold bounds how many keys accumulate before expired windows are
// dropped.
const sweepThreshold = 1024

func NewLimiter(max int, window time.Duration) *Limiter {
	return &Limiter{
		max:     max,
		window:  window,
		now:     time.Now,
		windows: make(map[string]*fixedWindow),
	}
}

// Allow records one request from key. When the request is refused, retry is
// the time left until the window resets.
func (l *Limiter) Allow(key string) (ok bool, retry time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w := l.windows[key]
	if w == nil || now.After(w.resetAt) {
		if len(l.windows) >= sweepThreshold {
			l.sweep(now)
		}
		l.windows[key] = &fixedWindow{count: 1, resetAt: now.Add(l.window)}
		return true, 0
	}
	if w.count >= l.max {
		return false, w.resetAt.Sub(now)
	}
	w.count++
	return true, 0
}

func (l *Limiter) sweep(now time.Time) {
	for k, w := range l.windows {
		if now.After(w.resetAt) {
			delete(l.windows, k)
		}
	}
}

// ClientKey identifies the caller for rate limiting: the first
// X-Forwarded-For hop, then X-Real-IP, then "unknown".
func ClientKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	return "unknown"
}
