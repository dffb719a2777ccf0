package serverutils

import (
	"sync"
	"time"
)

type rateWindow struct {
	count     int
	resetTime time.Time
}

// RateLimiter is a fixed-window per-key limiter. Windows start on the first
// request after expiry, so a quiet key always gets a fresh allowance.
type RateLimiter struct {
	mu          sync.Mutex
	windows     map[string]*rateWindow
	maxRequests int
	window      time.Duration
}

func NewRateLimiter(maxRequests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		windows:     make(map[string]*rateWindow),
		maxRequests: maxRequests,
		window:      window,
	}
}

// Allow records one request for the key and reports whether it fits in the
// current window.
func (r *RateLimiter) Allow(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	w, ok := r.windows[key]
	if !ok || now.After(w.resetTime) {
		r.windows[key] = &rateWindow{count: 1, resetTime: now.Add(r.window)}
		return true
	}

	if w.count >= r.maxRequests {
		return false
	}

	w.count++
	return true
}
