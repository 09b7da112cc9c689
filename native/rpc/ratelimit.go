package rpc

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter throttles the public read surface per client IP using a
// token-bucket limiter per visitor. Each visitor's limiter is dropped five
// minutes after it was created, whether or not the visitor is still active.
type RateLimiter struct {
	ratePerSecond float64
	burst         int

	mu       sync.Mutex
	visitors map[string]*rate.Limiter
}

// NewRateLimiter builds a limiter allowing ratePerSecond sustained requests
// per client with burst headroom.
func NewRateLimiter(ratePerSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		ratePerSecond: ratePerSecond,
		burst:         burst,
		visitors:      make(map[string]*rate.Limiter),
	}
}

// Middleware rejects requests once the caller's bucket is exhausted.
func (r *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		limiter := r.limiterFor(clientIP(req))
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, req)
	})
}

func (r *RateLimiter) limiterFor(id string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()
	limiter, ok := r.visitors[id]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(r.ratePerSecond), r.burst)
		r.visitors[id] = limiter
		go r.forget(id)
	}
	return limiter
}

func (r *RateLimiter) forget(id string) {
	time.Sleep(5 * time.Minute)
	r.mu.Lock()
	delete(r.visitors, id)
	r.mu.Unlock()
}

func clientIP(req *http.Request) string {
	if ip := req.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return req.RemoteAddr
	}
	return host
}
