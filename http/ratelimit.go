package http

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultLimiterIdle is the minimum time a client's bucket is kept after
// its last request.
const DefaultLimiterIdle = 10 * time.Minute

// ClientLimiter rate limits requests per client address using token buckets.
// Buckets idle long enough to have refilled are dropped, so the number of
// tracked clients stays bounded by recent traffic.
type ClientLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*clientBucket
	rps       float64
	burst     int
	idle      time.Duration
	lastSweep time.Time

	// Now returns the current time. Overridable for tests.
	Now func() time.Time
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewClientLimiter creates a ClientLimiter allowing rps requests per second
// per client with bursts of up to burst requests.
func NewClientLimiter(rps float64, burst int) *ClientLimiter {
	burst = max(burst, 1)
	idle := DefaultLimiterIdle
	if rps > 0 {
		// A bucket idle this long is full again and equal to a new one.
		idle = max(idle, time.Duration(float64(burst)/rps*float64(time.Second)))
	}
	return &ClientLimiter{
		limiters: make(map[string]*clientBucket),
		rps:      rps,
		burst:    burst,
		idle:     idle,
		Now:      time.Now,
	}
}

// Allow reports whether the client may make a request now.
func (l *ClientLimiter) Allow(client string) bool {
	now := l.Now()

	l.mu.Lock()
	if now.Sub(l.lastSweep) >= l.idle {
		l.sweep(now)
	}
	b, ok := l.limiters[client]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(rate.Limit(l.rps), l.burst)}
		l.limiters[client] = b
	}
	b.lastSeen = now
	l.mu.Unlock()

	return b.limiter.AllowN(now, 1)
}

// Len returns the number of clients currently tracked.
func (l *ClientLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

// sweep drops buckets not used within the idle window. Callers hold mu.
func (l *ClientLimiter) sweep(now time.Time) {
	for client, b := range l.limiters {
		if now.Sub(b.lastSeen) >= l.idle {
			delete(l.limiters, client)
		}
	}
	l.lastSweep = now
}

// rateLimit rejects requests from clients that exceed the server's limiter.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.Limiter != nil && !s.Limiter.Allow(clientAddr(r)) {
			writeJSON(w, http.StatusTooManyRequests, ErrorResponse{Error: "Too many requests. Please slow down."})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientAddr returns the host part of the request's remote address.
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
