// Package submitgate prevents duplicate in-flight submissions. It is the
// server-side counterpart of the disabled submit button: while a mutation
// from a client is outstanding, a second identical one is rejected with 429.
package submitgate

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Clock interface for testing time-dependent behavior.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Gate tracks in-flight mutations per key. Entries expire after ttl as a
// backstop against leaked acquisitions.
type Gate struct {
	mu       sync.Mutex
	clock    Clock
	ttl      time.Duration
	inflight map[string]time.Time
}

// New creates a gate. A ttl <= 0 defaults to 30 seconds; a nil clock uses
// real time.
func New(ttl time.Duration, clock Clock) *Gate {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if clock == nil {
		clock = realClock{}
	}
	return &Gate{
		clock:    clock,
		ttl:      ttl,
		inflight: make(map[string]time.Time),
	}
}

// Acquire marks key as in flight. It reports false when the key already has
// an unexpired in-flight submission.
func (g *Gate) Acquire(key string) bool {
	now := g.clock.Now()
	g.mu.Lock()
	defer g.mu.Unlock()
	if startedAt, ok := g.inflight[key]; ok && now.Sub(startedAt) < g.ttl {
		return false
	}
	g.inflight[key] = now
	return true
}

// Release clears the in-flight mark for key.
func (g *Gate) Release(key string) {
	g.mu.Lock()
	delete(g.inflight, key)
	g.mu.Unlock()
}

// Middleware gates a mutation handler on one in-flight submission per client
// and route.
func Middleware(g *Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := ClientIP(r) + " " + r.Method + " " + r.URL.Path
			if !g.Acquire(key) {
				log.Ctx(r.Context()).Warn().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Msg("Duplicate submission rejected")
				w.Header().Set("Retry-After", "1")
				http.Error(w, "Submission already in progress", http.StatusTooManyRequests)
				return
			}
			defer g.Release(key)
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP extracts the client address from a request, preferring the
// rightmost X-Forwarded-For entry when present.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if ip := strings.TrimSpace(parts[len(parts)-1]); ip != "" {
			return ip
		}
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
