package submitgate

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestAcquireRelease(t *testing.T) {
	g := New(time.Minute, &fakeClock{now: time.Now()})

	if !g.Acquire("k") {
		t.Fatal("first acquire failed")
	}
	if g.Acquire("k") {
		t.Fatal("duplicate acquire succeeded")
	}
	if !g.Acquire("other") {
		t.Fatal("unrelated key blocked")
	}

	g.Release("k")
	if !g.Acquire("k") {
		t.Fatal("acquire after release failed")
	}
}

func TestAcquireExpiry(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	g := New(time.Minute, clock)

	if !g.Acquire("k") {
		t.Fatal("first acquire failed")
	}
	clock.Advance(30 * time.Second)
	if g.Acquire("k") {
		t.Fatal("acquire succeeded before ttl")
	}
	clock.Advance(31 * time.Second)
	if !g.Acquire("k") {
		t.Fatal("leaked entry not expired after ttl")
	}
}

func TestMiddlewareRejectsDuplicate(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	var enteredOnce sync.Once

	handler := Middleware(New(time.Minute, nil))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		enteredOnce.Do(func() { close(entered) })
		<-release
		w.WriteHeader(http.StatusCreated)
	}))

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
	req.RemoteAddr = "10.0.0.1:1234"

	done := make(chan struct{})
	go func() {
		handler.ServeHTTP(first, req)
		close(done)
	}()
	<-entered

	// Same client, same route, while the first is still in flight.
	second := httptest.NewRecorder()
	dup := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
	dup.RemoteAddr = "10.0.0.1:9999"
	handler.ServeHTTP(second, dup)

	if second.Code != http.StatusTooManyRequests {
		t.Errorf("duplicate status = %d, want 429", second.Code)
	}
	if second.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After header")
	}

	close(release)
	<-done
	if first.Code != http.StatusCreated {
		t.Errorf("first status = %d, want 201", first.Code)
	}

	// Released now, so the same client may submit again.
	third := httptest.NewRecorder()
	again := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
	again.RemoteAddr = "10.0.0.1:4321"
	handler.ServeHTTP(third, again)
	if third.Code == http.StatusTooManyRequests {
		t.Error("gate not released after completion")
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	if got := ClientIP(req); got != "10.0.0.1" {
		t.Errorf("ClientIP = %q, want 10.0.0.1", got)
	}

	req.Header.Set("X-Forwarded-For", "1.2.3.4, 5.6.7.8")
	if got := ClientIP(req); got != "5.6.7.8" {
		t.Errorf("ClientIP = %q, want rightmost forwarded entry", got)
	}
}
