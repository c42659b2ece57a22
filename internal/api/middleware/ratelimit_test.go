package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func TestRateLimiterFailsOpenWhenRedisDown(t *testing.T) {
	// Nothing listens here; every pipeline Exec fails.
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { client.Close() })

	var buf bytes.Buffer
	rl := NewRateLimiter(client, zerolog.New(&buf))

	called := false
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodPost, "/chat", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if !called {
		t.Fatal("request should pass when Redis is unreachable")
	}
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(buf.String(), "rate limit check failed") {
		t.Fatalf("outage should be logged, got: %s", buf.String())
	}
}

func TestRateLimiterIgnoresUnlimitedEndpoints(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { client.Close() })

	var buf bytes.Buffer
	rl := NewRateLimiter(client, zerolog.New(&buf))

	called := false
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)

	if !called {
		t.Fatal("unlimited endpoint should pass through")
	}
	if buf.Len() != 0 {
		t.Fatalf("no Redis call expected for unlimited endpoint, logged: %s", buf.String())
	}
}
