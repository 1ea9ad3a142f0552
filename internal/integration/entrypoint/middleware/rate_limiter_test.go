package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func newLimiterForTest(t *testing.T, maxAttempts int) (*RateLimiter, *miniredis.Miniredis) {
	t.Helper()

	server, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(server.Close)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRateLimiterWithConfig(client, maxAttempts, time.Minute), server
}

func limitedRouter(limiter *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", limiter.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func hit(r *gin.Engine, ip string) int {
	req := httptest.NewRequest("POST", "/login", nil)
	req.RemoteAddr = ip + ":1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiter(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("E2E_MODE", "")

	t.Run("allows up to the limit then rejects", func(t *testing.T) {
		limiter, _ := newLimiterForTest(t, 3)
		r := limitedRouter(limiter)

		for i := 0; i < 3; i++ {
			if code := hit(r, "10.0.0.1"); code != http.StatusOK {
				t.Fatalf("request %d: expected 200, got %d", i+1, code)
			}
		}
		if code := hit(r, "10.0.0.1"); code != http.StatusTooManyRequests {
			t.Errorf("expected 429 past the limit, got %d", code)
		}
	})

	t.Run("limits are per client", func(t *testing.T) {
		limiter, _ := newLimiterForTest(t, 1)
		r := limitedRouter(limiter)

		if code := hit(r, "10.0.0.1"); code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}
		if code := hit(r, "10.0.0.2"); code != http.StatusOK {
			t.Errorf("expected a different client to pass, got %d", code)
		}
	})

	t.Run("window expiry lets the client back in", func(t *testing.T) {
		limiter, server := newLimiterForTest(t, 1)
		r := limitedRouter(limiter)

		hit(r, "10.0.0.1")
		if code := hit(r, "10.0.0.1"); code != http.StatusTooManyRequests {
			t.Fatalf("expected 429, got %d", code)
		}

		server.FastForward(2 * time.Minute)

		if code := hit(r, "10.0.0.1"); code != http.StatusOK {
			t.Errorf("expected 200 after the window expired, got %d", code)
		}
	})

	t.Run("fails open when redis is down", func(t *testing.T) {
		limiter, server := newLimiterForTest(t, 1)
		r := limitedRouter(limiter)
		server.Close()

		for i := 0; i < 3; i++ {
			if code := hit(r, "10.0.0.1"); code != http.StatusOK {
				t.Errorf("expected 200 with redis down, got %d", code)
			}
		}
	})

	t.Run("skipped in the test environment", func(t *testing.T) {
		t.Setenv("ENV", "test")
		limiter, _ := newLimiterForTest(t, 1)
		r := limitedRouter(limiter)

		for i := 0; i < 5; i++ {
			if code := hit(r, "10.0.0.1"); code != http.StatusOK {
				t.Errorf("expected the limiter to be bypassed, got %d", code)
			}
		}
	})

	t.Run("reset clears the counters", func(t *testing.T) {
		limiter, _ := newLimiterForTest(t, 1)
		r := limitedRouter(limiter)

		hit(r, "10.0.0.1")
		if code := hit(r, "10.0.0.1"); code != http.StatusTooManyRequests {
			t.Fatalf("expected 429, got %d", code)
		}

		if err := limiter.Reset(context.Background()); err != nil {
			t.Fatalf("failed to reset: %v", err)
		}

		if code := hit(r, "10.0.0.1"); code != http.StatusOK {
			t.Errorf("expected 200 after reset, got %d", code)
		}
	})
}
