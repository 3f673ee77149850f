package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/stockline/stockline/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func limitedRouter(t *testing.T, ratePerSec, burst int) *gin.Engine {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	r := gin.New()
	r.Use(middleware.NewRateLimiter(ctx, ratePerSec, burst).Handler())
	r.POST("/api/v1/chat", func(c *gin.Context) { c.Status(http.StatusOK) })

	return r
}

func hit(r *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", http.NoBody)
	req.RemoteAddr = remoteAddr
	r.ServeHTTP(w, req)

	return w
}

func TestRateLimiter_Burst(t *testing.T) {
	tests := []struct {
		name     string
		rate     int
		burst    int
		requests int
		want     []int
	}{
		{
			name:     "within burst",
			rate:     1,
			burst:    3,
			requests: 3,
			want:     []int{200, 200, 200},
		},
		{
			name:     "burst exhausted",
			rate:     1,
			burst:    2,
			requests: 3,
			want:     []int{200, 200, 429},
		},
		{
			name:     "fast refill",
			rate:     1_000_000,
			burst:    1,
			requests: 3,
			want:     []int{200, 200, 200},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := limitedRouter(t, tc.rate, tc.burst)

			for i := range tc.requests {
				if got := hit(r, "10.0.0.7:5000").Code; got != tc.want[i] {
					t.Fatalf("request %d: expected %d, got %d", i, tc.want[i], got)
				}
			}
		})
	}
}

func TestRateLimiter_PerClientBuckets(t *testing.T) {
	r := limitedRouter(t, 1, 1)

	if got := hit(r, "10.0.0.1:1000").Code; got != http.StatusOK {
		t.Fatalf("first client: expected 200, got %d", got)
	}

	if got := hit(r, "10.0.0.1:1001").Code; got != http.StatusTooManyRequests {
		t.Fatalf("first client, new port: expected 429, got %d", got)
	}

	if got := hit(r, "10.0.0.2:1000").Code; got != http.StatusOK {
		t.Fatalf("second client should have its own bucket, got %d", got)
	}
}

func TestRateLimiter_RejectionBody(t *testing.T) {
	r := limitedRouter(t, 1, 1)
	hit(r, "10.0.0.3:1000")

	w := hit(r, "10.0.0.3:1000")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}

	if body := w.Body.String(); !strings.Contains(body, `"rate_limited"`) {
		t.Errorf("expected rate_limited code in body, got %s", body)
	}
}
