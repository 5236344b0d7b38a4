package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/reviewui/config"
)

func newLimitedEngine(cfg config.RateLimitConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(cfg))
	r.POST("/ui/scrape", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func post(r http.Handler, remoteAddr, sid string) int {
	req := httptest.NewRequest(http.MethodPost, "/ui/scrape", nil)
	req.RemoteAddr = remoteAddr
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "reviewui_session", Value: sid})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimit_RotatingCookiesShareOneBucket(t *testing.T) {
	r := newLimitedEngine(config.RateLimitConfig{RequestsPerSecond: 0.001, Burst: 1})

	if code := post(r, "203.0.113.7:4000", "session-0"); code != http.StatusOK {
		t.Fatalf("first request status = %d", code)
	}
	for i := 1; i < 20; i++ {
		if code := post(r, "203.0.113.7:4000", fmt.Sprintf("session-%d", i)); code != http.StatusTooManyRequests {
			t.Fatalf("request %d with a fresh cookie: status = %d, want 429", i, code)
		}
	}
}

func TestRateLimit_SeparateIPsSeparateBuckets(t *testing.T) {
	r := newLimitedEngine(config.RateLimitConfig{RequestsPerSecond: 0.001, Burst: 1})

	if code := post(r, "203.0.113.7:4000", ""); code != http.StatusOK {
		t.Fatalf("first client status = %d", code)
	}
	if code := post(r, "198.51.100.2:4000", ""); code != http.StatusOK {
		t.Errorf("second client status = %d", code)
	}
	if code := post(r, "203.0.113.7:4001", ""); code != http.StatusTooManyRequests {
		t.Errorf("first client again: status = %d, want 429", code)
	}
}
