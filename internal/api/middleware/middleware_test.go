package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeLimiter struct {
	remaining int
	err       error
	keys      []string
}

func (f *fakeLimiter) Allow(_ context.Context, key string, _ int, _ time.Duration) (bool, error) {
	f.keys = append(f.keys, key)
	if f.err != nil {
		return false, f.err
	}
	if f.remaining <= 0 {
		return false, nil
	}
	f.remaining--
	return true, nil
}

func limitedRouter(limiter RateLimiter, limit int) *gin.Engine {
	r := gin.New()
	r.GET("/export", RateLimit(limiter, limit, time.Minute, zap.NewNop()), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func get(r *gin.Engine, target string, headers map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit_BlocksAfterLimit(t *testing.T) {
	limiter := &fakeLimiter{remaining: 2}
	r := limitedRouter(limiter, 2)

	for i := 0; i < 2; i++ {
		if w := get(r, "/export", nil); w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
	}
	if w := get(r, "/export", nil); w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", w.Code)
	}
	if !strings.HasPrefix(limiter.keys[0], "/export:") {
		t.Errorf("限流键应包含路由: %q", limiter.keys[0])
	}
}

func TestRateLimit_PassThrough(t *testing.T) {
	cases := []struct {
		name    string
		limiter RateLimiter
		limit   int
	}{
		{"nil limiter", nil, 1},
		{"disabled", &fakeLimiter{}, 0},
		{"limiter error", &fakeLimiter{err: errors.New("redis down")}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if w := get(limitedRouter(tc.limiter, tc.limit), "/export", nil); w.Code != http.StatusOK {
				t.Errorf("expected 200, got %d", w.Code)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	w := get(r, "/", map[string]string{"X-Request-ID": "abc"})
	if w.Header().Get("X-Request-ID") != "abc" || w.Body.String() != "abc" {
		t.Errorf("应沿用请求头中的 ID: %q", w.Header().Get("X-Request-ID"))
	}

	w = get(r, "/", map[string]string{"X-Request-ID": strings.Repeat("x", 100)})
	if got := w.Header().Get("X-Request-ID"); len(got) != 36 {
		t.Errorf("超长 ID 应被替换为 UUID: %q", got)
	}
}

func TestCORS_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173/"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Error("允许的来源应回写 Allow-Origin")
	}

	w = get(r, "/", map[string]string{"Origin": "http://evil.example"})
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("未允许的来源不应回写 Allow-Origin")
	}
}
