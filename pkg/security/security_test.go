package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newTestRouter(middleware gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware)
	router.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func corsRequest(router *gin.Engine, origin string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", origin)
	router.ServeHTTP(w, req)
	return w
}

func TestCORSFollowsHandleUpdate(t *testing.T) {
	h := NewHandle([]string{"https://a.example"}, 100, time.Minute)
	router := newTestRouter(CORS(h))

	w := corsRequest(router, "https://a.example")
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://a.example" {
		t.Fatalf("whitelisted origin not echoed, got %q", got)
	}

	w = corsRequest(router, "https://b.example")
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unlisted origin must get no allow header, got %q", got)
	}

	// 热更新白名单后，同一个中间件实例放行新 Origin
	h.Update([]string{"https://b.example"}, 100, time.Minute)

	w = corsRequest(router, "https://b.example")
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://b.example" {
		t.Fatalf("origin added by update not echoed, got %q", got)
	}
	w = corsRequest(router, "https://a.example")
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("origin removed by update still allowed, got %q", got)
	}
}

func TestRateLimiterFollowsHandleUpdate(t *testing.T) {
	h := NewHandle(nil, 2, time.Hour)
	router := newTestRouter(RateLimiter(h))

	ping := func() int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(w, req)
		return w.Code
	}

	if code := ping(); code != http.StatusOK {
		t.Fatalf("first request: got %d", code)
	}
	if code := ping(); code != http.StatusOK {
		t.Fatalf("second request: got %d", code)
	}
	if code := ping(); code != http.StatusTooManyRequests {
		t.Fatalf("third request must hit the limit, got %d", code)
	}

	// 提高配额后同一 IP 立即恢复放行
	h.Update(nil, 100, time.Hour)
	if code := ping(); code != http.StatusOK {
		t.Fatalf("request after raising the limit: got %d", code)
	}
}

func TestHandleDefaults(t *testing.T) {
	h := NewHandle(nil, 0, 0)
	s := h.load()
	if s.burst != 1000 || s.window != time.Minute {
		t.Fatalf("invalid values must fall back to defaults, got burst %d window %v", s.burst, s.window)
	}
}
