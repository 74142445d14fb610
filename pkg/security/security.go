package security

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// settings 一代安全参数，整体只读。换参数时整代替换，请求路径无锁。
type settings struct {
	gen     uint64
	origins map[string]bool
	limit   rate.Limit
	burst   int
	window  time.Duration
}

// Handle 持有 CORS 与限流的当前参数，支持配置热更新：
// Update 原子换代，已注册的中间件从下一个请求起使用新参数。
type Handle struct {
	current atomic.Value // *settings
	gen     uint64
}

func NewHandle(allowedOrigins []string, maxRequests int, window time.Duration) *Handle {
	h := &Handle{}
	h.Update(allowedOrigins, maxRequests, window)
	return h
}

// Update 替换白名单和限流参数。非法值回落到默认（1000 次/分钟）。
func (h *Handle) Update(allowedOrigins []string, maxRequests int, window time.Duration) {
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	if window <= 0 {
		window = time.Minute
	}

	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}

	h.current.Store(&settings{
		gen:     atomic.AddUint64(&h.gen, 1),
		origins: origins,
		limit:   rate.Every(window / time.Duration(maxRequests)),
		burst:   maxRequests,
		window:  window,
	})
}

func (h *Handle) load() *settings {
	return h.current.Load().(*settings)
}

// CORS 中间件 仅允许白名单中的Origin，支持Credentials。
// 白名单每个请求从 Handle 读取，热更新立即生效。
func CORS(h *Handle) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if origin != "" && h.load().origins[origin] {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// Secure 中间件
func Secure() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 防止MIME嗅探
		c.Header("X-Content-Type-Options", "nosniff")
		// 防止点击劫持
		c.Header("X-Frame-Options", "DENY")
		// XSS保护
		c.Header("X-XSS-Protection", "1; mode=block")
		// HSTS
		if c.Request.TLS != nil {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		}

		c.Next()
	}
}

// visitor 每个来源 IP 一个限流器。gen 记录建立时的参数代，
// 参数换代后下一个请求重建限流器。
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
	gen      uint64
}

// RateLimiter 按 IP 限流，限流参数跟随 Handle 热更新，过期条目定期清理
func RateLimiter(h *Handle) gin.HandlerFunc {
	store := make(map[string]*visitor)
	var mu sync.Mutex

	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			expiry := h.load().window * 3
			if expiry < time.Minute {
				expiry = time.Minute
			}
			mu.Lock()
			for ip, v := range store {
				if time.Since(v.lastSeen) > expiry {
					delete(store, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		s := h.load()
		key := c.ClientIP()

		mu.Lock()
		v, exists := store[key]
		if !exists || v.gen != s.gen {
			v = &visitor{
				limiter: rate.NewLimiter(s.limit, s.burst),
				gen:     s.gen,
			}
			store[key] = v
		}
		v.lastSeen = time.Now()
		mu.Unlock()

		if !v.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}

		c.Next()
	}
}
