package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"county_training_backend/internal/model"
	"county_training_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// runLevelMiddleware 用给定等级的登录用户走一遍等级校验，
// 返回最终状态码和业务 handler 是否被执行
func runLevelMiddleware(t *testing.T, level model.UserLevel, handler gin.HandlerFunc) (int, bool) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reached := false
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user", &util.Claims{UserID: 1, UserName: "tester", UserLevel: level})
	})
	router.GET("/guarded", handler, func(c *gin.Context) {
		reached = true
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	router.ServeHTTP(w, req)
	return w.Code, reached
}

func TestLevelMiddlewareAdminOnly(t *testing.T) {
	guard := LevelMiddleware()

	code, reached := runLevelMiddleware(t, model.LevelAdmin, guard)
	if code != http.StatusOK || !reached {
		t.Fatalf("admin must pass an admin-only guard: status %d reached %v", code, reached)
	}

	for _, level := range []model.UserLevel{model.LevelOther, model.LevelEmployee, model.LevelEmployer} {
		code, reached := runLevelMiddleware(t, level, guard)
		if code != http.StatusForbidden || reached {
			t.Fatalf("level %d must be forbidden: status %d reached %v", level, code, reached)
		}
	}
}

func TestLevelMiddlewareExplicitLevels(t *testing.T) {
	guard := LevelMiddleware(model.LevelEmployer)

	code, reached := runLevelMiddleware(t, model.LevelEmployer, guard)
	if code != http.StatusOK || !reached {
		t.Fatalf("listed level must pass: status %d reached %v", code, reached)
	}

	// 管理员对受限接口一律放行
	code, reached = runLevelMiddleware(t, model.LevelAdmin, guard)
	if code != http.StatusOK || !reached {
		t.Fatalf("admin must bypass the level list: status %d reached %v", code, reached)
	}

	code, reached = runLevelMiddleware(t, model.LevelEmployee, guard)
	if code != http.StatusForbidden || reached {
		t.Fatalf("unlisted level must be forbidden: status %d reached %v", code, reached)
	}
}

func TestLevelMiddlewareWithoutLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/guarded", LevelMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("missing claims must yield 401, got %d", w.Code)
	}
}
