package middleware

import (
	"net/http"
	"testing"

	"github.com/adromero/frame-sync/internal/config"

	"github.com/gin-gonic/gin"
)

// 测试内容：验证静态资源成功响应带有配置的 Cache-Control。
func TestStaticCacheMiddleware_SetsCacheControl(t *testing.T) {
	appService := setupTestService(t, func(cfg *config.Config) {
		cfg.Upload.CacheControl = "public, max-age=60"
	})

	r := gin.New()
	r.Use(StaticCacheMiddleware(appService))
	r.GET("/x", func(c *gin.Context) { c.Data(http.StatusOK, "image/png", []byte("png")) })
	r.GET("/same", func(c *gin.Context) { c.Status(http.StatusNotModified) })

	w := doRequest(r, http.MethodGet, "/x", "1.2.3.4:1")
	if got := w.Header().Get("Cache-Control"); got != "public, max-age=60" {
		t.Fatalf("期望 Cache-Control 为 public, max-age=60，实际为 %q", got)
	}

	w = doRequest(r, http.MethodGet, "/same", "1.2.3.4:1")
	if w.Code != http.StatusNotModified || w.Header().Get("Cache-Control") != "public, max-age=60" {
		t.Fatalf("期望 304 带缓存头，实际为 %d %q", w.Code, w.Header().Get("Cache-Control"))
	}
}

// 测试内容：验证 4xx 错误响应不带 Cache-Control，避免被公共缓存。
func TestStaticCacheMiddleware_SkipsErrorResponses(t *testing.T) {
	appService := setupTestService(t, func(cfg *config.Config) {
		cfg.Upload.CacheControl = "public, max-age=60"
	})

	r := gin.New()
	r.Use(StaticCacheMiddleware(appService))
	r.GET("/missing", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "资源不存在", "code": "not_found"})
	})
	r.GET("/bad", func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "非法的文件名", "code": "validation"})
	})

	for _, path := range []string{"/missing", "/bad"} {
		w := doRequest(r, http.MethodGet, path, "1.2.3.4:1")
		if got := w.Header().Get("Cache-Control"); got != "" {
			t.Fatalf("%s 期望无 Cache-Control，实际为 %q", path, got)
		}
	}
}
