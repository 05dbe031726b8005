package httpx

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ImageETag 按图片 ID 与版本生成强校验 ETag，variant 区分同一图片的不同表示
func ImageETag(imageID uint, revision int, variant string) string {
	if variant == "" {
		return fmt.Sprintf(`"%d-%d"`, imageID, revision)
	}
	return fmt.Sprintf(`"%d-%d-%s"`, imageID, revision, variant)
}

// NotModified 写入 ETag，请求的 If-None-Match 命中时输出 304 并返回 true
func NotModified(c *gin.Context, etag string) bool {
	c.Header("ETag", etag)
	if !etagMatches(c.GetHeader("If-None-Match"), etag) {
		return false
	}
	c.Status(http.StatusNotModified)
	return true
}

func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
