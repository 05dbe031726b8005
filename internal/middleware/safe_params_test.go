package middleware

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

// 测试内容：验证非法路径参数返回 400，合法参数正常放行。
func TestSafePathParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/images/:name/devices/:id", SafePathParams(), func(c *gin.Context) { c.Status(http.StatusOK) })

	cases := []struct {
		path string
		want int
	}{
		{"/images/photo1.jpg/devices/d1", http.StatusOK},
		{"/images/a..b.jpg/devices/d1", http.StatusBadRequest},
		{"/images/.hidden/devices/d1", http.StatusBadRequest},
		{"/images/photo1.jpg/devices/d%20x", http.StatusBadRequest},
	}
	for _, tc := range cases {
		if w := doRequest(r, http.MethodGet, tc.path, "1.2.3.4:1"); w.Code != tc.want {
			t.Fatalf("%s 期望 %d，实际为 %d", tc.path, tc.want, w.Code)
		}
	}
}
