package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/adromero/frame-sync/internal/config"
	"github.com/adromero/frame-sync/internal/platform/service"
	"github.com/adromero/frame-sync/internal/testutils"

	"github.com/gin-gonic/gin"
)

// fakeClock 可手动推进的时钟
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func setupTestService(t *testing.T, mutate func(cfg *config.Config)) *service.AppService {
	t.Helper()
	gin.SetMode(gin.TestMode)
	testutils.SetupConfig(t, func(cfg *config.Config) {
		cfg.Redis.Enabled = false
		if mutate != nil {
			mutate(cfg)
		}
	})
	return service.NewAppService()
}

func doRequest(r http.Handler, method, path, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
