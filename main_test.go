package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adromero/frame-sync/internal/config"
	"github.com/adromero/frame-sync/internal/db"
	"github.com/adromero/frame-sync/internal/di"
	"github.com/adromero/frame-sync/internal/storage"
	"github.com/adromero/frame-sync/internal/testutils"

	"github.com/gin-gonic/gin"
)

func setupTestApp(t *testing.T) (*di.Application, config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	uploadDir := t.TempDir()
	cfg := testutils.SetupConfig(t, func(cfg *config.Config) {
		cfg.Upload.Path = uploadDir
		cfg.Redis.Enabled = false
		cfg.RateLimit.Enabled = false
	})
	gdb := testutils.SetupDB(t)

	assets, err := storage.NewLocalStore(uploadDir)
	if err != nil {
		t.Fatalf("初始化存储失败: %v", err)
	}
	app, err := di.InitializeApplication(gdb, assets)
	if err != nil {
		t.Fatalf("装配应用失败: %v", err)
	}
	return app, cfg
}

// 测试内容：验证 splitTrustedProxyList 能正确拆分代理列表。
func TestSplitTrustedProxyList(t *testing.T) {
	got := splitTrustedProxyList([]string{" 1.1.1.1,2.2.2.2; 3.3.3.3 \n4.4.4.4\t", "10.0.0.0/8"})
	if len(got) != 5 {
		t.Fatalf("期望 5 项，实际为 %v", got)
	}
	if got[4] != "10.0.0.0/8" {
		t.Fatalf("期望保留 CIDR，实际为 %v", got)
	}
	if len(splitTrustedProxyList(nil)) != 0 {
		t.Fatalf("期望空列表")
	}
}

// 测试内容：验证引擎装配完成后 API 可用，未知路径返回 JSON 404。
func TestNewEngine_ServesAPIAndNoRoute(t *testing.T) {
	app, cfg := setupTestApp(t)
	r, err := newEngine(app, cfg)
	if err != nil {
		t.Fatalf("创建引擎失败: %v", err)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	if w.Code != http.StatusNotFound || !strings.Contains(w.Body.String(), "not_found") {
		t.Fatalf("期望 JSON 404，实际为 %d %s", w.Code, w.Body.String())
	}
}

// 测试内容：验证非法的可信代理配置会被拒绝。
func TestNewEngine_RejectsInvalidTrustedProxy(t *testing.T) {
	app, cfg := setupTestApp(t)
	cfg.Server.TrustedProxies = []string{"not-an-ip"}
	if _, err := newEngine(app, cfg); err == nil {
		t.Fatalf("期望可信代理配置错误")
	}
}

// 测试内容：验证 writeRoutes 输出有效的路由 JSON。
func TestWriteRoutes_WritesJSON(t *testing.T) {
	app, cfg := setupTestApp(t)
	r, err := newEngine(app, cfg)
	if err != nil {
		t.Fatalf("创建引擎失败: %v", err)
	}

	var buf bytes.Buffer
	if err := writeRoutes(&buf, r); err != nil {
		t.Fatalf("导出失败: %v", err)
	}
	var routes []routeInfo
	if err := json.Unmarshal(buf.Bytes(), &routes); err != nil {
		t.Fatalf("JSON 无效: %v", err)
	}

	found := false
	for _, route := range routes {
		if route.Method == http.MethodGet && route.Path == "/api/devices/:id/next" {
			found = true
		}
	}
	if !found {
		t.Fatalf("期望包含设备轮询路由，实际为 %s", buf.String())
	}
}

// 测试内容：验证 routes 子命令按配置初始化数据库并写出路由文件。
func TestCLI_RoutesCommandWritesFile(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("FRAMESYNC_DATABASE_TYPE", "sqlite")
	t.Setenv("FRAMESYNC_DATABASE_FILENAME", filepath.Join(tmp, "db", "cli.db"))
	t.Setenv("FRAMESYNC_UPLOAD_PATH", filepath.Join(tmp, "uploads"))
	t.Setenv("FRAMESYNC_REDIS_ENABLED", "false")

	prevCfg := config.Get()
	prevDB := db.DB
	t.Cleanup(func() {
		if db.DB != nil && db.DB != prevDB {
			if sqlDB, err := db.DB.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		db.DB = prevDB
		config.Store(prevCfg)
	})

	output := filepath.Join(tmp, "routes.json")
	err := newCLIApp().Run([]string{"framesync", "routes", "--config", filepath.Join(tmp, "cfg"), "--output", output})
	if err != nil {
		t.Fatalf("routes 命令失败: %v", err)
	}

	b, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("期望生成路由文件: %v", err)
	}
	var routes []routeInfo
	if err := json.Unmarshal(b, &routes); err != nil || len(routes) == 0 {
		t.Fatalf("路由文件无效: %v", err)
	}
}

// 测试内容：验证启动欢迎语包含应用名与端口。
func TestPrintWelcomeMessage(t *testing.T) {
	var buf bytes.Buffer
	printWelcomeMessage(&buf, config.Config{Server: config.ServerConfig{Port: "8080"}})
	out := buf.String()
	if !strings.Contains(out, "FrameSync") || !strings.Contains(out, "8080") || !strings.Contains(out, "local") {
		t.Fatalf("非预期欢迎语: %s", out)
	}
}
