package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// 测试内容：验证初始化配置会设置默认值并记录配置目录。
func TestInitConfig_SetsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FRAMESYNC_SERVER_MODE", "debug")

	InitConfigWithoutWatch(dir)

	cfg := Get()
	if cfg.Server.Port != "8080" {
		t.Fatalf("期望默认端口 8080，实际为 %q", cfg.Server.Port)
	}
	if cfg.Database.Type != "sqlite" {
		t.Fatalf("期望默认数据库 sqlite，实际为 %q", cfg.Database.Type)
	}
	if cfg.Upload.MaxSizeMB != 16 {
		t.Fatalf("期望默认上传上限 16MB，实际为 %d", cfg.Upload.MaxSizeMB)
	}
	if cfg.Thumbnail.Width != 200 || cfg.Thumbnail.Height != 200 || cfg.Thumbnail.Quality != 85 {
		t.Fatalf("非预期缩略图默认值: %+v", cfg.Thumbnail)
	}
	if cfg.RateLimit.Mutate.Limit != 10 || cfg.RateLimit.Mutate.Window != time.Minute {
		t.Fatalf("非预期限流默认值: %+v", cfg.RateLimit.Mutate)
	}
	if GetConfigDir() != dir {
		t.Fatalf("期望 config dir %q，实际为 %q", dir, GetConfigDir())
	}
}

// 测试内容：验证环境变量可以覆盖嵌套配置项。
func TestInitConfig_EnvOverridesNestedKeys(t *testing.T) {
	t.Setenv("FRAMESYNC_SERVER_PORT", "9090")
	t.Setenv("FRAMESYNC_RATE_LIMIT_READ_LIMIT", "3")
	t.Setenv("FRAMESYNC_RATE_LIMIT_READ_WINDOW", "2s")

	InitConfigWithoutWatch(t.TempDir())

	cfg := Get()
	if cfg.Server.Port != "9090" {
		t.Fatalf("期望端口 9090，实际为 %q", cfg.Server.Port)
	}
	if cfg.RateLimit.Read.Limit != 3 || cfg.RateLimit.Read.Window != 2*time.Second {
		t.Fatalf("期望 read 限流 3/2s，实际为 %+v", cfg.RateLimit.Read)
	}
}

// 测试内容：验证配置文件中的值会被读取，且 url_prefix 自动补齐斜杠。
func TestInitConfig_ReadsYAMLFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte("upload:\n  url_prefix: /media\nthumbnail:\n  width: 120\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0644); err != nil {
		t.Fatalf("写入配置文件失败: %v", err)
	}

	InitConfigWithoutWatch(dir)

	cfg := Get()
	if cfg.Upload.URLPrefix != "/media/" {
		t.Fatalf("期望 /media/，实际为 %q", cfg.Upload.URLPrefix)
	}
	if cfg.Thumbnail.Width != 120 {
		t.Fatalf("期望缩略图宽度 120，实际为 %d", cfg.Thumbnail.Width)
	}
}

// 测试内容：验证 Store 替换快照后 Get 返回新值且旧快照不受影响。
func TestStore_ReplacesSnapshot(t *testing.T) {
	InitConfigWithoutWatch(t.TempDir())
	before := Get()

	next := before
	next.Server.Port = "7000"
	Store(next)

	if Get().Server.Port != "7000" {
		t.Fatalf("期望端口 7000，实际为 %q", Get().Server.Port)
	}
	if before.Server.Port == "7000" {
		t.Fatalf("期望旧快照保持不变")
	}
}
