package testutils

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/adromero/frame-sync/internal/config"
	"github.com/adromero/frame-sync/internal/db"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBSeq int64

// SetupDB 初始化一个独立的内存 SQLite 数据库，开启外键并完成迁移，
// 同时替换全局 db.DB，测试结束后恢复。
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	if config.Get().Server.Port == "" {
		config.InitConfigWithoutWatch(t.TempDir())
	}

	seq := atomic.AddInt64(&testDBSeq, 1)
	dsn := fmt.Sprintf("file:fs_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", seq)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	prevDB := db.DB
	t.Cleanup(func() {
		if db.DB == gdb {
			db.DB = prevDB
		}
		_ = sqlDB.Close()
	})

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	db.DB = gdb
	return gdb
}

// SetupConfig 以默认值初始化配置，并允许测试修改部分字段，测试结束后恢复原配置。
func SetupConfig(t *testing.T, mutate func(cfg *config.Config)) config.Config {
	t.Helper()

	prev := config.Get()
	t.Cleanup(func() { config.Store(prev) })

	config.InitConfigWithoutWatch(t.TempDir())
	cfg := config.Get()
	if mutate != nil {
		mutate(&cfg)
	}
	config.Store(cfg)
	return cfg
}
