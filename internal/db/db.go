package db

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adromero/frame-sync/internal/config"
	"github.com/adromero/frame-sync/internal/logger"
	"github.com/adromero/frame-sync/internal/model"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB 按配置打开数据库、配置连接池并同步表结构
func InitDB() error {
	cfg := config.Get().Database

	gdb, err := Open(cfg)
	if err != nil {
		return err
	}
	if err := Migrate(gdb); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}

	DB = gdb
	logger.L.Info("✅ 数据库连接成功，表结构已同步", zap.String("type", cfg.Type))
	return nil
}

// Open 按方言建立连接，sqlite 始终开启外键约束
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.Type {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.Name,
		)
		if cfg.SSL {
			dsn += "&tls=true"
		}
		dialector = mysql.Open(dsn)
	case "postgres":
		sslMode := "disable"
		if cfg.SSL {
			sslMode = "require"
		}
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			cfg.Host,
			cfg.User,
			cfg.Password,
			cfg.Name,
			cfg.Port,
			sslMode,
		)
		dialector = postgres.Open(dsn)
	case "sqlite", "":
		// 自动创建数据库目录
		dbDir := filepath.Dir(cfg.Filename)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, fmt.Errorf("无法创建数据库目录 '%s': %w", dbDir, err)
		}
		dialector = sqlite.Open(SQLiteDSN(cfg.Filename))
	default:
		return nil, fmt.Errorf("不支持的数据库类型: %s", cfg.Type)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("数据库连接失败: %w", err)
	}

	// 获取底层 sql.DB 以配置连接池
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("无法获取 sql.DB: %w", err)
	}

	maxOpen := cfg.MaxOpenConns
	if cfg.Type == "sqlite" || cfg.Type == "" {
		// 每个连接独占，写冲突交给 sqlite 文件锁与 busy 重试
		if maxOpen <= 0 {
			maxOpen = 4
		}
		sqlDB.SetMaxIdleConns(maxOpen)
	} else {
		if maxOpen <= 0 {
			maxOpen = 100
		}
		sqlDB.SetMaxIdleConns(10)
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return gdb, nil
}

// SQLiteDSN 为文件名附加外键、WAL 与 busy_timeout 参数
func SQLiteDSN(filename string) string {
	return filename + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(1000)"
}

// Migrate 同步全部表结构
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(model.All()...)
}
