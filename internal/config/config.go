package config

import (
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/adromero/frame-sync/internal/logger"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// 用于管理应用配置

var (
	// 使用 atomic.Value 存储 *Config，实现无锁读取
	appConfig atomic.Value
	configMu  sync.Mutex // 仅用于写操作互斥
	configDir = "config"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Upload    UploadConfig    `mapstructure:"upload"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Thumbnail ThumbnailConfig `mapstructure:"thumbnail"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	TrustedProxies []string `mapstructure:"trusted_proxies"`
	MaxBodyMB      int      `mapstructure:"max_body_mb"`
}

type DatabaseConfig struct {
	Type             string `mapstructure:"type"`     // sqlite, mysql, postgres
	Filename         string `mapstructure:"filename"` // for sqlite
	Host             string `mapstructure:"host"`
	Port             string `mapstructure:"port"`
	User             string `mapstructure:"user"`
	Password         string `mapstructure:"password"`
	Name             string `mapstructure:"name"` // database name
	SSL              bool   `mapstructure:"ssl"`  // enable TLS/SSL
	MaxOpenConns     int    `mapstructure:"max_open_conns"`
	BusyRetries      int    `mapstructure:"busy_retries"`
	BusyBackoffMS    int    `mapstructure:"busy_backoff_ms"`
	TxTimeoutSeconds int    `mapstructure:"tx_timeout_seconds"`
}

type UploadConfig struct {
	Path              string `mapstructure:"path"`
	URLPrefix         string `mapstructure:"url_prefix"`
	MaxSizeMB         int    `mapstructure:"max_size_mb"`
	AllowedExtensions string `mapstructure:"allowed_extensions"`
	CacheControl      string `mapstructure:"cache_control"`
	MaxPixels         int64  `mapstructure:"max_pixels"`
}

type StorageConfig struct {
	Driver    string `mapstructure:"driver"` // local, minio
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

type ThumbnailConfig struct {
	Width           int `mapstructure:"width"`
	Height          int `mapstructure:"height"`
	Quality         int `mapstructure:"quality"`
	BackfillWorkers int `mapstructure:"backfill_workers"`
}

// LimitRule 表示窗口内允许的请求数，Limit <= 0 时视为不限制
type LimitRule struct {
	Limit  int           `mapstructure:"limit"`
	Window time.Duration `mapstructure:"window"`
}

type RateLimitConfig struct {
	Enabled bool      `mapstructure:"enabled"`
	Global  LimitRule `mapstructure:"global"`
	Read    LimitRule `mapstructure:"read"`
	Mutate  LimitRule `mapstructure:"mutate"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Get 获取当前配置的快照（高性能无锁）
func Get() Config {
	val := appConfig.Load()
	if val == nil {
		return Config{}
	}
	c, ok := val.(*Config)
	if !ok {
		return Config{}
	}
	return *c
}

// Store 原子替换当前配置快照
func Store(cfg Config) {
	configMu.Lock()
	defer configMu.Unlock()
	appConfig.Store(&cfg)
}

func GetConfigDir() string {
	return configDir
}

// InitConfig 加载配置并监听配置文件变更
func InitConfig(customConfigDir string) {
	v := initViper(customConfigDir)
	loadAndStore(v)
	if v.ConfigFileUsed() != "" {
		v.OnConfigChange(func(e fsnotify.Event) {
			logger.L.Info("检测到配置文件变更", zap.String("file", e.Name))
			loadAndStore(v)
		})
		v.WatchConfig()
	}
	logger.L.Info("✅ 配置加载成功", zap.String("dir", configDir))
}

// InitConfigWithoutWatch 加载配置但不监听变更，用于测试与一次性命令
func InitConfigWithoutWatch(customConfigDir string) {
	v := initViper(customConfigDir)
	loadAndStore(v)
}

func initViper(customConfigDir string) *viper.Viper {
	v := viper.New()

	customConfigDir = strings.TrimSpace(customConfigDir)
	if customConfigDir == "" {
		customConfigDir = "config"
	}
	configDir = customConfigDir

	// 设置配置文件路径
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	setDefaults(v)

	// 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			logger.L.Warn("⚠️  未找到配置文件，将仅使用环境变量或默认值")
		} else {
			logger.L.Fatal("❌ 读取配置文件失败", zap.Error(err))
		}
	}

	// 配置环境变量覆盖
	// 规则：所有环境变量必须以 FRAMESYNC_ 开头
	// 例如：yaml 中的 server.port 对应环境变量 FRAMESYNC_SERVER_PORT
	v.SetEnvPrefix("FRAMESYNC")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.trusted_proxies", []string{})
	v.SetDefault("server.max_body_mb", 2)

	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.filename", "data/framesync.db")
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", "3306")
	v.SetDefault("database.user", "root")
	v.SetDefault("database.password", "root")
	v.SetDefault("database.name", "framesync")
	v.SetDefault("database.ssl", false)
	v.SetDefault("database.max_open_conns", 4)
	v.SetDefault("database.busy_retries", 5)
	v.SetDefault("database.busy_backoff_ms", 20)
	v.SetDefault("database.tx_timeout_seconds", 5)

	v.SetDefault("upload.path", "uploads")
	v.SetDefault("upload.url_prefix", "/uploads/")
	v.SetDefault("upload.max_size_mb", 16)
	v.SetDefault("upload.allowed_extensions", ".png,.jpg,.jpeg,.gif,.bmp,.webp")
	v.SetDefault("upload.cache_control", "no-cache")
	v.SetDefault("upload.max_pixels", 64_000_000)

	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.endpoint", "127.0.0.1:9000")
	v.SetDefault("storage.access_key", "")
	v.SetDefault("storage.secret_key", "")
	v.SetDefault("storage.bucket", "framesync")
	v.SetDefault("storage.use_ssl", false)

	v.SetDefault("thumbnail.width", 200)
	v.SetDefault("thumbnail.height", 200)
	v.SetDefault("thumbnail.quality", 85)
	v.SetDefault("thumbnail.backfill_workers", 4)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.global.limit", 120)
	v.SetDefault("rate_limit.global.window", "60s")
	v.SetDefault("rate_limit.read.limit", 60)
	v.SetDefault("rate_limit.read.window", "60s")
	v.SetDefault("rate_limit.mutate.limit", 10)
	v.SetDefault("rate_limit.mutate.window", "60s")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "framesync")

	v.SetDefault("log.level", "info")
}

// loadAndStore 解析并原子更新配置
func loadAndStore(v *viper.Viper) {
	var tempConfig Config
	if err := v.Unmarshal(&tempConfig); err != nil {
		logger.L.Error("❌ 配置解析失败", zap.Error(err))
		return
	}

	if tempConfig.Upload.URLPrefix != "" && !strings.HasSuffix(tempConfig.Upload.URLPrefix, "/") {
		tempConfig.Upload.URLPrefix += "/"
	}
	if tempConfig.Server.Mode == "release" && tempConfig.Storage.Driver == "minio" && tempConfig.Storage.SecretKey == "" {
		logger.L.Warn("⚠️ 生产模式下 MinIO 未配置 secret_key")
	}

	Store(tempConfig)
	logger.SetLevel(tempConfig.Log.Level)
	logger.L.Debug("✅ 配置已更新")
}
