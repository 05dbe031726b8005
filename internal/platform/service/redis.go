package service

import (
	"context"
	"fmt"
	"time"

	"github.com/adromero/frame-sync/internal/config"
	"github.com/adromero/frame-sync/internal/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisClient 获取 Redis 客户端；当未启用或不可用时返回 nil。
func (s *AppService) RedisClient() *redis.Client {
	s.redisOnce.Do(s.initRedisClient)
	return s.redisClient
}

// RedisKey 基于配置前缀拼接 Redis 键名。
func (s *AppService) RedisKey(parts ...string) string {
	prefix := config.Get().Redis.Prefix
	if prefix == "" {
		prefix = "framesync"
	}
	key := prefix
	for _, p := range parts {
		key += ":" + p
	}
	return key
}

func (s *AppService) initRedisClient() {
	cfg := config.Get().Redis
	if !cfg.Enabled {
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		logger.L.Warn("⚠️ Redis 不可用，降级为内存模式", zap.Error(err))
		return
	}

	s.redisClient = client
	logger.L.Info("✅ Redis 已连接", zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
}

// Close 关闭 Redis 客户端连接。
func (s *AppService) Close() error {
	if s.redisClient == nil {
		return nil
	}
	if err := s.redisClient.Close(); err != nil {
		return fmt.Errorf("close redis failed: %w", err)
	}
	return nil
}
