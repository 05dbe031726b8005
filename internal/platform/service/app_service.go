package service

import (
	"sync"

	"github.com/adromero/frame-sync/internal/config"

	"github.com/redis/go-redis/v9"
)

// AppService 为各模块提供配置快照与可选的 Redis 客户端
type AppService struct {
	redisOnce   sync.Once
	redisClient *redis.Client
}

func NewAppService() *AppService {
	return &AppService{}
}

// Config 返回当前配置快照，热更新后立即生效
func (s *AppService) Config() config.Config {
	return config.Get()
}
