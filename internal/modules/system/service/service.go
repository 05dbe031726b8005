package service

import (
	"context"

	"github.com/adromero/frame-sync/internal/modules/system/repo"
	platformservice "github.com/adromero/frame-sync/internal/platform/service"
)

// Counter 统计某张表的记录数
type Counter interface {
	CountAll(ctx context.Context) (int64, error)
}

type ImageService interface {
	Counter
	SumAllSize(ctx context.Context) (int64, error)
}

// Sources 统计数据来源
type Sources struct {
	Users       Counter
	Devices     Counter
	Images      ImageService
	Assignments Counter
	Thumbnails  Counter
}

type Service struct {
	*platformservice.AppService
	systemStore repo.SystemStore
	sources     Sources
}

func New(appService *platformservice.AppService, systemStore repo.SystemStore, sources Sources) *Service {
	return &Service{
		AppService:  appService,
		systemStore: systemStore,
		sources:     sources,
	}
}

// Ping 检查数据库是否可用
func (s *Service) Ping(ctx context.Context) error {
	if err := s.systemStore.Ping(ctx); err != nil {
		return &platformservice.ServiceError{Code: platformservice.ErrorCodeStorageUnavailable, Message: "数据库不可用", Err: err}
	}
	return nil
}
