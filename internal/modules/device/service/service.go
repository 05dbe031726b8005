package service

import (
	"sync"

	"github.com/adromero/frame-sync/internal/modules/device/repo"
	platformservice "github.com/adromero/frame-sync/internal/platform/service"
)

type Service struct {
	*platformservice.AppService
	deviceStore repo.DeviceStore

	hooksMu     sync.RWMutex
	deleteHooks []func(deviceID string)
}

func New(appService *platformservice.AppService, deviceStore repo.DeviceStore) *Service {
	return &Service{
		AppService:  appService,
		deviceStore: deviceStore,
	}
}

// OnDelete 注册设备删除后的回调
func (s *Service) OnDelete(fn func(deviceID string)) {
	s.hooksMu.Lock()
	defer s.hooksMu.Unlock()
	s.deleteHooks = append(s.deleteHooks, fn)
}
