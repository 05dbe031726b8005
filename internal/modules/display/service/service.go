package service

import (
	"context"
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"github.com/adromero/frame-sync/internal/model"
	platformservice "github.com/adromero/frame-sync/internal/platform/service"
)

// DeviceTracker 刷新设备在线时间，设备未注册时返回 not_found
type DeviceTracker interface {
	Heartbeat(ctx context.Context, deviceID string) (*model.Device, error)
}

// ImageLister 读取设备可见的图片
type ImageLister interface {
	ImagesFor(ctx context.Context, deviceID string) ([]model.Image, error)
}

// deviceState 单台设备最近一次返回的图片
type deviceState struct {
	mu   sync.Mutex
	last string
}

type Service struct {
	*platformservice.AppService
	devices DeviceTracker
	images  ImageLister

	states  sync.Map // deviceID -> *deviceState
	current atomic.Pointer[string]
	pick    func(n int) int
}

func New(appService *platformservice.AppService, devices DeviceTracker, images ImageLister) *Service {
	return &Service{
		AppService: appService,
		devices:    devices,
		images:     images,
		pick:       rand.IntN,
	}
}

// CurrentImage 返回本进程最近一次分发给任意设备的图片，尚未分发时返回 nil
func (s *Service) CurrentImage() *string {
	if filename := s.current.Load(); filename != nil {
		v := *filename
		return &v
	}
	return nil
}

// Forget 清除设备的轮播状态
func (s *Service) Forget(deviceID string) {
	s.states.Delete(deviceID)
}

func (s *Service) state(deviceID string) *deviceState {
	if st, ok := s.states.Load(deviceID); ok {
		return st.(*deviceState)
	}
	st, _ := s.states.LoadOrStore(deviceID, &deviceState{})
	return st.(*deviceState)
}
