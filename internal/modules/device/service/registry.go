package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/adromero/frame-sync/internal/model"
	moduledto "github.com/adromero/frame-sync/internal/modules/device/dto"
	"github.com/adromero/frame-sync/internal/modules/device/repo"
	platformservice "github.com/adromero/frame-sync/internal/platform/service"
	"github.com/adromero/frame-sync/internal/utils"

	"gorm.io/datatypes"
)

const maxDeviceNameLength = 100

// Register 注册或更新设备，重复注册不会报错
func (s *Service) Register(ctx context.Context, req moduledto.RegisterDeviceRequest) (*model.Device, bool, error) {
	deviceID := strings.TrimSpace(req.DeviceID)
	if deviceID == "" {
		return nil, false, platformservice.NewValidationError("device_id 不能为空")
	}
	if !utils.IsSafeIdentifier(deviceID) {
		return nil, false, platformservice.NewValidationError("device_id 只能包含字母、数字、点、下划线和连字符")
	}
	name, err := normalizeName(req.Name)
	if err != nil {
		return nil, false, err
	}
	deviceType, err := normalizeType(req.DeviceType)
	if err != nil {
		return nil, false, err
	}

	now := time.Now()
	device := &model.Device{
		ID:           deviceID,
		Name:         name,
		DeviceType:   deviceType,
		RegisteredAt: now,
		LastSeenAt:   now,
	}
	if req.Metadata != nil {
		meta := *req.Metadata
		meta.Version = model.DeviceMetadataVersion
		device.Metadata = datatypes.NewJSONType(meta)
	}

	isNew, err := s.deviceStore.Register(ctx, device)
	if err != nil {
		return nil, false, platformservice.TranslateStorageError(err, "设备不存在")
	}
	return device, isNew, nil
}

// Update 修改设备名称或类型，设备 ID 不可变
func (s *Service) Update(ctx context.Context, deviceID string, req moduledto.UpdateDeviceRequest) (*model.Device, error) {
	updates := map[string]any{}
	if req.Name != nil {
		name, err := normalizeName(*req.Name)
		if err != nil {
			return nil, err
		}
		updates["name"] = name
	}
	if req.DeviceType != nil {
		deviceType, err := normalizeType(*req.DeviceType)
		if err != nil {
			return nil, err
		}
		updates["device_type"] = deviceType
	}
	if len(updates) == 0 {
		return nil, platformservice.NewValidationError("没有需要更新的字段")
	}

	device, err := s.deviceStore.Update(ctx, deviceID, updates)
	if err != nil {
		return nil, platformservice.TranslateStorageError(err, "设备不存在")
	}
	return device, nil
}

// Heartbeat 刷新设备最后在线时间
func (s *Service) Heartbeat(ctx context.Context, deviceID string) (*model.Device, error) {
	device, err := s.deviceStore.Touch(ctx, deviceID, time.Now())
	if err != nil {
		return nil, platformservice.TranslateStorageError(err, "设备不存在")
	}
	return device, nil
}

// Delete 删除设备及其授权，图片保留
func (s *Service) Delete(ctx context.Context, deviceID string) error {
	if err := s.deviceStore.Delete(ctx, deviceID); err != nil {
		return platformservice.TranslateStorageError(err, "设备不存在")
	}

	s.hooksMu.RLock()
	hooks := append([]func(string){}, s.deleteHooks...)
	s.hooksMu.RUnlock()
	for _, hook := range hooks {
		hook(deviceID)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, deviceID string) (*model.Device, error) {
	device, err := s.deviceStore.FindByID(ctx, deviceID)
	if err != nil {
		return nil, platformservice.TranslateStorageError(err, "设备不存在")
	}
	return device, nil
}

func (s *Service) List(ctx context.Context) ([]repo.DeviceWithCount, error) {
	devices, err := s.deviceStore.List(ctx)
	if err != nil {
		return nil, platformservice.TranslateStorageError(err, "设备不存在")
	}
	return devices, nil
}

func (s *Service) CountAll(ctx context.Context) (int64, error) {
	return s.deviceStore.CountAll(ctx)
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", platformservice.NewValidationError("设备名称不能为空")
	}
	if utf8.RuneCountInString(name) > maxDeviceNameLength {
		return "", platformservice.NewValidationError("设备名称不能超过 100 个字符")
	}
	return name, nil
}

func normalizeType(deviceType string) (string, error) {
	deviceType = strings.ToLower(strings.TrimSpace(deviceType))
	if deviceType == "" {
		return model.DeviceTypeDisplay, nil
	}
	if !model.IsValidDeviceType(deviceType) {
		return "", platformservice.NewValidationError("不支持的设备类型: " + deviceType)
	}
	return deviceType, nil
}
