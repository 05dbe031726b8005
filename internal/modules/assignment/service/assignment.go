package service

import (
	"context"

	"github.com/adromero/frame-sync/internal/model"
	platformservice "github.com/adromero/frame-sync/internal/platform/service"
	"github.com/adromero/frame-sync/internal/utils"
)

const notFoundMessage = "图片或设备不存在"

// Assign 授权单台设备，已授权时不做任何修改
func (s *Service) Assign(ctx context.Context, filename string, deviceID string) (bool, error) {
	if err := validatePair(filename, deviceID); err != nil {
		return false, err
	}
	created, err := s.assignmentStore.Assign(ctx, filename, deviceID)
	if err != nil {
		return false, TranslateError(err, notFoundMessage)
	}
	return created, nil
}

// Unassign 取消单台设备的授权，未授权时不做任何修改
func (s *Service) Unassign(ctx context.Context, filename string, deviceID string) (bool, error) {
	if err := validatePair(filename, deviceID); err != nil {
		return false, err
	}
	removed, err := s.assignmentStore.Unassign(ctx, filename, deviceID)
	if err != nil {
		return false, TranslateError(err, notFoundMessage)
	}
	return removed, nil
}

// SetDevices 将授权集合整体替换为 deviceIDs（去重），全部成功或全部不生效
func (s *Service) SetDevices(ctx context.Context, filename string, deviceIDs []string) ([]string, error) {
	if !utils.IsSafeIdentifier(filename) {
		return nil, platformservice.NewValidationError("非法的文件名")
	}
	for _, id := range deviceIDs {
		if !utils.IsSafeIdentifier(id) {
			return nil, platformservice.NewValidationError("非法的设备 ID: " + id)
		}
	}

	applied, err := s.assignmentStore.SetDevices(ctx, filename, deviceIDs)
	if err != nil {
		return nil, TranslateError(err, "图片不存在")
	}
	return applied, nil
}

func (s *Service) DevicesFor(ctx context.Context, filename string) ([]model.Device, error) {
	devices, err := s.assignmentStore.DevicesFor(ctx, filename)
	if err != nil {
		return nil, TranslateError(err, "图片不存在")
	}
	return devices, nil
}

func (s *Service) ImagesFor(ctx context.Context, deviceID string) ([]model.Image, error) {
	images, err := s.assignmentStore.ImagesFor(ctx, deviceID)
	if err != nil {
		return nil, TranslateError(err, "设备不存在")
	}
	return images, nil
}

func (s *Service) DeviceIDsForImages(ctx context.Context, imageIDs []uint) (map[uint][]string, error) {
	ids, err := s.assignmentStore.DeviceIDsForImages(ctx, imageIDs)
	if err != nil {
		return nil, TranslateError(err, "图片不存在")
	}
	return ids, nil
}

func (s *Service) CountAll(ctx context.Context) (int64, error) {
	return s.assignmentStore.CountAll(ctx)
}

func validatePair(filename string, deviceID string) error {
	if !utils.IsSafeIdentifier(filename) {
		return platformservice.NewValidationError("非法的文件名")
	}
	if !utils.IsSafeIdentifier(deviceID) {
		return platformservice.NewValidationError("非法的设备 ID")
	}
	return nil
}
