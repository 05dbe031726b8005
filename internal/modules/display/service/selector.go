package service

import (
	"context"

	"github.com/adromero/frame-sync/internal/model"
	moduledto "github.com/adromero/frame-sync/internal/modules/display/dto"
	platformservice "github.com/adromero/frame-sync/internal/platform/service"
	"github.com/adromero/frame-sync/internal/utils"
)

// Next 为设备挑选下一张图片，没有可见图片时返回 nil
//
// 候选多于一张时排除上一次返回的图片，其余等概率随机。
func (s *Service) Next(ctx context.Context, deviceID string) (*model.Image, error) {
	if !utils.IsSafeIdentifier(deviceID) {
		return nil, platformservice.NewValidationError("非法的设备 ID")
	}
	if _, err := s.devices.Heartbeat(ctx, deviceID); err != nil {
		return nil, err
	}

	images, err := s.images.ImagesFor(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, nil
	}

	st := s.state(deviceID)
	st.mu.Lock()
	defer st.mu.Unlock()

	candidates := images
	if len(images) > 1 && st.last != "" {
		candidates = make([]model.Image, 0, len(images))
		for _, img := range images {
			if img.Filename != st.last {
				candidates = append(candidates, img)
			}
		}
	}

	chosen := candidates[s.pick(len(candidates))]
	st.last = chosen.Filename
	filename := chosen.Filename
	s.current.Store(&filename)
	return &chosen, nil
}

// DeviceImages 返回设备可见的全部图片
func (s *Service) DeviceImages(ctx context.Context, deviceID string) (*moduledto.DeviceImagesResponse, error) {
	if !utils.IsSafeIdentifier(deviceID) {
		return nil, platformservice.NewValidationError("非法的设备 ID")
	}
	device, err := s.devices.Heartbeat(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	images, err := s.images.ImagesFor(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	items := make([]moduledto.DisplayImage, 0, len(images))
	for _, img := range images {
		items = append(items, s.ToDisplayImage(img))
	}
	return &moduledto.DeviceImagesResponse{
		DeviceID:   device.ID,
		DeviceName: device.Name,
		Count:      len(items),
		Images:     items,
	}, nil
}

func (s *Service) ToDisplayImage(img model.Image) moduledto.DisplayImage {
	return moduledto.DisplayImage{
		Image:        img,
		UploaderName: img.User.Name,
		URL:          s.Config().Upload.URLPrefix + img.Filename,
		ThumbnailURL: "/api/thumbnails/" + img.Filename,
	}
}
