package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/adromero/frame-sync/internal/imageproc"
	"github.com/adromero/frame-sync/internal/logger"
	"github.com/adromero/frame-sync/internal/model"
	"github.com/adromero/frame-sync/internal/modules/image/repo"
	platformservice "github.com/adromero/frame-sync/internal/platform/service"
	"github.com/adromero/frame-sync/internal/storage"
	"github.com/adromero/frame-sync/internal/utils"

	"go.uber.org/zap"
)

// Delete 删除图片记录、授权与缩略图，提交后删除原图
func (s *Service) Delete(ctx context.Context, filename string) error {
	if !utils.IsSafeIdentifier(filename) {
		return platformservice.NewValidationError("非法的文件名")
	}

	image, err := s.imageStore.DeleteByFilename(ctx, filename)
	if err != nil {
		return platformservice.TranslateStorageError(err, "图片不存在")
	}

	if err := s.assets.Remove(ctx, image.Filename); err != nil && !errors.Is(err, storage.ErrNotExist) {
		logger.L.Warn("删除原图失败", zap.String("filename", image.Filename), zap.Error(err))
	}
	return nil
}

// Rotate 旋转原图并写回尺寸，随后使缩略图失效
func (s *Service) Rotate(ctx context.Context, filename string, degrees int, clockwise bool) (*model.Image, error) {
	if !utils.IsSafeIdentifier(filename) {
		return nil, platformservice.NewValidationError("非法的文件名")
	}
	if degrees != 90 && degrees != 180 && degrees != 270 {
		return nil, platformservice.NewValidationError("旋转角度只能为 90、180 或 270")
	}

	image, err := s.imageStore.FindByFilename(ctx, filename)
	if err != nil {
		return nil, platformservice.TranslateStorageError(err, "图片不存在")
	}

	data, err := storage.ReadAll(ctx, s.assets, image.Filename)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return nil, platformservice.NewNotFoundError("原图不存在")
		}
		return nil, &platformservice.ServiceError{Code: platformservice.ErrorCodeInternal, Message: "读取原图失败", Err: err}
	}

	if _, err := imageproc.Probe(data, s.Config().Upload.MaxPixels); err != nil {
		if errors.Is(err, imageproc.ErrTooLarge) {
			return nil, platformservice.NewValidationError("图片像素数超过上限")
		}
		return nil, platformservice.NewValidationError("无法解析图片内容")
	}

	rotated, width, height, err := imageproc.Rotate(data, filepath.Ext(image.Filename), degrees, clockwise)
	if err != nil {
		if errors.Is(err, imageproc.ErrUnsupportedFormat) {
			return nil, platformservice.NewValidationError("该图片格式不支持旋转")
		}
		return nil, &platformservice.ServiceError{Code: platformservice.ErrorCodeInternal, Message: "旋转图片失败", Err: err}
	}

	if err := s.assets.Save(ctx, image.Filename, bytes.NewReader(rotated), int64(len(rotated)), image.MimeType); err != nil {
		return nil, &platformservice.ServiceError{Code: platformservice.ErrorCodeInternal, Message: "保存旋转结果失败", Err: err}
	}

	err = s.imageStore.UpdateRotated(ctx, image.ID, repo.RotatedImage{
		Size:   int64(len(rotated)),
		Width:  width,
		Height: height,
	})
	if err != nil {
		return nil, platformservice.TranslateStorageError(err, "图片不存在")
	}
	if err := s.thumbnails.Invalidate(ctx, image.ID); err != nil {
		return nil, platformservice.TranslateStorageError(err, "图片不存在")
	}

	image.Size = int64(len(rotated))
	image.Width = width
	image.Height = height
	image.Orientation = nil
	return image, nil
}

// OpenOriginal 打开原图，调用方负责关闭
func (s *Service) OpenOriginal(ctx context.Context, filename string) (*model.Image, io.ReadCloser, error) {
	if !utils.IsSafeIdentifier(filename) {
		return nil, nil, platformservice.NewValidationError("非法的文件名")
	}

	image, err := s.imageStore.FindByFilename(ctx, filename)
	if err != nil {
		return nil, nil, platformservice.TranslateStorageError(err, "图片不存在")
	}
	rc, err := s.assets.Open(ctx, image.Filename)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return nil, nil, platformservice.NewNotFoundError("原图不存在")
		}
		return nil, nil, &platformservice.ServiceError{Code: platformservice.ErrorCodeInternal, Message: "读取原图失败", Err: err}
	}
	return image, rc, nil
}

// ParseAllowedDevices 解析表单中的授权设备列表，支持 JSON 数组与逗号分隔
func ParseAllowedDevices(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if strings.HasPrefix(raw, "[") {
		var ids []string
		if err := json.Unmarshal([]byte(raw), &ids); err != nil {
			return nil, platformservice.NewValidationError("allowed_devices 格式错误")
		}
		return ids, nil
	}
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			ids = append(ids, part)
		}
	}
	return ids, nil
}
