package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/adromero/frame-sync/internal/imageproc"
	"github.com/adromero/frame-sync/internal/logger"
	"github.com/adromero/frame-sync/internal/model"
	assignmentservice "github.com/adromero/frame-sync/internal/modules/assignment/service"
	moduledto "github.com/adromero/frame-sync/internal/modules/image/dto"
	platformservice "github.com/adromero/frame-sync/internal/platform/service"
	"github.com/adromero/frame-sync/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// ValidateImageFile 校验大小、扩展名与文件头，返回小写扩展名与检测到的类型
func (s *Service) ValidateImageFile(file *multipart.FileHeader) (string, string, error) {
	cfg := s.Config().Upload

	maxSizeMB := cfg.MaxSizeMB
	if maxSizeMB <= 0 {
		maxSizeMB = 16
	}
	if file.Size > int64(maxSizeMB)*1024*1024 {
		return "", "", platformservice.NewValidationError(fmt.Sprintf("文件大小不能超过 %dMB", maxSizeMB))
	}
	if file.Size == 0 {
		return "", "", platformservice.NewValidationError("文件内容为空")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		return "", "", platformservice.NewValidationError("无法识别文件类型")
	}
	allowed := false
	for _, allowExt := range strings.Split(cfg.AllowedExtensions, ",") {
		if strings.TrimSpace(strings.ToLower(allowExt)) == ext {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", "", platformservice.NewValidationError("不支持的文件类型: " + ext)
	}

	src, err := file.Open()
	if err != nil {
		return "", "", platformservice.NewValidationError("无法打开上传的文件")
	}
	defer func() { _ = src.Close() }()

	contentType, ok, msg := utils.ValidateImageContent(src, ext)
	if !ok {
		return "", "", platformservice.NewValidationError(msg)
	}
	return ext, contentType, nil
}

// Upload 保存原图并在一个事务中写入上传者、图片与授权设备
//
// 数据库写入失败时删除已保存的原图，缩略图在提交后尽力生成。
func (s *Service) Upload(ctx context.Context, file *multipart.FileHeader, address string, deviceIDs []string) (*moduledto.UploadResult, error) {
	if strings.TrimSpace(address) == "" {
		return nil, platformservice.NewValidationError("无法识别来源地址")
	}
	for _, id := range deviceIDs {
		if !utils.IsSafeIdentifier(id) {
			return nil, platformservice.NewValidationError("非法的设备 ID: " + id)
		}
	}

	ext, contentType, err := s.ValidateImageFile(file)
	if err != nil {
		return nil, err
	}

	data, err := readUpload(file)
	if err != nil {
		return nil, platformservice.NewValidationError("无法读取上传文件")
	}
	info, err := imageproc.Probe(data, s.Config().Upload.MaxPixels)
	if err != nil {
		if errors.Is(err, imageproc.ErrTooLarge) {
			return nil, platformservice.NewValidationError("图片像素数超过上限")
		}
		return nil, platformservice.NewValidationError("无法解析图片内容")
	}

	filename := uuid.New().String() + ext
	if err := s.assets.Save(ctx, filename, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		logger.L.Error("保存原图失败", zap.String("filename", filename), zap.Error(err))
		return nil, platformservice.NewInternalError("文件保存失败")
	}

	image := &model.Image{
		Filename:     filename,
		OriginalName: filepath.Base(file.Filename),
		Size:         int64(len(data)),
		MimeType:     contentType,
		Width:        info.Width,
		Height:       info.Height,
		UploadedAt:   time.Now(),
		Extra:        datatypes.NewJSONType(model.ImageExtra{Version: model.ImageExtraVersion}),
	}
	if exifData, err := imageproc.ExtractExif(data); err == nil {
		applyExif(image, exifData)
	} else {
		logger.L.Debug("未提取到 EXIF", zap.String("filename", filename), zap.Error(err))
	}

	user, applied, err := s.imageStore.CreateUpload(ctx, address, image, deviceIDs)
	if err != nil {
		if removeErr := s.assets.Remove(ctx, filename); removeErr != nil {
			logger.L.Warn("回滚原图失败", zap.String("filename", filename), zap.Error(removeErr))
		}
		return nil, assignmentservice.TranslateError(err, "设备不存在")
	}

	if err := s.thumbnails.Ensure(ctx, image); err != nil {
		logger.L.Warn("上传时生成缩略图失败", zap.String("filename", filename), zap.Error(err))
	}

	return &moduledto.UploadResult{
		Image:          image,
		Uploader:       user.Name,
		URL:            s.Config().Upload.URLPrefix + filename,
		AllowedDevices: applied,
	}, nil
}

func readUpload(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()
	return io.ReadAll(src)
}

// applyExif 将 EXIF 字段写入图片记录，附加标签进入 Extra
func applyExif(image *model.Image, exifData *imageproc.ExifData) {
	image.TakenAt = exifData.TakenAt
	image.CameraMake = exifData.CameraMake
	image.CameraModel = exifData.CameraModel
	image.Latitude = exifData.Latitude
	image.Longitude = exifData.Longitude
	image.Altitude = exifData.Altitude
	image.Orientation = exifData.Orientation

	extra := image.Extra.Data()
	extra.Version = model.ImageExtraVersion
	if len(exifData.Tags) > 0 {
		extra.Exif = exifData.Tags
	}
	image.Extra = datatypes.NewJSONType(extra)
}
