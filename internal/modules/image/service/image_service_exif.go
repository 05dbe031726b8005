package service

import (
	"context"
	"sync/atomic"

	"github.com/adromero/frame-sync/internal/imageproc"
	"github.com/adromero/frame-sync/internal/logger"
	"github.com/adromero/frame-sync/internal/model"
	"github.com/adromero/frame-sync/internal/storage"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BackfillExif 为缺少拍摄信息的图片补充 EXIF，返回更新的数量
//
// 单张图片失败只记录日志，不中断整体。
func (s *Service) BackfillExif(ctx context.Context, workers int) (int, error) {
	images, err := s.imageStore.ListWithoutExif(ctx)
	if err != nil {
		return 0, err
	}
	if workers <= 0 {
		workers = 1
	}

	var updated atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range images {
		image := images[i]
		if image.HasExif() {
			continue
		}
		g.Go(func() error {
			ok, err := s.backfillOne(gctx, &image)
			if err != nil {
				logger.L.Warn("补充 EXIF 失败", zap.String("filename", image.Filename), zap.Error(err))
				return nil
			}
			if ok {
				updated.Add(1)
			}
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return int(updated.Load()), err
	}
	return int(updated.Load()), nil
}

func (s *Service) backfillOne(ctx context.Context, image *model.Image) (bool, error) {
	data, err := storage.ReadAll(ctx, s.assets, image.Filename)
	if err != nil {
		return false, err
	}
	exifData, err := imageproc.ExtractExif(data)
	if err != nil {
		// 不含 EXIF 的图片不算失败
		return false, nil
	}

	applyExif(image, exifData)
	if !image.HasExif() {
		return false, nil
	}
	updates := map[string]any{
		"taken_at":      image.TakenAt,
		"camera_make":   image.CameraMake,
		"camera_model":  image.CameraModel,
		"latitude":      image.Latitude,
		"longitude":     image.Longitude,
		"altitude":      image.Altitude,
		"orientation":   image.Orientation,
		"extra":         image.Extra,
	}
	if err := s.imageStore.UpdateExif(ctx, image.ID, updates); err != nil {
		return false, err
	}
	return true, nil
}
