package service

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/adromero/frame-sync/internal/db"
	"github.com/adromero/frame-sync/internal/imageproc"
	"github.com/adromero/frame-sync/internal/logger"
	"github.com/adromero/frame-sync/internal/model"
	"github.com/adromero/frame-sync/internal/modules/thumbnail/repo"
	platformservice "github.com/adromero/frame-sync/internal/platform/service"
	"github.com/adromero/frame-sync/internal/storage"
	"github.com/adromero/frame-sync/internal/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Result 缩略图读取结果，Fallback 为 true 时 Data 是原图
type Result struct {
	ImageID  uint
	Revision int
	Data     []byte
	MimeType string
	Fallback bool
}

// Get 返回缓存的缩略图，缺失时同步生成并保存
//
// 原图无法解码时直接返回原图内容。
func (s *Service) Get(ctx context.Context, filename string) (*Result, error) {
	if !utils.IsSafeIdentifier(filename) {
		return nil, platformservice.NewValidationError("非法的文件名")
	}

	image, err := s.thumbnailStore.FindImage(ctx, filename)
	if err != nil {
		return nil, platformservice.TranslateStorageError(err, "图片不存在")
	}

	cached, err := s.thumbnailStore.Find(ctx, image.ID)
	if err == nil && cached.SourceRevision != image.Revision {
		// 原图已改写，按未命中处理
		err = gorm.ErrRecordNotFound
	}
	if err == nil {
		thumbnailRequestsTotal.WithLabelValues(resultHit).Inc()
		return &Result{ImageID: image.ID, Revision: image.Revision, Data: cached.Data, MimeType: cached.MimeType}, nil
	}
	if !db.IsNotFound(err) {
		return nil, platformservice.TranslateStorageError(err, "图片不存在")
	}

	source, err := s.readSource(ctx, image)
	if err != nil {
		return nil, err
	}

	thumbnail, err := s.derive(image, source)
	if err != nil {
		thumbnailRequestsTotal.WithLabelValues(resultFallback).Inc()
		logger.L.Warn("生成缩略图失败，返回原图", zap.String("filename", filename), zap.Error(err))
		return &Result{ImageID: image.ID, Revision: image.Revision, Data: source, MimeType: image.MimeType, Fallback: true}, nil
	}

	thumbnailRequestsTotal.WithLabelValues(resultMiss).Inc()
	if err := s.thumbnailStore.Upsert(ctx, thumbnail); err != nil {
		if errors.Is(err, repo.ErrStaleSource) {
			logger.L.Debug("原图已改写，放弃缓存缩略图", zap.String("filename", filename))
		} else {
			logger.L.Warn("保存缩略图失败", zap.String("filename", filename), zap.Error(err))
		}
	}
	return &Result{ImageID: image.ID, Revision: image.Revision, Data: thumbnail.Data, MimeType: thumbnail.MimeType}, nil
}

// Ensure 生成并保存缩略图，生成期间原图被改写时跳过
func (s *Service) Ensure(ctx context.Context, image *model.Image) error {
	source, err := s.readSource(ctx, image)
	if err != nil {
		return err
	}
	thumbnail, err := s.derive(image, source)
	if err != nil {
		return err
	}
	if err := s.thumbnailStore.Upsert(ctx, thumbnail); err != nil && !errors.Is(err, repo.ErrStaleSource) {
		return err
	}
	return nil
}

// Invalidate 删除缓存的缩略图，不存在时视为成功
func (s *Service) Invalidate(ctx context.Context, imageID uint) error {
	return s.thumbnailStore.Delete(ctx, imageID)
}

// Backfill 为缺少缩略图的图片批量生成，返回成功数量
func (s *Service) Backfill(ctx context.Context, workers int) (int, error) {
	images, err := s.thumbnailStore.ListImagesWithoutThumbnail(ctx)
	if err != nil {
		return 0, err
	}
	if workers <= 0 {
		workers = s.Config().Thumbnail.BackfillWorkers
	}
	if workers <= 0 {
		workers = 1
	}

	var generated atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range images {
		image := images[i]
		g.Go(func() error {
			if err := s.Ensure(gctx, &image); err != nil {
				logger.L.Warn("补全缩略图失败", zap.String("filename", image.Filename), zap.Error(err))
				return gctx.Err()
			}
			generated.Add(1)
			return nil
		})
	}
	err = g.Wait()
	return int(generated.Load()), err
}

func (s *Service) CountAll(ctx context.Context) (int64, error) {
	return s.thumbnailStore.CountAll(ctx)
}

func (s *Service) readSource(ctx context.Context, image *model.Image) ([]byte, error) {
	data, err := storage.ReadAll(ctx, s.assets, image.Filename)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return nil, platformservice.NewNotFoundError("原图不存在")
		}
		return nil, &platformservice.ServiceError{Code: platformservice.ErrorCodeInternal, Message: "读取原图失败", Err: err}
	}
	return data, nil
}

func (s *Service) derive(image *model.Image, source []byte) (*model.Thumbnail, error) {
	if _, err := imageproc.Probe(source, s.Config().Upload.MaxPixels); err != nil {
		return nil, err
	}
	cfg := s.Config().Thumbnail
	derived, err := imageproc.MakeThumbnail(source, cfg.Width, cfg.Height, cfg.Quality)
	if err != nil {
		return nil, err
	}
	return &model.Thumbnail{
		ImageID:        image.ID,
		SourceRevision: image.Revision,
		Data:           derived.Data,
		MimeType:       derived.MimeType,
		Width:          derived.Width,
		Height:         derived.Height,
		CreatedAt:      time.Now(),
	}, nil
}
