package service

import (
	"context"

	"github.com/adromero/frame-sync/internal/model"
	moduledto "github.com/adromero/frame-sync/internal/modules/image/dto"
	"github.com/adromero/frame-sync/internal/modules/image/repo"
	platformservice "github.com/adromero/frame-sync/internal/platform/service"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ListGallery 查询图库
//
// 非分页模式返回全部图片且不带分页字段；分页模式下页码超出范围返回空列表。
func (s *Service) ListGallery(ctx context.Context, query moduledto.GalleryQuery) (*moduledto.GalleryResponse, error) {
	params := repo.ListImagesParams{UserAddress: query.UserAddress}

	page, pageSize := query.Page, query.PageSize
	if query.Paged {
		if page == 0 {
			page = 1
		}
		if pageSize == 0 {
			pageSize = DefaultPageSize
		}
		if page < 1 {
			return nil, platformservice.NewValidationError("page 必须大于 0")
		}
		if pageSize < 1 || pageSize > MaxPageSize {
			return nil, platformservice.NewValidationError("page_size 必须在 1 到 100 之间")
		}
		params.Offset = (page - 1) * pageSize
		params.Limit = pageSize
	}

	images, total, err := s.imageStore.ListImages(ctx, params)
	if err != nil {
		return nil, platformservice.TranslateStorageError(err, "图片不存在")
	}

	items, err := s.toGalleryImages(ctx, images)
	if err != nil {
		return nil, err
	}

	resp := &moduledto.GalleryResponse{Images: items}
	if s.display != nil {
		resp.CurrentImage = s.display.CurrentImage()
	}
	if query.Paged {
		pages := int((total + int64(pageSize) - 1) / int64(pageSize))
		resp.Total = &total
		resp.Page = &page
		resp.Pages = &pages
		resp.PageSize = &pageSize
	}
	return resp, nil
}

// GetImage 按文件名查询单张图片
func (s *Service) GetImage(ctx context.Context, filename string) (*model.Image, error) {
	image, err := s.imageStore.FindByFilename(ctx, filename)
	if err != nil {
		return nil, platformservice.TranslateStorageError(err, "图片不存在")
	}
	return image, nil
}

// URLFor 返回原图访问地址
func (s *Service) URLFor(filename string) string {
	return s.Config().Upload.URLPrefix + filename
}

func (s *Service) toGalleryImages(ctx context.Context, images []model.Image) ([]moduledto.GalleryImage, error) {
	items := make([]moduledto.GalleryImage, 0, len(images))
	if len(images) == 0 {
		return items, nil
	}

	ids := make([]uint, 0, len(images))
	for _, img := range images {
		ids = append(ids, img.ID)
	}
	deviceIDs, err := s.assignments.DeviceIDsForImages(ctx, ids)
	if err != nil {
		return nil, platformservice.TranslateStorageError(err, "图片不存在")
	}

	for _, img := range images {
		allowed := deviceIDs[img.ID]
		if allowed == nil {
			allowed = []string{}
		}
		items = append(items, moduledto.GalleryImage{
			Image:           img,
			UploaderName:    img.User.Name,
			UploaderAddress: img.User.Address,
			AllowedDevices:  allowed,
			URL:             s.URLFor(img.Filename),
			ThumbnailURL:    "/api/thumbnails/" + img.Filename,
		})
	}
	return items, nil
}
