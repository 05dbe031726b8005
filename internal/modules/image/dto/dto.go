package dto

import "github.com/adromero/frame-sync/internal/model"

// GalleryQuery 图库查询参数，Paged 为 false 时返回全部图片
type GalleryQuery struct {
	UserAddress string
	Paged       bool
	Page        int
	PageSize    int
}

type GalleryImage struct {
	model.Image
	UploaderName    string   `json:"uploader_name"`
	UploaderAddress string   `json:"uploader_address"`
	AllowedDevices  []string `json:"allowed_devices"`
	URL             string   `json:"url"`
	ThumbnailURL    string   `json:"thumbnail_url"`
}

// GalleryResponse 分页字段仅在分页模式下输出，CurrentImage 始终输出，尚未展示过图片时为 null
type GalleryResponse struct {
	Images       []GalleryImage `json:"images"`
	CurrentImage *string        `json:"current_image"`
	Total        *int64         `json:"total,omitempty"`
	Page         *int           `json:"page,omitempty"`
	Pages        *int           `json:"pages,omitempty"`
	PageSize     *int           `json:"page_size,omitempty"`
}

type UploadResult struct {
	Image          *model.Image
	Uploader       string
	URL            string
	AllowedDevices []string
}

type RotateRequest struct {
	Degrees   int  `json:"degrees"`
	Clockwise bool `json:"clockwise"`
}
