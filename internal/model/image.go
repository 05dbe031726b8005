package model

import (
	"time"

	"gorm.io/datatypes"
)

const ImageExtraVersion = 1

type Image struct {
	ID           uint                           `json:"id" gorm:"primaryKey"`
	Filename     string                         `json:"filename" gorm:"size:255;not null;uniqueIndex"`
	OriginalName string                         `json:"original_name" gorm:"size:255"`
	UserID       uint                           `json:"user_id" gorm:"not null;index"`
	User         User                           `json:"-" gorm:"foreignKey:UserID;references:ID"`
	Size         int64                          `json:"size" gorm:"not null"`
	MimeType     string                         `json:"mime_type" gorm:"size:64;not null"`
	Width        int                            `json:"width" gorm:"not null"`
	Height       int                            `json:"height" gorm:"not null"`
	UploadedAt   time.Time                      `json:"uploaded_at" gorm:"not null;index"`
	TakenAt      *time.Time                     `json:"taken_at"`
	CameraMake   *string                        `json:"camera_make" gorm:"size:128"`
	CameraModel  *string                        `json:"camera_model" gorm:"size:128"`
	Latitude     *float64                       `json:"gps_latitude"`
	Longitude    *float64                       `json:"gps_longitude"`
	Altitude     *float64                       `json:"gps_altitude"`
	Orientation  *int                           `json:"orientation"`
	Revision     int                            `json:"revision" gorm:"not null;default:0"` // 原图内容每次改写加一
	Extra        datatypes.JSONType[ImageExtra] `json:"extra"`
}

// ImageExtra 图片的附加元数据，Exif 保存挑选出的拍摄参数
type ImageExtra struct {
	Version    int               `json:"version"`
	Exif       map[string]string `json:"exif,omitempty"`
	Extensions map[string]any    `json:"extensions,omitempty"`
}

// HasExif 判断是否已经提取过拍摄信息
func (i *Image) HasExif() bool {
	return i.TakenAt != nil || i.CameraMake != nil || i.CameraModel != nil || len(i.Extra.Data().Exif) > 0
}
