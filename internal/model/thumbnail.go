package model

import "time"

// Thumbnail 缓存的缩略图，可随时从原图重新生成
//
// SourceRevision 记录生成时原图的 Revision，不一致的缓存视为失效。
type Thumbnail struct {
	ImageID        uint      `gorm:"primaryKey;autoIncrement:false"`
	SourceRevision int       `gorm:"not null;default:0"`
	Data           []byte    `gorm:"not null"`
	MimeType       string    `gorm:"size:64;not null"`
	Width          int       `gorm:"not null"`
	Height         int       `gorm:"not null"`
	CreatedAt      time.Time `gorm:"not null"`
	Image          Image     `gorm:"foreignKey:ImageID;references:ID;constraint:OnDelete:CASCADE;"`
}
