package model

import "time"

// Assignment 授权某台设备展示某张图片
type Assignment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ImageID   uint      `json:"image_id" gorm:"not null;uniqueIndex:idx_assignment_pair"`
	DeviceID  string    `json:"device_id" gorm:"size:255;not null;uniqueIndex:idx_assignment_pair;index"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
	Image     Image     `json:"-" gorm:"foreignKey:ImageID;references:ID;constraint:OnDelete:CASCADE;"`
	Device    Device    `json:"-" gorm:"foreignKey:DeviceID;references:ID;constraint:OnDelete:CASCADE;"`
}
