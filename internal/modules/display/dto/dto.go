package dto

import "github.com/adromero/frame-sync/internal/model"

type DisplayImage struct {
	model.Image
	UploaderName string `json:"uploader_name"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

type NextImageResponse struct {
	DeviceID string       `json:"device_id"`
	Image    DisplayImage `json:"image"`
	URL      string       `json:"url"`
}

type DeviceImagesResponse struct {
	DeviceID   string         `json:"device_id"`
	DeviceName string         `json:"device_name"`
	Count      int            `json:"count"`
	Images     []DisplayImage `json:"images"`
}
