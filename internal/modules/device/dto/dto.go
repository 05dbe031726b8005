package dto

import "github.com/adromero/frame-sync/internal/model"

type RegisterDeviceRequest struct {
	DeviceID   string                `json:"device_id"`
	Name       string                `json:"name"`
	DeviceType string                `json:"device_type"`
	Metadata   *model.DeviceMetadata `json:"metadata"`
}

type UpdateDeviceRequest struct {
	Name       *string `json:"name"`
	DeviceType *string `json:"device_type"`
}

type RegisterDeviceResponse struct {
	Success  bool   `json:"success"`
	DeviceID string `json:"device_id"`
	IsNew    bool   `json:"is_new"`
	Message  string `json:"message"`
}
