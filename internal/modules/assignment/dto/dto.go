package dto

import "github.com/adromero/frame-sync/internal/model"

// SetDevicesRequest 兼容旧客户端的 allowed_devices 字段
type SetDevicesRequest struct {
	DeviceIDs      []string `json:"device_ids"`
	AllowedDevices []string `json:"allowed_devices"`
}

// IDs 优先使用 device_ids，两者都未提供时返回 nil
func (r SetDevicesRequest) IDs() []string {
	if r.DeviceIDs != nil {
		return r.DeviceIDs
	}
	return r.AllowedDevices
}

type ImageDevicesResponse struct {
	Filename string         `json:"filename"`
	Devices  []model.Device `json:"devices"`
}
