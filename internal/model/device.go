package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

const (
	DeviceTypeDisplay = "display"
	DeviceTypeKiosk   = "kiosk"
	DeviceTypeFrame   = "frame"
	DeviceTypeEpaper  = "epaper"
	DeviceTypeOther   = "other"

	DeviceMetadataVersion = 1
)

var DeviceTypes = []string{DeviceTypeDisplay, DeviceTypeKiosk, DeviceTypeFrame, DeviceTypeEpaper, DeviceTypeOther}

type Device struct {
	ID           string                             `json:"device_id" gorm:"primaryKey;size:255"`
	Name         string                             `json:"name" gorm:"size:100;not null"`
	DeviceType   string                             `json:"device_type" gorm:"size:32;not null;default:display"`
	RegisteredAt time.Time                          `json:"registered_at" gorm:"not null"`
	LastSeenAt   time.Time                          `json:"last_seen" gorm:"not null;index"`
	Metadata     datatypes.JSONType[DeviceMetadata] `json:"metadata"`
}

// DeviceMetadata 设备上报的附加信息，未知字段归入 Extensions
type DeviceMetadata struct {
	Version     int            `json:"version"`
	Resolution  string         `json:"resolution,omitempty"`
	Orientation string         `json:"orientation,omitempty"`
	Location    string         `json:"location,omitempty"`
	Extensions  map[string]any `json:"extensions,omitempty"`
}

func (m *DeviceMetadata) UnmarshalJSON(data []byte) error {
	type plain DeviceMetadata
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, known := range []string{"version", "resolution", "orientation", "location", "extensions"} {
		delete(raw, known)
	}
	if len(raw) > 0 {
		if p.Extensions == nil {
			p.Extensions = make(map[string]any, len(raw))
		}
		for k, v := range raw {
			p.Extensions[k] = v
		}
	}

	*m = DeviceMetadata(p)
	return nil
}

// IsValidDeviceType 判断设备类型是否在允许集合内
func IsValidDeviceType(t string) bool {
	for _, v := range DeviceTypes {
		if v == t {
			return true
		}
	}
	return false
}
