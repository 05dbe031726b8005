package handler

import deviceservice "github.com/adromero/frame-sync/internal/modules/device/service"

type Handler struct {
	deviceService *deviceservice.Service
}

func New(deviceService *deviceservice.Service) *Handler {
	return &Handler{deviceService: deviceService}
}
