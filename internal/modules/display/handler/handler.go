package handler

import displayservice "github.com/adromero/frame-sync/internal/modules/display/service"

type Handler struct {
	displayService *displayservice.Service
}

func New(displayService *displayservice.Service) *Handler {
	return &Handler{displayService: displayService}
}
