package handler

import thumbnailservice "github.com/adromero/frame-sync/internal/modules/thumbnail/service"

type Handler struct {
	thumbnailService *thumbnailservice.Service
}

func New(thumbnailService *thumbnailservice.Service) *Handler {
	return &Handler{thumbnailService: thumbnailService}
}
