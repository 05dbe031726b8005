package handler

import assignmentservice "github.com/adromero/frame-sync/internal/modules/assignment/service"

type Handler struct {
	assignmentService *assignmentservice.Service
}

func New(assignmentService *assignmentservice.Service) *Handler {
	return &Handler{assignmentService: assignmentService}
}
