package assignment

import (
	"github.com/adromero/frame-sync/internal/modules/assignment/handler"
	"github.com/adromero/frame-sync/internal/modules/assignment/repo"
	"github.com/adromero/frame-sync/internal/modules/assignment/service"
	platformservice "github.com/adromero/frame-sync/internal/platform/service"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(appService *platformservice.AppService, assignmentStore repo.AssignmentStore) *Module {
	moduleService := service.New(appService, assignmentStore)
	moduleHandler := handler.New(moduleService)

	return &Module{
		Service: moduleService,
		Handler: moduleHandler,
	}
}
