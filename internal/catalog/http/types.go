package http

import (
	"github.com/Arviva-Admin/portfolio-backend/internal/catalog/service"
	"github.com/Arviva-Admin/portfolio-backend/internal/importer"
)

// Handler bundles the dependencies for catalog HTTP endpoints.
type Handler struct {
	service    *service.ProjectService
	importer   *importer.Importer
	webhookKey string
}

func New(svc *service.ProjectService, imp *importer.Importer, webhookKey string) *Handler {
	return &Handler{service: svc, importer: imp, webhookKey: webhookKey}
}
