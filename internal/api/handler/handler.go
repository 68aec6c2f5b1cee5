package handler

import "github.com/jammon/stationsplan-sub000/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth    *AuthHandler
	Catalog *CatalogHandler
	Roster  *RosterHandler
	Export  *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(svc.Auth),
		Catalog: NewCatalogHandler(svc.Catalog),
		Roster:  NewRosterHandler(svc.Roster),
		Export:  NewExportHandler(svc.Export),
	}
}
