package service

import (
	"go.uber.org/zap"

	"github.com/jammon/stationsplan-sub000/config"
	"github.com/jammon/stationsplan-sub000/internal/repository"
	"github.com/jammon/stationsplan-sub000/pkg/jwt"
	"github.com/jammon/stationsplan-sub000/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth    AuthService
	Catalog CatalogService
	Roster  RosterService
	Export  ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	rosterSvc := NewRosterService(cfg, repo, logger)
	return &Service{
		Auth:    NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Catalog: NewCatalogService(repo, rosterSvc, logger),
		Roster:  rosterSvc,
		Export:  NewExportService(repo, rosterSvc, logger),
	}
}
