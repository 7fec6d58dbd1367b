package service

import (
	"go.uber.org/zap"

	"slot-planner/config"
	"slot-planner/internal/repository"
	"slot-planner/pkg/jwt"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth    AuthService
	Planner PlannerService
	Export  ExportService
}

// NewService 创建 Service 聚合；Planner 需在启动时调用 Init
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) *Service {
	plannerSvc := NewPlannerService(repo, UUIDGenerator, nil, logger)
	return &Service{
		Auth:    NewAuthService(&cfg.Auth, jwtMgr, blacklist, logger),
		Planner: plannerSvc,
		Export:  NewExportService(plannerSvc, logger),
	}
}
