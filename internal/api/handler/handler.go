package handler

import "slot-planner/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth     *AuthHandler
	Member   *MemberHandler
	Slot     *TimeSlotHandler
	Planner  *PlannerHandler
	Project  *ProjectHandler
	Document *DocumentHandler
	Export   *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(svc.Auth),
		Member:   NewMemberHandler(svc.Planner),
		Slot:     NewTimeSlotHandler(svc.Planner),
		Planner:  NewPlannerHandler(svc.Planner),
		Project:  NewProjectHandler(svc.Planner),
		Document: NewDocumentHandler(svc.Planner),
		Export:   NewExportHandler(svc.Export),
	}
}
