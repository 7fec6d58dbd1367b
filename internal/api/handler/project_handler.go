package handler

import (
	"github.com/gin-gonic/gin"

	"slot-planner/internal/dto"
	"slot-planner/internal/service"
	"slot-planner/pkg/response"
)

// ProjectHandler 项目目录 HTTP 处理器
type ProjectHandler struct {
	plannerSvc service.PlannerService
}

// NewProjectHandler 创建 ProjectHandler
func NewProjectHandler(plannerSvc service.PlannerService) *ProjectHandler {
	return &ProjectHandler{plannerSvc: plannerSvc}
}

// ListProjects GET /api/v1/projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.plannerSvc.ListProjects(c.Request.Context())
	if err != nil {
		handlePlannerError(c, err)
		return
	}
	response.OK(c, gin.H{"list": projects})
}

// CreateProject POST /api/v1/projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c)
		return
	}

	project, err := h.plannerSvc.CreateProject(c.Request.Context(), &req)
	if err != nil {
		handlePlannerError(c, err)
		return
	}
	response.Created(c, project)
}

// DeleteProject DELETE /api/v1/projects/:id
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	if err := h.plannerSvc.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
		handlePlannerError(c, err)
		return
	}
	response.OK(c, nil)
}
