package handler

import (
	"github.com/gin-gonic/gin"

	"slot-planner/internal/dto"
	"slot-planner/internal/service"
	"slot-planner/pkg/response"
)

// MemberHandler 成员模块 HTTP 处理器
type MemberHandler struct {
	plannerSvc service.PlannerService
}

// NewMemberHandler 创建 MemberHandler
func NewMemberHandler(plannerSvc service.PlannerService) *MemberHandler {
	return &MemberHandler{plannerSvc: plannerSvc}
}

// ListMembers 获取成员列表
// GET /api/v1/members
func (h *MemberHandler) ListMembers(c *gin.Context) {
	members, err := h.plannerSvc.ListMembers(c.Request.Context())
	if err != nil {
		handlePlannerError(c, err)
		return
	}
	response.OK(c, gin.H{"list": members})
}

// GetMember 获取成员详情
// GET /api/v1/members/:id
func (h *MemberHandler) GetMember(c *gin.Context) {
	member, err := h.plannerSvc.GetMember(c.Request.Context(), c.Param("id"))
	if err != nil {
		handlePlannerError(c, err)
		return
	}
	response.OK(c, member)
}

// CreateMember 创建成员
// POST /api/v1/members
func (h *MemberHandler) CreateMember(c *gin.Context) {
	var req dto.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c)
		return
	}

	member, err := h.plannerSvc.CreateMember(c.Request.Context(), &req)
	if err != nil {
		handlePlannerError(c, err)
		return
	}
	response.Created(c, member)
}

// UpdateMember 编辑成员
// PUT /api/v1/members/:id
func (h *MemberHandler) UpdateMember(c *gin.Context) {
	var req dto.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c)
		return
	}

	member, err := h.plannerSvc.UpdateMember(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handlePlannerError(c, err)
		return
	}
	response.OK(c, member)
}

// DeleteMember 删除成员（级联删除其时间段）
// DELETE /api/v1/members/:id
func (h *MemberHandler) DeleteMember(c *gin.Context) {
	res, err := h.plannerSvc.DeleteMember(c.Request.Context(), c.Param("id"))
	if err != nil {
		handlePlannerError(c, err)
		return
	}
	response.OK(c, res)
}
