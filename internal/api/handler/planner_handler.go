package handler

import (
	"github.com/gin-gonic/gin"

	"slot-planner/internal/dto"
	"slot-planner/internal/service"
	"slot-planner/pkg/response"
)

// PlannerHandler 空闲区间、周视图与拖拽 HTTP 处理器
type PlannerHandler struct {
	plannerSvc service.PlannerService
}

// NewPlannerHandler 创建 PlannerHandler
func NewPlannerHandler(plannerSvc service.PlannerService) *PlannerHandler {
	return &PlannerHandler{plannerSvc: plannerSvc}
}

// Gaps 查询某天空闲区间
// GET /api/v1/members/:id/gaps?day=Monday&month=2024-05
func (h *PlannerHandler) Gaps(c *gin.Context) {
	var q dto.GapQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c)
		return
	}

	gaps, err := h.plannerSvc.Gaps(c.Request.Context(), c.Param("id"), q.Day, q.Month)
	if err != nil {
		handlePlannerError(c, err)
		return
	}
	response.OK(c, gin.H{"list": gaps})
}

// WeekView 周视图
// GET /api/v1/members/:id/week?month=2024-05
func (h *PlannerHandler) WeekView(c *gin.Context) {
	var q dto.WeekQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c)
		return
	}

	week, err := h.plannerSvc.WeekView(c.Request.Context(), c.Param("id"), q.Month)
	if err != nil {
		handlePlannerError(c, err)
		return
	}
	response.OK(c, week)
}

// ProposeFromDrag 拖拽像素 → 候选区间（不写入）
// POST /api/v1/drag/proposal
func (h *PlannerHandler) ProposeFromDrag(c *gin.Context) {
	var req dto.DragProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c)
		return
	}

	res, err := h.plannerSvc.ProposeFromDrag(c.Request.Context(), &req)
	if err != nil {
		handlePlannerError(c, err)
		return
	}
	response.OK(c, res)
}

// CommitProposal 确认候选区间并创建时间段
// POST /api/v1/drag/commit
func (h *PlannerHandler) CommitProposal(c *gin.Context) {
	var req dto.CommitProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c)
		return
	}

	slot, err := h.plannerSvc.CommitProposal(c.Request.Context(), &req)
	if err != nil {
		handlePlannerError(c, err)
		return
	}
	response.Created(c, slot)
}
