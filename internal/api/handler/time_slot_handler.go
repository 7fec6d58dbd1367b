package handler

import (
	"github.com/gin-gonic/gin"

	"slot-planner/internal/dto"
	"slot-planner/internal/service"
	"slot-planner/pkg/response"
)

// TimeSlotHandler 时间段模块 HTTP 处理器
type TimeSlotHandler struct {
	plannerSvc service.PlannerService
}

// NewTimeSlotHandler 创建 TimeSlotHandler
func NewTimeSlotHandler(plannerSvc service.PlannerService) *TimeSlotHandler {
	return &TimeSlotHandler{plannerSvc: plannerSvc}
}

// ListMemberSlots 获取成员的时间段列表
// GET /api/v1/members/:id/slots?day=Monday&month=2024-05
func (h *TimeSlotHandler) ListMemberSlots(c *gin.Context) {
	var req dto.SlotListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c)
		return
	}

	slots, err := h.plannerSvc.ListSlots(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handlePlannerError(c, err)
		return
	}
	response.OK(c, gin.H{"list": slots})
}

// GetTimeSlot 获取时间段详情
// GET /api/v1/slots/:id
func (h *TimeSlotHandler) GetTimeSlot(c *gin.Context) {
	slot, err := h.plannerSvc.GetSlot(c.Request.Context(), c.Param("id"))
	if err != nil {
		handlePlannerError(c, err)
		return
	}
	response.OK(c, slot)
}

// CreateTimeSlot 创建时间段
// POST /api/v1/slots
func (h *TimeSlotHandler) CreateTimeSlot(c *gin.Context) {
	var req dto.CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c)
		return
	}

	slot, err := h.plannerSvc.CreateSlot(c.Request.Context(), &req)
	if err != nil {
		handlePlannerError(c, err)
		return
	}
	response.Created(c, slot)
}

// UpdateTimeSlot 编辑时间段
// PUT /api/v1/slots/:id
func (h *TimeSlotHandler) UpdateTimeSlot(c *gin.Context) {
	var req dto.UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c)
		return
	}

	slot, err := h.plannerSvc.UpdateSlot(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handlePlannerError(c, err)
		return
	}
	response.OK(c, slot)
}

// DeleteTimeSlot 删除时间段，ID 不存在时返回 deleted=false
// DELETE /api/v1/slots/:id
func (h *TimeSlotHandler) DeleteTimeSlot(c *gin.Context) {
	res, err := h.plannerSvc.DeleteSlot(c.Request.Context(), c.Param("id"))
	if err != nil {
		handlePlannerError(c, err)
		return
	}
	response.OK(c, res)
}
