package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"slot-planner/internal/planner"
	"slot-planner/internal/service"
	"slot-planner/pkg/response"
)

// handlePlannerError 将排期领域错误分类映射为统一响应码
func handlePlannerError(c *gin.Context, err error) {
	var overlap *planner.OverlapError
	switch {
	case errors.As(err, &overlap):
		response.Conflict(c, response.CodeOverlap, planner.ErrOverlap.Error(), overlap.Error())
	case errors.Is(err, planner.ErrValidation):
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, planner.ErrValidation.Error(), err.Error())
	case errors.Is(err, planner.ErrOutsideRange):
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeOutsideRange, planner.ErrOutsideRange.Error(), err.Error())
	case errors.Is(err, planner.ErrNotFound):
		response.NotFound(c, response.CodeNotFound, err.Error())
	case errors.Is(err, planner.ErrMalformedDocument):
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeMalformedDoc, planner.ErrMalformedDocument.Error(), err.Error())
	case errors.Is(err, service.ErrPersistence):
		response.Error(c, http.StatusInternalServerError, response.CodePersistence, "数据保存失败，请重试")
	case errors.Is(err, service.ErrNotReady):
		response.Error(c, http.StatusServiceUnavailable, response.CodeInternal, "服务尚未就绪")
	default:
		response.InternalError(c)
	}
}

func bindFailed(c *gin.Context) {
	response.BadRequest(c, response.CodeBadRequest, "参数校验失败")
}
