package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"slot-planner/internal/service"
	"slot-planner/pkg/response"
)

// DocumentHandler 数据文档导入导出 HTTP 处理器
type DocumentHandler struct {
	plannerSvc service.PlannerService
}

// NewDocumentHandler 创建 DocumentHandler
func NewDocumentHandler(plannerSvc service.PlannerService) *DocumentHandler {
	return &DocumentHandler{plannerSvc: plannerSvc}
}

// ExportDocument 下载 data.json
// GET /api/v1/document
func (h *DocumentHandler) ExportDocument(c *gin.Context) {
	doc, err := h.plannerSvc.ExportDocument(c.Request.Context())
	if err != nil {
		handlePlannerError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=data.json")
	c.IndentedJSON(http.StatusOK, doc)
}

// ImportDocument 上传文档整体替换当前数据
// PUT /api/v1/document
func (h *DocumentHandler) ImportDocument(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, http.StatusRequestEntityTooLarge, response.CodeBadRequest, "请求体过大或读取失败")
		return
	}

	res, err := h.plannerSvc.ImportDocument(c.Request.Context(), raw)
	if err != nil {
		handlePlannerError(c, err)
		return
	}
	response.OK(c, res)
}
