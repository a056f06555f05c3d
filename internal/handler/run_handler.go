package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/surveyforge/qeval/internal/service"
	"github.com/surveyforge/qeval/internal/service/ingest"
)

// RunHandler 抽取运行处理器
type RunHandler struct {
	svc *service.Services
}

// NewRunHandler 创建抽取运行处理器
func NewRunHandler(svc *service.Services) *RunHandler {
	return &RunHandler{svc: svc}
}

// SubmitRun 上报一次抽取运行的结果
// POST /api/v1/runs
func (h *RunHandler) SubmitRun(c *gin.Context) {
	var req ingest.SubmitRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	run, err := h.svc.Ingest.SubmitRun(c.Request.Context(), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	created(c, run)
}

// GetRun 获取运行详情
// GET /api/v1/runs/:id
func (h *RunHandler) GetRun(c *gin.Context) {
	id := c.Param("id")

	run, err := h.svc.Ingest.GetRun(c.Request.Context(), id)
	if err != nil {
		notFound(c, err.Error())
		return
	}

	success(c, run)
}

// ListRuns 列出运行
// GET /api/v1/runs?file_id=xxx
func (h *RunHandler) ListRuns(c *gin.Context) {
	fileID := c.Query("file_id")
	page, size := getPagination(c)

	runs, total, err := h.svc.Ingest.ListRuns(c.Request.Context(), fileID, size, (page-1)*size)
	if err != nil {
		errorResponse(c, err)
		return
	}

	successWithPagination(c, runs, total, page, size)
}

// DeleteRun 删除运行
// DELETE /api/v1/runs/:id
func (h *RunHandler) DeleteRun(c *gin.Context) {
	id := c.Param("id")

	if err := h.svc.Ingest.DeleteRun(c.Request.Context(), id); err != nil {
		errorResponse(c, err)
		return
	}

	success(c, gin.H{"message": "run deleted"})
}
