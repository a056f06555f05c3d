package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/surveyforge/qeval/internal/service"
	"github.com/surveyforge/qeval/internal/service/groundtruth"
)

// GroundTruthHandler 标准答案集处理器
type GroundTruthHandler struct {
	svc *service.Services
}

// NewGroundTruthHandler 创建标准答案集处理器
func NewGroundTruthHandler(svc *service.Services) *GroundTruthHandler {
	return &GroundTruthHandler{svc: svc}
}

// CreateGroundTruth 创建标准答案集
// POST /api/v1/ground-truths
func (h *GroundTruthHandler) CreateGroundTruth(c *gin.Context) {
	var req groundtruth.CreateGroundTruthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	gt, err := h.svc.GroundTruth.CreateGroundTruth(c.Request.Context(), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	created(c, gt)
}

// GetGroundTruth 获取标准答案集（含问题列表）
// GET /api/v1/ground-truths/:id
func (h *GroundTruthHandler) GetGroundTruth(c *gin.Context) {
	id := c.Param("id")

	gt, err := h.svc.GroundTruth.GetGroundTruth(c.Request.Context(), id)
	if err != nil {
		notFound(c, err.Error())
		return
	}

	success(c, gt)
}

// FindByFileName 按源文件名查找标准答案集
// GET /api/v1/ground-truths/lookup?file_name=xxx
func (h *GroundTruthHandler) FindByFileName(c *gin.Context) {
	fileName := c.Query("file_name")
	if fileName == "" {
		badRequest(c, "file_name is required")
		return
	}

	gt, err := h.svc.GroundTruth.FindByFileName(c.Request.Context(), fileName)
	if err != nil {
		errorResponse(c, err)
		return
	}
	if gt == nil {
		notFound(c, "no ground truth for file "+fileName)
		return
	}

	success(c, gt)
}

// ListGroundTruths 列出标准答案集
// GET /api/v1/ground-truths
func (h *GroundTruthHandler) ListGroundTruths(c *gin.Context) {
	page, size := getPagination(c)

	items, total, err := h.svc.GroundTruth.ListGroundTruths(c.Request.Context(), size, (page-1)*size)
	if err != nil {
		errorResponse(c, err)
		return
	}

	successWithPagination(c, items, total, page, size)
}

// UpdateGroundTruth 更新标准答案集
// PUT /api/v1/ground-truths/:id
func (h *GroundTruthHandler) UpdateGroundTruth(c *gin.Context) {
	id := c.Param("id")

	var req groundtruth.UpdateGroundTruthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	gt, err := h.svc.GroundTruth.UpdateGroundTruth(c.Request.Context(), id, &req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, gt)
}

// DeleteGroundTruth 删除标准答案集
// DELETE /api/v1/ground-truths/:id
func (h *GroundTruthHandler) DeleteGroundTruth(c *gin.Context) {
	id := c.Param("id")

	if err := h.svc.GroundTruth.DeleteGroundTruth(c.Request.Context(), id); err != nil {
		errorResponse(c, err)
		return
	}

	success(c, gin.H{"message": "ground truth deleted"})
}
