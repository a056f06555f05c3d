package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/surveyforge/qeval/internal/service"
	"github.com/surveyforge/qeval/internal/service/comparison"
)

// ComparisonHandler 对账处理器
type ComparisonHandler struct {
	svc *service.Services
}

// NewComparisonHandler 创建对账处理器
func NewComparisonHandler(svc *service.Services) *ComparisonHandler {
	return &ComparisonHandler{svc: svc}
}

// Compare 对一次抽取运行发起对账
// POST /api/v1/comparisons
func (h *ComparisonHandler) Compare(c *gin.Context) {
	var req comparison.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	cmp, err := h.svc.Comparison.Compare(c.Request.Context(), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	created(c, cmp)
}

// GetComparison 获取对账结果（含完整报告）
// GET /api/v1/comparisons/:id
func (h *ComparisonHandler) GetComparison(c *gin.Context) {
	id := c.Param("id")

	cmp, err := h.svc.Comparison.GetComparison(c.Request.Context(), id)
	if err != nil {
		notFound(c, err.Error())
		return
	}

	success(c, cmp)
}

// GetLatestForRun 获取某次运行最近的对账结果
// GET /api/v1/runs/:id/comparison
func (h *ComparisonHandler) GetLatestForRun(c *gin.Context) {
	runID := c.Param("id")

	cmp, err := h.svc.Comparison.GetLatestForRun(c.Request.Context(), runID)
	if err != nil {
		notFound(c, err.Error())
		return
	}

	success(c, cmp)
}

// ListComparisons 列出对账结果
// GET /api/v1/comparisons?ground_truth_id=xxx
func (h *ComparisonHandler) ListComparisons(c *gin.Context) {
	groundTruthID := c.Query("ground_truth_id")
	page, size := getPagination(c)

	cmps, total, err := h.svc.Comparison.ListComparisons(c.Request.Context(), groundTruthID, size, (page-1)*size)
	if err != nil {
		errorResponse(c, err)
		return
	}

	successWithPagination(c, cmps, total, page, size)
}

// GetLeaderboard 获取某份标准答案集上的方案排行榜
// GET /api/v1/ground-truths/:id/leaderboard
func (h *ComparisonHandler) GetLeaderboard(c *gin.Context) {
	groundTruthID := c.Param("id")

	board, err := h.svc.Comparison.BuildLeaderboard(c.Request.Context(), groundTruthID)
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, board)
}

// DeleteComparison 删除对账结果
// DELETE /api/v1/comparisons/:id
func (h *ComparisonHandler) DeleteComparison(c *gin.Context) {
	id := c.Param("id")

	if err := h.svc.Comparison.DeleteComparison(c.Request.Context(), id); err != nil {
		errorResponse(c, err)
		return
	}

	success(c, gin.H{"message": "comparison deleted"})
}
