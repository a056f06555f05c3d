// Package router 定义 HTTP 路由
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/surveyforge/qeval/internal/handler"
	"github.com/surveyforge/qeval/internal/middleware"
)

// SetupRouter 设置路由
func SetupRouter(h *handler.Handlers) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.CORSMiddleware())

	// 健康检查
	r.GET("/health", h.System.Health)

	// API v1
	v1 := r.Group("/api/v1")
	{
		// GroundTruth 标准答案集
		gts := v1.Group("/ground-truths")
		{
			gts.POST("", h.GroundTruth.CreateGroundTruth)
			gts.GET("", h.GroundTruth.ListGroundTruths)
			gts.GET("/lookup", h.GroundTruth.FindByFileName)
			gts.GET("/:id", h.GroundTruth.GetGroundTruth)
			gts.PUT("/:id", h.GroundTruth.UpdateGroundTruth)
			gts.DELETE("/:id", h.GroundTruth.DeleteGroundTruth)
			gts.GET("/:id/leaderboard", h.Comparison.GetLeaderboard)
		}

		// Run 抽取运行结果
		runs := v1.Group("/runs")
		{
			runs.POST("", h.Run.SubmitRun)
			runs.GET("", h.Run.ListRuns)
			runs.GET("/:id", h.Run.GetRun)
			runs.DELETE("/:id", h.Run.DeleteRun)
			runs.GET("/:id/comparison", h.Comparison.GetLatestForRun)
		}

		// Comparison 对账
		cmps := v1.Group("/comparisons")
		{
			cmps.POST("", h.Comparison.Compare)
			cmps.GET("", h.Comparison.ListComparisons)
			cmps.GET("/:id", h.Comparison.GetComparison)
			cmps.DELETE("/:id", h.Comparison.DeleteComparison)
		}

		// File 源表格文件
		files := v1.Group("/files")
		{
			files.POST("", h.File.UploadFile)
			files.GET("", h.File.ListFiles)
			files.GET("/:id/content", h.File.DownloadFile)
			files.GET("/:id/url", h.File.GetFileURL)
			files.DELETE("/:id", h.File.DeleteFile)
		}
	}

	return r
}
