package handler

import (
	"github.com/surveyforge/qeval/internal/service"
)

// Handlers 处理器集合
type Handlers struct {
	GroundTruth *GroundTruthHandler
	Run         *RunHandler
	Comparison  *ComparisonHandler
	File        *FileHandler
	System      *SystemHandler
}

// NewHandlers 创建所有处理器
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		GroundTruth: NewGroundTruthHandler(svc),
		Run:         NewRunHandler(svc),
		Comparison:  NewComparisonHandler(svc),
		File:        NewFileHandler(svc),
		System:      NewSystemHandler(svc),
	}
}
