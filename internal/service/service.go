// Package service 组装各业务服务
package service

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/surveyforge/qeval/internal/config"
	"github.com/surveyforge/qeval/internal/repository"
	"github.com/surveyforge/qeval/internal/service/comparison"
	"github.com/surveyforge/qeval/internal/service/file"
	"github.com/surveyforge/qeval/internal/service/groundtruth"
	"github.com/surveyforge/qeval/internal/service/ingest"
)

// Services 服务集合
type Services struct {
	GroundTruth *groundtruth.Service
	Ingest      *ingest.Service
	Comparison  *comparison.Service
	File        *file.Service

	Config *config.Config
}

// NewServices 创建所有服务
// redisClient 可以为 nil，对账结果将不走缓存
func NewServices(repo *repository.Repositories, cfg *config.Config, redisClient *redis.Client) (*Services, error) {
	fileService, err := file.NewServiceFromConfig(repo, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create file service: %w", err)
	}

	return &Services{
		GroundTruth: groundtruth.NewService(repo),
		Ingest:      ingest.NewService(repo),
		Comparison:  comparison.NewService(repo, redisClient, cfg),
		File:        fileService,
		Config:      cfg,
	}, nil
}
