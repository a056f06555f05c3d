package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/surveyforge/qeval/internal/model"
	"github.com/surveyforge/qeval/internal/repository"
)

// Service 抽取结果接收服务
type Service struct {
	repo *repository.Repositories
}

// NewService 创建抽取结果接收服务
func NewService(repo *repository.Repositories) *Service {
	return &Service{repo: repo}
}

// SubmitRunRequest 上报一次抽取运行
// Questions 和 RawPayload 二选一：结构化列表直接入库，
// 原始 LLM JSON 先修复再解码
type SubmitRunRequest struct {
	FileID     string `json:"file_id"`
	FileName   string `json:"file_name" binding:"required"`
	MethodName string `json:"method_name" binding:"required"`
	ModelName  string `json:"model_name" binding:"required"`

	Questions  []PayloadQuestion `json:"questions"`
	RawPayload string            `json:"raw_payload"`

	DurationMs   int64  `json:"duration_ms"`
	TokensInput  int64  `json:"tokens_input"`
	TokensOutput int64  `json:"tokens_output"`
	Error        string `json:"error"` // 抽取侧失败时只上报错误
}

// SubmitRun 保存一次抽取运行的结果
func (s *Service) SubmitRun(ctx context.Context, req *SubmitRunRequest) (*model.ExtractionRun, error) {
	run := &model.ExtractionRun{
		FileID:       req.FileID,
		FileName:     req.FileName,
		MethodName:   req.MethodName,
		ModelName:    req.ModelName,
		DurationMs:   req.DurationMs,
		TokensInput:  req.TokensInput,
		TokensOutput: req.TokensOutput,
	}

	if strings.TrimSpace(req.Error) != "" {
		run.Status = model.RunStatusFailed
		run.ErrorMsg = req.Error
		if err := s.repo.Run.Create(ctx, run); err != nil {
			return nil, fmt.Errorf("failed to save failed run: %w", err)
		}
		return run, nil
	}

	payload := req.Questions
	if payload == nil {
		decoded, err := DecodePayload(req.RawPayload)
		if err != nil {
			return nil, fmt.Errorf("invalid extraction payload: %w", err)
		}
		payload = decoded
	}

	questions, err := toModelQuestions("", payload)
	if err != nil {
		return nil, err
	}

	run.Status = model.RunStatusCompleted
	run.QuestionCount = len(questions)
	run.Questions = questions

	if err := s.repo.Run.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to save run: %w", err)
	}

	return run, nil
}

// GetRun 获取运行详情（含问题）
func (s *Service) GetRun(ctx context.Context, id string) (*model.ExtractionRun, error) {
	run, err := s.repo.Run.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("run not found: %w", err)
	}
	return run, nil
}

// ListRuns 列出运行
func (s *Service) ListRuns(ctx context.Context, fileID string, limit, offset int) ([]*model.ExtractionRun, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.Run.List(ctx, fileID, limit, offset)
}

// DeleteRun 删除运行
func (s *Service) DeleteRun(ctx context.Context, id string) error {
	if _, err := s.repo.Run.GetByID(ctx, id); err != nil {
		return fmt.Errorf("run not found: %w", err)
	}
	if err := s.repo.Run.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	return nil
}
