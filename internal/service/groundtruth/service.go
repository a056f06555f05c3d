// Package groundtruth 提供标准答案集的管理服务
package groundtruth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/surveyforge/qeval/internal/model"
	"github.com/surveyforge/qeval/internal/repository"
)

// Service 标准答案集服务
type Service struct {
	repo *repository.Repositories
}

// NewService 创建标准答案集服务
func NewService(repo *repository.Repositories) *Service {
	return &Service{repo: repo}
}

// QuestionInput 请求中的一条问题
type QuestionInput struct {
	QuestionText string             `json:"question_text" binding:"required"`
	HelpText     string             `json:"help_text"`
	QuestionType model.QuestionType `json:"question_type"`
	Answers      []string           `json:"answers"`
	SheetName    string             `json:"sheet_name"`
	RowIndex     int                `json:"row_index"`
	Problematic  bool               `json:"problematic"`
}

// CreateGroundTruthRequest 创建标准答案集请求
type CreateGroundTruthRequest struct {
	FileName  string          `json:"file_name" binding:"required"`
	CreatedBy string          `json:"created_by"`
	Notes     string          `json:"notes"`
	Questions []QuestionInput `json:"questions" binding:"required"`
}

// normalizeFileName 文件名规范化（小写去空白），按文件名查找用
func normalizeFileName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func buildQuestions(groundTruthID string, inputs []QuestionInput) ([]model.GroundTruthQuestion, error) {
	questions := make([]model.GroundTruthQuestion, 0, len(inputs))
	for i, q := range inputs {
		if strings.TrimSpace(q.QuestionText) == "" {
			return nil, fmt.Errorf("question %d: question_text is required", i)
		}
		if q.QuestionType != "" && !model.ValidQuestionType(q.QuestionType) {
			return nil, fmt.Errorf("question %d: unknown question_type %q", i, q.QuestionType)
		}
		questions = append(questions, model.GroundTruthQuestion{
			GroundTruthID: groundTruthID,
			QuestionText:  q.QuestionText,
			HelpText:      q.HelpText,
			QuestionType:  q.QuestionType,
			Answers:       q.Answers,
			SheetName:     q.SheetName,
			RowIndex:      q.RowIndex,
			Problematic:   q.Problematic,
			Position:      i,
		})
	}
	return questions, nil
}

// CreateGroundTruth 创建标准答案集
func (s *Service) CreateGroundTruth(ctx context.Context, req *CreateGroundTruthRequest) (*model.GroundTruth, error) {
	questions, err := buildQuestions("", req.Questions)
	if err != nil {
		return nil, err
	}

	gt := &model.GroundTruth{
		FileName:           req.FileName,
		FileNameNormalized: normalizeFileName(req.FileName),
		CreatedBy:          req.CreatedBy,
		Notes:              req.Notes,
		Version:            1,
		QuestionCount:      len(questions),
		Questions:          questions,
	}

	if err := s.repo.GroundTruth.Create(ctx, gt); err != nil {
		return nil, fmt.Errorf("failed to create ground truth: %w", err)
	}

	return gt, nil
}

// GetGroundTruth 获取标准答案集（含全部问题）
func (s *Service) GetGroundTruth(ctx context.Context, id string) (*model.GroundTruth, error) {
	gt, err := s.repo.GroundTruth.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ground truth not found: %w", err)
	}
	return gt, nil
}

// FindByFileName 按源文件名查找标准答案集，不存在时返回 nil
func (s *Service) FindByFileName(ctx context.Context, fileName string) (*model.GroundTruth, error) {
	gt, err := s.repo.GroundTruth.GetByNormalizedFileName(ctx, normalizeFileName(fileName))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up ground truth: %w", err)
	}
	return gt, nil
}

// ListGroundTruths 列出标准答案集摘要
func (s *Service) ListGroundTruths(ctx context.Context, limit, offset int) ([]*model.GroundTruth, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.GroundTruth.List(ctx, limit, offset)
}

// UpdateGroundTruthRequest 更新标准答案集请求，零值字段不更新
type UpdateGroundTruthRequest struct {
	FileName  *string         `json:"file_name"`
	CreatedBy *string         `json:"created_by"`
	Notes     *string         `json:"notes"`
	Questions []QuestionInput `json:"questions"` // 非 nil 时整体替换
}

// UpdateGroundTruth 更新标准答案集，版本号自动递增
func (s *Service) UpdateGroundTruth(ctx context.Context, id string, req *UpdateGroundTruthRequest) (*model.GroundTruth, error) {
	gt, err := s.repo.GroundTruth.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ground truth not found: %w", err)
	}

	if req.FileName != nil {
		gt.FileName = *req.FileName
		gt.FileNameNormalized = normalizeFileName(*req.FileName)
	}
	if req.CreatedBy != nil {
		gt.CreatedBy = *req.CreatedBy
	}
	if req.Notes != nil {
		gt.Notes = *req.Notes
	}

	replaceQuestions := req.Questions != nil
	if replaceQuestions {
		questions, err := buildQuestions(gt.ID, req.Questions)
		if err != nil {
			return nil, err
		}
		gt.Questions = questions
		gt.QuestionCount = len(questions)
	}

	gt.Version++

	if err := s.repo.GroundTruth.Update(ctx, gt, replaceQuestions); err != nil {
		return nil, fmt.Errorf("failed to update ground truth: %w", err)
	}

	return gt, nil
}

// DeleteGroundTruth 删除标准答案集
func (s *Service) DeleteGroundTruth(ctx context.Context, id string) error {
	if _, err := s.repo.GroundTruth.GetByID(ctx, id); err != nil {
		return fmt.Errorf("ground truth not found: %w", err)
	}
	if err := s.repo.GroundTruth.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete ground truth: %w", err)
	}
	return nil
}
