package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/surveyforge/qeval/internal/model"
)

// ComparisonRepository 对账结果仓库
type ComparisonRepository struct {
	db *gorm.DB
}

// NewComparisonRepository 创建对账结果仓库
func NewComparisonRepository(db *gorm.DB) *ComparisonRepository {
	return &ComparisonRepository{db: db}
}

// Create 保存对账结果
func (r *ComparisonRepository) Create(ctx context.Context, cmp *model.Comparison) error {
	return r.db.WithContext(ctx).Create(cmp).Error
}

// GetByID 根据 ID 获取对账结果
func (r *ComparisonRepository) GetByID(ctx context.Context, id string) (*model.Comparison, error) {
	var cmp model.Comparison
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&cmp).Error
	if err != nil {
		return nil, err
	}
	return &cmp, nil
}

// GetLatestByRun 获取某次运行最近的对账结果
func (r *ComparisonRepository) GetLatestByRun(ctx context.Context, runID string) (*model.Comparison, error) {
	var cmp model.Comparison
	err := r.db.WithContext(ctx).
		Where("run_id = ?", runID).
		Order("created_at DESC").
		First(&cmp).Error
	if err != nil {
		return nil, err
	}
	return &cmp, nil
}

// List 列出对账结果（支持按标准答案集筛选和分页）
func (r *ComparisonRepository) List(ctx context.Context, groundTruthID string, limit, offset int) ([]*model.Comparison, int64, error) {
	var cmps []*model.Comparison
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Comparison{})
	if groundTruthID != "" {
		query = query.Where("ground_truth_id = ?", groundTruthID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Limit(limit).Offset(offset).Order("created_at DESC").Find(&cmps).Error
	return cmps, total, err
}

// ListByGroundTruth 列出某份标准答案集的全部对账结果（选优用）
func (r *ComparisonRepository) ListByGroundTruth(ctx context.Context, groundTruthID string) ([]*model.Comparison, error) {
	var cmps []*model.Comparison
	err := r.db.WithContext(ctx).
		Where("ground_truth_id = ?", groundTruthID).
		Order("overall_score DESC").
		Find(&cmps).Error
	return cmps, err
}

// Delete 删除对账结果
func (r *ComparisonRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Comparison{}, "id = ?", id).Error
}
