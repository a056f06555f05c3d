package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/surveyforge/qeval/internal/model"
)

// RunRepository 抽取运行仓库
type RunRepository struct {
	db *gorm.DB
}

// NewRunRepository 创建抽取运行仓库
func NewRunRepository(db *gorm.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create 创建运行记录（连同问题）
func (r *RunRepository) Create(ctx context.Context, run *model.ExtractionRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

// GetByID 根据 ID 获取运行，包含全部问题
func (r *RunRepository) GetByID(ctx context.Context, id string) (*model.ExtractionRun, error) {
	var run model.ExtractionRun
	err := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", id).First(&run).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// List 列出运行（支持按文件筛选和分页，不带问题）
func (r *RunRepository) List(ctx context.Context, fileID string, limit, offset int) ([]*model.ExtractionRun, int64, error) {
	var runs []*model.ExtractionRun
	var total int64

	query := r.db.WithContext(ctx).Model(&model.ExtractionRun{})
	if fileID != "" {
		query = query.Where("file_id = ?", fileID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Limit(limit).Offset(offset).Order("created_at DESC").Find(&runs).Error
	return runs, total, err
}

// ListByFileName 列出某个源文件的全部运行（跨方法比较用）
func (r *RunRepository) ListByFileName(ctx context.Context, fileName string) ([]*model.ExtractionRun, error) {
	var runs []*model.ExtractionRun
	err := r.db.WithContext(ctx).
		Where("file_name = ? AND status = ?", fileName, model.RunStatusCompleted).
		Order("created_at ASC").
		Find(&runs).Error
	return runs, err
}

// UpdateStatus 更新运行状态
func (r *RunRepository) UpdateStatus(ctx context.Context, id string, status model.RunStatus, errorMsg string) error {
	return r.db.WithContext(ctx).Model(&model.ExtractionRun{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":    status,
		"error_msg": errorMsg,
	}).Error
}

// Delete 删除运行
func (r *RunRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("run_id = ?", id).
			Delete(&model.ExtractedQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.ExtractionRun{}, "id = ?", id).Error
	})
}
