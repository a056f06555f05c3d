// Package repository 数据访问层
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/surveyforge/qeval/internal/model"
)

// GroundTruthRepository 标准答案集仓库
type GroundTruthRepository struct {
	db *gorm.DB
}

// NewGroundTruthRepository 创建标准答案集仓库
func NewGroundTruthRepository(db *gorm.DB) *GroundTruthRepository {
	return &GroundTruthRepository{db: db}
}

// Create 创建标准答案集（连同问题）
func (r *GroundTruthRepository) Create(ctx context.Context, gt *model.GroundTruth) error {
	return r.db.WithContext(ctx).Create(gt).Error
}

// GetByID 根据 ID 获取标准答案集，包含全部问题
func (r *GroundTruthRepository) GetByID(ctx context.Context, id string) (*model.GroundTruth, error) {
	var gt model.GroundTruth
	err := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", id).First(&gt).Error
	if err != nil {
		return nil, err
	}
	return &gt, nil
}

// GetByNormalizedFileName 按规范化文件名查找
func (r *GroundTruthRepository) GetByNormalizedFileName(ctx context.Context, name string) (*model.GroundTruth, error) {
	var gt model.GroundTruth
	err := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("file_name_normalized = ?", name).
		Order("updated_at DESC").
		First(&gt).Error
	if err != nil {
		return nil, err
	}
	return &gt, nil
}

// List 列出标准答案集（不带问题，摘要用）
func (r *GroundTruthRepository) List(ctx context.Context, limit, offset int) ([]*model.GroundTruth, int64, error) {
	var gts []*model.GroundTruth
	var total int64

	query := r.db.WithContext(ctx).Model(&model.GroundTruth{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Limit(limit).Offset(offset).Order("updated_at DESC").Find(&gts).Error
	return gts, total, err
}

// Update 更新标准答案集，问题整体替换
func (r *GroundTruthRepository) Update(ctx context.Context, gt *model.GroundTruth, replaceQuestions bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if replaceQuestions {
			if err := tx.Where("ground_truth_id = ?", gt.ID).
				Delete(&model.GroundTruthQuestion{}).Error; err != nil {
				return err
			}
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: replaceQuestions}).Save(gt).Error
	})
}

// Delete 删除标准答案集
func (r *GroundTruthRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ground_truth_id = ?", id).
			Delete(&model.GroundTruthQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.GroundTruth{}, "id = ?", id).Error
	})
}
