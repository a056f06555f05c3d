package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/surveyforge/qeval/internal/model"
)

// FileRepository 文件仓库
type FileRepository struct {
	db *gorm.DB
}

// NewFileRepository 创建文件仓库
func NewFileRepository(db *gorm.DB) *FileRepository {
	return &FileRepository{db: db}
}

// Create 创建文件记录
func (r *FileRepository) Create(ctx context.Context, file *model.StoredFile) error {
	return r.db.WithContext(ctx).Create(file).Error
}

// GetByID 根据 ID 获取文件
func (r *FileRepository) GetByID(ctx context.Context, id string) (*model.StoredFile, error) {
	var file model.StoredFile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&file).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// List 列出文件
func (r *FileRepository) List(ctx context.Context, limit, offset int) ([]*model.StoredFile, int64, error) {
	var files []*model.StoredFile
	var total int64

	query := r.db.WithContext(ctx).Model(&model.StoredFile{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Limit(limit).Offset(offset).Order("created_at DESC").Find(&files).Error
	return files, total, err
}

// Delete 删除文件记录
func (r *FileRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.StoredFile{}, "id = ?", id).Error
}
