package file

import (
	"context"
	"fmt"
	"io"

	"github.com/surveyforge/qeval/internal/config"
	"github.com/surveyforge/qeval/internal/model"
	"github.com/surveyforge/qeval/internal/repository"
)

// Service 文件服务
type Service struct {
	repo     *repository.Repositories
	storage  Storage
	maxBytes int64 // 单文件大小上限，0 表示不限制
}

// NewService 创建文件服务
func NewService(repo *repository.Repositories, storage Storage, maxSizeMB int64) *Service {
	return &Service{
		repo:     repo,
		storage:  storage,
		maxBytes: maxSizeMB * 1024 * 1024,
	}
}

// NewServiceFromConfig 从配置创建文件服务
func NewServiceFromConfig(repo *repository.Repositories, cfg *config.Config) (*Service, error) {
	storage, err := NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.URLPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage: %w", err)
	}
	return NewService(repo, storage, cfg.Storage.MaxSizeMB), nil
}

// SaveFileRequest 保存文件请求
type SaveFileRequest struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// SaveFile 保存文件
func (s *Service) SaveFile(ctx context.Context, req *SaveFileRequest) (*model.StoredFile, error) {
	if s.maxBytes > 0 && req.Size > s.maxBytes {
		return nil, fmt.Errorf("file %q exceeds size limit (%d bytes)", req.FileName, s.maxBytes)
	}

	// 使用存储服务保存文件
	filePath, err := s.storage.Save(ctx, &SaveRequest{
		FileName:    req.FileName,
		ContentType: req.ContentType,
		Size:        req.Size,
		Reader:      req.Reader,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	// 创建文件记录
	storedFile := &model.StoredFile{
		FileName:    req.FileName,
		FileSize:    req.Size,
		ContentType: req.ContentType,
		FilePath:    filePath,
	}

	// 保存到数据库
	if err := s.repo.File.Create(ctx, storedFile); err != nil {
		// 如果数据库保存失败，删除已保存的文件
		_ = s.storage.Delete(ctx, filePath)
		return nil, fmt.Errorf("failed to save file record: %w", err)
	}

	return storedFile, nil
}

// GetFile 获取文件元信息和内容
func (s *Service) GetFile(ctx context.Context, id string) (*model.StoredFile, io.ReadCloser, error) {
	storedFile, err := s.repo.File.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("file not found: %w", err)
	}

	reader, err := s.storage.Get(ctx, storedFile.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get file content: %w", err)
	}

	return storedFile, reader, nil
}

// ListFiles 列出文件
func (s *Service) ListFiles(ctx context.Context, limit, offset int) ([]*model.StoredFile, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.File.List(ctx, limit, offset)
}

// DeleteFile 删除文件
func (s *Service) DeleteFile(ctx context.Context, id string) error {
	storedFile, err := s.repo.File.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("file not found: %w", err)
	}

	// 从存储中删除
	if err := s.storage.Delete(ctx, storedFile.FilePath); err != nil {
		return fmt.Errorf("failed to delete file from storage: %w", err)
	}

	// 从数据库删除
	if err := s.repo.File.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete file record: %w", err)
	}

	return nil
}

// GetFileURL 获取文件访问URL
func (s *Service) GetFileURL(ctx context.Context, id string) (string, error) {
	storedFile, err := s.repo.File.GetByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("file not found: %w", err)
	}

	return s.storage.GetURL(storedFile.FilePath), nil
}
