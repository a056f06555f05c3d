package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StoredFile 上传的源表格文件信息
// 表格内容的解析发生在抽取流水线一侧，这里只保存字节和元数据
type StoredFile struct {
	ID          string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	FileName    string         `gorm:"size:512;not null" json:"file_name"`
	FileSize    int64          `gorm:"default:0" json:"file_size"`
	ContentType string         `gorm:"size:128" json:"content_type"`
	FilePath    string         `gorm:"size:1024" json:"file_path"` // 本地存储路径
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (StoredFile) TableName() string {
	return "stored_files"
}

// BeforeCreate GORM 钩子，创建前生成 UUID
func (f *StoredFile) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return nil
}
