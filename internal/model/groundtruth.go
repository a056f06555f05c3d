package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GroundTruth 某个源文件的人工标准答案集
type GroundTruth struct {
	ID                 string                `gorm:"primaryKey;type:varchar(36)" json:"id"`
	FileName           string                `gorm:"size:512;not null" json:"file_name"`
	FileNameNormalized string                `gorm:"size:512;index" json:"file_name_normalized"` // 小写去空白，按文件名查找用
	CreatedBy          string                `gorm:"size:255" json:"created_by"`
	Notes              string                `gorm:"type:text" json:"notes,omitempty"`
	Version            int                   `gorm:"default:1" json:"version"` // 每次更新自动递增
	QuestionCount      int                   `gorm:"default:0" json:"question_count"`
	Questions          []GroundTruthQuestion `gorm:"foreignKey:GroundTruthID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
	DeletedAt          gorm.DeletedAt        `gorm:"index" json:"-"`
}

// TableName 指定表名
func (GroundTruth) TableName() string {
	return "ground_truths"
}

// BeforeCreate GORM 钩子，创建前生成 UUID
func (g *GroundTruth) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	return nil
}

// GroundTruthQuestion 标准答案集中的一条问题
type GroundTruthQuestion struct {
	ID            string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	GroundTruthID string         `gorm:"type:varchar(36);not null;index" json:"ground_truth_id"`
	QuestionText  string         `gorm:"type:text;not null" json:"question_text"`
	HelpText      string         `gorm:"type:text" json:"help_text,omitempty"` // 帮助/说明文本
	QuestionType  QuestionType   `gorm:"size:32" json:"question_type"`
	Answers       pq.StringArray `gorm:"type:text[]" json:"answers"` // 答案选项
	SheetName     string         `gorm:"size:255" json:"sheet_name,omitempty"`
	RowIndex      int            `gorm:"default:0" json:"row_index,omitempty"`
	Problematic   bool           `gorm:"default:false" json:"problematic"` // 人工标注为有问题的条目
	Position      int            `gorm:"default:0" json:"position"`        // 集合内顺序
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// TableName 指定表名
func (GroundTruthQuestion) TableName() string {
	return "ground_truth_questions"
}

// BeforeCreate GORM 钩子
func (q *GroundTruthQuestion) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	return nil
}
