package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// RunStatus 抽取运行状态
type RunStatus string

const (
	RunStatusPending   RunStatus = "pending"   // 待接收结果
	RunStatusCompleted RunStatus = "completed" // 结果已入库
	RunStatusFailed    RunStatus = "failed"    // 抽取侧上报失败
)

// ExtractionRun 一次 LLM 抽取运行的结果集
// 抽取本身由外部流水线完成，这里只接收并保存其产出
type ExtractionRun struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	FileID     string    `gorm:"type:varchar(36);index" json:"file_id"`
	FileName   string    `gorm:"size:512" json:"file_name"`
	MethodName string    `gorm:"size:128;not null" json:"method_name"` // 抽取方法标识（结构化，不再编码进字符串）
	ModelName  string    `gorm:"size:128;not null" json:"model_name"`  // 使用的 LLM 模型
	Status     RunStatus `gorm:"size:20;default:'pending'" json:"status"`
	ErrorMsg   string    `gorm:"type:text" json:"error_msg,omitempty"`

	QuestionCount int   `gorm:"default:0" json:"question_count"`
	DurationMs    int64 `gorm:"default:0" json:"duration_ms"` // 抽取侧上报的总耗时
	TokensInput   int64 `gorm:"default:0" json:"tokens_input"`
	TokensOutput  int64 `gorm:"default:0" json:"tokens_output"`

	Questions []ExtractedQuestion `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (ExtractionRun) TableName() string {
	return "extraction_runs"
}

// BeforeCreate GORM 钩子，创建前生成 UUID
func (r *ExtractionRun) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// ApproachTag 一次运行的结构化标识（方法 + 模型）
type ApproachTag struct {
	MethodName string `json:"method_name"`
	ModelName  string `json:"model_name"`
}

// Tag 返回运行的结构化标识
func (r *ExtractionRun) Tag() ApproachTag {
	return ApproachTag{MethodName: r.MethodName, ModelName: r.ModelName}
}

// ExtractedQuestion LLM 抽取出的一条问题
type ExtractedQuestion struct {
	ID           string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	RunID        string         `gorm:"type:varchar(36);not null;index" json:"run_id"`
	QuestionText string         `gorm:"type:text;not null" json:"question_text"`
	HelpText     string         `gorm:"type:text" json:"help_text,omitempty"`
	QuestionType QuestionType   `gorm:"size:32" json:"question_type"`
	Answers      pq.StringArray `gorm:"type:text[]" json:"answers"`
	Confidence   *float64       `json:"confidence,omitempty"` // LLM 评审给出的置信度（可选）
	SheetName    string         `gorm:"size:255" json:"sheet_name,omitempty"`
	RowIndex     int            `gorm:"default:0" json:"row_index,omitempty"`
	Position     int            `gorm:"default:0" json:"position"` // 集合内顺序
	CreatedAt    time.Time      `json:"created_at"`
}

// TableName 指定表名
func (ExtractedQuestion) TableName() string {
	return "extracted_questions"
}

// BeforeCreate GORM 钩子
func (q *ExtractedQuestion) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	return nil
}
