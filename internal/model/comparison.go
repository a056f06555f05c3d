package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/surveyforge/qeval/internal/service/reconcile"
)

// ReportJSON 对账报告的 jsonb 列包装
type ReportJSON reconcile.Report

// Value 实现 driver.Valuer 接口
func (r ReportJSON) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan 实现 sql.Scanner 接口
func (r *ReportJSON) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, r)
}

// GormDataType 指定列类型
func (ReportJSON) GormDataType() string {
	return "jsonb"
}

// Comparison 一次对账结果：某次抽取运行对某份标准答案集
type Comparison struct {
	ID            string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	RunID         string `gorm:"type:varchar(36);not null;index" json:"run_id"`
	GroundTruthID string `gorm:"type:varchar(36);not null;index" json:"ground_truth_id"`
	MethodName    string `gorm:"size:128" json:"method_name"`
	ModelName     string `gorm:"size:128" json:"model_name"`

	// 标量指标展开成列，便于跨运行排序和选优
	TextMatchRate     float64 `gorm:"default:0" json:"text_match_rate"`
	CategoryMatchRate float64 `gorm:"default:0" json:"category_match_rate"`
	LabelMatchRate    float64 `gorm:"default:0" json:"label_match_rate"`
	OverallScore      float64 `gorm:"index;default:0" json:"overall_score"`
	Severity          string  `gorm:"size:16" json:"severity"`
	ExactCount        int     `gorm:"default:0" json:"exact_count"`
	FuzzyCount        int     `gorm:"default:0" json:"fuzzy_count"`
	MissingCount      int     `gorm:"default:0" json:"missing_count"`
	ExtraCount        int     `gorm:"default:0" json:"extra_count"`

	// 完整行式报告
	Report ReportJSON `gorm:"type:jsonb" json:"report"`

	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (Comparison) TableName() string {
	return "comparisons"
}

// BeforeCreate GORM 钩子，创建前生成 UUID
func (c *Comparison) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
