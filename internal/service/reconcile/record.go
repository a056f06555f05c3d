// Package reconcile 提供抽取结果与标准答案集之间的对账引擎
//
// 核心是一个纯函数流水线：两个问题集合 → 贪心配对 → 对账报告 → 指标汇总。
// 无 I/O、无共享状态，同样的输入永远产生同样的输出。
package reconcile

import (
	"fmt"
	"strings"
)

// Record 一条待对账的问题记录（抽取结果或标准答案）
type Record struct {
	ID            string   `json:"id"`
	PrimaryText   string   `json:"primary_text"`             // 问题文本（必填）
	SecondaryText string   `json:"secondary_text,omitempty"` // 帮助/说明文本，参与比较文本拼接
	Category      string   `json:"category,omitempty"`       // 问题类型，参与属性打分，不参与对齐
	Labels        []string `json:"labels,omitempty"`         // 答案选项集合（视为无序）
	Origin        *Origin  `json:"origin,omitempty"`         // 来源信息，仅用于展示
	Problematic   bool     `json:"problematic,omitempty"`    // 人工标注的问题记录，原样透传
}

// Origin 记录来源（表名 + 行号），不参与任何打分
type Origin struct {
	SheetName string `json:"sheet_name,omitempty"`
	RowIndex  int    `json:"row_index,omitempty"`
}

// ComparisonText 返回用于匹配的比较文本
// 主文本与辅助文本的拼接是确定性的，两侧集合使用同一规则
func (r *Record) ComparisonText() string {
	if strings.TrimSpace(r.SecondaryText) == "" {
		return r.PrimaryText
	}
	return r.PrimaryText + " " + r.SecondaryText
}

// ValidateRecords 校验记录集合的前置条件
// primary_text 缺失属于数据质量问题，必须在匹配前拒绝，
// 而不是悄悄当作空串处理成"完美的空匹配"
func ValidateRecords(records []Record) error {
	for i := range records {
		if strings.TrimSpace(records[i].PrimaryText) == "" {
			return fmt.Errorf("record %d (id=%q): primary_text is required", i, records[i].ID)
		}
	}
	return nil
}
