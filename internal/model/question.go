// Package model 提供数据模型
package model

// QuestionType 问题类型（封闭集合）
type QuestionType string

const (
	QuestionTypeOpenEnded       QuestionType = "open_ended"       // 开放问答
	QuestionTypeSingleChoice    QuestionType = "single_choice"    // 单选
	QuestionTypeMultipleChoice  QuestionType = "multiple_choice"  // 多选
	QuestionTypeGroupedQuestion QuestionType = "grouped_question" // 组合题
	QuestionTypeYesNo           QuestionType = "yes_no"           // 是否题
	QuestionTypeNumeric         QuestionType = "numeric"          // 数值
	QuestionTypeInteger         QuestionType = "integer"          // 整数
	QuestionTypeDecimal         QuestionType = "decimal"          // 小数
)

// ValidQuestionType 判断是否为已知的问题类型
func ValidQuestionType(t QuestionType) bool {
	switch t {
	case QuestionTypeOpenEnded, QuestionTypeSingleChoice, QuestionTypeMultipleChoice,
		QuestionTypeGroupedQuestion, QuestionTypeYesNo, QuestionTypeNumeric,
		QuestionTypeInteger, QuestionTypeDecimal:
		return true
	}
	return false
}
