// Package ingest 接收外部抽取流水线产出的运行结果
package ingest

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/surveyforge/qeval/internal/model"
)

// PayloadQuestion LLM 产出 JSON 中的一条问题
type PayloadQuestion struct {
	QuestionText string   `json:"question_text"`
	HelpText     string   `json:"help_text"`
	QuestionType string   `json:"question_type"`
	Answers      []string `json:"answers"`
	Confidence   *float64 `json:"confidence"`
	SheetName    string   `json:"sheet_name"`
	RowIndex     int      `json:"row_index"`
}

// payloadEnvelope 兼容两种包裹形式：裸数组或 {"questions": [...]}
type payloadEnvelope struct {
	Questions []PayloadQuestion `json:"questions"`
}

// DecodePayload 解析 LLM 产出的问题列表 JSON
// LLM 输出常见截断、缺引号、markdown 围栏等问题，先尽量修复再解码
func DecodePayload(raw string) ([]PayloadQuestion, error) {
	s := stripFences(raw)
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("empty payload")
	}

	questions, err := decodeQuestions(s)
	if err == nil {
		return questions, nil
	}

	// 修复后重试一次
	repaired, repairErr := jsonrepair.JSONRepair(s)
	if repairErr != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}
	questions, err = decodeQuestions(repaired)
	if err != nil {
		return nil, fmt.Errorf("failed to decode repaired payload: %w", err)
	}
	return questions, nil
}

func decodeQuestions(s string) ([]PayloadQuestion, error) {
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "[") {
		var questions []PayloadQuestion
		if err := json.Unmarshal([]byte(trimmed), &questions); err != nil {
			return nil, err
		}
		return questions, nil
	}

	var envelope payloadEnvelope
	if err := json.Unmarshal([]byte(trimmed), &envelope); err != nil {
		return nil, err
	}
	if envelope.Questions == nil {
		return nil, fmt.Errorf("payload has no questions field")
	}
	return envelope.Questions, nil
}

// stripFences 去掉 markdown 代码围栏
func stripFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

// toModelQuestions 将载荷问题转换为入库模型
func toModelQuestions(runID string, payload []PayloadQuestion) ([]model.ExtractedQuestion, error) {
	questions := make([]model.ExtractedQuestion, 0, len(payload))
	for i, q := range payload {
		if strings.TrimSpace(q.QuestionText) == "" {
			return nil, fmt.Errorf("question %d: question_text is required", i)
		}
		qt := model.QuestionType(q.QuestionType)
		if q.QuestionType != "" && !model.ValidQuestionType(qt) {
			return nil, fmt.Errorf("question %d: unknown question_type %q", i, q.QuestionType)
		}
		questions = append(questions, model.ExtractedQuestion{
			RunID:        runID,
			QuestionText: q.QuestionText,
			HelpText:     q.HelpText,
			QuestionType: qt,
			Answers:      q.Answers,
			Confidence:   q.Confidence,
			SheetName:    q.SheetName,
			RowIndex:     q.RowIndex,
			Position:     i,
		})
	}
	return questions, nil
}
