package comparison

import (
	"testing"

	"github.com/surveyforge/qeval/internal/model"
)

// ========== 模型到对账记录的转换测试 ==========

func TestRecordsFromGroundTruth(t *testing.T) {
	questions := []model.GroundTruthQuestion{
		{
			ID:           "gq-1",
			QuestionText: "Do you have an environmental policy?",
			HelpText:     "Attach the policy document if available",
			QuestionType: model.QuestionTypeYesNo,
			Answers:      []string{"Yes", "No"},
			SheetName:    "Environment",
			RowIndex:     3,
			Problematic:  true,
		},
		{
			ID:           "gq-2",
			QuestionText: "What is your total revenue?",
		},
	}

	records := recordsFromGroundTruth(questions)
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	r := records[0]
	if r.ID != "gq-1" || r.PrimaryText != "Do you have an environmental policy?" {
		t.Errorf("record 0 identity = %+v", r)
	}
	if r.SecondaryText != "Attach the policy document if available" {
		t.Errorf("SecondaryText = %q", r.SecondaryText)
	}
	if r.Category != "yes_no" {
		t.Errorf("Category = %q, want yes_no", r.Category)
	}
	if len(r.Labels) != 2 {
		t.Errorf("Labels = %v", r.Labels)
	}
	if !r.Problematic {
		t.Error("Problematic flag lost in conversion")
	}
	if r.Origin == nil || r.Origin.SheetName != "Environment" || r.Origin.RowIndex != 3 {
		t.Errorf("Origin = %+v", r.Origin)
	}

	// 无来源信息时 Origin 应为 nil，而不是零值结构
	if records[1].Origin != nil {
		t.Errorf("record 1 Origin = %+v, want nil", records[1].Origin)
	}
}

func TestRecordsFromRun(t *testing.T) {
	conf := 0.8
	questions := []model.ExtractedQuestion{
		{
			ID:           "eq-1",
			QuestionText: "Do you have an environmental policy?",
			QuestionType: model.QuestionTypeYesNo,
			Answers:      []string{"Yes", "No"},
			Confidence:   &conf,
			SheetName:    "Environment",
			RowIndex:     3,
		},
	}

	records := recordsFromRun(questions)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	r := records[0]
	if r.ID != "eq-1" || r.Category != "yes_no" || len(r.Labels) != 2 {
		t.Errorf("record = %+v", r)
	}
	// 抽取侧没有人工标注，Problematic 恒为 false
	if r.Problematic {
		t.Error("extracted record must not be problematic")
	}
}

func TestOriginOf(t *testing.T) {
	if got := originOf("", 0); got != nil {
		t.Errorf("originOf(\"\", 0) = %+v, want nil", got)
	}
	if got := originOf("Sheet1", 0); got == nil || got.SheetName != "Sheet1" {
		t.Errorf("originOf(Sheet1, 0) = %+v", got)
	}
	if got := originOf("", 7); got == nil || got.RowIndex != 7 {
		t.Errorf("originOf(\"\", 7) = %+v", got)
	}
}
