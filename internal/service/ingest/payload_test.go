package ingest

import "testing"

// ========== 载荷解析测试 ==========

func TestDecodePayload(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantCount int
		wantErr   bool
	}{
		{
			name:      "bare array",
			raw:       `[{"question_text": "Q1"}, {"question_text": "Q2"}]`,
			wantCount: 2,
		},
		{
			name:      "questions envelope",
			raw:       `{"questions": [{"question_text": "Q1", "question_type": "yes_no", "answers": ["Yes", "No"]}]}`,
			wantCount: 1,
		},
		{
			name: "markdown fenced",
			raw: "```json\n" +
				`{"questions": [{"question_text": "Q1"}]}` +
				"\n```",
			wantCount: 1,
		},
		{
			name:      "truncated json gets repaired",
			raw:       `{"questions": [{"question_text": "Q1"}, {"question_text": "Q2"`,
			wantCount: 2,
		},
		{
			name:      "single quotes get repaired",
			raw:       `[{'question_text': 'Q1'}]`,
			wantCount: 1,
		},
		{
			name:    "empty",
			raw:     "   ",
			wantErr: true,
		},
		{
			name:    "no questions field",
			raw:     `{"data": []}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			questions, err := DecodePayload(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("DecodePayload() expected error, got %d questions", len(questions))
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodePayload() error: %v", err)
			}
			if len(questions) != tt.wantCount {
				t.Errorf("DecodePayload() = %d questions, want %d", len(questions), tt.wantCount)
			}
		})
	}
}

func TestToModelQuestions(t *testing.T) {
	t.Run("fields carried over with position", func(t *testing.T) {
		conf := 0.9
		payload := []PayloadQuestion{
			{QuestionText: "Q1", QuestionType: "yes_no", Answers: []string{"Yes", "No"}, Confidence: &conf},
			{QuestionText: "Q2", SheetName: "Sheet1", RowIndex: 4},
		}

		questions, err := toModelQuestions("run-1", payload)
		if err != nil {
			t.Fatalf("toModelQuestions() error: %v", err)
		}
		if len(questions) != 2 {
			t.Fatalf("got %d questions, want 2", len(questions))
		}
		if questions[0].RunID != "run-1" || questions[0].Position != 0 {
			t.Errorf("question 0 = %+v", questions[0])
		}
		if questions[1].Position != 1 || questions[1].SheetName != "Sheet1" {
			t.Errorf("question 1 = %+v", questions[1])
		}
	})

	t.Run("empty question text rejected", func(t *testing.T) {
		if _, err := toModelQuestions("r", []PayloadQuestion{{QuestionText: "  "}}); err == nil {
			t.Fatal("expected error for empty question_text")
		}
	})

	t.Run("unknown question type rejected", func(t *testing.T) {
		if _, err := toModelQuestions("r", []PayloadQuestion{{QuestionText: "Q", QuestionType: "bogus"}}); err == nil {
			t.Fatal("expected error for unknown question_type")
		}
	})
}
