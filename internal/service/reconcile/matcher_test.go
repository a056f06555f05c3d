package reconcile

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"
)

// ========== 精确匹配测试 ==========

func TestMatch_ExactAfterNormalization(t *testing.T) {
	left := []Record{{ID: "gt-1", PrimaryText: "What is your revenue?"}}
	right := []Record{{ID: "ex-1", PrimaryText: "what is your revenue"}}

	alignment, err := Match(left, right)
	if err != nil {
		t.Fatalf("Match() error: %v", err)
	}

	if len(alignment.Pairs) != 1 {
		t.Fatalf("Pairs = %d, want 1", len(alignment.Pairs))
	}
	p := alignment.Pairs[0]
	if p.Kind != MatchExact {
		t.Errorf("Kind = %s, want exact", p.Kind)
	}
	if !almostEqual(p.Similarity, 1.0, 1e-9) {
		t.Errorf("Similarity = %v, want 1.0", p.Similarity)
	}
	if len(alignment.UnmatchedLeft) != 0 || len(alignment.UnmatchedRight) != 0 {
		t.Errorf("unexpected unmatched: left=%v right=%v",
			alignment.UnmatchedLeft, alignment.UnmatchedRight)
	}
}

func TestMatch_SecondaryTextJoinsComparison(t *testing.T) {
	left := []Record{{PrimaryText: "Rate our service", SecondaryText: "1 to 5"}}
	right := []Record{{PrimaryText: "Rate our service 1 to 5"}}

	alignment, err := Match(left, right)
	if err != nil {
		t.Fatalf("Match() error: %v", err)
	}
	if len(alignment.Pairs) != 1 || alignment.Pairs[0].Kind != MatchExact {
		t.Fatalf("expected one exact pair, got %+v", alignment.Pairs)
	}
}

// 右侧同文本多候选：标签相似度高者胜出，仍并列则取下标最小者
func TestMatch_ExactTieBreak(t *testing.T) {
	left := []Record{{
		PrimaryText: "Do you recycle?",
		Labels:      []string{"Yes", "No"},
	}}

	t.Run("higher label similarity wins", func(t *testing.T) {
		right := []Record{
			{ID: "r0", PrimaryText: "Do you recycle?", Labels: []string{"Often", "Never"}},
			{ID: "r1", PrimaryText: "Do you recycle?", Labels: []string{"Yes", "No"}},
		}
		alignment, err := Match(left, right)
		if err != nil {
			t.Fatalf("Match() error: %v", err)
		}
		if alignment.Pairs[0].RightIndex != 1 {
			t.Errorf("RightIndex = %d, want 1", alignment.Pairs[0].RightIndex)
		}
	})

	t.Run("remaining tie takes lowest right index", func(t *testing.T) {
		right := []Record{
			{ID: "r0", PrimaryText: "Do you recycle?", Labels: []string{"Yes", "No"}},
			{ID: "r1", PrimaryText: "Do you recycle?", Labels: []string{"Yes", "No"}},
		}
		alignment, err := Match(left, right)
		if err != nil {
			t.Fatalf("Match() error: %v", err)
		}
		if alignment.Pairs[0].RightIndex != 0 {
			t.Errorf("RightIndex = %d, want 0", alignment.Pairs[0].RightIndex)
		}
	})
}

// ========== 模糊匹配测试 ==========

func TestMatch_Fuzzy(t *testing.T) {
	left := []Record{{PrimaryText: "Describe your environmental policy in detail"}}
	right := []Record{{PrimaryText: "Describe your environmental policy"}}

	alignment, err := Match(left, right)
	if err != nil {
		t.Fatalf("Match() error: %v", err)
	}

	if len(alignment.Pairs) != 1 {
		t.Fatalf("Pairs = %d, want 1", len(alignment.Pairs))
	}
	p := alignment.Pairs[0]
	if p.Kind != MatchFuzzy {
		t.Errorf("Kind = %s, want fuzzy", p.Kind)
	}
	if p.Similarity < FuzzyThreshold || p.Similarity >= 1.0 {
		t.Errorf("Similarity = %v, want in [%v, 1)", p.Similarity, FuzzyThreshold)
	}
}

func TestMatch_FuzzyBelowThresholdStaysUnmatched(t *testing.T) {
	left := []Record{{PrimaryText: "Do you have an environmental policy?"}}
	right := []Record{{PrimaryText: "zzzz qqqq xxxx"}}

	alignment, err := Match(left, right)
	if err != nil {
		t.Fatalf("Match() error: %v", err)
	}
	if len(alignment.Pairs) != 0 {
		t.Fatalf("Pairs = %d, want 0", len(alignment.Pairs))
	}
	if !reflect.DeepEqual(alignment.UnmatchedLeft, []int{0}) {
		t.Errorf("UnmatchedLeft = %v, want [0]", alignment.UnmatchedLeft)
	}
	if !reflect.DeepEqual(alignment.UnmatchedRight, []int{0}) {
		t.Errorf("UnmatchedRight = %v, want [0]", alignment.UnmatchedRight)
	}
}

// 标签参与模糊候选的选择，但上报的相似度仍是文本分量
func TestMatch_FuzzyLabelsSteerSelection(t *testing.T) {
	left := []Record{{
		PrimaryText: "How satisfied are you with support",
		Labels:      []string{"Very", "Somewhat", "Not at all"},
	}}
	right := []Record{
		{ID: "r0", PrimaryText: "How satisfied are you with our support", Labels: []string{"Red", "Blue", "Green"}},
		{ID: "r1", PrimaryText: "How satisfied are you with the support", Labels: []string{"Very", "Somewhat", "Not at all"}},
	}

	alignment, err := Match(left, right)
	if err != nil {
		t.Fatalf("Match() error: %v", err)
	}
	if len(alignment.Pairs) != 1 {
		t.Fatalf("Pairs = %d, want 1", len(alignment.Pairs))
	}
	p := alignment.Pairs[0]
	if p.RightIndex != 1 {
		t.Errorf("RightIndex = %d, want 1 (label similarity should steer the tie)", p.RightIndex)
	}
	textOnly := TextSimilarity(left[0].PrimaryText, right[1].PrimaryText)
	if !almostEqual(p.Similarity, textOnly, 1e-9) {
		t.Errorf("Similarity = %v, want text component %v", p.Similarity, textOnly)
	}
}

// ========== 边界与前置条件 ==========

func TestMatch_EmptyCollections(t *testing.T) {
	tests := []struct {
		name           string
		left           []Record
		right          []Record
		wantLeftExtra  int
		wantRightExtra int
	}{
		{name: "both empty", left: nil, right: nil},
		{
			name:           "empty left",
			right:          []Record{{PrimaryText: "Extra question"}},
			wantRightExtra: 1,
		},
		{
			name:          "empty right",
			left:          []Record{{PrimaryText: "Missing question"}},
			wantLeftExtra: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alignment, err := Match(tt.left, tt.right)
			if err != nil {
				t.Fatalf("Match() error: %v", err)
			}
			if len(alignment.Pairs) != 0 {
				t.Errorf("Pairs = %d, want 0", len(alignment.Pairs))
			}
			if len(alignment.UnmatchedLeft) != tt.wantLeftExtra {
				t.Errorf("UnmatchedLeft = %v, want %d entries", alignment.UnmatchedLeft, tt.wantLeftExtra)
			}
			if len(alignment.UnmatchedRight) != tt.wantRightExtra {
				t.Errorf("UnmatchedRight = %v, want %d entries", alignment.UnmatchedRight, tt.wantRightExtra)
			}
		})
	}
}

func TestMatch_RejectsEmptyPrimaryText(t *testing.T) {
	left := []Record{{ID: "bad", PrimaryText: "   "}}
	right := []Record{{PrimaryText: "ok"}}

	if _, err := Match(left, right); err == nil {
		t.Fatal("Match() expected error for empty primary_text, got nil")
	}
	if _, err := Match(right, left); err == nil {
		t.Fatal("Match() expected error for empty primary_text on right side, got nil")
	}
}

// ========== 不变量（随机输入） ==========

// 一一对应：任何输入下左右下标都不会被复用，即使文本大量重复
func TestMatch_OneToOneInvariant(t *testing.T) {
	pool := []string{
		"Q1", "Q1", "Do you have a policy", "Do you have a policy!",
		"What is your revenue", "Describe your process", "Q2",
	}
	labelPool := [][]string{nil, {"Yes", "No"}, {"A", "B", "C"}, {"Yes"}}

	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 200; trial++ {
		left := randomRecords(rng, pool, labelPool)
		right := randomRecords(rng, pool, labelPool)

		alignment, err := Match(left, right)
		if err != nil {
			t.Fatalf("Match() error: %v", err)
		}

		seenLeft := map[int]bool{}
		seenRight := map[int]bool{}
		for _, p := range alignment.Pairs {
			if seenLeft[p.LeftIndex] {
				t.Fatalf("trial %d: left index %d reused", trial, p.LeftIndex)
			}
			if seenRight[p.RightIndex] {
				t.Fatalf("trial %d: right index %d reused", trial, p.RightIndex)
			}
			seenLeft[p.LeftIndex] = true
			seenRight[p.RightIndex] = true
		}
		for _, i := range alignment.UnmatchedLeft {
			if seenLeft[i] {
				t.Fatalf("trial %d: left index %d both matched and unmatched", trial, i)
			}
		}
		for _, j := range alignment.UnmatchedRight {
			if seenRight[j] {
				t.Fatalf("trial %d: right index %d both matched and unmatched", trial, j)
			}
		}
		if len(alignment.Pairs)+len(alignment.UnmatchedLeft) != len(left) {
			t.Fatalf("trial %d: left records unaccounted for", trial)
		}
		if len(alignment.Pairs)+len(alignment.UnmatchedRight) != len(right) {
			t.Fatalf("trial %d: right records unaccounted for", trial)
		}
	}
}

// 确定性：同样的输入反复匹配结果逐位一致
func TestMatch_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pool := []string{"Q1", "Q1", "Q2", "what is your revenue", "do you recycle"}
	labelPool := [][]string{nil, {"Yes", "No"}}

	left := randomRecords(rng, pool, labelPool)
	right := randomRecords(rng, pool, labelPool)

	first, err := Match(left, right)
	if err != nil {
		t.Fatalf("Match() error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Match(left, right)
		if err != nil {
			t.Fatalf("Match() error: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("Match not deterministic on call %d:\n%+v\nvs\n%+v", i, first, again)
		}
	}
}

func randomRecords(rng *rand.Rand, pool []string, labelPool [][]string) []Record {
	n := rng.Intn(8)
	records := make([]Record, n)
	for i := range records {
		records[i] = Record{
			ID:          fmt.Sprintf("rec-%d", i),
			PrimaryText: pool[rng.Intn(len(pool))],
			Labels:      labelPool[rng.Intn(len(labelPool))],
		}
	}
	return records
}
