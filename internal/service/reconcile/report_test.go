package reconcile

import (
	"reflect"
	"testing"
)

func mustAlign(t *testing.T, left, right []Record) *Alignment {
	t.Helper()
	alignment, err := Match(left, right)
	if err != nil {
		t.Fatalf("Match() error: %v", err)
	}
	return alignment
}

// ========== 行构成与顺序 ==========

func TestBuildReport_RowOrder(t *testing.T) {
	left := []Record{
		{ID: "l0", PrimaryText: "First question"},
		{ID: "l1", PrimaryText: "Second question"},
		{ID: "l2", PrimaryText: "Third question"},
	}
	right := []Record{
		{ID: "r0", PrimaryText: "Third question"},
		{ID: "r1", PrimaryText: "Brand new question"},
		{ID: "r2", PrimaryText: "First question"},
	}

	report := BuildReport(left, right, mustAlign(t, left, right))

	if len(report.Rows) != 4 {
		t.Fatalf("Rows = %d, want 4", len(report.Rows))
	}

	// 匹配行与缺失行按左侧顺序
	wantLeftIDs := []string{"l0", "l1", "l2"}
	for i, want := range wantLeftIDs {
		if report.Rows[i].Left == nil || report.Rows[i].Left.ID != want {
			t.Errorf("row %d left = %+v, want id %s", i, report.Rows[i].Left, want)
		}
	}
	if report.Rows[0].MatchKind != MatchExact {
		t.Errorf("row 0 kind = %s, want exact", report.Rows[0].MatchKind)
	}
	if report.Rows[1].MatchKind == MatchExact {
		t.Errorf("row 1 should not be exact")
	}
	if report.Rows[2].MatchKind != MatchExact {
		t.Errorf("row 2 kind = %s, want exact", report.Rows[2].MatchKind)
	}

	// 多出行追加在最后
	last := report.Rows[3]
	if last.Left != nil || last.Right == nil || last.Right.ID != "r1" {
		t.Errorf("last row = %+v, want extra r1", last)
	}
	if last.MatchKind != MatchNone {
		t.Errorf("extra row kind = %s, want none", last.MatchKind)
	}
}

// 不变量：每行至少一侧非空；双侧非空的行 match_kind != none
func TestBuildReport_RowInvariant(t *testing.T) {
	left := []Record{
		{PrimaryText: "Q1"},
		{PrimaryText: "What is your revenue?"},
		{PrimaryText: "Unmatched left"},
	}
	right := []Record{
		{PrimaryText: "q1"},
		{PrimaryText: "what is your revenue"},
		{PrimaryText: "totally different extra"},
	}

	report := BuildReport(left, right, mustAlign(t, left, right))

	for i, row := range report.Rows {
		if row.Left == nil && row.Right == nil {
			t.Errorf("row %d has neither side populated", i)
		}
		if row.Left != nil && row.Right != nil && row.MatchKind == MatchNone {
			t.Errorf("row %d has both sides but kind none", i)
		}
		if row.MatchKind == MatchNone && row.Similarity != nil {
			t.Errorf("row %d unmatched but similarity set", i)
		}
	}
}

// ========== 重复文本聚类 ==========

// 左侧重复文本：一条匹配成功，另一条落为缺失，两行互相携带对方位置
func TestBuildReport_DuplicateClusters(t *testing.T) {
	left := []Record{
		{ID: "l0", PrimaryText: "Q1"},
		{ID: "l1", PrimaryText: "Q1"},
	}
	right := []Record{
		{ID: "r0", PrimaryText: "Q1"},
	}

	report := BuildReport(left, right, mustAlign(t, left, right))

	if len(report.Rows) != 2 {
		t.Fatalf("Rows = %d, want 2", len(report.Rows))
	}

	matched := report.Rows[0]
	missing := report.Rows[1]
	if matched.MatchKind != MatchExact || matched.Right == nil {
		t.Errorf("row 1 = %+v, want exact match", matched)
	}
	if missing.MatchKind != MatchNone || missing.Right != nil {
		t.Errorf("row 2 = %+v, want missing", missing)
	}

	// 位置是 1 基且不含本行
	if !reflect.DeepEqual(matched.SiblingRows, []int{2}) {
		t.Errorf("row 1 siblings = %v, want [2]", matched.SiblingRows)
	}
	if !reflect.DeepEqual(missing.SiblingRows, []int{1}) {
		t.Errorf("row 2 siblings = %v, want [1]", missing.SiblingRows)
	}
}

func TestBuildReport_TripleDuplicateCluster(t *testing.T) {
	left := []Record{
		{PrimaryText: "Same text"},
		{PrimaryText: "Other"},
		{PrimaryText: "same text!"},
		{PrimaryText: "SAME TEXT"},
	}
	right := []Record{}

	report := BuildReport(left, right, mustAlign(t, left, right))

	wantSiblings := map[int][]int{
		0: {3, 4},
		2: {1, 4},
		3: {1, 3},
	}
	for rowIdx, want := range wantSiblings {
		if !reflect.DeepEqual(report.Rows[rowIdx].SiblingRows, want) {
			t.Errorf("row %d siblings = %v, want %v", rowIdx, report.Rows[rowIdx].SiblingRows, want)
		}
	}
	if report.Rows[1].SiblingRows != nil {
		t.Errorf("row 1 should have no siblings, got %v", report.Rows[1].SiblingRows)
	}
}

// ========== 多出行合并 ==========

// 规范化文本相同的多出行折叠为一行，其余记录进 ExtraOccurrences
func TestBuildReport_MergesDuplicateExtras(t *testing.T) {
	left := []Record{}
	right := []Record{
		{ID: "r0", PrimaryText: "Novel question?"},
		{ID: "r1", PrimaryText: "Another one"},
		{ID: "r2", PrimaryText: "novel question"},
	}

	report := BuildReport(left, right, mustAlign(t, left, right))

	if len(report.Rows) != 2 {
		t.Fatalf("Rows = %d, want 2 (merged extras)", len(report.Rows))
	}

	first := report.Rows[0]
	if first.Right == nil || first.Right.ID != "r0" {
		t.Fatalf("row 0 = %+v, want right r0", first)
	}
	if len(first.ExtraOccurrences) != 1 || first.ExtraOccurrences[0].ID != "r2" {
		t.Errorf("row 0 occurrences = %+v, want [r2]", first.ExtraOccurrences)
	}

	second := report.Rows[1]
	if second.Right == nil || second.Right.ID != "r1" || len(second.ExtraOccurrences) != 0 {
		t.Errorf("row 1 = %+v, want plain extra r1", second)
	}
}

// 空左侧集合：一行 left=nil 的多出记录
func TestBuildReport_EmptyLeft(t *testing.T) {
	left := []Record{}
	right := []Record{{ID: "r0", PrimaryText: "Extra question"}}

	report := BuildReport(left, right, mustAlign(t, left, right))

	if len(report.Rows) != 1 {
		t.Fatalf("Rows = %d, want 1", len(report.Rows))
	}
	row := report.Rows[0]
	if row.Left != nil || row.Right == nil || row.MatchKind != MatchNone {
		t.Errorf("row = %+v, want extra-only row", row)
	}
	if report.LeftCount != 0 || report.RightCount != 1 {
		t.Errorf("counts = (%d, %d), want (0, 1)", report.LeftCount, report.RightCount)
	}
}

// problematic 标注原样透传到报告行
func TestBuildReport_ProblematicPassThrough(t *testing.T) {
	left := []Record{{ID: "l0", PrimaryText: "Q1", Problematic: true}}
	right := []Record{{ID: "r0", PrimaryText: "Q1"}}

	report := BuildReport(left, right, mustAlign(t, left, right))

	if !report.Rows[0].Left.Problematic {
		t.Error("problematic annotation dropped on matched row")
	}
}
