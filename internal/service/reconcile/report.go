package reconcile

// ReportRow 对账报告中的一行
// 不变量：left/right 至少一侧非空；两侧都非空时 match_kind != none
type ReportRow struct {
	Left       *Record   `json:"left,omitempty"`
	Right      *Record   `json:"right,omitempty"`
	MatchKind  MatchKind `json:"match_kind"`
	Similarity *float64  `json:"similarity,omitempty"`

	// ExtraOccurrences 多出行合并后的其余右侧记录：
	// 规范化文本相同的多条"多出"记录折叠为一行，首条放在 Right
	ExtraOccurrences []Record `json:"extra_occurrences,omitempty"`

	// SiblingRows 左侧集合内重复文本的同组行位置（1 基），不含本行
	SiblingRows []int `json:"sibling_rows,omitempty"`
}

// Report 一次对账的行式结果
// 纯数据结构，可序列化，无循环引用，展示层消费
type Report struct {
	Rows       []ReportRow `json:"rows"`
	LeftCount  int         `json:"left_count"`
	RightCount int         `json:"right_count"`
}

// BuildReport 由对齐结果生成对账报告
//
// 行顺序：已匹配行和缺失行按左侧集合顺序排列，
// 多出行追加在后面，按右侧集合顺序、按规范化文本合并。
// 左侧集合内文本重复的行会互相携带对方的行位置（1 基），供人工复核。
func BuildReport(left, right []Record, alignment *Alignment) *Report {
	pairByLeft := make(map[int]Pair, len(alignment.Pairs))
	for _, p := range alignment.Pairs {
		pairByLeft[p.LeftIndex] = p
	}

	rows := make([]ReportRow, 0, len(left)+len(alignment.UnmatchedRight))

	// 已匹配 + 缺失，按左侧顺序
	for i := range left {
		l := left[i]
		if p, ok := pairByLeft[i]; ok {
			sim := p.Similarity
			r := right[p.RightIndex]
			rows = append(rows, ReportRow{
				Left:       &l,
				Right:      &r,
				MatchKind:  p.Kind,
				Similarity: &sim,
			})
		} else {
			rows = append(rows, ReportRow{
				Left:      &l,
				MatchKind: MatchNone,
			})
		}
	}

	// 多出行，按右侧顺序、按规范化文本合并
	extraRowByText := make(map[string]int)
	for _, j := range alignment.UnmatchedRight {
		r := right[j]
		text := Normalize(r.ComparisonText())
		if idx, ok := extraRowByText[text]; ok {
			rows[idx].ExtraOccurrences = append(rows[idx].ExtraOccurrences, r)
			continue
		}
		rows = append(rows, ReportRow{
			Right:     &r,
			MatchKind: MatchNone,
		})
		extraRowByText[text] = len(rows) - 1
	}

	attachDuplicateClusters(rows)

	return &Report{
		Rows:       rows,
		LeftCount:  len(left),
		RightCount: len(right),
	}
}

// attachDuplicateClusters 标注左侧重复文本的行组
func attachDuplicateClusters(rows []ReportRow) {
	byText := make(map[string][]int)
	for i := range rows {
		if rows[i].Left == nil {
			continue
		}
		text := Normalize(rows[i].Left.ComparisonText())
		byText[text] = append(byText[text], i)
	}

	for _, cluster := range byText {
		if len(cluster) < 2 {
			continue
		}
		for _, self := range cluster {
			siblings := make([]int, 0, len(cluster)-1)
			for _, other := range cluster {
				if other != self {
					siblings = append(siblings, other+1) // 行位置 1 基
				}
			}
			rows[self].SiblingRows = siblings
		}
	}
}
