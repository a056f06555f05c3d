package reconcile

// MatchKind 匹配类型
type MatchKind string

const (
	MatchExact MatchKind = "exact" // 规范化文本完全相等
	MatchFuzzy MatchKind = "fuzzy" // 相似度达到阈值的模糊匹配
	MatchNone  MatchKind = "none"  // 未匹配
)

// FuzzyThreshold 模糊匹配的最低文本相似度
const FuzzyThreshold = 0.6

// 模糊匹配综合打分时文本与标签各占的权重
const (
	fuzzyTextWeight  = 0.5
	fuzzyLabelWeight = 0.5
)

// Pair 一对已匹配的记录（按各自集合中的下标引用）
type Pair struct {
	LeftIndex  int       `json:"left_index"`
	RightIndex int       `json:"right_index"`
	Kind       MatchKind `json:"kind"`
	Similarity float64   `json:"similarity"` // 文本相似度分量，exact 恒为 1.0
}

// Alignment 两个集合的一一对齐结果
type Alignment struct {
	Pairs          []Pair `json:"pairs"`
	UnmatchedLeft  []int  `json:"unmatched_left"`  // 左侧未匹配下标（缺失）
	UnmatchedRight []int  `json:"unmatched_right"` // 右侧未匹配下标（多出）
}

// matchSide 单侧记录的预计算视图
type matchSide struct {
	texts  []string              // 规范化后的比较文本
	labels []map[string]struct{} // 规范化后的标签集合
}

func precompute(records []Record) *matchSide {
	s := &matchSide{
		texts:  make([]string, len(records)),
		labels: make([]map[string]struct{}, len(records)),
	}
	for i := range records {
		s.texts[i] = Normalize(records[i].ComparisonText())
		s.labels[i] = normalizeLabels(records[i].Labels)
	}
	return s
}

// Match 对两个记录集合做贪心的一一对齐
//
// 两趟扫描，迭代顺序固定为左侧集合顺序：
// 第一趟按规范化文本精确匹配，同文本多候选时取标签相似度最高者，
// 仍并列取右侧下标最小者；第二趟对剩余记录做阈值模糊匹配。
// 贪心而非最优二分图匹配是既定行为：对抗性输入可能产生局部次优的
// 全局对齐，下游指标依赖这一可预测的语义。
//
// 空集合是合法输入；含空 primary_text 的记录被拒绝。
func Match(left, right []Record) (*Alignment, error) {
	if err := ValidateRecords(left); err != nil {
		return nil, err
	}
	if err := ValidateRecords(right); err != nil {
		return nil, err
	}

	ls := precompute(left)
	rs := precompute(right)

	leftMatched := make([]bool, len(left))
	rightMatched := make([]bool, len(right))
	pairs := make([]Pair, 0, len(left))

	// ========== 第一趟：精确匹配 ==========
	for i := range left {
		best := -1
		bestLabelSim := -1.0
		for j := range right {
			if rightMatched[j] || rs.texts[j] != ls.texts[i] {
				continue
			}
			labelSim := labelSetSimilarity(ls.labels[i], rs.labels[j])
			if labelSim > bestLabelSim {
				best = j
				bestLabelSim = labelSim
			}
		}
		if best >= 0 {
			leftMatched[i] = true
			rightMatched[best] = true
			pairs = append(pairs, Pair{
				LeftIndex:  i,
				RightIndex: best,
				Kind:       MatchExact,
				Similarity: 1.0,
			})
		}
	}

	// ========== 第二趟：模糊匹配 ==========
	for i := range left {
		if leftMatched[i] {
			continue
		}
		best := -1
		bestCombined := -1.0
		bestTextSim := 0.0
		for j := range right {
			if rightMatched[j] {
				continue
			}
			textSim := normalizedTextSimilarity(ls.texts[i], rs.texts[j])
			if textSim < FuzzyThreshold {
				continue
			}
			combined := textSim
			if len(ls.labels[i]) > 0 {
				labelSim := labelSetSimilarity(ls.labels[i], rs.labels[j])
				combined = fuzzyTextWeight*textSim + fuzzyLabelWeight*labelSim
			}
			if combined > bestCombined {
				best = j
				bestCombined = combined
				bestTextSim = textSim
			}
		}
		if best >= 0 {
			leftMatched[i] = true
			rightMatched[best] = true
			pairs = append(pairs, Pair{
				LeftIndex:  i,
				RightIndex: best,
				Kind:       MatchFuzzy,
				Similarity: bestTextSim, // 报告中只给文本分量，标签只参与选择
			})
		}
	}

	alignment := &Alignment{
		Pairs:          pairs,
		UnmatchedLeft:  []int{},
		UnmatchedRight: []int{},
	}
	for i := range left {
		if !leftMatched[i] {
			alignment.UnmatchedLeft = append(alignment.UnmatchedLeft, i)
		}
	}
	for j := range right {
		if !rightMatched[j] {
			alignment.UnmatchedRight = append(alignment.UnmatchedRight, j)
		}
	}

	return alignment, nil
}
