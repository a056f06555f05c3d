package reconcile

// 总分加权是固定的既定策略，不是推导值
const (
	overallTextWeight     = 0.5
	overallCategoryWeight = 0.3
	overallLabelWeight    = 0.2
)

// Severity 指标展示用的严重程度分档
type Severity string

const (
	SeverityGood Severity = "good"
	SeverityWarn Severity = "warn"
	SeverityPoor Severity = "poor"
)

// 分档边界（按 overall_score）
const (
	severityGoodFloor = 0.85
	severityWarnFloor = 0.6
)

// Metrics 一份对账报告的标量指标
// 按需从报告重新计算，不独立于报告被修改
type Metrics struct {
	TextMatchRate     float64  `json:"text_match_rate"`     // (exact+fuzzy) / |left|，左侧为空时为 0
	CategoryMatchRate float64  `json:"category_match_rate"` // 类型一致的配对占比，无配对时为 0
	LabelMatchRate    float64  `json:"label_match_rate"`    // 标签相等的配对占比，左侧均无标签时恒为 1.0
	OverallScore      float64  `json:"overall_score"`
	Severity          Severity `json:"severity"`

	ExactCount   int `json:"exact_count"`
	FuzzyCount   int `json:"fuzzy_count"`
	MissingCount int `json:"missing_count"`
	ExtraCount   int `json:"extra_count"`

	// 行位置（1 基），供操作员在报告中下钻
	MissingRowPositions []int `json:"missing_row_positions"`
	ExtraRowPositions   []int `json:"extra_row_positions"`
}

// Aggregate 将对账报告归约为标量指标
// 报告的纯函数，每次调用都重新计算，无副作用
func Aggregate(report *Report) *Metrics {
	m := &Metrics{
		MissingRowPositions: []int{},
		ExtraRowPositions:   []int{},
	}

	categoryMatched := 0
	labelEligible := 0 // 左侧有非空标签的配对数
	labelMatched := 0

	for i := range report.Rows {
		row := &report.Rows[i]
		switch {
		case row.Left != nil && row.Right != nil:
			if row.MatchKind == MatchExact {
				m.ExactCount++
			} else {
				m.FuzzyCount++
			}
			if row.Left.Category == row.Right.Category {
				categoryMatched++
			}
			leftLabels := normalizeLabels(row.Left.Labels)
			if len(leftLabels) > 0 {
				labelEligible++
				if labelSetsEqual(leftLabels, normalizeLabels(row.Right.Labels)) {
					labelMatched++
				}
			}
		case row.Left != nil:
			m.MissingCount++
			m.MissingRowPositions = append(m.MissingRowPositions, i+1)
		default:
			m.ExtraCount++
			m.ExtraRowPositions = append(m.ExtraRowPositions, i+1)
		}
	}

	matched := m.ExactCount + m.FuzzyCount

	// 所有除零场景都有显式定义值："没有数据"是交互比较中的合法稳态
	if report.LeftCount > 0 {
		m.TextMatchRate = float64(matched) / float64(report.LeftCount)
	}
	if matched > 0 {
		m.CategoryMatchRate = float64(categoryMatched) / float64(matched)
	}
	if labelEligible > 0 {
		m.LabelMatchRate = float64(labelMatched) / float64(labelEligible)
	} else {
		m.LabelMatchRate = 1.0 // 空泛成立
	}

	m.OverallScore = overallTextWeight*m.TextMatchRate +
		overallCategoryWeight*m.CategoryMatchRate +
		overallLabelWeight*m.LabelMatchRate
	m.Severity = bucketSeverity(m.OverallScore)

	return m
}

// labelSetsEqual 标签集合相等（忽略顺序、大小写和标点）
func labelSetsEqual(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

// bucketSeverity 按总分分档
func bucketSeverity(score float64) Severity {
	switch {
	case score >= severityGoodFloor:
		return SeverityGood
	case score >= severityWarnFloor:
		return SeverityWarn
	default:
		return SeverityPoor
	}
}
