package reconcile

// ========== 文本相似度 ==========

// TextSimilarity 计算两段文本的相似度，范围 [0, 1]
// 规范化后相等返回 1.0；任一为空返回 0.0；
// 否则返回 LCS 长度 / max(len(a), len(b))
// 选择 LCS 而不是编辑距离，是因为对长句中的插入和顺序调整更宽容
func TextSimilarity(a, b string) float64 {
	na := Normalize(a)
	nb := Normalize(b)
	return normalizedTextSimilarity(na, nb)
}

// normalizedTextSimilarity 假定入参已规范化，供匹配器复用预计算结果
func normalizedTextSimilarity(na, nb string) float64 {
	if na == nb {
		if na == "" {
			return 0.0
		}
		return 1.0
	}
	if na == "" || nb == "" {
		return 0.0
	}

	ra := []rune(na)
	rb := []rune(nb)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}

	return float64(lcsLength(ra, rb)) / float64(maxLen)
}

// lcsLength 经典最长公共子序列长度，滚动数组，O(n*m) 时间 O(min) 空间
func lcsLength(a, b []rune) int {
	// 让 b 作为较短的一侧，降低行宽
	if len(b) > len(a) {
		a, b = b, a
	}
	if len(b) == 0 {
		return 0
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// ========== 标签集合相似度 ==========

// LabelSetSimilarity 计算两个标签集合的 Jaccard 相似度，范围 [0, 1]
// 两侧都为空返回 1.0（两个"无选项"问题在标签维度上平凡相等）；
// 恰好一侧为空返回 0.5（信息不全，既不算全错也不算全对）
func LabelSetSimilarity(a, b []string) float64 {
	return labelSetSimilarity(normalizeLabels(a), normalizeLabels(b))
}

func labelSetSimilarity(setA, setB map[string]struct{}) float64 {
	if len(setA) == 0 && len(setB) == 0 {
		return 1.0
	}
	if len(setA) == 0 || len(setB) == 0 {
		return 0.5
	}

	intersection := 0
	for k := range setA {
		if _, ok := setB[k]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection

	return float64(intersection) / float64(union)
}
