package reconcile

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize 将自由文本规范化为比较用的标准形式
// 步骤：NFKC 归一 → 小写 → 去掉单词/空白以外的字符 → 折叠空白 → 去首尾空白
// 幂等：Normalize(Normalize(x)) == Normalize(x)
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	folded := strings.ToLower(norm.NFKC.String(text))

	var b strings.Builder
	b.Grow(len(folded))
	lastSpace := false
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(r)
			lastSpace = false
		case unicode.IsSpace(r):
			if !lastSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			lastSpace = true
		default:
			// 标点直接丢弃，不替换为空格
		}
	}

	return strings.TrimRight(b.String(), " ")
}

// normalizeLabels 将标签列表规范化为去重后的集合
func normalizeLabels(labels []string) map[string]struct{} {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		n := Normalize(l)
		if n == "" {
			continue
		}
		set[n] = struct{}{}
	}
	return set
}
