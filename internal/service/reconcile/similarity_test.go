package reconcile

import (
	"math"
	"testing"
)

// ========== 文本相似度测试 ==========

func TestTextSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected float64
	}{
		{
			name:     "identical",
			a:        "Do you have a policy?",
			b:        "Do you have a policy?",
			expected: 1.0,
		},
		{
			name:     "equal after normalization",
			a:        "What is your revenue?",
			b:        "what is your revenue",
			expected: 1.0,
		},
		{
			name:     "both empty",
			a:        "",
			b:        "",
			expected: 0.0,
		},
		{
			name:     "one side empty",
			a:        "anything",
			b:        "   ?!  ",
			expected: 0.0,
		},
		{
			name:     "prefix subsequence",
			a:        "abcd",
			b:        "abcdef",
			expected: 4.0 / 6.0,
		},
		{
			name:     "no common characters",
			a:        "aaaa",
			b:        "bbbb",
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TextSimilarity(tt.a, tt.b)
			if !almostEqual(got, tt.expected, 1e-9) {
				t.Errorf("TextSimilarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.expected)
			}
			if got < 0 || got > 1 {
				t.Errorf("TextSimilarity out of range: %v", got)
			}
		})
	}
}

func TestTextSimilarity_TruncatedSentence(t *testing.T) {
	a := "Describe your environmental policy in detail"
	b := "Describe your environmental policy"

	got := TextSimilarity(a, b)
	if got < FuzzyThreshold || got >= 1.0 {
		t.Errorf("TextSimilarity = %v, want in [%v, 1)", got, FuzzyThreshold)
	}
}

func TestLCSLength(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected int
	}{
		{name: "empty sides", a: "", b: "abc", expected: 0},
		{name: "identical", a: "abc", b: "abc", expected: 3},
		{name: "classic", a: "abcbdab", b: "bdcaba", expected: 4},
		{name: "interleaved", a: "axbycz", b: "abc", expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lcsLength([]rune(tt.a), []rune(tt.b))
			if got != tt.expected {
				t.Errorf("lcsLength(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.expected)
			}
			// LCS(a,b) == LCS(b,a)
			rev := lcsLength([]rune(tt.b), []rune(tt.a))
			if rev != got {
				t.Errorf("lcsLength not symmetric: %d vs %d", got, rev)
			}
		})
	}
}

// ========== 标签集合相似度测试 ==========

func TestLabelSetSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a        []string
		b        []string
		expected float64
	}{
		{
			name:     "both empty is vacuously equal",
			a:        nil,
			b:        []string{},
			expected: 1.0,
		},
		{
			name:     "exactly one empty is neutral penalty",
			a:        []string{"Yes", "No"},
			b:        nil,
			expected: 0.5,
		},
		{
			name:     "identical ignoring case and order",
			a:        []string{"Yes", "No"},
			b:        []string{"no", "YES"},
			expected: 1.0,
		},
		{
			name:     "partial overlap",
			a:        []string{"Yes", "No"},
			b:        []string{"Yes", "Maybe"},
			expected: 1.0 / 3.0,
		},
		{
			name:     "disjoint",
			a:        []string{"Red", "Green"},
			b:        []string{"Blue", "Yellow"},
			expected: 0.0,
		},
		{
			name:     "duplicates collapse before jaccard",
			a:        []string{"Yes", "yes", "YES"},
			b:        []string{"Yes"},
			expected: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LabelSetSimilarity(tt.a, tt.b)
			if !almostEqual(got, tt.expected, 1e-9) {
				t.Errorf("LabelSetSimilarity(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.expected)
			}
			// 对称性
			rev := LabelSetSimilarity(tt.b, tt.a)
			if !almostEqual(got, rev, 1e-9) {
				t.Errorf("LabelSetSimilarity not symmetric: %v vs %v", got, rev)
			}
		})
	}
}

// ========== 辅助函数 ==========

// almostEqual 比较两个浮点数是否近似相等
func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}
