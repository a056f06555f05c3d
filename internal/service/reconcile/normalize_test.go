package reconcile

import "testing"

// ========== Normalize 测试 ==========

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercase",
			input:    "What Is Your REVENUE",
			expected: "what is your revenue",
		},
		{
			name:     "strip punctuation",
			input:    "What is your revenue?",
			expected: "what is your revenue",
		},
		{
			name:     "collapse whitespace",
			input:    "  do   you\thave\n a  policy  ",
			expected: "do you have a policy",
		},
		{
			name:     "punctuation only",
			input:    "?!,.;:",
			expected: "",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "whitespace only",
			input:    "   \t\n  ",
			expected: "",
		},
		{
			name:     "digits and underscore kept",
			input:    "Q_1: value > 100?",
			expected: "q_1 value 100",
		},
		{
			name:     "fullwidth folds to ascii",
			input:    "Ｑｕｅｓｔｉｏｎ　１",
			expected: "question 1",
		},
		{
			name:     "already normalized",
			input:    "do you have a policy",
			expected: "do you have a policy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

// 幂等性：对任何输入再规范化一次不改变结果
func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"What is your revenue?",
		"do you have a policy",
		"Ｑｕｅｓｔｉｏｎ　１",
		"a,b;c.d e",
		"MiXeD   CaSe\t\ttext!!!",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
