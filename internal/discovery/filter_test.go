package discovery

import (
	"testing"
)

func TestFilter_FilterByName(t *testing.T) {
	filter := NewFilter()

	tests := []struct {
		name     string
		paths    []string
		pattern  string
		expected int // Expected number of matches
	}{
		{
			name:     "empty pattern returns all",
			paths:    []string{"arith.test.yaml", "props.test.yaml", "edge.test.yaml"},
			pattern:  "",
			expected: 3,
		},
		{
			name:     "wildcard pattern matches suffix",
			paths:    []string{"arith.test.yaml", "props.test.yaml", "edge.test.yaml"},
			pattern:  "*arith.test.yaml",
			expected: 1,
		},
		{
			name:     "wildcard pattern matches substring",
			paths:    []string{"arith.test.yaml", "props.test.yaml", "arith_edge.test.yaml", "props_edge.test.yaml"},
			pattern:  "*edge*",
			expected: 2,
		},
		{
			name:     "simple contains match",
			paths:    []string{"arith.test.yaml", "props.test.yaml", "edge.test.yaml"},
			pattern:  "props",
			expected: 1,
		},
		{
			name:     "no matches",
			paths:    []string{"arith.test.yaml", "props.test.yaml"},
			pattern:  "*NonExistent*",
			expected: 0,
		},
		{
			name:     "full path with wildcard",
			paths:    []string{"/path/to/arith.test.yaml", "/path/to/props.test.yaml"},
			pattern:  "*arith.test.yaml",
			expected: 1,
		},
		{
			name:     "directory names are not matched",
			paths:    []string{"/arith/props.test.yaml"},
			pattern:  "arith",
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := filter.FilterByName(tt.paths, tt.pattern)
			if len(result) != tt.expected {
				t.Errorf("expected %d matches, got %d", tt.expected, len(result))
			}
		})
	}
}

func TestFilter_Match(t *testing.T) {
	filter := NewFilter()

	tests := []struct {
		name     string
		input    string
		pattern  string
		expected bool
	}{
		{"empty pattern", "anything", "", true},
		{"exact", "add is commutative", "add is commutative", true},
		{"substring", "add is commutative", "commut", true},
		{"glob", "we can add and subtract numbers", "we can*", true},
		{"question mark", "case1", "case?", true},
		{"ordered parts", "adding the negation yields zero", "*add*zero*", true},
		{"parts out of order", "adding the negation yields zero", "*zero*add*", false},
		{"only wildcards", "anything", "**", true},
		{"no match", "subtracting zero is identity", "*commut*", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := filter.Match(tt.input, tt.pattern); got != tt.expected {
				t.Errorf("Match(%q, %q) = %v, expected %v", tt.input, tt.pattern, got, tt.expected)
			}
		})
	}
}

func TestFilter_FilterByName_EdgeCases(t *testing.T) {
	filter := NewFilter()

	t.Run("empty path list", func(t *testing.T) {
		result := filter.FilterByName([]string{}, "*.test.yaml")
		if len(result) != 0 {
			t.Errorf("expected empty result, got %d items", len(result))
		}
	})

	t.Run("pattern with multiple wildcards", func(t *testing.T) {
		paths := []string{"arith_add.test.yaml", "arith_sub.test.yaml", "props.test.yaml"}
		result := filter.FilterByName(paths, "*arith*test.yaml")
		if len(result) != 2 {
			t.Errorf("expected 2 matches, got %d", len(result))
		}
	})
}
