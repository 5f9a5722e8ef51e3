package tui

import (
	"reflect"
	"testing"
)

func TestHardWrap(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		width int
		want  []string
	}{
		{"fits", []string{"abc"}, 5, []string{"abc"}},
		{"exact", []string{"abcde"}, 5, []string{"abcde"}},
		{"cut at width", []string{"abcdefghij"}, 4, []string{"abcd", "efgh", "ij"}},
		{"spaces preserved", []string{"ab cd ef"}, 3, []string{"ab ", "cd ", "ef"}},
		{"empty line kept", []string{"", "x"}, 3, []string{"", "x"}},
		{"wide runes", []string{"日本語"}, 4, []string{"日本", "語"}},
		{"zero width returns input", []string{"abcdef"}, 0, []string{"abcdef"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HardWrap(tt.lines, tt.width)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("HardWrap(%q, %d) = %q, want %q", tt.lines, tt.width, got, tt.want)
			}
		})
	}
}

func TestExpandTabs(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"no tabs", "no tabs"},
		{"\tx", "        x"},
		{"ab\tc", "ab      c"},
		{"12345678\tx", "12345678        x"},
	}
	for _, tt := range tests {
		if got := ExpandTabs(tt.input); got != tt.want {
			t.Errorf("ExpandTabs(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"a\nb\n", []string{"a", "b"}},
		{"a\nb", []string{"a", "b"}},
		{"a\r\n\n", []string{"a", ""}},
		{"\n", []string{""}},
	}
	for _, tt := range tests {
		if got := SplitLines(tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitLines(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
