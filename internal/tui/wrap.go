package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const tabWidth = 8

// HardWrap splits every line into segments at most width cells wide. Log
// lines are cut at the column limit rather than at word boundaries so that
// no characters move between segments.
func HardWrap(lines []string, width int) []string {
	if width <= 0 {
		return lines
	}

	result := make([]string, 0, len(lines))
	for _, line := range lines {
		if runewidth.StringWidth(line) <= width {
			result = append(result, line)
			continue
		}
		result = append(result, wrapLine(line, width)...)
	}
	return result
}

func wrapLine(line string, width int) []string {
	var segments []string
	var current strings.Builder
	cells := 0

	for _, r := range line {
		w := runewidth.RuneWidth(r)
		if cells+w > width && cells > 0 {
			segments = append(segments, current.String())
			current.Reset()
			cells = 0
		}
		current.WriteRune(r)
		cells += w
	}
	if current.Len() > 0 {
		segments = append(segments, current.String())
	}
	return segments
}

// ExpandTabs replaces tabs with spaces up to the next tab stop.
func ExpandTabs(line string) string {
	if !strings.ContainsRune(line, '\t') {
		return line
	}

	var b strings.Builder
	col := 0
	for _, r := range line {
		if r == '\t' {
			pad := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", pad))
			col += pad
			continue
		}
		b.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return b.String()
}

// SplitLines splits captured output into display lines. A trailing newline
// does not produce an empty final line.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	for i, line := range lines {
		lines[i] = ExpandTabs(strings.TrimSuffix(line, "\r"))
	}
	return lines
}
