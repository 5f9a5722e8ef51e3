package journal

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/yiblet/tail/internal/store"
)

// maxTextLen bounds source names and error text in listings.
const maxTextLen = 80

const timeLayout = "2006-01-02 15:04:05"

// WriteRuns prints runs in the order given, one block per run.
func WriteRuns(w io.Writer, runs []*store.Run) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "journal is empty")
		return err
	}
	for _, run := range runs {
		if _, err := io.WriteString(w, FormatRun(run)); err != nil {
			return err
		}
	}
	return nil
}

// FormatRun renders a run header followed by one line per source.
func FormatRun(run *store.Run) string {
	var b strings.Builder

	status := "ok"
	if run.Failed {
		status = "failed"
	}
	fmt.Fprintf(&b, "#%d  %s  %s  %d source(s)  %s\n",
		run.ID, run.Timestamp.Local().Format(timeLayout), describeCount(run), len(run.Outcomes), status)

	for _, o := range run.Outcomes {
		fmt.Fprintf(&b, "  %-6s %10d  %s", o.Strategy, o.Bytes, Truncate(Sanitize(o.Source), maxTextLen))
		if o.Error != "" {
			fmt.Fprintf(&b, "  (%s)", Truncate(Sanitize(o.Error), maxTextLen))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func describeCount(run *store.Run) string {
	if run.Direction == "top" {
		return fmt.Sprintf("-n +%d", run.Count+1)
	}
	return fmt.Sprintf("-n %d", run.Count)
}

// Truncate ensures text is at most maxLen characters.
// If truncation is needed, appends "..." to indicate truncation.
func Truncate(text string, maxLen int) string {
	text = strings.TrimSpace(text)

	if len(text) <= maxLen {
		return text
	}

	// Reserve 3 characters for "..."
	if maxLen < 3 {
		return strings.Repeat(".", maxLen)
	}

	return text[:maxLen-3] + "..."
}

// Sanitize removes control characters and collapses whitespace so file
// names are safe to print on a terminal.
func Sanitize(text string) string {
	text = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, text)

	return strings.Join(strings.Fields(text), " ")
}
