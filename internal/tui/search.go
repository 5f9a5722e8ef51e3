package tui

import (
	"regexp"
)

// SearchMsg represents messages that the search component handles
type SearchMsg interface {
	isSearchMsg()
}

// Search message implementations
type StartSearchMsg struct{}

func (StartSearchMsg) isSearchMsg() {}

type UpdateSearchInputMsg struct {
	Input string
}

func (UpdateSearchInputMsg) isSearchMsg() {}

// ExecuteSearchMsg compiles the current input and matches it against Lines.
type ExecuteSearchMsg struct {
	Lines []string
}

func (ExecuteSearchMsg) isSearchMsg() {}

type CancelSearchMsg struct{}

func (CancelSearchMsg) isSearchMsg() {}

type NextMatchMsg struct{}

func (NextMatchMsg) isSearchMsg() {}

type PrevMatchMsg struct{}

func (PrevMatchMsg) isSearchMsg() {}

// RematchMsg recomputes matches for the current pattern, e.g. after rewrapping.
type RematchMsg struct {
	Lines []string
}

func (RematchMsg) isSearchMsg() {}

type ClearSearchMsg struct{}

func (ClearSearchMsg) isSearchMsg() {}

// SearchModel holds the state for search functionality
type SearchModel struct {
	Active       bool   // true while the pattern is being typed
	Input        string // current search input
	Pattern      string // last executed pattern
	Error        string // compile error for Input
	Matches      []int  // line numbers with matches
	CurrentMatch int    // current match index (-1 if no matches)

	re *regexp.Regexp
}

// NewSearchModel creates a new search model with default values
func NewSearchModel() SearchModel {
	return SearchModel{CurrentMatch: -1}
}

// Update applies a search message. Patterns are case-insensitive regular
// expressions.
func (s *SearchModel) Update(msg SearchMsg) {
	switch m := msg.(type) {
	case StartSearchMsg:
		s.Active = true
		s.Input = ""
		s.Error = ""
	case UpdateSearchInputMsg:
		s.Input = m.Input
	case ExecuteSearchMsg:
		if s.Input == "" {
			s.clear()
			s.Active = false
			return
		}
		re, err := regexp.Compile("(?i)" + s.Input)
		if err != nil {
			// Stay active so the pattern can be corrected
			s.Error = err.Error()
			return
		}
		s.re = re
		s.Pattern = s.Input
		s.Error = ""
		s.Active = false
		s.setMatches(findMatches(s.re, m.Lines))
	case RematchMsg:
		if s.re != nil {
			s.setMatches(findMatches(s.re, m.Lines))
		}
	case CancelSearchMsg:
		s.Active = false
		s.Input = ""
		s.Error = ""
	case NextMatchMsg:
		if len(s.Matches) > 0 {
			s.CurrentMatch = (s.CurrentMatch + 1) % len(s.Matches)
		}
	case PrevMatchMsg:
		if len(s.Matches) > 0 {
			s.CurrentMatch = (s.CurrentMatch - 1 + len(s.Matches)) % len(s.Matches)
		}
	case ClearSearchMsg:
		s.clear()
	}
}

// HasPattern reports whether an executed pattern is in effect.
func (s *SearchModel) HasPattern() bool {
	return s.re != nil
}

// IsMatch reports whether line is one of the matched lines.
func (s *SearchModel) IsMatch(line int) bool {
	for _, m := range s.Matches {
		if m == line {
			return true
		}
	}
	return false
}

// CurrentMatchLine returns the line number of the current match, or -1.
func (s *SearchModel) CurrentMatchLine() int {
	if s.CurrentMatch >= 0 && s.CurrentMatch < len(s.Matches) {
		return s.Matches[s.CurrentMatch]
	}
	return -1
}

func (s *SearchModel) setMatches(matches []int) {
	s.Matches = matches
	if len(matches) > 0 {
		s.CurrentMatch = 0
	} else {
		s.CurrentMatch = -1
	}
}

func (s *SearchModel) clear() {
	s.re = nil
	s.Pattern = ""
	s.Matches = nil
	s.CurrentMatch = -1
	s.Error = ""
}

func findMatches(re *regexp.Regexp, lines []string) []int {
	var matches []int
	for i, line := range lines {
		if re.MatchString(line) {
			matches = append(matches, i)
		}
	}
	return matches
}
