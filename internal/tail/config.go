// Package tail implements the line-boundary algorithms behind the tail
// command: a backward block scan for seekable sources, a bounded window of
// lines for streams, a forward skip for from-top mode, and the dispatcher
// that picks one of them per source.
package tail

import "fmt"

const (
	// DefaultCount is the number of lines printed when no count is given.
	DefaultCount = 10

	// DefaultBlockSize is the fixed block capacity used for backward scans and copies.
	DefaultBlockSize = 8 * 1024

	// MaxBlockSize bounds the configurable block capacity.
	MaxBlockSize = 1024 * 1024

	// StdinName is the source identifier that selects standard input.
	StdinName = "-"
)

// Direction selects whether Count is measured from the end of a source or
// is the number of leading lines to skip.
type Direction int

const (
	FromBottom Direction = iota
	FromTop
)

func (d Direction) String() string {
	switch d {
	case FromBottom:
		return "bottom"
	case FromTop:
		return "top"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Strategy is the component chain chosen for a single source.
type Strategy int

const (
	StrategyNone Strategy = iota
	StrategyScan
	StrategyWindow
	StrategySkip
)

func (s Strategy) String() string {
	switch s {
	case StrategyScan:
		return "scan"
	case StrategyWindow:
		return "window"
	case StrategySkip:
		return "skip"
	default:
		return "none"
	}
}

// Config is the resolved configuration for one run. It is not modified by
// the dispatcher.
type Config struct {
	Count       uint64
	Direction   Direction
	ShowHeaders bool
	Sources     []string
}

// strategyFor is the only place Direction is inspected.
func strategyFor(dir Direction, seekable bool) Strategy {
	switch {
	case dir == FromTop:
		return StrategySkip
	case seekable:
		return StrategyScan
	default:
		return StrategyWindow
	}
}
