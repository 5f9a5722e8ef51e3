package cli

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/yiblet/tail/internal/config"
	"github.com/yiblet/tail/internal/tail"
)

// Options are the settings for one invocation, resolved from the command
// line and the config file.
type Options struct {
	Tail      tail.Config
	BlockSize int
	Mmap      bool
	View      bool
	Clipboard bool
	Debug     bool

	Journal      bool
	JournalPath  string
	JournalLimit int
	// JournalList is the number of runs to list, or -1 when not requested.
	JournalList  int
	JournalClear bool
}

// ParseCount parses a -n value. "K" and "-K" select the last K lines;
// "+K" starts output at line K, so K-1 lines are skipped ("+0" acts as "+1").
// Values too large for 64 bits saturate.
func ParseCount(value string) (uint64, tail.Direction, error) {
	s := strings.TrimSpace(value)
	direction := tail.FromBottom

	switch {
	case strings.HasPrefix(s, "+"):
		direction = tail.FromTop
		s = s[1:]
	case strings.HasPrefix(s, "-"):
		s = s[1:]
	}

	if s == "" || s[0] < '0' || s[0] > '9' {
		return 0, direction, fmt.Errorf("invalid number of lines: '%s'", value)
	}

	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		if !errors.Is(err, strconv.ErrRange) {
			return 0, direction, fmt.Errorf("invalid number of lines: '%s'", value)
		}
		n = math.MaxUint64
	}

	if direction == tail.FromTop && n > 0 {
		n--
	}
	return n, direction, nil
}

// Resolve merges args over the config file. configPath locates the default
// journal database.
func Resolve(args *Args, file *config.Config, configPath string) (*Options, error) {
	opts := &Options{
		BlockSize:    file.BlockSize,
		Mmap:         args.Mmap || file.Mmap,
		View:         args.View,
		Clipboard:    args.Clipboard,
		Debug:        args.Debug,
		Journal:      args.Journal || file.Journal.Enabled,
		JournalPath:  file.JournalPath(configPath),
		JournalLimit: file.Journal.Limit,
		JournalList:  -1,
		JournalClear: args.JournalClear,
	}

	opts.Tail.Count = uint64(file.Lines)
	if args.Lines != nil {
		count, direction, err := ParseCount(*args.Lines)
		if err != nil {
			return nil, err
		}
		opts.Tail.Count = count
		opts.Tail.Direction = direction
	}

	opts.Tail.Sources = args.Files
	opts.Tail.ShowHeaders = showHeaders(args, file.Headers, len(args.Files))

	if args.BlockSize != nil {
		opts.BlockSize = *args.BlockSize
	}
	if opts.BlockSize <= 0 || opts.BlockSize > tail.MaxBlockSize {
		return nil, fmt.Errorf("block size must be between 1 and %d", tail.MaxBlockSize)
	}

	if args.JournalDB != nil {
		opts.JournalPath = *args.JournalDB
	}
	if args.JournalList != nil {
		opts.JournalList = *args.JournalList
	}

	return opts, nil
}

// showHeaders applies --quiet/--verbose, then the configured mode. In auto
// mode headers are shown for more than one source.
func showHeaders(args *Args, mode string, sources int) bool {
	switch {
	case args.Quiet || args.Silent:
		return false
	case args.Verbose:
		return true
	}

	switch mode {
	case config.HeadersAlways:
		return true
	case config.HeadersNever:
		return false
	default:
		return sources > 1
	}
}
