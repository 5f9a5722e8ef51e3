package cli

import (
	"fmt"
	"strings"
)

// Args represents the command line of tail
type Args struct {
	Lines        *string  `arg:"-n,--lines" placeholder:"[+]NUM" help:"output the last NUM lines, or use +NUM to output starting with line NUM [default: 10]"`
	Quiet        bool     `arg:"-q,--quiet" help:"never output headers giving file names"`
	Silent       bool     `arg:"--silent" help:"same as --quiet"`
	Verbose      bool     `arg:"-v,--verbose" help:"always output headers giving file names"`
	Config       *string  `arg:"--config" placeholder:"PATH" help:"config file (YAML, or TOML with a .toml extension)"`
	BlockSize    *int     `arg:"--block-size" placeholder:"BYTES" help:"read block size for scans and copies"`
	Mmap         bool     `arg:"--mmap" help:"memory map regular files instead of reading them"`
	View         bool     `arg:"--view" help:"show the output in a scrollable viewer"`
	Clipboard    bool     `arg:"-c,--clipboard" help:"also copy the output to the clipboard"`
	Journal      bool     `arg:"--journal" help:"record this run in the journal"`
	JournalDB    *string  `arg:"--journal-db" placeholder:"PATH" help:"journal database path"`
	JournalList  *int     `arg:"--journal-list" placeholder:"N" help:"print the N most recent journal runs (0 for all) and exit"`
	JournalClear bool     `arg:"--journal-clear" help:"remove every recorded run and exit"`
	InitConfig   bool     `arg:"--init-config" help:"write a config file holding the defaults and exit"`
	Debug        bool     `arg:"--debug" help:"trace strategy, offsets and byte counts to stderr"`
	Files        []string `arg:"positional" placeholder:"FILE" help:"files to read; - or none reads standard input"`
}

// Description returns the program description
func (Args) Description() string {
	return "Print the last 10 lines of each FILE to standard output.\nWith more than one FILE, precede each with a header giving the file name."
}

// Version returns the program version
func (Args) Version() string {
	return "tail 0.1.0"
}

// Epilogue returns additional help text
func (Args) Epilogue() string {
	return `Examples:
  tail app.log                     # Last 10 lines
  tail -n 50 a.log b.log           # Last 50 lines of each, with headers
  tail -n +20 app.log              # Everything from line 20 on
  journalctl | tail -n 5           # Last 5 lines of a stream
  tail --view -n 1000 app.log      # Browse the last 1000 lines
  tail --journal-list 5            # Show the 5 most recent recorded runs
  tail --init-config               # Write the defaults to the config file

Defaults are read from $XDG_CONFIG_HOME/tail/config.yaml (or
~/.config/tail/config.yaml). Flags override the config file.`
}

// Validate checks flag combinations. The line count is checked when it is
// parsed by Resolve.
func (args *Args) Validate() error {
	if (args.Quiet || args.Silent) && args.Verbose {
		return fmt.Errorf("cannot specify both --quiet and --verbose")
	}
	if args.BlockSize != nil && *args.BlockSize <= 0 {
		return fmt.Errorf("block size must be positive")
	}
	if args.JournalList != nil && *args.JournalList < 0 {
		return fmt.Errorf("journal list count must be non-negative")
	}
	if args.JournalList != nil && args.JournalClear {
		return fmt.Errorf("cannot specify both --journal-list and --journal-clear")
	}
	return nil
}

// NormalizeArgs joins "-n -K" and "--lines -K" into "-n=-K" so the negative
// count is not taken for an option. Arguments after "--" are left alone.
func NormalizeArgs(argv []string) []string {
	out := make([]string, 0, len(argv))
	for i := 0; i < len(argv); i++ {
		a := argv[i]
		if a == "--" {
			return append(out, argv[i:]...)
		}
		if (a == "-n" || a == "--lines") && i+1 < len(argv) && isNegativeCount(argv[i+1]) {
			out = append(out, a+"="+argv[i+1])
			i++
			continue
		}
		out = append(out, a)
	}
	return out
}

func isNegativeCount(s string) bool {
	digits, ok := strings.CutPrefix(s, "-")
	if !ok || digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
