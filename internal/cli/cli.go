package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/yiblet/tail/internal/clipboard"
	"github.com/yiblet/tail/internal/clipboard/sysboard"
	"github.com/yiblet/tail/internal/config"
	"github.com/yiblet/tail/internal/journal"
	"github.com/yiblet/tail/internal/logging"
	"github.com/yiblet/tail/internal/source"
	"github.com/yiblet/tail/internal/store/dbstore"
	"github.com/yiblet/tail/internal/tail"
	"github.com/yiblet/tail/internal/tui"
)

const progName = "tail"

// Exit statuses
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ViewerFunc shows captured output to the user.
type ViewerFunc func(title, content string, board clipboard.Clipboard) error

// JournalOpener opens the journal stored at path.
type JournalOpener func(path string, limit int) (*journal.Manager, error)

// CLI handles the command-line interface
type CLI struct {
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
	clipboard clipboard.Clipboard

	viewer      ViewerFunc
	openJournal JournalOpener
	isTerminal  func(io.Writer) bool
}

// New creates a CLI bound to the process's standard streams and the system
// clipboard.
func New() *CLI {
	return &CLI{
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		clipboard:   sysboard.New(),
		viewer:      tui.Run,
		openJournal: OpenJournal,
		isTerminal:  logging.IsTerminal,
	}
}

// OpenJournal opens the SQLite journal at path, creating its directory.
func OpenJournal(path string, limit int) (*journal.Manager, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}
	st, err := dbstore.NewSQLiteStore(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	return journal.NewManagerWithLimit(st, limit), nil
}

// Execute runs tail for the parsed arguments. The returned error is a usage
// or configuration problem; otherwise the exit status reports whether any
// source failed.
func (c *CLI) Execute(args *Args) (int, error) {
	if err := args.Validate(); err != nil {
		return ExitUsage, err
	}

	cm, err := c.configManager(args)
	if err != nil {
		return ExitUsage, err
	}
	if args.InitConfig {
		return c.initConfig(cm)
	}
	file, err := cm.Load()
	if err != nil {
		return ExitUsage, err
	}

	opts, err := Resolve(args, file, cm.GetConfigPath())
	if err != nil {
		return ExitUsage, err
	}
	if opts.View && !c.isTerminal(c.stdout) {
		return ExitUsage, fmt.Errorf("--view requires a terminal on standard output")
	}

	log := logging.New(c.stderr, progName, opts.Debug)
	log.Debugf("config %s", cm.GetConfigPath())

	if opts.JournalList >= 0 {
		return c.listJournal(opts, log), nil
	}
	if opts.JournalClear {
		return c.clearJournal(opts, log), nil
	}

	return c.run(opts, log), nil
}

func (c *CLI) configManager(args *Args) (*config.ConfigManager, error) {
	if args.Config != nil {
		return config.NewConfigManagerWithPath(*args.Config), nil
	}
	return config.NewConfigManager()
}

// run tails every source, then hands the captured output to the clipboard,
// the viewer and the journal as requested.
func (c *CLI) run(opts *Options, log *logging.Logger) int {
	var captured bytes.Buffer
	var out io.Writer = c.stdout
	switch {
	case opts.View:
		out = &captured
	case opts.Clipboard:
		out = io.MultiWriter(c.stdout, &captured)
	}

	dispatcher := tail.NewDispatcher(out, source.NewOpener(c.stdin, opts.Mmap),
		tail.WithBlockSize(opts.BlockSize),
		tail.WithHeader(c.headerFunc(opts)),
		tail.WithTracer(log),
	)

	results := dispatcher.Run(opts.Tail)
	status := ExitOK
	for _, res := range results {
		if res.Err != nil {
			log.SourceError(res.Err)
			status = ExitFailure
		}
	}

	if opts.Clipboard {
		if err := clipboard.Copy(c.clipboard, captured.Bytes()); err != nil {
			log.Errorf("%v", err)
			status = ExitFailure
		}
	}

	if opts.View {
		if err := c.viewer(viewTitle(results), captured.String(), c.clipboard); err != nil {
			log.Errorf("%v", err)
			status = ExitFailure
		}
	}

	if opts.Journal {
		c.record(opts, results, log)
	}

	return status
}

// headerFunc styles headers when they go straight to a terminal.
func (c *CLI) headerFunc(opts *Options) tail.HeaderFunc {
	if opts.View || !c.isTerminal(c.stdout) {
		return tail.FormatHeader
	}
	style := lipgloss.NewStyle().Bold(true)
	return func(name string, first bool) string {
		header := style.Render(fmt.Sprintf("==> %s <==", name)) + "\n"
		if first {
			return header
		}
		return "\n" + header
	}
}

// record writes the run to the journal. Journal failures are reported but
// do not change the exit status.
func (c *CLI) record(opts *Options, results []tail.Result, log *logging.Logger) {
	jm, err := c.openJournal(opts.JournalPath, opts.JournalLimit)
	if err != nil {
		log.Errorf("journal: %v", err)
		return
	}
	defer jm.Close()

	run, err := jm.Record(opts.Tail, results)
	if err != nil {
		log.Errorf("journal: %v", err)
		return
	}
	log.Debugf("journal: recorded run %d in %s", run.ID, opts.JournalPath)
}

func (c *CLI) listJournal(opts *Options, log *logging.Logger) int {
	jm, err := c.openJournal(opts.JournalPath, opts.JournalLimit)
	if err != nil {
		log.Errorf("journal: %v", err)
		return ExitFailure
	}
	defer jm.Close()

	runs, err := jm.List(opts.JournalList)
	if err != nil {
		log.Errorf("journal: %v", err)
		return ExitFailure
	}
	if err := journal.WriteRuns(c.stdout, runs); err != nil {
		log.Errorf("journal: %v", err)
		return ExitFailure
	}
	return ExitOK
}

func (c *CLI) clearJournal(opts *Options, log *logging.Logger) int {
	jm, err := c.openJournal(opts.JournalPath, opts.JournalLimit)
	if err != nil {
		log.Errorf("journal: %v", err)
		return ExitFailure
	}
	defer jm.Close()

	size, err := jm.Size()
	if err != nil {
		log.Errorf("journal: %v", err)
		return ExitFailure
	}
	if err := jm.Clear(); err != nil {
		log.Errorf("journal: %v", err)
		return ExitFailure
	}
	fmt.Fprintf(c.stdout, "cleared %d run(s) from %s\n", size, opts.JournalPath)
	return ExitOK
}

// initConfig writes the default settings to the config path. An existing
// file is never overwritten.
func (c *CLI) initConfig(cm *config.ConfigManager) (int, error) {
	path := cm.GetConfigPath()
	if _, err := os.Stat(path); err == nil {
		return ExitUsage, fmt.Errorf("config file already exists: %s", path)
	}
	if err := cm.Save(config.DefaultConfig()); err != nil {
		return ExitFailure, err
	}
	fmt.Fprintf(c.stdout, "wrote %s\n", path)
	return ExitOK, nil
}

func viewTitle(results []tail.Result) string {
	if len(results) == 1 {
		return results[0].Source
	}
	return fmt.Sprintf("%d sources", len(results))
}
