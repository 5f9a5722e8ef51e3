package tail

import (
	"fmt"
	"io"
)

// Source is an opened, readable byte stream. Seek may only be used when
// Seekable reports true.
type Source interface {
	io.ReadSeekCloser
	Seekable() bool
}

// Opener opens sources by identifier.
type Opener interface {
	Open(name string) (Source, error)
}

// Tracer receives debug traces from the dispatcher.
type Tracer interface {
	Debugf(format string, args ...any)
}

// HeaderFunc renders the header written before a source. first is true for
// the first source of a run.
type HeaderFunc func(name string, first bool) string

// State is the processing stage of a single source.
type State int

const (
	StateOpening State = iota
	StateScanning
	StateWindowing
	StateSkipping
	StateCopying
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateOpening:
		return "opening"
	case StateScanning:
		return "scanning"
	case StateWindowing:
		return "windowing"
	case StateSkipping:
		return "skipping"
	case StateCopying:
		return "copying"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Result is the completion signal for one source.
type Result struct {
	Source   string
	Strategy Strategy
	State    State
	// FailedIn is the stage that was running when Err occurred.
	FailedIn State
	// Bytes counts the source bytes written to the output, headers excluded.
	Bytes int64
	Err   *SourceError
}

// Failed reports whether any result carries an error.
func Failed(results []Result) bool {
	for _, r := range results {
		if r.Err != nil {
			return true
		}
	}
	return false
}

// DisplayName returns the name used in headers and diagnostics.
func DisplayName(name string) string {
	if name == StdinName {
		return "standard input"
	}
	return name
}

// FormatHeader renders headers as "==> NAME <==", with a blank line between
// consecutive sources.
func FormatHeader(name string, first bool) string {
	if first {
		return fmt.Sprintf("==> %s <==\n", name)
	}
	return fmt.Sprintf("\n==> %s <==\n", name)
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithBlockSize sets the block capacity for scans, copies and line reads.
func WithBlockSize(size int) Option {
	return func(d *Dispatcher) {
		if size > 0 {
			d.blockSize = size
		}
	}
}

// WithHeader replaces the header renderer.
func WithHeader(fn HeaderFunc) Option {
	return func(d *Dispatcher) {
		if fn != nil {
			d.header = fn
		}
	}
}

// WithTracer routes debug traces to t.
func WithTracer(t Tracer) Option {
	return func(d *Dispatcher) {
		d.tracer = t
	}
}

// Dispatcher runs the tail algorithms over a sequence of sources, writing
// to a single output. Sources are processed one at a time in order.
type Dispatcher struct {
	out       io.Writer
	opener    Opener
	blockSize int
	header    HeaderFunc
	tracer    Tracer
}

// NewDispatcher creates a dispatcher writing to out.
func NewDispatcher(out io.Writer, opener Opener, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		out:       out,
		opener:    opener,
		blockSize: DefaultBlockSize,
		header:    FormatHeader,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run processes every source in cfg and returns one Result per source. A
// failing source never stops the batch.
func (d *Dispatcher) Run(cfg Config) []Result {
	sources := cfg.Sources
	if len(sources) == 0 {
		sources = []string{StdinName}
	}

	results := make([]Result, 0, len(sources))
	for i, name := range sources {
		results = append(results, d.Tail(cfg, name, i == 0))
	}
	return results
}

// Tail processes a single source.
func (d *Dispatcher) Tail(cfg Config, name string, first bool) Result {
	display := DisplayName(name)
	res := Result{Source: display, State: StateOpening}

	if cfg.ShowHeaders {
		if err := writeBlock(d.out, []byte(d.header(display, first))); err != nil {
			return d.fail(res, err)
		}
	}

	src, err := d.opener.Open(name)
	if err != nil {
		return d.fail(res, opError(OpenFailure, err))
	}
	defer src.Close()

	out := &countingWriter{w: d.out}
	res.Strategy = strategyFor(cfg.Direction, src.Seekable())
	d.tracef("%s: strategy %s, count %d", display, res.Strategy, cfg.Count)

	switch res.Strategy {
	case StrategyScan:
		err = d.scan(&res, src, cfg.Count, out)
	case StrategyWindow:
		res.State = StateWindowing
		_, err = TailStream(src, cfg.Count, out, d.blockSize)
	case StrategySkip:
		res.State = StateSkipping
		_, err = SkipLines(src, cfg.Count, out, d.blockSize)
	}
	res.Bytes = out.n
	if err != nil {
		return d.fail(res, err)
	}

	res.State = StateDone
	d.tracef("%s: wrote %d bytes", display, res.Bytes)
	return res
}

func (d *Dispatcher) scan(res *Result, src Source, n uint64, out io.Writer) error {
	res.State = StateScanning
	scanner := NewBackwardScanner(d.blockSize)
	sr, err := scanner.Scan(src, n, out)
	if err != nil {
		return err
	}
	d.tracef("%s: start offset %d of %d, scanned %d bytes", res.Source, sr.Offset, sr.Size, sr.Scanned)

	res.State = StateCopying
	if !sr.Found {
		if _, err := src.Seek(0, io.SeekStart); err != nil {
			return opError(SeekFailure, err)
		}
	}
	_, err = CopyRemaining(src, out, scanner.buf)
	return err
}

func (d *Dispatcher) fail(res Result, err error) Result {
	res.FailedIn = res.State
	res.State = StateFailed
	res.Err = newSourceError(res.Source, err)
	d.tracef("%s: failed while %s: %v", res.Source, res.FailedIn, res.Err.Err)
	return res
}

func (d *Dispatcher) tracef(format string, args ...any) {
	if d.tracer != nil {
		d.tracer.Debugf(format, args...)
	}
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
