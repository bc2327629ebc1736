package ui

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/footprint-tools/recommit/internal/domain"
	"github.com/footprint-tools/recommit/internal/log"
	"golang.org/x/term"
)

// defaultPager is used when neither --pager nor the pager key resolve to a command.
const defaultPager = "less -FRSX"

// Writer writes command output, sending long listings such as
// "recommit log" and "recommit config list" through a pager on a terminal.
type Writer struct {
	out      io.Writer
	disabled bool
	override string
	lookup   func(string) (string, bool)
	terminal func(io.Writer) bool
	run      func(name string, args []string, content string, out io.Writer) error
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithPagerDisabled makes Pager print directly.
func WithPagerDisabled() WriterOption {
	return func(w *Writer) { w.disabled = true }
}

// WithPagerOverride sets the pager given on the command line.
func WithPagerOverride(cmd string) WriterOption {
	return func(w *Writer) { w.override = cmd }
}

// WithConfigGetter sets where the pager key is resolved from.
func WithConfigGetter(fn func(string) (string, bool)) WriterOption {
	return func(w *Writer) { w.lookup = fn }
}

// NewWriter returns a Writer on stdout.
func NewWriter(opts ...WriterOption) *Writer {
	return NewWriterTo(os.Stdout, opts...)
}

// NewWriterTo returns a Writer on out.
func NewWriterTo(out io.Writer, opts ...WriterOption) *Writer {
	w := &Writer{
		out:      out,
		terminal: isTerminal,
		run:      runPager,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Writer) Write(p []byte) (int, error) {
	return w.out.Write(p)
}

func (w *Writer) Printf(format string, args ...any) (int, error) {
	return fmt.Fprintf(w.out, format, args...)
}

func (w *Writer) Println(args ...any) (int, error) {
	return fmt.Fprintln(w.out, args...)
}

// Pager shows content through the resolved pager command. Output that is
// not a terminal, a disabled pager and the "cat" pager all print directly,
// as does a pager that fails to start.
func (w *Writer) Pager(content string) {
	if w.disabled || !w.terminal(w.out) {
		fmt.Fprint(w.out, content)
		return
	}

	parts := strings.Fields(w.command())
	if len(parts) == 0 || parts[0] == "cat" {
		fmt.Fprint(w.out, content)
		return
	}

	if err := w.run(parts[0], parts[1:], content, w.out); err != nil {
		log.Debug("ui: pager %q failed: %v", parts[0], err)
		fmt.Fprint(w.out, content)
	}
}

// command resolves the pager: --pager, then the pager key (which already
// covers PAGER_CMD and its default), then $PAGER.
func (w *Writer) command() string {
	if w.override != "" {
		return w.override
	}
	if w.lookup != nil {
		if cmd, ok := w.lookup("pager"); ok && strings.TrimSpace(cmd) != "" {
			return cmd
		}
	}
	if cmd := os.Getenv("PAGER"); cmd != "" {
		return cmd
	}
	return defaultPager
}

func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func runPager(name string, args []string, content string, out io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(content)
	cmd.Stdout = out
	cmd.Stderr = os.Stderr
	if os.Getenv("LESS") == "" {
		cmd.Env = append(os.Environ(), "LESS=FRSX")
	}
	return cmd.Run()
}

var _ domain.OutputWriter = (*Writer)(nil)
