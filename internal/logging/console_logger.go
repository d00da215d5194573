package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// ConsoleLogger writes log messages to a single writer, stdout by default.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	verbose bool
	out     io.Writer
	styled  bool
	errTag  lipgloss.Style
	verTag  lipgloss.Style
	mu      sync.Mutex
}

// NewConsoleLogger creates a new ConsoleLogger writing to stdout.
// If verbose is true, Verbose() calls will produce output.
// If verbose is false, Verbose() calls are no-ops.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	return NewConsoleLoggerTo(os.Stdout, verbose)
}

// NewConsoleLoggerTo creates a ConsoleLogger writing to w.
// Prefixes are colored only when w is a terminal and NO_COLOR is unset.
func NewConsoleLoggerTo(w io.Writer, verbose bool) *ConsoleLogger {
	renderer := lipgloss.NewRenderer(w)
	return &ConsoleLogger{
		verbose: verbose,
		out:     w,
		styled:  isTerminal(w) && os.Getenv("NO_COLOR") == "",
		errTag:  renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		verTag:  renderer.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.write(l.tag(l.verTag, "[VERBOSE]")+" ", format, args)
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.write("", format, args)
}

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.write(l.tag(l.errTag, "[ERROR]")+" ", format, args)
}

func (l *ConsoleLogger) write(prefix, format string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(args) > 0 {
		fmt.Fprintf(l.out, prefix+format+"\n", args...)
	} else {
		fmt.Fprint(l.out, prefix+format+"\n")
	}
}

func (l *ConsoleLogger) tag(style lipgloss.Style, text string) string {
	if !l.styled {
		return text
	}
	return style.Render(text)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// NewDiscardLogger returns a verbose ConsoleLogger that writes nowhere.
// Useful for tests and library callers that do not want output.
func NewDiscardLogger() *ConsoleLogger {
	return NewConsoleLoggerTo(io.Discard, true)
}
