// Package output provides formatted console output for suite runs and the CLI.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
)

// Writer handles console output formatting.
type Writer struct {
	out     io.Writer
	err     io.Writer
	color   bool
	quiet   bool
	palette palette
}

type palette struct {
	bold   *color.Color
	dim    *color.Color
	red    *color.Color
	green  *color.Color
	yellow *color.Color
	cyan   *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		bold:   color.New(color.Bold),
		dim:    color.New(color.Faint),
		red:    color.New(color.FgRed),
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow),
		cyan:   color.New(color.FgCyan, color.Bold),
	}
	for _, c := range []*color.Color{p.bold, p.dim, p.red, p.green, p.yellow, p.cyan} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// New creates a Writer on stdout/stderr, coloring when stdout is a terminal.
func New() *Writer {
	return NewWithWriters(os.Stdout, os.Stderr, IsTerminal(os.Stdout))
}

// NewWithWriters creates a Writer with custom io.Writers (for testing).
func NewWithWriters(out, err io.Writer, useColor bool) *Writer {
	return &Writer{
		out:     out,
		err:     err,
		color:   useColor,
		palette: newPalette(useColor),
	}
}

// IsTerminal reports whether w is a terminal that should receive color.
// NO_COLOR (honoured by fatih/color) disables color everywhere.
func IsTerminal(w io.Writer) bool {
	if color.NoColor {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Out returns the underlying stdout writer.
func (w *Writer) Out() io.Writer {
	return w.out
}

// SetQuiet enables or disables quiet mode.
func (w *Writer) SetQuiet(quiet bool) {
	w.quiet = quiet
}

// SetColor overrides terminal detection.
func (w *Writer) SetColor(enabled bool) {
	w.color = enabled
	w.palette = newPalette(enabled)
}

// Println writes a line to stdout.
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Line writes text followed by a newline, without format interpretation.
func (w *Writer) Line(text string) {
	fmt.Fprintln(w.out, text)
}

// Errorln writes a line to stderr.
func (w *Writer) Errorln(format string, args ...interface{}) {
	fmt.Fprintf(w.err, format+"\n", args...)
}

// Info prints an info message (skipped in quiet mode).
func (w *Writer) Info(format string, args ...interface{}) {
	if w.quiet {
		return
	}
	w.Println(format, args...)
}

// Warning prints a warning message to stderr.
func (w *Writer) Warning(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	w.Errorln("%s %s", w.palette.yellow.Sprint("warning:"), msg)
}

// ErrorPrefix prints an error message with the tinytest prefix to stderr.
func (w *Writer) ErrorPrefix(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	w.Errorln("%s %s", w.palette.red.Sprint("tinytest:"), msg)
}

// Table prints a simple table. Column widths are measured in terminal cells
// so emoji and wide runes stay aligned.
func (w *Writer) Table(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				if cw := runewidth.StringWidth(cell); cw > widths[i] {
					widths[i] = cw
				}
			}
		}
	}

	w.Line(strings.TrimRight(joinPadded(headers, widths), " "))

	sepParts := make([]string, len(widths))
	for i, width := range widths {
		sepParts[i] = strings.Repeat("-", width)
	}
	w.Line(strings.Join(sepParts, "  "))

	for _, row := range rows {
		w.Line(strings.TrimRight(joinPadded(row, widths), " "))
	}
}

func joinPadded(cells []string, widths []int) string {
	parts := make([]string, 0, len(widths))
	for i, cell := range cells {
		if i < len(widths) {
			parts = append(parts, runewidth.FillRight(cell, widths[i]))
		}
	}
	return strings.Join(parts, "  ")
}

// SummaryHeader prints a summary section header.
func (w *Writer) SummaryHeader(title string) {
	w.Println("")
	w.Line(w.palette.cyan.Sprintf("=== %s ===", title))
	w.Println("")
}

// SummaryItem prints a labeled summary item with value.
func (w *Writer) SummaryItem(label, value string) {
	w.Println("  %s %s", w.palette.dim.Sprint(label+":"), value)
}

// SummaryPassed prints a passed/success items summary.
func (w *Writer) SummaryPassed(label, value string) {
	w.Println("  %s %s", w.palette.dim.Sprint(label+":"), w.palette.green.Sprint(value))
}

// SummaryFailed prints a failed items summary.
func (w *Writer) SummaryFailed(label, value string) {
	w.Println("  %s %s", w.palette.dim.Sprint(label+":"), w.palette.red.Sprint(value))
}

// FinalSuccess prints a final success message.
func (w *Writer) FinalSuccess(format string, args ...interface{}) {
	w.Println("")
	w.Line(w.palette.green.Sprintf(format, args...))
}

// FinalFailure prints a final failure message.
func (w *Writer) FinalFailure(format string, args ...interface{}) {
	w.Println("")
	w.Line(w.palette.red.Sprintf(format, args...))
}

// Hint prints a hint message for the user.
func (w *Writer) Hint(format string, args ...interface{}) {
	w.Line(w.palette.dim.Sprintf(format, args...))
}
