// Package output renders console feedback for library operations: status
// lines after a command and the tables used by the listing commands.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Status classifies the outcome of a console command.
type Status int

const (
	StatusDone Status = iota
	StatusQueued
	StatusFailed
	StatusNotice
)

var statusMarks = map[Status]struct {
	mark  string
	style lipgloss.Style
}{
	StatusDone:   {"✓", lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)},
	StatusQueued: {"⚠", lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)},
	StatusFailed: {"✗", lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)},
	StatusNotice: {"ℹ", lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6"))},
}

var (
	headingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// Printer writes console feedback to w. A plain printer emits no styling,
// which keeps piped sessions and tests free of escape codes.
type Printer struct {
	w     io.Writer
	plain bool
}

func New(w io.Writer, plain bool) *Printer {
	return &Printer{w: w, plain: plain}
}

var std = New(os.Stdout, false)

// SetPlain switches styling of the package-level printer on or off.
func SetPlain(plain bool) { std.plain = plain }

func (p *Printer) render(style lipgloss.Style, s string) string {
	if p.plain {
		return s
	}
	return style.Render(s)
}

// Status prints one line prefixed with the mark of st.
func (p *Printer) Status(st Status, format string, args ...any) {
	m := statusMarks[st]
	fmt.Fprintf(p.w, "%s %s\n", p.render(m.style, m.mark), fmt.Sprintf(format, args...))
}

// Muted prints a de-emphasised line, used for empty listings.
func (p *Printer) Muted(format string, args ...any) {
	fmt.Fprintln(p.w, p.render(dimStyle, fmt.Sprintf(format, args...)))
}

// Header prints a pre-formatted table heading and a rule under it.
func (p *Printer) Header(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	fmt.Fprintln(p.w, p.render(headingStyle, line))
	fmt.Fprintln(p.w, p.render(dimStyle, strings.Repeat("-", lipgloss.Width(line))))
}

// Table prints rows under headers. Columns are padded to their widest cell
// measured in terminal cells, so accented names stay aligned.
func (p *Printer) Table(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	p.Header("%s", joinPadded(headers, widths))
	for _, row := range rows {
		fmt.Fprintln(p.w, joinPadded(row, widths))
	}
}

func joinPadded(cells []string, widths []int) string {
	var b strings.Builder
	for i, c := range cells {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(c)
		if i < len(cells)-1 && i < len(widths) {
			b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(c)))
		}
	}
	return b.String()
}

func Success(format string, args ...any) { std.Status(StatusDone, format, args...) }
func Warning(format string, args ...any) { std.Status(StatusQueued, format, args...) }
func Error(format string, args ...any)   { std.Status(StatusFailed, format, args...) }
func Info(format string, args ...any)    { std.Status(StatusNotice, format, args...) }
func Muted(format string, args ...any)   { std.Muted(format, args...) }
func Header(format string, args ...any)  { std.Header(format, args...) }

// Table prints a table through the package-level printer.
func Table(headers []string, rows [][]string) { std.Table(headers, rows) }
