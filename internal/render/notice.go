package render

import (
	"fmt"
	"io"

	"github.com/agentic-research/ketl/api"
	"github.com/charmbracelet/lipgloss"
)

// Styles are the lipgloss styles used for diagnostics.
type Styles struct {
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// StylesFor returns the color scheme for w. Colors are dropped when w is
// not a terminal.
func StylesFor(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		Bold:    r.NewStyle().Bold(true),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
		Success: r.NewStyle().Foreground(lipgloss.Color("2")),
		Warning: r.NewStyle().Foreground(lipgloss.Color("3")),
		Error:   r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

// PlainStyles renders text unchanged. Used for non-terminal output and tests.
func PlainStyles() Styles {
	s := lipgloss.NewStyle()
	return Styles{Bold: s, Muted: s, Success: s, Warning: s, Error: s}
}

// Notifier writes human oriented diagnostics, normally to stderr.
type Notifier struct {
	w      io.Writer
	styles Styles
}

// NewNotifier returns a Notifier styled for w.
func NewNotifier(w io.Writer) *Notifier {
	return &Notifier{w: w, styles: StylesFor(w)}
}

// NewPlainNotifier returns a Notifier that never styles its output.
func NewPlainNotifier(w io.Writer) *Notifier {
	return &Notifier{w: w, styles: PlainStyles()}
}

// Dropped reports definition lines the parser skipped.
func (n *Notifier) Dropped(lines []api.DroppedLine) {
	for _, d := range lines {
		_, _ = fmt.Fprintf(n.w, "%s %s %s\n",
			n.styles.Warning.Render(fmt.Sprintf("line %d:", d.Line)),
			d.Reason,
			n.styles.Muted.Render(fmt.Sprintf("(%s)", d.Text)))
	}
}

// Valid reports an accepted definition.
func (n *Notifier) Valid(line int, field, path string) {
	_, _ = fmt.Fprintf(n.w, "%s %s = %s\n",
		n.styles.Success.Render(fmt.Sprintf("line %d: ok", line)),
		n.styles.Bold.Render(field),
		path)
}

// Error reports a failure.
func (n *Notifier) Error(err error) {
	_, _ = fmt.Fprintln(n.w, n.styles.Error.Render("error: ")+err.Error())
}

// Info writes a muted informational line.
func (n *Notifier) Info(format string, args ...any) {
	_, _ = fmt.Fprintln(n.w, n.styles.Muted.Render(fmt.Sprintf(format, args...)))
}
