// Package ui provides styled terminal output for the newsdb CLI.
// It uses lipgloss for styling and falls back to plain text when stdout is
// not a terminal or NO_COLOR is set.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// UI holds the terminal state and provides styled output methods.
type UI struct {
	Out     io.Writer
	IsTTY   bool
	Width   int
	NoColor bool
}

// KV represents a key-value pair for summary displays.
type KV struct {
	Key   string
	Value string
}

// noColorEnv is the standard environment variable to disable colors.
var noColorEnv = os.Getenv("NO_COLOR") != ""

// New creates a UI writing to stdout with TTY detection.
func New() *UI {
	fd := int(os.Stdout.Fd())
	isTTY := term.IsTerminal(fd)
	width := 80
	if isTTY {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			width = w
		}
	}

	return &UI{
		Out:     os.Stdout,
		IsTTY:   isTTY,
		Width:   width,
		NoColor: noColorEnv,
	}
}

// NewPlain creates a UI that never styles, writing to w.
func NewPlain(w io.Writer) *UI {
	return &UI{Out: w, Width: 80, NoColor: true}
}

// SetNoColor disables colors and animations.
func (u *UI) SetNoColor(noColor bool) {
	u.NoColor = noColor
}

// shouldStyle returns true if we should use styled output.
func (u *UI) shouldStyle() bool {
	return u.IsTTY && !u.NoColor
}

// Println writes one line to the UI output.
func (u *UI) Println(a ...any) {
	fmt.Fprintln(u.Out, a...)
}

// Header renders a bordered header box.
func (u *UI) Header(title string) string {
	if !u.shouldStyle() {
		return fmt.Sprintf("=== %s ===", title)
	}

	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(0, 2)

	return style.Render(title)
}

// KeyValue renders a styled key-value pair.
func (u *UI) KeyValue(key, value string) string {
	if !u.shouldStyle() {
		return fmt.Sprintf("%-14s %s", key+":", value)
	}

	keyStyle := lipgloss.NewStyle().
		Foreground(ColorMuted).
		Width(14)
	valueStyle := lipgloss.NewStyle().
		Bold(true)

	return "  " + keyStyle.Render(key) + " " + valueStyle.Render(value)
}

// Success renders a success message with a green checkmark.
func (u *UI) Success(msg string) string {
	return u.mark(StatusSuccess, msg)
}

// Error renders an error message with a red X.
func (u *UI) Error(msg string) string {
	return u.mark(StatusError, msg)
}

// Warning renders a warning message.
func (u *UI) Warning(msg string) string {
	return u.mark(StatusWarning, msg)
}

// mark prefixes msg with the symbol of status, or its bracketed tag in
// plain output. Only the symbol of a success is colored.
func (u *UI) mark(status Status, msg string) string {
	m := marks[status]
	if !u.shouldStyle() {
		return "[" + m.tag + "] " + msg
	}
	if status == StatusSuccess {
		return m.style.Render(m.symbol+" ") + msg
	}
	return m.style.Render(m.symbol + " " + msg)
}

// Muted renders muted/dim text.
func (u *UI) Muted(msg string) string {
	if !u.shouldStyle() {
		return msg
	}

	return StyleMuted.Render(msg)
}

// SummaryBox renders a bordered summary section. A "Status" item is colored
// by whether its value mentions success or failure.
func (u *UI) SummaryBox(title string, items []KV) string {
	if !u.shouldStyle() {
		var sb strings.Builder
		fmt.Fprintf(&sb, "\n=== %s ===\n", title)
		for _, item := range items {
			fmt.Fprintf(&sb, "%-14s %s\n", item.Key+":", item.Value)
		}
		return sb.String()
	}

	maxKeyWidth := 0
	for _, item := range items {
		maxKeyWidth = max(maxKeyWidth, lipgloss.Width(item.Key))
	}

	keyStyle := lipgloss.NewStyle().Foreground(ColorMuted).Width(maxKeyWidth + 2)
	valueStyle := lipgloss.NewStyle().Bold(true)

	lines := make([]string, 0, len(items))
	for _, item := range items {
		value := item.Value
		lower := strings.ToLower(value)
		switch {
		case item.Key == "Status" && strings.Contains(lower, "success"):
			value = StyleSuccess.Render(SymbolSuccess + " " + value)
		case item.Key == "Status" && strings.Contains(lower, "fail"):
			value = StyleError.Render(SymbolError + " " + value)
		default:
			value = valueStyle.Render(value)
		}
		lines = append(lines, "  "+keyStyle.Render(item.Key)+" "+value)
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSuccess)

	boxStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ColorSuccess).
		Padding(0, 1)

	return "\n" + titleStyle.Render("  "+title) + "\n" + boxStyle.Render(strings.Join(lines, "\n"))
}

// TableRow renders one line of a per-table report.
func (u *UI) TableRow(name string, value string, status Status) string {
	m, known := marks[status]
	if !u.shouldStyle() {
		if status == StatusError {
			value = m.tag + ": " + value
		}
		return fmt.Sprintf("  %-15s %s", name+":", value)
	}

	nameStyle := lipgloss.NewStyle().Width(15)
	if !known {
		return fmt.Sprintf("    %s %s", nameStyle.Render(name), value)
	}
	if status != StatusSuccess {
		value = m.style.Render(value)
	}
	return fmt.Sprintf("  %s %s %s", m.style.Render(m.symbol), nameStyle.Render(name), value)
}

// Status represents the outcome shown next to a message or table row.
type Status int

const (
	StatusNone Status = iota
	StatusSuccess
	StatusWarning
	StatusError
)

type statusMark struct {
	tag    string
	symbol string
	style  lipgloss.Style
}

var marks = map[Status]statusMark{
	StatusSuccess: {tag: "OK", symbol: SymbolSuccess, style: StyleSuccess},
	StatusWarning: {tag: "WARN", symbol: SymbolWarning, style: StyleWarning},
	StatusError:   {tag: "FAILED", symbol: SymbolError, style: StyleError},
}
