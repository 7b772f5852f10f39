package ui

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ProgressBar tracks a known number of steps, such as the entries of a seed
// plan. Failed steps still advance the bar and are counted separately.
type ProgressBar struct {
	ui      *UI
	bar     progress.Model
	label   string
	total   int
	current int
	failed  int
	mu      sync.Mutex
}

// NewProgressBar creates a new progress bar.
func (u *UI) NewProgressBar(label string, total int) *ProgressBar {
	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(30),
		progress.WithoutPercentage(),
	)

	return &ProgressBar{
		ui:    u,
		bar:   bar,
		label: label,
		total: total,
	}
}

// Step advances the bar by one; ok false counts the step as failed.
func (p *ProgressBar) Step(ok bool) {
	p.mu.Lock()
	p.current++
	if !ok {
		p.failed++
	}
	current, failed := p.current, p.failed
	p.mu.Unlock()

	p.render(current, failed)
}

func (p *ProgressBar) render(current, failed int) {
	// Plain output only reports the final tally
	if !p.ui.shouldStyle() {
		return
	}

	pct := 1.0
	if p.total > 0 {
		pct = min(float64(current)/float64(p.total), 1)
	}

	labelStyle := lipgloss.NewStyle().Width(18)
	count := StyleMuted.Render(fmt.Sprintf("%d/%d", current, p.total))
	if failed > 0 {
		count += " " + StyleError.Render(fmt.Sprintf("(%d failed)", failed))
	}

	fmt.Fprintf(p.ui.Out, "\r\033[K  %s %s %s", labelStyle.Render(p.label), p.bar.ViewAs(pct), count)
}

// Done finishes the bar, marking it failed if any step failed.
func (p *ProgressBar) Done() {
	p.mu.Lock()
	current, failed := p.current, p.failed
	p.mu.Unlock()

	if !p.ui.shouldStyle() {
		fmt.Fprintf(p.ui.Out, "%s: %d/%d done, %d failed\n", p.label, current-failed, p.total, failed)
		return
	}

	labelStyle := lipgloss.NewStyle().Width(18)
	if failed > 0 {
		fmt.Fprintf(p.ui.Out, "\r\033[K  %s %s %s\n",
			StyleWarning.Render(SymbolWarning),
			labelStyle.Render(p.label),
			StyleWarning.Render(fmt.Sprintf("%d/%d inserted, %d failed", current-failed, p.total, failed)),
		)
		return
	}
	fmt.Fprintf(p.ui.Out, "\r\033[K  %s %s %s\n",
		StyleSuccess.Render(SymbolSuccess),
		labelStyle.Render(p.label),
		StyleSuccess.Render(fmt.Sprintf("%d/%d complete", current, p.total)),
	)
}
