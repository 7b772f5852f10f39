package ui

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Spinner shows an animated indicator while waiting on the database.
// Without a terminal it prints the label once and the outcome after it.
type Spinner struct {
	ui      *UI
	label   string
	done    chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
	stopped bool
}

// Spinner animation frames (braille pattern).
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// NewSpinner creates a new animated spinner.
func (u *UI) NewSpinner(label string) *Spinner {
	return &Spinner{
		ui:    u,
		label: label,
		done:  make(chan struct{}),
	}
}

// Start begins the spinner animation.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true

	if !s.ui.shouldStyle() {
		fmt.Fprintf(s.ui.Out, "%s...", s.label)
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		frame := 0
		spinnerStyle := lipgloss.NewStyle().Foreground(ColorPrimary)

		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-s.done:
				return
			case <-ticker.C:
				fmt.Fprintf(s.ui.Out, "\r%s %s...", spinnerStyle.Render(spinnerFrames[frame]), s.label)
				frame = (frame + 1) % len(spinnerFrames)
			}
		}
	}()
}

// halt stops the animation once; it reports false if the spinner never started
func (s *Spinner) halt() bool {
	s.mu.Lock()
	if !s.started || s.stopped {
		s.mu.Unlock()
		return false
	}
	s.stopped = true
	close(s.done)
	s.mu.Unlock()

	s.wg.Wait()
	return true
}

// Success stops the spinner and shows a success message.
func (s *Spinner) Success(msg string) {
	if !s.halt() {
		return
	}

	if !s.ui.shouldStyle() {
		fmt.Fprintf(s.ui.Out, " %s\n", msg)
		return
	}
	fmt.Fprintf(s.ui.Out, "\r\033[K%s %s... %s\n", StyleSuccess.Render(SymbolSuccess), s.label, msg)
}

// Error stops the spinner and shows an error message.
func (s *Spinner) Error(msg string) {
	if !s.halt() {
		return
	}

	if !s.ui.shouldStyle() {
		fmt.Fprintf(s.ui.Out, " %s\n", msg)
		return
	}
	fmt.Fprintf(s.ui.Out, "\r\033[K%s %s... %s\n", StyleError.Render(SymbolError), s.label, StyleError.Render(msg))
}
