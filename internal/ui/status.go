package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// ProgressLine writes pagination progress as a single overwritten terminal
// line. It satisfies the api.StatusSink interface.
type ProgressLine struct {
	prefix string
	active bool
}

// NewProgressLine returns a progress sink prefixed with the fetch target.
func NewProgressLine(prefix string) *ProgressLine {
	return &ProgressLine{prefix: prefix}
}

// Update prints a progress message during fetch
func (p *ProgressLine) Update(text string) {
	progressStyle := lipgloss.NewStyle().Foreground(yellow)
	fmt.Printf("\r%s", progressStyle.Render(fmt.Sprintf("Fetching %s... %s", p.prefix, text)))
	p.active = true
}

// Done terminates the progress line so later output starts clean.
func (p *ProgressLine) Done() {
	if p.active {
		fmt.Println()
		p.active = false
	}
}
