package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/memoy/tui-go/internal/game"
)

// DebugPanel shows recent engine events next to the board
type DebugPanel struct {
	enabled bool
	lines   []string
	buffer  int // max lines kept
}

// NewDebugPanel creates a new debug panel
func NewDebugPanel(enabled bool) DebugPanel {
	return DebugPanel{
		enabled: enabled,
		buffer:  50,
	}
}

// IsEnabled returns whether debug mode is enabled
func (d *DebugPanel) IsEnabled() bool {
	return d.enabled
}

// AddEvent records an event line with a timestamp
func (d *DebugPanel) AddEvent(eventType string, details string) {
	if !d.enabled {
		return
	}
	line := time.Now().Format("15:04:05") + " [" + eventType + "]"
	if details != "" {
		line += " " + details
	}
	d.lines = append(d.lines, line)
	if len(d.lines) > d.buffer {
		d.lines = d.lines[len(d.lines)-d.buffer:]
	}
}

// AddTurn records a resolved turn
func (d *DebugPanel) AddTurn(res game.TurnResult) {
	d.AddEvent(string(res.Outcome), fmt.Sprintf("#%d=%s #%d=%s pairs=%d score=%d",
		res.First, res.FirstSymbol, res.Second, res.SecondSymbol, res.MatchedPairs, res.Score))
}

// Lines returns the current debug lines
func (d *DebugPanel) Lines() []string {
	return d.lines
}

// Render renders the most recent lines that fit in height
func (d *DebugPanel) Render(width, height int) string {
	if !d.enabled {
		return ""
	}

	title := lipgloss.NewStyle().
		Foreground(ColorYellow).
		Bold(true).
		Render("EVENTS")

	contentHeight := max(height-4, 1)
	start := max(len(d.lines)-contentHeight, 0)
	maxLen := max(width-4, 10)

	var lines []string
	for _, line := range d.lines[start:] {
		if len(line) > maxLen {
			line = line[:maxLen-3] + "..."
		}
		lines = append(lines, line)
	}
	for len(lines) < contentHeight {
		lines = append(lines, "")
	}

	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorYellow).
		Padding(0, 1).
		Render(title + "\n" + strings.Join(lines, "\n"))
}
