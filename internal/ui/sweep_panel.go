package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SweepView is the sweep panel input.
type SweepView struct {
	Track  string
	Color  lipgloss.Color
	Active bool
	Reason string
}

// RenderSweepPanel draws the warning track centred in a bordered panel.
// The track is shown only while the instrument is live.
func RenderSweepPanel(width, height int, v SweepView) string {
	innerW := max(10, width-4)
	innerH := max(1, height-2)

	var line string
	switch {
	case v.Active && v.Track != "":
		line = lipgloss.NewStyle().Foreground(v.Color).Bold(true).Render(v.Track)
	case v.Active:
		line = StyleHelp.Render("(indicator hidden)")
	default:
		line = StyleTrackIdle.Render("standby · " + v.Reason)
	}

	title := StylePanelTitle.Render("PROXIMITY")
	body := lipgloss.PlaceHorizontal(innerW, lipgloss.Center, line)

	lines := []string{title}
	pad := max(0, (innerH-3)/2)
	for i := 0; i < pad; i++ {
		lines = append(lines, "")
	}
	lines = append(lines, body)

	style := StylePanelBorder
	if v.Active {
		style = StylePanelActive
	}
	return style.Width(width - 2).Height(innerH).Render(strings.Join(lines, "\n"))
}
