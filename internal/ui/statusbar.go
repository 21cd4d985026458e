package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"proximity.klederson.com/internal/config"
)

// StatusInfo is what the bottom bar summarizes.
type StatusInfo struct {
	Active   bool
	Reason   string
	Paused   bool
	Audio    bool
	Pulses   int64
	Settings config.Settings
	Err      error
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, st StatusInfo) string {
	var status string
	switch {
	case st.Err != nil:
		status = StyleStatusError.Render("[FEED LOST]")
	case st.Paused:
		status = StyleStatusQuiet.Render("[PAUSED]")
	case st.Active:
		status = StyleStatusLive.Render("[LIVE]")
	default:
		status = StyleStatusQuiet.Render("[STANDBY: " + st.Reason + "]")
	}

	audio := "muted"
	if st.Audio {
		audio = fmt.Sprintf("%d pulses", st.Pulses)
	}

	s := st.Settings
	info := fmt.Sprintf(" Ceiling: %dm  Thresh: %dm  Wave: %s  Pitch: %s  Visual: %s  Audio: %s",
		s.ActivationHeight, s.DSThreshold, s.Waveform, s.Pitch, s.Visual, audio)

	content := status + StyleStatusBar.Foreground(ColorGreen).Render(info)

	gap := max(0, width-lipgloss.Width(content))
	return StyleStatusBar.Width(width).Render(content + strings.Repeat(" ", gap))
}
