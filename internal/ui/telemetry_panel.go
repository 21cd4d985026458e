package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"proximity.klederson.com/internal/indicator"
	"proximity.klederson.com/internal/instrument"
)

// RenderTelemetryPanel renders the vessel readout under the sweep, with the
// most recent gate transitions listed newest first.
func RenderTelemetryPanel(f instrument.Frame, width, height int, vsHistory []float64, events []string) string {
	innerW := max(20, width-4)
	sig := f.Signal

	lines := []string{StylePanelTitle.Render("TELEMETRY"), StyleHelp.Render(strings.Repeat("-", innerW))}

	fields := []struct{ label, value string }{
		{"Vessel", sig.VesselID},
		{"Situation", sig.Situation.String()},
		{"Altitude", fmt.Sprintf("%dm", f.Altitude)},
		{"V/Speed", fmt.Sprintf("%+.1f m/s", sig.VerticalSpeed)},
		{"MET", formatMissionTime(sig.MissionTime)},
		{"Gate", f.Reason.String()},
	}
	for _, fl := range fields {
		lines = append(lines, StyleLabel.Render(fmt.Sprintf("  %-10s", fl.label))+StyleValue.Render(fl.value))
	}

	flags := []struct {
		label string
		on    bool
	}{
		{"powered", sig.Powered},
		{"paused", sig.Paused},
		{"chutes", sig.ParachutesDeployed},
		{"rover", sig.Rover},
		{"primary", sig.Primary},
	}
	var fb strings.Builder
	fb.WriteString(StyleLabel.Render("  Flags     "))
	for _, fl := range flags {
		if fl.on {
			fb.WriteString(StyleCheckOn.Render("[x] " + fl.label + " "))
		} else {
			fb.WriteString(StyleCheckOff.Render("[ ] " + fl.label + " "))
		}
	}
	lines = append(lines, fb.String(), "")

	barWidth := max(10, innerW-22)
	danger := indicator.Danger(f.Altitude, sig.VerticalSpeed)
	lines = append(lines, StyleLabel.Render("  Danger    ")+renderDangerBar(danger, f.Color, barWidth)+
		StyleValue.Render(fmt.Sprintf(" %3.0f%%", danger*100)))

	if len(vsHistory) > 0 {
		lines = append(lines, "", StyleLabel.Render("  V/Speed History:"))
		spark := renderSparkline(vsHistory, max(10, innerW-4))
		lines = append(lines, "  "+lipgloss.NewStyle().Foreground(ColorGreen).Render(spark))
	}

	if len(events) > 0 {
		lines = append(lines, "", StyleLabel.Render("  Gate Events:"))
		for _, e := range events {
			lines = append(lines, "  "+StyleHelp.Render(e))
		}
	}

	for len(lines) < height-2 {
		lines = append(lines, "")
	}
	if len(lines) > height-2 && height > 2 {
		lines = lines[:height-2]
	}

	return StylePanelBorder.Width(width - 2).Height(max(1, height-2)).Render(strings.Join(lines, "\n"))
}

func renderDangerBar(danger float64, color lipgloss.Color, width int) string {
	filled := int(math.Round(max(0, min(danger, 1)) * float64(width)))

	bar := strings.Repeat("|", filled) + strings.Repeat("-", width-filled)
	filledPart := lipgloss.NewStyle().Foreground(color).Render(bar[:filled])
	emptyPart := lipgloss.NewStyle().Foreground(ColorDimGreen).Render(bar[filled:])
	return StyleHelp.Render("[") + filledPart + emptyPart + StyleHelp.Render("]")
}

func renderSparkline(values []float64, width int) string {
	if len(values) == 0 {
		return ""
	}

	chars := []byte{'_', '.', '-', '~', '^'}

	// Take last `width` values
	if len(values) > width {
		values = values[len(values)-width:]
	}

	minV, maxV := values[0], values[0]
	for _, v := range values {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	rng := math.Max(maxV-minV, 1)

	var sb strings.Builder
	for _, v := range values {
		idx := int((v - minV) / rng * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))
		sb.WriteByte(chars[idx])
	}
	return sb.String()
}

func formatMissionTime(t float64) string {
	if t < 0 {
		t = 0
	}
	total := int(t)
	return fmt.Sprintf("T+%02d:%02d:%02d", total/3600, total/60%60, total%60)
}
