package ui

import "github.com/charmbracelet/lipgloss"

// ComposeLayout stacks the sweep panel over the telemetry panel,
// with menu bar on top and status bar on bottom.
func ComposeLayout(menuBar, sweepPanel, telemetryPanel, statusBar string) string {
	return lipgloss.JoinVertical(lipgloss.Left, menuBar, sweepPanel, telemetryPanel, statusBar)
}
