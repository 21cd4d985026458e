package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"proximity.klederson.com/internal/config"
)

// RenderMenuBar renders the top menu bar.
func RenderMenuBar(width int, source string, systemOn bool) string {
	title := fmt.Sprintf(" %s v%s ", config.AppName, config.AppVersion)

	keys := []struct{ key, label string }{
		{"O", "n/off"},
		{"A", "lways"},
		{"W", "ave"},
		{"V", "isual"},
		{"P", "itch"},
		{"+/-", "ceiling"},
		{"</>", "thresh"},
		{"Q", "uit"},
	}

	var menu strings.Builder
	for _, k := range keys {
		menu.WriteString("  " + StyleMenuKey.Render("["+k.key+"]") + StyleMenuLabel.Render(k.label))
	}

	status := StyleStatusQuiet.Render("OFF")
	if systemOn {
		status = StyleStatusLive.Render("ARMED")
	}

	sourceInfo := StyleMenuLabel.Render(fmt.Sprintf("Source: %s", source))

	left := StyleMenuKey.Render(title) + menu.String()
	right := status + "  " + sourceInfo + " "

	gap := max(0, width-lipgloss.Width(left)-lipgloss.Width(right))
	return StyleMenuBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
