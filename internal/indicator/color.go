package indicator

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"proximity.klederson.com/internal/config"
)

var (
	ColorUnpowered = lipgloss.Color("#808080")
	ColorSafe      = lipgloss.Color("#FFFFFF")
	ColorDistance  = lipgloss.Color("#00FFFF")
)

// Danger is the closing-rate danger in [0, 1]; higher means less time to impact.
func Danger(altitude int, vs float64) float64 {
	d := -2.5 * vs / (float64(altitude) + 4)
	return max(0, min(d, 1))
}

// Color is the indicator colour for the current state.
func Color(altitude int, vs float64, powered bool, s config.Settings) lipgloss.Color {
	switch {
	case !powered:
		return ColorUnpowered
	case vs >= 0:
		return ColorSafe
	case UsesDistance(altitude, s):
		return ColorDistance
	}
	return dangerColor(Danger(altitude, vs))
}

// dangerColor lerps green to yellow over the first half, yellow to red over the second.
func dangerColor(d float64) lipgloss.Color {
	var r, g float64
	if d <= 0.5 {
		r, g = 2*d, 1
	} else {
		r, g = 1, 1-2*(d-0.5)
	}
	return lipgloss.Color(fmt.Sprintf("#%02X%02X00", int(r*255+0.5), int(g*255+0.5)))
}
