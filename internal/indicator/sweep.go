// Package indicator renders the textual warning track shown while the
// instrument is live.
package indicator

import (
	"math/rand"
	"strings"
	"time"

	"proximity.klederson.com/internal/config"
)

// Unpowered replaces the track when the vessel has no power or the system is off.
const Unpowered = "---------------------unpowered----------------------"

var breakup = []byte{'_', ' ', '=', 'o', '+', 'O', '.', ' '}

// Indicator holds the sweep state of one instrument.
type Indicator struct {
	length   int
	marker   int     // [0, length/2]
	oldSpeed float64 // crackle residual
	rng      *rand.Rand
}

// New creates an indicator. A nil rng is seeded from the clock.
func New(rng *rand.Rand) *Indicator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Indicator{
		length: config.TrackLength,
		rng:    rng,
	}
}

func (ind *Indicator) half() int {
	return ind.length / 2
}

// Marker is the current marker offset from the track ends.
func (ind *Indicator) Marker() int {
	return ind.marker
}

// UsesDistance reports whether the track encodes distance at this altitude.
func UsesDistance(altitude int, s config.Settings) bool {
	switch s.Visual {
	case config.VisualDistance:
		return true
	case config.VisualHybrid:
		return altitude > s.DSThreshold
	}
	return false
}

// Render produces the next sweep frame for the selected visual mode.
func (ind *Indicator) Render(altitude int, vs float64, s config.Settings) string {
	switch s.Visual {
	case config.VisualHidden:
		return ""
	case config.VisualDistance:
		return ind.distance(altitude, s.ActivationHeight)
	case config.VisualHybrid:
		if altitude > s.DSThreshold {
			return ind.distance(altitude, s.ActivationHeight)
		}
	}
	return ind.speed(vs)
}

// DistanceMarker maps altitude to a marker offset: half at the surface,
// zero at the activation ceiling.
func DistanceMarker(altitude, activationHeight, half int) int {
	if activationHeight <= 0 {
		return 0
	}
	m := half - half*altitude/activationHeight
	return max(0, min(m, half))
}

func (ind *Indicator) distance(altitude, activationHeight int) string {
	ind.marker = DistanceMarker(altitude, activationHeight, ind.half())
	return ind.track(ind.length-(ind.marker+1), ind.marker+1)
}

func (ind *Indicator) speed(vs float64) string {
	out := ind.track(ind.length-ind.marker, ind.marker)

	half := ind.half()
	if vs <= 0 {
		ind.marker++
		if ind.marker >= half {
			ind.marker = 0
		}
	} else {
		ind.marker--
		if ind.marker < 1 {
			ind.marker = half
		}
	}
	return out
}

// track inserts the far marker first, then the near one.
func (ind *Indicator) track(far, near int) string {
	b := []byte(strings.Repeat(string(config.TrackFiller), ind.length))
	b = insertAt(b, far, config.TrackMarker)
	b = insertAt(b, near, config.TrackMarker)
	return string(b)
}

func insertAt(b []byte, i int, c byte) []byte {
	i = max(0, min(i, len(b)))
	b = append(b, 0)
	copy(b[i+1:], b[i:])
	b[i] = c
	return b
}

// Crackle scatters breakup symbols over the sweep when the descent rate
// jumps upward suddenly, as on touchdown. It reports whether it fired.
func (ind *Indicator) Crackle(sweep string, vs float64) (string, bool) {
	old := ind.oldSpeed
	if !(old < 0 && vs > old+2) {
		ind.oldSpeed = vs
		return sweep, false
	}

	raw := int(1 - old)
	if len(sweep) > 2 {
		b := []byte(sweep)
		for i := 0; i < min(raw, config.CrackleLimit); i++ {
			b[ind.rng.Intn(len(b)-2)] = breakup[ind.rng.Intn(len(breakup))]
		}
		sweep = string(b)
	}
	if raw > config.CrackleLimit {
		ind.oldSpeed *= 0.5
	}
	ind.oldSpeed += 0.6
	return sweep, true
}
