package vessel

import (
	"fmt"
	"strings"
)

// Situation is the coarse flight phase reported by the host.
type Situation int

const (
	Prelaunch Situation = iota
	Landed
	Splashed
	Flying
	SubOrbital
	Orbiting
)

func (s Situation) String() string {
	switch s {
	case Prelaunch:
		return "Prelaunch"
	case Landed:
		return "Landed"
	case Splashed:
		return "Splashed"
	case Flying:
		return "Flying"
	case SubOrbital:
		return "SubOrbital"
	case Orbiting:
		return "Orbiting"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the situation by name.
func (s Situation) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText accepts a situation name in any case.
func (s *Situation) UnmarshalText(b []byte) error {
	name := strings.TrimSpace(string(b))
	for c := Prelaunch; c <= Orbiting; c++ {
		if strings.EqualFold(c.String(), name) {
			*s = c
			return nil
		}
	}
	return fmt.Errorf("unknown situation %q", name)
}

// OnSurface reports landed, splashed or waiting on the pad.
func (s Situation) OnSurface() bool {
	return s == Prelaunch || s == Landed || s == Splashed
}

// Grounded reports solid ground contact (landed or on the pad).
func (s Situation) Grounded() bool {
	return s == Prelaunch || s == Landed
}

// Heights holds the candidate height readings. Their reliability depends on
// the situation; see Sample.
type Heights struct {
	Terrain   float64 `json:"terrain"`   // Height above terrain as a field; negative when undefined
	TerrainFn float64 `json:"terrainFn"` // Height above terrain recomputed from the surface
	SeaLevel  float64 `json:"seaLevel"`  // Altitude above sea level
}

// Signal is the read-only telemetry snapshot for one tick.
type Signal struct {
	VesselID           string    `json:"vessel"`
	Heights            Heights   `json:"heights"`
	VerticalSpeed      float64   `json:"verticalSpeed"` // m/s, negative while descending
	Situation          Situation `json:"situation"`
	MissionTime        float64   `json:"missionTime"` // seconds, monotonic per vessel
	WarpRate           float64   `json:"warpRate"`    // 1 = real time
	Paused             bool      `json:"paused"`
	Primary            bool      `json:"-"` // filled in by the registry
	Powered            bool      `json:"powered"`
	ParachutesDeployed bool      `json:"parachutes"`
	Rover              bool      `json:"rover"`
}

// Ascending reports upward motion above the noise floor.
func (s Signal) Ascending(threshold float64) bool {
	return s.VerticalSpeed >= threshold
}

// SignalMsg carries a telemetry snapshot into the Bubble Tea program.
type SignalMsg struct {
	Signal Signal
}
