// Package gate decides each tick whether the instrument is live.
package gate

import (
	"math"

	"proximity.klederson.com/internal/config"
	"proximity.klederson.com/internal/vessel"
)

// Reason names the predicate that decided the last evaluation.
type Reason int

const (
	None Reason = iota // active, every check passed
	Override
	NotPrimary
	NotDescending
	Landed
	TimeWarp
	NotFlying
	PreLaunch
	AltitudeRange
	Paused
	Parachute
	Rover
	JustLaunched
	SwitchedOff
)

var reasonNames = [...]string{
	None:          "none",
	Override:      "override",
	NotPrimary:    "not-primary",
	NotDescending: "not-descending",
	Landed:        "landed",
	TimeWarp:      "time-warp",
	NotFlying:     "not-flying",
	PreLaunch:     "prelaunch",
	AltitudeRange: "altitude-range",
	Paused:        "paused",
	Parachute:     "parachute",
	Rover:         "rover",
	JustLaunched:  "just-launched",
	SwitchedOff:   "switched-off",
}

func (r Reason) String() string {
	if r < 0 || int(r) >= len(reasonNames) {
		return "unknown"
	}
	return reasonNames[r]
}

// Event is the activation edge produced by an update.
type Event int

const (
	NoChange Event = iota
	Activated
	Deactivated
)

func (e Event) String() string {
	switch e {
	case Activated:
		return "activated"
	case Deactivated:
		return "deactivated"
	default:
		return "no-change"
	}
}

// Params are the settings the gate reads.
type Params struct {
	ActivationHeight      int
	GracePeriod           float64
	AscentSpeed           float64
	LandedSpeed           float64
	AlwaysShow            bool
	SystemOn              bool
	DeactivateOnParachute bool
	DeactivateIfRover     bool
}

// ParamsFrom extracts gate parameters from the settings bag.
func ParamsFrom(s config.Settings) Params {
	return Params{
		ActivationHeight:      s.ActivationHeight,
		GracePeriod:           s.GracePeriod,
		AscentSpeed:           config.AscentSpeed,
		LandedSpeed:           config.LandedSpeed,
		AlwaysShow:            s.AlwaysShow,
		SystemOn:              s.SystemOn,
		DeactivateOnParachute: s.DeactivateOnParachute,
		DeactivateIfRover:     s.DeactivateIfRover,
	}
}

// State persists across ticks. The timers hold the mission time at which a
// condition was last seen and only ever move forward.
type State struct {
	Active         bool
	PreviousActive bool
	Reason         Reason
	DescendingAt   float64 // last tick with negative vertical speed
	AirborneAt     float64 // last tick not landed, splashed or on the pad
	GroundedAt     float64 // last tick landed or on the pad
}

// NewState starts every timer at the given mission time.
func NewState(missionTime float64) State {
	return State{
		DescendingAt: missionTime,
		AirborneAt:   missionTime,
		GroundedAt:   missionTime,
	}
}

// Observe advances the timers for the snapshot.
func (s State) Observe(sig vessel.Signal) State {
	now := sig.MissionTime
	if !sig.Situation.OnSurface() {
		s.AirborneAt = forward(s.AirborneAt, now)
	}
	if sig.VerticalSpeed < 0 {
		s.DescendingAt = forward(s.DescendingAt, now)
	}
	if sig.Situation.Grounded() {
		s.GroundedAt = forward(s.GroundedAt, now)
	}
	return s
}

func forward(prev, now float64) float64 {
	if now > prev {
		return now
	}
	return prev
}

// Evaluate runs the ordered checks. The first failing check names the reason;
// order matters because several checks are overlapping debounce windows.
func Evaluate(sig vessel.Signal, altitude int, p Params, s State) (bool, Reason) {
	now := sig.MissionTime
	ascending := sig.Ascending(p.AscentSpeed)

	switch {
	case !sig.Primary:
		return false, NotPrimary
	case p.AlwaysShow:
		return true, Override
	case s.DescendingAt+p.GracePeriod < now && ascending:
		return false, NotDescending
	case s.AirborneAt+p.GracePeriod < now && math.Abs(sig.VerticalSpeed) < p.LandedSpeed:
		return false, Landed
	case sig.WarpRate != 1:
		return false, TimeWarp
	case !(s.AirborneAt+p.GracePeriod > now || sig.Situation == vessel.Flying || sig.Situation == vessel.SubOrbital):
		return false, NotFlying
	case sig.Situation == vessel.Prelaunch:
		return false, PreLaunch
	case altitude > p.ActivationHeight || altitude < 1:
		return false, AltitudeRange
	case sig.Paused:
		return false, Paused
	case sig.ParachutesDeployed && p.DeactivateOnParachute:
		return false, Parachute
	case sig.Rover && p.DeactivateIfRover:
		return false, Rover
	case s.GroundedAt+p.GracePeriod > now && ascending:
		return false, JustLaunched
	case !p.SystemOn:
		return false, SwitchedOff
	}
	return true, None
}

// ShouldBeep reports whether sound may be emitted: never while climbing or paused.
func ShouldBeep(sig vessel.Signal) bool {
	return sig.VerticalSpeed <= 0 && !sig.Paused
}

// Gate owns the state for one instrument.
type Gate struct {
	state   State
	started bool
}

// New creates a gate; timers start at the first observed mission time.
func New() *Gate {
	return &Gate{}
}

// Update observes the snapshot, evaluates it and records the edge.
func (g *Gate) Update(sig vessel.Signal, altitude int, p Params) Event {
	if !g.started {
		g.state = NewState(sig.MissionTime)
		g.started = true
	}

	g.state = g.state.Observe(sig)
	active, reason := Evaluate(sig, altitude, p, g.state)

	g.state.PreviousActive = g.state.Active
	g.state.Active = active
	g.state.Reason = reason

	switch {
	case active && !g.state.PreviousActive:
		return Activated
	case !active && g.state.PreviousActive:
		return Deactivated
	default:
		return NoChange
	}
}

// State returns a copy of the current state.
func (g *Gate) State() State {
	return g.state
}

// Active reports the result of the last update.
func (g *Gate) Active() bool {
	return g.state.Active
}

// Reason reports the deciding check of the last update.
func (g *Gate) Reason() Reason {
	return g.state.Reason
}
