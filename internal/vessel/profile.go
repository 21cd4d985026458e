package vessel

// Keyframe pins the height above terrain at a mission time. Between keyframes
// the height is interpolated linearly, so vertical speed is the segment slope.
type Keyframe struct {
	T      float64
	Height float64
}

// Profile is a scripted hop: pad, powered ascent, coast, descent and touchdown.
type Profile struct {
	VesselID  string
	Keyframes []Keyframe
	LaunchAt  float64 // prelaunch before this time
	LandedAt  float64 // landed from this time on
	Elevation float64 // terrain elevation above sea level
	GapFrom   float64 // terrain reading undefined in [GapFrom, GapTo)
	GapTo     float64
	Rover     bool
}

// DemoProfile returns the hop used by demo mode and the simulate command.
func DemoProfile() Profile {
	return Profile{
		VesselID: "demo-lander",
		Keyframes: []Keyframe{
			{0, 2},
			{5, 2},
			{35, 2400},
			{45, 2600},
			{50, 2550},
			{80, 750},
			{120, 150},
			{140, 12},
			{142, 2},
			{1e9, 2},
		},
		LaunchAt:  5,
		LandedAt:  142,
		Elevation: 120,
		GapFrom:   60,
		GapTo:     66,
	}
}

// At returns the telemetry snapshot at mission time t.
func (p Profile) At(t float64) Signal {
	height, vs := p.interpolate(t)

	situation := Flying
	switch {
	case t < p.LaunchAt:
		situation = Prelaunch
	case t >= p.LandedAt:
		situation = Landed
	}
	if situation != Flying {
		vs = 0
	}

	terrain := height
	if t >= p.GapFrom && t < p.GapTo {
		terrain = -1
	}

	return Signal{
		VesselID: p.VesselID,
		Heights: Heights{
			Terrain:   terrain,
			TerrainFn: height,
			SeaLevel:  height + p.Elevation,
		},
		VerticalSpeed: vs,
		Situation:     situation,
		MissionTime:   t,
		WarpRate:      1,
		Powered:       true,
		Rover:         p.Rover,
	}
}

func (p Profile) interpolate(t float64) (height, vs float64) {
	k := p.Keyframes
	if len(k) == 0 {
		return 0, 0
	}
	if t <= k[0].T {
		return k[0].Height, 0
	}
	for i := 1; i < len(k); i++ {
		if t < k[i].T {
			a, b := k[i-1], k[i]
			slope := (b.Height - a.Height) / (b.T - a.T)
			return a.Height + slope*(t-a.T), slope
		}
	}
	return k[len(k)-1].Height, 0
}
