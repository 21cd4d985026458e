package vessel

import "math"

// Sample resolves one altitude in whole meters from the candidate heights.
//
// In flight the terrain reading can jump high over water and sea floor gaps, so
// sea level altitude caps it; a negative terrain reading means undefined. On the
// surface or above the atmosphere the two terrain readings are compared and the
// larger wins, so a stale low value cannot fake ground contact.
func Sample(sig Signal) int {
	h := sig.Heights

	var distance float64
	if sig.Situation == Flying {
		if h.Terrain >= 0 {
			distance = math.Min(h.Terrain, h.SeaLevel)
		} else {
			distance = h.SeaLevel
		}
	} else {
		distance = math.Max(h.TerrainFn, h.Terrain)
	}

	if distance < 0 || math.IsNaN(distance) {
		return 0
	}
	if distance > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(distance)
}
