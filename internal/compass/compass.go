package compass

import "math"

// sectors lists the eight compass labels in bearing order starting at
// north. Each sector spans 45° centered on its direction.
var sectors = [8]string{"↑ N", "↗ NE", "→ E", "↘ SE", "↓ S", "↙ SW", "← W", "↖ NW"}

// Label maps a wind bearing in degrees to an arrow glyph plus compass
// abbreviation (0/360 = N, 90 = E). Nil means the observation is absent
// and yields "N/A".
//
// Bearings are normalized into [0, 360) by modulo, so any real input is
// valid. Sector boundaries are half-open: a bearing exactly on a
// boundary belongs to the higher-bearing sector, except the north
// sector which wraps across zero (≥337.5 or <22.5).
func Label(bearing *float64) string {
	if bearing == nil {
		return "N/A"
	}
	deg := math.Mod(*bearing, 360)
	if deg < 0 {
		deg += 360
	}
	idx := int((deg+22.5)/45) % 8
	return sectors[idx]
}
