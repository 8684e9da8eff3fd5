package navigator

import (
	"math"

	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/world"
)

// EstimateTravel approximates the travel cost between two anchors without a
// measured path. Inside one region it is the Chebyshev distance. Across
// regions every region crossing costs world.RegionSize tiles on top of the
// in-region offset, which is the Chebyshev distance in world coordinates.
// Returns +Inf when either region name cannot be parsed.
func EstimateTravel(a, b world.Position) float64 {
	if a.Region == b.Region {
		return float64(world.Chebyshev(a, b))
	}
	ax, ay, ok := a.Global()
	if !ok {
		return math.Inf(1)
	}
	bx, by, ok := b.Global()
	if !ok {
		return math.Inf(1)
	}
	return float64(world.Chebyshev(world.Position{X: ax, Y: ay}, world.Position{X: bx, Y: by}))
}
