// Synthetic territory generation using layered simplex noise.
// Stands in for the world-sensing layer when no live survey is available.
package world

import (
	"fmt"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// GenConfig holds territory generation parameters.
type GenConfig struct {
	RegionsX     int     // Regions along the east axis, starting at E0
	RegionsY     int     // Regions along the south axis, starting at S0
	NodesPerAxis int     // Sub-territories per region along each axis
	Seed         int64   // Random seed (0 = random)
	SourceLevel  float64 // Noise threshold above which a node holds a second source
	MineralLevel float64 // Noise threshold above which a node holds a mineral
}

// DefaultGenConfig returns a small multi-region configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		RegionsX:     2,
		RegionsY:     2,
		NodesPerAxis: 2,
		Seed:         0,
		SourceLevel:  0.55,
		MineralLevel: 0.7,
	}
}

// Link is a spatial adjacency between two generated nodes.
type Link struct {
	A, B   string
	Weight float64
}

// Survey is the output of a generation pass.
type Survey struct {
	Nodes []*Node
	Links []Link
}

// Generate lays out a grid of regions, splits each into NodesPerAxis²
// territories, and populates them from noise. Every territory gets one
// energy source; the first territory of each region holds its controller.
func Generate(cfg GenConfig, tick uint64) Survey {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	per := cfg.NodesPerAxis
	if per < 1 {
		per = 1
	}

	sourceNoise := opensimplex.NewNormalized(seed)
	mineralNoise := opensimplex.NewNormalized(seed + 1)
	levelNoise := opensimplex.NewNormalized(seed + 2)

	span := RegionSize / per
	grid := make(map[[2]int]*Node)
	var out Survey

	for ry := 0; ry < cfg.RegionsY; ry++ {
		for rx := 0; rx < cfg.RegionsX; rx++ {
			region := RegionName(rx, ry)
			for j := 0; j < per; j++ {
				for i := 0; i < per; i++ {
					anchor := Position{Region: region, X: i*span + span/2, Y: j*span + span/2}
					n := NewNode(anchor, tick)

					gx := float64(rx*per + i)
					gy := float64(ry*per + j)

					n.Resources = append(n.Resources, Resource{
						ID:       fmt.Sprintf("%s-src-0", n.ID),
						Type:     ResourceSource,
						Position: offset(anchor, 3, -2),
						Capacity: 3000,
					})
					if octaveNoise(sourceNoise, gx, gy, 3, 0.35, 0.5) > cfg.SourceLevel {
						n.Resources = append(n.Resources, Resource{
							ID:       fmt.Sprintf("%s-src-1", n.ID),
							Type:     ResourceSource,
							Position: offset(anchor, -4, 3),
							Capacity: 1500,
						})
					}
					if octaveNoise(mineralNoise, gx, gy, 3, 0.35, 0.5) > cfg.MineralLevel {
						n.Resources = append(n.Resources, Resource{
							ID:       fmt.Sprintf("%s-min-0", n.ID),
							Type:     ResourceMineral,
							Position: offset(anchor, 5, 5),
							Capacity: 70000,
						})
					}
					if i == 0 && j == 0 {
						level := 1 + int(octaveNoise(levelNoise, gx, gy, 2, 0.2, 0.5)*7)
						n.Resources = append(n.Resources, Resource{
							ID:       fmt.Sprintf("%s-ctrl", n.ID),
							Type:     ResourceController,
							Position: offset(anchor, 0, 4),
							Level:    level,
						})
					}

					grid[[2]int{rx*per + i, ry*per + j}] = n
					out.Nodes = append(out.Nodes, n)
				}
			}
		}
	}

	// Link each territory to its east and south neighbours.
	w, h := cfg.RegionsX*per, cfg.RegionsY*per
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			n := grid[[2]int{x, y}]
			for _, d := range [2][2]int{{1, 0}, {0, 1}} {
				m, ok := grid[[2]int{x + d[0], y + d[1]}]
				if !ok {
					continue
				}
				out.Links = append(out.Links, Link{A: n.ID, B: m.ID, Weight: float64(anchorDistance(n.Anchor, m.Anchor))})
			}
		}
	}

	return out
}

func anchorDistance(a, b Position) int {
	if a.Region == b.Region {
		return Chebyshev(a, b)
	}
	ax, ay, _ := a.Global()
	bx, by, _ := b.Global()
	return Chebyshev(Position{X: ax, Y: ay}, Position{X: bx, Y: by})
}

func offset(p Position, dx, dy int) Position {
	x := min(max(p.X+dx, 1), RegionSize-2)
	y := min(max(p.Y+dy, 1), RegionSize-2)
	return Position{Region: p.Region, X: x, Y: y}
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
