// Package world provides the territory data model: region names, anchor
// positions, typed resources and the nodes that group them.
package world

import (
	"fmt"
	"strconv"
)

// RegionSize is the width and height of one region in tiles.
const RegionSize = 50

// Position is a tile inside a named region.
type Position struct {
	Region string `json:"region"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

func (p Position) String() string {
	return fmt.Sprintf("%s(%d,%d)", p.Region, p.X, p.Y)
}

// ParseRegion converts a region name such as "W3N7" into relative region
// coordinates. East and south count up from 0; west and north count down
// from -1, so W0 sits directly left of E0.
func ParseRegion(name string) (rx, ry int, ok bool) {
	if len(name) < 4 {
		return 0, 0, false
	}
	i := 1
	for i < len(name) && name[i] >= '0' && name[i] <= '9' {
		i++
	}
	if i == 1 || i >= len(name)-1 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(name[1:i])
	if err != nil {
		return 0, 0, false
	}
	v, err := strconv.Atoi(name[i+1:])
	if err != nil {
		return 0, 0, false
	}

	switch name[0] {
	case 'E':
		rx = h
	case 'W':
		rx = -h - 1
	default:
		return 0, 0, false
	}
	switch name[i] {
	case 'S':
		ry = v
	case 'N':
		ry = -v - 1
	default:
		return 0, 0, false
	}
	return rx, ry, true
}

// RegionName is the inverse of ParseRegion.
func RegionName(rx, ry int) string {
	h := fmt.Sprintf("E%d", rx)
	if rx < 0 {
		h = fmt.Sprintf("W%d", -rx-1)
	}
	v := fmt.Sprintf("S%d", ry)
	if ry < 0 {
		v = fmt.Sprintf("N%d", -ry-1)
	}
	return h + v
}

// Global returns the position in world tile coordinates.
func (p Position) Global() (gx, gy int, ok bool) {
	rx, ry, ok := ParseRegion(p.Region)
	if !ok {
		return 0, 0, false
	}
	return rx*RegionSize + p.X, ry*RegionSize + p.Y, true
}

// Chebyshev returns the king-move distance between two tiles of the same
// region. Tiles in different regions are not comparable here; see Global.
func Chebyshev(a, b Position) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	if dy > dx {
		return dy
	}
	return dx
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
