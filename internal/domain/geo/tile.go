// Package geo maps coordinates to Web Mercator slippy-map tiles.
package geo

import (
	"fmt"
	"math"
)

// MaxLatitude is the largest latitude projectable under Web Mercator.
// Inputs beyond it (including the poles) are clamped before projection.
const MaxLatitude = 85.05112878

// Tile is a discrete slippy-map grid cell at a zoom level.
type Tile struct {
	Zoom int
	X    int
	Y    int
}

// ID returns the canonical cluster identity, e.g. "z5_x28_y12".
func (t Tile) ID() string {
	return fmt.Sprintf("z%d_x%d_y%d", t.Zoom, t.X, t.Y)
}

// TileFor projects (lat, lon) onto the tile grid at the given zoom using
// the standard spherical Web Mercator formula. Latitude is clamped to
// ±MaxLatitude and longitude to ±180, and the resulting indices are
// clamped into [0, 2^zoom-1], so the function is total over all float
// inputs. Pure and deterministic.
func TileFor(lat, lon float64, zoom int) Tile {
	lat = clamp(lat, -MaxLatitude, MaxLatitude)
	lon = clamp(lon, -180, 180)

	n := math.Exp2(float64(zoom))
	x := int((lon + 180.0) / 360.0 * n)
	latRad := lat * math.Pi / 180.0
	y := int((1.0 - math.Log(math.Tan(latRad)+1.0/math.Cos(latRad))/math.Pi) / 2.0 * n)

	max := int(n) - 1
	return Tile{
		Zoom: zoom,
		X:    clampInt(x, 0, max),
		Y:    clampInt(y, 0, max),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
