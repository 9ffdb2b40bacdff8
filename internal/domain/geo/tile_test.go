package geo

import "testing"

func TestTileFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		lat, lon float64
		zoom     int
		want     Tile
	}{
		{name: "kansai z5", lat: 35.0, lon: 135.0, zoom: 5, want: Tile{Zoom: 5, X: 28, Y: 12}},
		{name: "kansai z8", lat: 35.0, lon: 135.0, zoom: 8, want: Tile{Zoom: 8, X: 224, Y: 101}},
		{name: "london z8", lat: 51.5074, lon: -0.1278, zoom: 8, want: Tile{Zoom: 8, X: 127, Y: 85}},
		{name: "origin z0", lat: 0, lon: 0, zoom: 0, want: Tile{Zoom: 0, X: 0, Y: 0}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := TileFor(tc.lat, tc.lon, tc.zoom); got != tc.want {
				t.Fatalf("TileFor(%v, %v, %d) = %+v, want %+v", tc.lat, tc.lon, tc.zoom, got, tc.want)
			}
		})
	}
}

func TestTileForDeterministic(t *testing.T) {
	t.Parallel()

	a := TileFor(48.8566, 2.3522, 12)
	b := TileFor(48.8566, 2.3522, 12)
	if a != b {
		t.Fatalf("same input produced %+v and %+v", a, b)
	}
}

func TestTileForClampsPoles(t *testing.T) {
	t.Parallel()

	north := TileFor(90, 0, 5)
	if north.Y != 0 {
		t.Fatalf("north pole y = %d, want 0", north.Y)
	}
	south := TileFor(-90, 0, 5)
	if south.Y != 31 {
		t.Fatalf("south pole y = %d, want 31", south.Y)
	}
}

func TestTileForClampsAntimeridian(t *testing.T) {
	t.Parallel()

	got := TileFor(0, 180, 3)
	if got.X != 7 {
		t.Fatalf("lon 180 x = %d, want 7", got.X)
	}
	if west := TileFor(0, -180, 3); west.X != 0 {
		t.Fatalf("lon -180 x = %d, want 0", west.X)
	}
}

func TestTileID(t *testing.T) {
	t.Parallel()

	got := Tile{Zoom: 5, X: 28, Y: 12}.ID()
	if got != "z5_x28_y12" {
		t.Fatalf("ID = %q", got)
	}
}
