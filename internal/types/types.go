package types

import (
	"encoding/json"
	"fmt"
	"os"

	"tilereel/internal/domain/ident"
)

type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// Coordinate is decoded from the input's two-element [lat, lon] array.
type Coordinate struct {
	Lat float64
	Lon float64
}

func (c *Coordinate) UnmarshalJSON(b []byte) error {
	var pair []float64
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("coords must be [lat, lon], got %d values", len(pair))
	}
	c.Lat, c.Lon = pair[0], pair[1]
	return nil
}

func (c Coordinate) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.Lat, c.Lon})
}

type MediaEntry struct {
	Kind         MediaKind `json:"type"`
	Path         string    `json:"path"`
	DurationHint float64   `json:"duration_hint,omitempty"`
}

// Item is one geo-tagged record from the input document. ID is the
// resolved slug assigned at load time; items are never mutated afterwards.
type Item struct {
	Title  string       `json:"title"`
	Coords Coordinate   `json:"coords"`
	Media  []MediaEntry `json:"media"`

	ID string `json:"-"`
}

// rawItem separates decoding from the Item model so a record without a
// coords key can be told apart from one legitimately at (0, 0).
type rawItem struct {
	Title  string       `json:"title"`
	Coords *Coordinate  `json:"coords"`
	Media  []MediaEntry `json:"media"`
}

// Load reads the input document and assigns a unique ID to every item.
// Warnings describe slug collisions and empty-slug fallbacks; a parse
// failure, including a record without coordinates, is fatal to the run.
func Load(path string) (items []Item, warnings []string, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read input: %w", err)
	}
	var raw []rawItem
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, nil, fmt.Errorf("parse input %s: %w", path, err)
	}

	items = make([]Item, 0, len(raw))
	titles := make([]string, 0, len(raw))
	for i, r := range raw {
		if r.Coords == nil {
			return nil, nil, fmt.Errorf("parse input %s: item %d (%q) has no coords", path, i, r.Title)
		}
		items = append(items, Item{Title: r.Title, Coords: *r.Coords, Media: r.Media})
		titles = append(titles, r.Title)
	}

	ids, warnings := ident.Assign(titles)
	for i := range items {
		items[i].ID = ids[i]
	}
	return items, warnings, nil
}
