// Package config holds the static per-run settings, loaded from a TOML
// file over repository defaults. The struct is built once in the CLI and
// passed down read-only; no component reads process-wide state.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Output describes the shared clip geometry and the final output root.
type Output struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	FPS    int    `toml:"fps"`
	Dir    string `toml:"dir"`
}

// Clips configures normalization durations and the scratch work area.
type Clips struct {
	ImageSeconds       float64 `toml:"image_seconds"`
	VideoMaxSeconds    float64 `toml:"video_max_seconds"`
	PlaceholderSeconds float64 `toml:"placeholder_seconds"`
	WorkDir            string  `toml:"work_dir"`
}

// Levels selects the composition strategies as an explicit list rather
// than type tags: the global summary, clustered outputs at exactly two
// zooms, and the per-item outputs.
type Levels struct {
	Global       bool  `toml:"global"`
	ClusterZooms []int `toml:"cluster_zooms"`
	PerItem      bool  `toml:"per_item"`
}

// Run holds execution settings for the batch run itself.
type Run struct {
	Jobs                 int    `toml:"jobs"`
	EncodeTimeoutSeconds int    `toml:"encode_timeout_seconds"`
	LogLevel             string `toml:"log_level"`
	FFmpegPath           string `toml:"ffmpeg_path"`
}

type Config struct {
	Output Output `toml:"output"`
	Clips  Clips  `toml:"clips"`
	Levels Levels `toml:"levels"`
	Run    Run    `toml:"run"`
}

// Default returns the repository defaults (portrait 1080x1920 at 30 fps,
// 4 s images, 6 s video cap, 2 s placeholder, zooms 5 and 8).
func Default() Config {
	return Config{
		Output: Output{
			Width:  1080,
			Height: 1920,
			FPS:    30,
			Dir:    "output",
		},
		Clips: Clips{
			ImageSeconds:       4,
			VideoMaxSeconds:    6,
			PlaceholderSeconds: 2,
			WorkDir:            "render_work",
		},
		Levels: Levels{
			Global:       true,
			ClusterZooms: []int{5, 8},
			PerItem:      true,
		},
		Run: Run{
			Jobs:                 0, // 0 means number of CPUs
			EncodeTimeoutSeconds: 600,
			LogLevel:             "info",
			FFmpegPath:           "ffmpeg",
		},
	}
}

// Load reads a TOML config file layered over Default. A missing path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Output.Width <= 0 || c.Output.Height <= 0 {
		return fmt.Errorf("output frame size must be positive, got %dx%d", c.Output.Width, c.Output.Height)
	}
	if c.Output.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.Output.FPS)
	}
	if c.Output.Dir == "" {
		return errors.New("output dir is required")
	}
	if c.Clips.WorkDir == "" {
		return errors.New("work dir is required")
	}
	if c.Clips.ImageSeconds <= 0 {
		return errors.New("image seconds must be positive")
	}
	if c.Clips.VideoMaxSeconds <= 0 {
		return errors.New("video max seconds must be positive")
	}
	if c.Clips.PlaceholderSeconds <= 0 {
		return errors.New("placeholder seconds must be positive")
	}
	if len(c.Levels.ClusterZooms) != 2 {
		return fmt.Errorf("exactly two cluster zooms are required, got %d", len(c.Levels.ClusterZooms))
	}
	for _, z := range c.Levels.ClusterZooms {
		if z < 0 || z > 22 {
			return fmt.Errorf("cluster zoom %d out of range 0..22", z)
		}
	}
	if c.Run.Jobs < 0 {
		return errors.New("jobs must not be negative")
	}
	if c.Run.EncodeTimeoutSeconds < 0 {
		return errors.New("encode timeout must not be negative")
	}
	return nil
}
