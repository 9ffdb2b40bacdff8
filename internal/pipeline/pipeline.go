package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"tilereel/internal/config"
	"tilereel/internal/ports"
	"tilereel/internal/ports/adapters/ffmpeg"
	"tilereel/internal/types"
	"tilereel/internal/usecase"
)

type Config struct {
	// Input is the path to the items document (JSON array of records).
	Input    string
	Settings config.Config

	// Transcoder overrides the default ffmpeg adapter; nil means shell
	// out to ffmpeg from Settings.Run.FFmpegPath.
	Transcoder ports.Transcoder

	Logger   *slog.Logger
	Progress func(done, total int)
}

func (c Config) Validate() error {
	if c.Input == "" {
		return errors.New("input is empty")
	}
	if _, err := os.Stat(c.Input); err != nil {
		return fmt.Errorf("stat input: %w", err)
	}
	return c.Settings.Validate()
}

// Summary is the end-of-run report: how many units each phase produced
// and which ones failed. Failures here are isolated ones; a fatal error
// (unreadable input, unwritable directories) comes back as the error
// from Run instead.
type Summary struct {
	Items        int
	UnitsBuilt   int
	UnitFailures []usecase.UnitFailure
	Levels       []usecase.LevelReport
}

// FailedUnits counts all isolated failures across both phases.
func (s Summary) FailedUnits() int {
	n := len(s.UnitFailures)
	for _, lv := range s.Levels {
		n += len(lv.Failures)
	}
	return n
}

// Run executes the whole batch: load items, normalize media into unit
// clips, then render every configured level over the shared unit map.
func Run(ctx context.Context, cfg Config) (Summary, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	items, warnings, err := types.Load(cfg.Input)
	if err != nil {
		return Summary{}, err
	}
	for _, w := range warnings {
		logger.Warn("naming conflict", "detail", w)
	}
	logger.Info("loaded items", "count", len(items), "input", cfg.Input)

	set := cfg.Settings
	if err := os.MkdirAll(set.Clips.WorkDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("create work dir: %w", err)
	}
	if err := os.MkdirAll(set.Output.Dir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("create output dir: %w", err)
	}

	tr := cfg.Transcoder
	if tr == nil {
		tr = ffmpeg.New(set.Run.FFmpegPath, ffmpeg.Profile{
			Width:  set.Output.Width,
			Height: set.Output.Height,
			FPS:    set.Output.FPS,
		})
	}
	uc := usecase.New(usecase.Deps{Transcoder: tr})
	timeout := time.Duration(set.Run.EncodeTimeoutSeconds) * time.Second

	build := uc.BuildUnits(ctx, usecase.BuildInput{
		Items:              items,
		WorkDir:            set.Clips.WorkDir,
		ImageSeconds:       set.Clips.ImageSeconds,
		VideoMaxSeconds:    set.Clips.VideoMaxSeconds,
		PlaceholderSeconds: set.Clips.PlaceholderSeconds,
		Jobs:               set.Run.Jobs,
		EncodeTimeout:      timeout,
		Logger:             logger,
		Progress:           cfg.Progress,
	})
	logger.Info("unit clips built", "units", len(build.Units), "failed", len(build.Failures))

	var plans []usecase.LevelPlan
	if set.Levels.Global {
		plans = append(plans, usecase.PlanGlobal(items, build.Units, set.Output.Dir))
	}
	for i, zoom := range set.Levels.ClusterZooms {
		tag := fmt.Sprintf("L%d", i+1)
		plans = append(plans, usecase.PlanClustered(items, build.Units, zoom, tag, set.Output.Dir))
	}
	if set.Levels.PerItem {
		plans = append(plans, usecase.PlanPerItem(items, build.Units, set.Output.Dir))
	}

	reports := uc.Render(ctx, usecase.RenderInput{
		Plans:         plans,
		WorkDir:       set.Clips.WorkDir,
		Jobs:          set.Run.Jobs,
		EncodeTimeout: timeout,
		Logger:        logger,
	})
	for _, lv := range reports {
		logger.Info("level rendered", "level", lv.Tag, "outputs", lv.Rendered, "failed", len(lv.Failures))
	}

	return Summary{
		Items:        len(items),
		UnitsBuilt:   len(build.Units),
		UnitFailures: build.Failures,
		Levels:       reports,
	}, nil
}

// ensure the adapter implements the port
var _ ports.Transcoder = (*ffmpeg.Adapter)(nil)
