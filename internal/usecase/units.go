package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"tilereel/internal/ports"
	"tilereel/internal/types"
)

type Deps struct {
	Transcoder ports.Transcoder
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

type BuildInput struct {
	Items              []types.Item
	WorkDir            string
	ImageSeconds       float64
	VideoMaxSeconds    float64
	PlaceholderSeconds float64

	// Jobs bounds the worker pool; 0 means one worker per CPU.
	Jobs int
	// EncodeTimeout bounds each transcoder call; 0 means no limit.
	EncodeTimeout time.Duration

	Logger *slog.Logger
	// Progress, if set, is called after each item completes.
	Progress func(done, total int)
}

// UnitFailure records one item whose clip set could not be produced.
type UnitFailure struct {
	ID    string
	Title string
	Err   error
}

// BuildResult is the phase handoff artifact: one ordered clip list per
// successfully built item. Treat Units as immutable once returned.
type BuildResult struct {
	Units    map[string][]string
	Failures []UnitFailure
}

// BuildUnits normalizes every item's media into uniform clips in the
// scratch work area. Missing sources and unrecognized kinds are skipped;
// an item ending up with zero clips gets exactly one placeholder. A
// transcoder failure loses only that item's unit, siblings continue.
func (u Usecase) BuildUnits(ctx context.Context, in BuildInput) BuildResult {
	jobs := in.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	res := BuildResult{Units: make(map[string][]string, len(in.Items))}
	var (
		mu   sync.Mutex
		done int
	)

	g := new(errgroup.Group)
	g.SetLimit(jobs)
	for _, it := range in.Items {
		it := it
		g.Go(func() error {
			clips, err := u.buildItem(ctx, it, in)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				res.Failures = append(res.Failures, UnitFailure{ID: it.ID, Title: it.Title, Err: err})
				in.Logger.Error("unit build failed", "item", it.ID, "error", err)
			} else {
				res.Units[it.ID] = clips
			}
			done++
			if in.Progress != nil {
				in.Progress(done, len(in.Items))
			}
			return nil
		})
	}
	_ = g.Wait()
	return res
}

func (u Usecase) buildItem(ctx context.Context, it types.Item, in BuildInput) ([]string, error) {
	log := in.Logger.With("item", it.ID)

	var clips []string
	for _, m := range it.Media {
		if m.Path == "" {
			log.Warn("skipping media entry without a source path")
			continue
		}
		if _, err := os.Stat(m.Path); err != nil {
			log.Warn("skipping missing media source", "source", m.Path)
			continue
		}

		out := filepath.Join(in.WorkDir, fmt.Sprintf("%s_%02d.mp4", it.ID, len(clips)))
		var err error
		switch m.Kind {
		case types.MediaImage:
			seconds := in.ImageSeconds
			if m.DurationHint > 0 {
				seconds = m.DurationHint
			}
			err = withTimeout(ctx, in.EncodeTimeout, func(ctx context.Context) error {
				return u.d.Transcoder.NormalizeImage(ctx, m.Path, out, seconds)
			})
		case types.MediaVideo:
			maxSeconds := in.VideoMaxSeconds
			if m.DurationHint > 0 {
				maxSeconds = m.DurationHint
			}
			err = withTimeout(ctx, in.EncodeTimeout, func(ctx context.Context) error {
				return u.d.Transcoder.NormalizeVideo(ctx, m.Path, out, maxSeconds)
			})
		default:
			log.Warn("skipping unrecognized media kind", "kind", string(m.Kind), "source", m.Path)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("normalize %s: %w", m.Path, err)
		}
		clips = append(clips, out)
	}

	if len(clips) == 0 {
		out := filepath.Join(in.WorkDir, it.ID+"_placeholder.mp4")
		log.Info("no usable media, substituting placeholder")
		err := withTimeout(ctx, in.EncodeTimeout, func(ctx context.Context) error {
			return u.d.Transcoder.BlankClip(ctx, out, in.PlaceholderSeconds)
		})
		if err != nil {
			return nil, fmt.Errorf("placeholder: %w", err)
		}
		clips = append(clips, out)
	}
	return clips, nil
}

func withTimeout(ctx context.Context, d time.Duration, fn func(context.Context) error) error {
	if d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}
	return fn(ctx)
}
