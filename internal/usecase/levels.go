package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"tilereel/internal/domain/geo"
	"tilereel/internal/types"
)

// RenderUnit is one planned output: an ordered clip sequence and its
// destination file.
type RenderUnit struct {
	Name    string
	OutPath string
	Clips   []string
}

// LevelPlan is the full set of outputs for one composition strategy.
type LevelPlan struct {
	Tag   string
	Units []RenderUnit
}

// PlanGlobal composes one output from the first clip of every item, in
// item input order.
func PlanGlobal(items []types.Item, units map[string][]string, outDir string) LevelPlan {
	var seq []string
	for _, it := range items {
		if clips := units[it.ID]; len(clips) > 0 {
			seq = append(seq, clips[0])
		}
	}
	plan := LevelPlan{Tag: "L0"}
	if len(seq) > 0 {
		plan.Units = append(plan.Units, RenderUnit{
			Name:    "global",
			OutPath: filepath.Join(outDir, "L0_global.mp4"),
			Clips:   seq,
		})
	}
	return plan
}

// PlanClustered groups items by tile coordinate at the given zoom and
// composes one output per non-empty cluster from each member's first
// clip. Member order is item input order; cluster order is first-seen.
func PlanClustered(items []types.Item, units map[string][]string, zoom int, tag, outDir string) LevelPlan {
	var order []string
	groups := make(map[string][]types.Item)
	for _, it := range items {
		cid := geo.TileFor(it.Coords.Lat, it.Coords.Lon, zoom).ID()
		if _, ok := groups[cid]; !ok {
			order = append(order, cid)
		}
		groups[cid] = append(groups[cid], it)
	}

	plan := LevelPlan{Tag: tag}
	for _, cid := range order {
		var seq []string
		for _, it := range groups[cid] {
			if clips := units[it.ID]; len(clips) > 0 {
				seq = append(seq, clips[0])
			}
		}
		if len(seq) == 0 {
			continue
		}
		plan.Units = append(plan.Units, RenderUnit{
			Name:    cid,
			OutPath: filepath.Join(outDir, tag, cid+".mp4"),
			Clips:   seq,
		})
	}
	return plan
}

// PlanPerItem composes one output per item from that item's full clip
// list in original media order.
func PlanPerItem(items []types.Item, units map[string][]string, outDir string) LevelPlan {
	plan := LevelPlan{Tag: "L3"}
	for _, it := range items {
		clips := units[it.ID]
		if len(clips) == 0 {
			continue
		}
		plan.Units = append(plan.Units, RenderUnit{
			Name:    it.ID,
			OutPath: filepath.Join(outDir, "L3", it.ID+".mp4"),
			Clips:   clips,
		})
	}
	return plan
}

type RenderInput struct {
	Plans   []LevelPlan
	WorkDir string

	Jobs          int
	EncodeTimeout time.Duration

	Logger *slog.Logger
}

type RenderFailure struct {
	Output string
	Err    error
}

// LevelReport summarizes one level's outcome for the run summary.
type LevelReport struct {
	Tag      string
	Rendered int
	Failures []RenderFailure
}

// Render concatenates every planned unit, in parallel up to the job
// bound. Units are independent: one failed concatenation is reported in
// its level's report and never blocks or corrupts sibling outputs.
func (u Usecase) Render(ctx context.Context, in RenderInput) []LevelReport {
	jobs := in.Jobs
	if jobs <= 0 {
		jobs = 1
	}

	reports := make([]LevelReport, len(in.Plans))
	var mu sync.Mutex

	g := new(errgroup.Group)
	g.SetLimit(jobs)
	for i, plan := range in.Plans {
		i, plan := i, plan
		reports[i].Tag = plan.Tag
		for _, unit := range plan.Units {
			unit := unit
			g.Go(func() error {
				err := u.renderUnit(ctx, in, plan.Tag, unit)

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					reports[i].Failures = append(reports[i].Failures, RenderFailure{Output: unit.OutPath, Err: err})
					in.Logger.Error("render failed", "level", plan.Tag, "unit", unit.Name, "error", err)
				} else {
					reports[i].Rendered++
					in.Logger.Debug("rendered", "level", plan.Tag, "output", unit.OutPath)
				}
				return nil
			})
		}
	}
	_ = g.Wait()
	return reports
}

// renderUnit joins one clip sequence into its output file, going through
// a transient concat manifest (the transcoder's join consumes a list
// file) and a .part temp file so the final path is replaced atomically.
func (u Usecase) renderUnit(ctx context.Context, in RenderInput, tag string, unit RenderUnit) error {
	if err := os.MkdirAll(filepath.Dir(unit.OutPath), 0o755); err != nil {
		return err
	}

	// The manifest name carries the level tag: unit names are unique
	// within a level, so units rendering in parallel never share a
	// manifest even when an item's slug matches another level's output
	// stem (e.g. an item titled "L0 global").
	list := filepath.Join(in.WorkDir, tag+"_"+unit.Name+"_list.txt")
	if err := writeConcatList(list, unit.Clips); err != nil {
		return fmt.Errorf("write concat list: %w", err)
	}

	tmp := unit.OutPath + ".part.mp4"
	err := withTimeout(ctx, in.EncodeTimeout, func(ctx context.Context) error {
		return u.d.Transcoder.Concatenate(ctx, list, tmp)
	})
	if err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, unit.OutPath)
}

func writeConcatList(path string, clips []string) error {
	var b strings.Builder
	for _, clip := range clips {
		abs, err := filepath.Abs(clip)
		if err != nil {
			return err
		}
		fmt.Fprintf(&b, "file '%s'\n", strings.ReplaceAll(abs, "'", `'\''`))
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
