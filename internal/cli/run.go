package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"tilereel/internal/config"
	"tilereel/internal/logging"
	"tilereel/internal/pipeline"
)

func run(cmd *cobra.Command, input string) error {
	configPath, _ := cmd.Flags().GetString("config")
	set, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if v, _ := cmd.Flags().GetString("out"); v != "" {
		set.Output.Dir = v
	}
	if v, _ := cmd.Flags().GetString("work"); v != "" {
		set.Clips.WorkDir = v
	}
	if cmd.Flags().Changed("jobs") {
		set.Run.Jobs, _ = cmd.Flags().GetInt("jobs")
	}
	if v, _ := cmd.Flags().GetString("ffmpeg"); v != "" {
		set.Run.FFmpegPath = v
	} else if v := os.Getenv("TILEREEL_FFMPEG"); v != "" {
		set.Run.FFmpegPath = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		set.Run.LogLevel = v
	}

	logger := logging.NewLogger(set.Run.LogLevel)

	cfg := pipeline.Config{
		Input:    input,
		Settings: set,
		Logger:   logger,
		Progress: progressReporter(os.Stderr),
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	summary, err := pipeline.Run(context.Background(), cfg)
	if err != nil {
		return err
	}
	if n := summary.FailedUnits(); n > 0 {
		return fmt.Errorf("run completed with %d failed units", n)
	}
	return nil
}

// progressReporter returns a normalization progress callback driving a
// terminal bar, finishing it on the last item so later render-phase log
// lines start on a fresh line.
func progressReporter(out io.Writer) func(done, total int) {
	var bar *progressbar.ProgressBar
	return func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions64(int64(total),
				progressbar.OptionSetWriter(out),
				progressbar.OptionSetDescription("normalizing"),
				progressbar.OptionShowCount(),
				progressbar.OptionOnCompletion(func() { fmt.Fprintln(out) }),
			)
		}
		_ = bar.Set(done)
		if done >= total {
			_ = bar.Finish()
		}
	}
}
