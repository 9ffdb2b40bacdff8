package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "tilereel <items.json>",
		Short:        "Render leveled map videos from geo-tagged media",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0])
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	root.Flags().String("config", "", "Path to TOML config file")
	root.Flags().String("out", "", "Output directory (overrides config)")
	root.Flags().String("work", "", "Scratch work directory (overrides config)")
	root.Flags().Int("jobs", 0, "Parallel encode jobs, 0 = number of CPUs")
	root.Flags().String("ffmpeg", "", "ffmpeg binary path (overrides config)")
	root.Flags().String("log-level", "", "Log level: debug, info, warn, error")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
