package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool

	logger = newLogger(os.Stderr, false)
)

var rootCmd = &cobra.Command{
	Use:   "divcomp",
	Short: "Stereo divergence compressor",
	Long: `divcomp - compress only the louder side of a stereo image.

Each frame's left/right balance (divergence) decides which channel the
compressor acts on: left-leaning material compresses the left channel,
right-leaning material the right one, and centred material passes through.

Parameters come from flags or a YAML preset (--preset); flags override the
preset. Times are in milliseconds, the threshold in dBFS.

Examples:
  divcomp render in.wav out.wav --threshold -18 --ratio 4
  divcomp analyze in.wav --preset gentle.yaml
  divcomp play in.wav --cutoff 20`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = newLogger(cmd.ErrOrStderr(), verbose)
	},
}

// Execute runs the root command. An interrupt cancels the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// IsVerbose returns whether verbose mode is enabled.
func IsVerbose() bool {
	return verbose
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
