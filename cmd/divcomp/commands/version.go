package commands

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/cwbudde/algo-vecmath/cpu"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-divcomp/dsp/effects/dynamics"
)

// version is set at link time with -ldflags "-X ...commands.version=v1.2.3".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()

		fmt.Fprintf(w, "divcomp %s\n", version)
		if IsVerbose() {
			fmt.Fprintf(w, "  go:       %s\n", runtime.Version())
			fmt.Fprintf(w, "  arch:     %s\n", cpu.DetectFeatures().Architecture)
			fmt.Fprintf(w, "  simd:     %s\n", simdSummary(cpu.DetectFeatures()))
			fmt.Fprintf(w, "  fastmath: %t\n", dynamics.FastMath)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func simdSummary(f cpu.Features) string {
	var names []string
	if f.HasSSE2 {
		names = append(names, "sse2")
	}
	if f.HasAVX2 {
		names = append(names, "avx2")
	}
	if f.HasNEON {
		names = append(names, "neon")
	}

	if len(names) == 0 {
		return "none"
	}

	return strings.Join(names, ",")
}
