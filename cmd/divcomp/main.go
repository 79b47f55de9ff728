// Command divcomp renders, analyses and plays stereo WAV files through the
// divergence compressor.
//
// Usage:
//
//	divcomp [flags] <command> [args]
//
// Commands:
//
//	render   - process a WAV file and write the result
//	analyze  - process in memory and print a gain-reduction report
//	play     - process and play through the default audio device
//	version  - show version information
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/algo-divcomp/cmd/divcomp/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
