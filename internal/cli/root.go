package cli

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "fastdhash",
	Short: "Fast perceptual image hashing (dhash)",
	Long: `fastdhash — computes 64-bit dhash fingerprints straight from raw
pixel bytes, with no resize step and a single pass over the image.

Hashes of visually similar images differ in only a few bits, so files
can be compared and deduplicated by Hamming distance.`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"fastdhash %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[fastdhash] "+format+"\n", args...)
	}
}
