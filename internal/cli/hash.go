package cli

import (
	"encoding/json"
	"fmt"
	"os"

	fastdhash "github.com/9elt/fast-dhash"
	"github.com/9elt/fast-dhash/internal/imageio"
	"github.com/spf13/cobra"
)

var (
	hashWorkers int
	hashMaxDim  int
	hashJSON    bool
)

var hashCmd = &cobra.Command{
	Use:   "hash <image...>",
	Short: "Print the dhash of one or more images",
	Long: `Decodes each image (png, jpg, gif, webp, bmp, tiff), flattens it to a
raw pixel buffer, and prints its 64-bit dhash as 16 hex digits.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runHash,
}

func init() {
	hashCmd.Flags().IntVarP(&hashWorkers, "workers", "w", 0, "hashing workers (0 = NumCPU)")
	hashCmd.Flags().IntVar(&hashMaxDim, "max-dim", 0, "downscale inputs larger than this before hashing (0 = never)")
	hashCmd.Flags().BoolVar(&hashJSON, "json", false, "print results as JSON")
	rootCmd.AddCommand(hashCmd)
}

// hashResult is one line of `hash --json` output.
type hashResult struct {
	Path   string         `json:"path"`
	Hash   fastdhash.Hash `json:"hash"`
	Width  int            `json:"width"`
	Height int            `json:"height"`
	Format string         `json:"format"`
}

func runHash(_ *cobra.Command, args []string) error {
	var results []hashResult

	for _, path := range args {
		h, raw, err := hashFile(path, hashWorkers, hashMaxDim)
		if err != nil {
			return err
		}
		logVerbose("%s: %dx%d %s, %d channels", path, raw.Width, raw.Height, raw.Format, raw.Channels)

		if hashJSON {
			results = append(results, hashResult{
				Path:   path,
				Hash:   h,
				Width:  raw.Width,
				Height: raw.Height,
				Format: raw.Format,
			})
			continue
		}
		fmt.Printf("%s  %s\n", h, path)
	}

	if hashJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	return nil
}

// hashFile decodes one file and hashes its raw pixels.
func hashFile(path string, workers, maxDim int) (fastdhash.Hash, imageio.Raw, error) {
	raw, err := imageio.Decode(path, maxDim)
	if err != nil {
		return 0, imageio.Raw{}, err
	}
	h, err := fastdhash.NewWorkers(raw.Pix, raw.Width, raw.Height, raw.Channels, workers)
	if err != nil {
		return 0, imageio.Raw{}, fmt.Errorf("hash %s: %w", path, err)
	}
	return h, raw, nil
}
