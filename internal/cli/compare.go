package cli

import (
	"fmt"

	fastdhash "github.com/9elt/fast-dhash"
	"github.com/spf13/cobra"
)

var compareThreshold int

var compareCmd = &cobra.Command{
	Use:   "compare <a> <b>",
	Short: "Compare two images by Hamming distance of their dhashes",
	Args:  cobra.ExactArgs(2),
	RunE:  runCompare,
}

func init() {
	compareCmd.Flags().IntVarP(&compareThreshold, "threshold", "t", fastdhash.DefaultSimilarityThreshold,
		"distances below this count as similar")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(_ *cobra.Command, args []string) error {
	ha, _, err := hashFile(args[0], 0, 0)
	if err != nil {
		return err
	}
	hb, _, err := hashFile(args[1], 0, 0)
	if err != nil {
		return err
	}

	d := ha.Distance(hb)
	verdict := "different"
	if d < compareThreshold {
		verdict = "similar"
	}

	fmt.Printf("%s  %s\n", ha, args[0])
	fmt.Printf("%s  %s\n", hb, args[1])
	fmt.Printf("distance: %d/64 (%s, threshold %d)\n", d, verdict, compareThreshold)
	return nil
}
