package cli

import (
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"

	fastdhash "github.com/9elt/fast-dhash"
	"github.com/9elt/fast-dhash/internal/imageio"
	"github.com/9elt/fast-dhash/internal/report"
	"github.com/9elt/fast-dhash/internal/scan"
	"github.com/cespare/xxhash/v2"
	"github.com/spf13/cobra"
)

var (
	dedupeThreshold int
	dedupeWorkers   int
	dedupeMaxDim    int
	dedupeOut       string
)

var dedupeCmd = &cobra.Command{
	Use:   "dedupe <dir>",
	Short: "Find visually duplicate images under a directory",
	Long: `Scans a directory tree for images, hashes them in parallel, and groups
files whose dhashes sit within the Hamming distance threshold.

Byte-identical files are detected first via xxhash64 content hashing, so
exact copies are flagged even when the threshold is 0.`,
	Args: cobra.ExactArgs(1),
	RunE: runDedupe,
}

func init() {
	dedupeCmd.Flags().IntVarP(&dedupeThreshold, "threshold", "t", fastdhash.DefaultSimilarityThreshold,
		"max Hamming distance within a duplicate group")
	dedupeCmd.Flags().IntVarP(&dedupeWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	dedupeCmd.Flags().IntVar(&dedupeMaxDim, "max-dim", 0, "downscale inputs larger than this before hashing (0 = never)")
	dedupeCmd.Flags().StringVarP(&dedupeOut, "out", "o", "", "write a JSON report to this path")
	rootCmd.AddCommand(dedupeCmd)
}

// hashedFile is one scanned image with its perceptual and content hashes.
type hashedFile struct {
	src     scan.Source
	hash    fastdhash.Hash
	content uint64 // xxhash64 of the encoded file bytes
	err     error
}

func runDedupe(_ *cobra.Command, args []string) error {
	root := args[0]
	workers := dedupeWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	sources, err := scan.Images(root)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return fmt.Errorf("no images found in %s", root)
	}
	logVerbose("found %d images", len(sources))

	// Hash files in parallel. Each file is independent: the dhash call
	// itself uses a single worker here so the file-level pool owns all
	// the parallelism.
	files := make([]hashedFile, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, s scan.Source) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			files[idx] = hashSource(s)
			if files[idx].err == nil {
				logVerbose("%s  %s", files[idx].hash, s.RelPath)
			}
		}(i, src)
	}
	wg.Wait()

	var hashed []hashedFile
	var failed int
	for _, f := range files {
		if f.err != nil {
			fmt.Fprintf(os.Stderr, "[fastdhash] error: %v\n", f.err)
			failed++
			continue
		}
		hashed = append(hashed, f)
	}
	if len(hashed) == 0 {
		return fmt.Errorf("all %d images failed to hash", len(sources))
	}

	clusters := clusterFiles(hashed, dedupeThreshold)

	r := report.New(root, report.Params{
		Threshold: dedupeThreshold,
		Workers:   workers,
		MaxDim:    dedupeMaxDim,
	})
	r.Clusters = clusters
	r.Stats.ScannedFiles = len(sources)
	r.Stats.HashedFiles = len(hashed)
	r.Stats.FailedFiles = failed
	r.ComputeStats()

	printDedupeReport(r)

	if dedupeOut != "" {
		if err := report.WriteJSON(r, dedupeOut); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		logVerbose("report written to %s", dedupeOut)
	}
	return nil
}

// hashSource reads one file, content-hashes the encoded bytes and
// perceptually hashes the decoded pixels.
func hashSource(s scan.Source) hashedFile {
	f := hashedFile{src: s}

	data, err := os.ReadFile(s.AbsPath)
	if err != nil {
		f.err = fmt.Errorf("read %s: %w", s.RelPath, err)
		return f
	}
	f.content = xxhash.Sum64(data)

	raw, err := imageio.DecodeBytes(data, dedupeMaxDim)
	if err != nil {
		f.err = fmt.Errorf("decode %s: %w", s.RelPath, err)
		return f
	}

	f.hash, err = fastdhash.NewWorkers(raw.Pix, raw.Width, raw.Height, raw.Channels, 1)
	if err != nil {
		f.err = fmt.Errorf("hash %s: %w", s.RelPath, err)
	}
	return f
}

// clusterFiles greedily groups files around representatives: each file
// joins the first cluster whose representative hash is within threshold,
// otherwise it founds a new one. Byte-identical files always cluster,
// regardless of threshold. Only clusters with duplicates are returned.
func clusterFiles(files []hashedFile, threshold int) []report.Cluster {
	// Stable input order gives stable cluster output.
	sort.Slice(files, func(i, j int) bool { return files[i].src.RelPath < files[j].src.RelPath })

	type group struct {
		rep     hashedFile
		members []report.Member
	}
	var groups []*group

next:
	for _, f := range files {
		for _, g := range groups {
			exact := f.content == g.rep.content
			if d := g.rep.hash.Distance(f.hash); exact || d <= threshold {
				g.members = append(g.members, report.Member{
					Path:     f.src.RelPath,
					Hash:     f.hash,
					Distance: d,
					Size:     f.src.Size,
					Exact:    exact,
				})
				continue next
			}
		}
		groups = append(groups, &group{rep: f})
	}

	var clusters []report.Cluster
	for _, g := range groups {
		if len(g.members) == 0 {
			continue
		}
		clusters = append(clusters, report.Cluster{
			Representative: g.rep.src.RelPath,
			Hash:           g.rep.hash,
			Members:        g.members,
		})
	}
	return clusters
}

func printDedupeReport(r *report.Report) {
	s := r.Stats
	fmt.Printf("scanned %d files, hashed %d", s.ScannedFiles, s.HashedFiles)
	if s.FailedFiles > 0 {
		fmt.Printf(" (%d failed)", s.FailedFiles)
	}
	fmt.Println()

	if len(r.Clusters) == 0 {
		fmt.Println("no duplicates found")
		return
	}

	fmt.Printf("%d duplicate group(s), %d duplicate file(s), %d byte-identical\n\n",
		s.DuplicateGroups, s.DuplicateFiles, s.ExactDuplicates)

	for _, c := range r.Clusters {
		fmt.Printf("%s  %s\n", c.Hash, c.Representative)
		for _, m := range c.Members {
			tag := ""
			if m.Exact {
				tag = "  [exact]"
			}
			fmt.Printf("%s  %s  (distance %d)%s\n", m.Hash, m.Path, m.Distance, tag)
		}
		fmt.Println()
	}
}
