// Package report defines the JSON document the dedupe command emits.
package report

import (
	"encoding/json"
	"os"
	"time"

	fastdhash "github.com/9elt/fast-dhash"
)

// SupportedReportVersion is the current schema version.
const SupportedReportVersion = 1

// Report is the top-level output of a dedupe run.
type Report struct {
	Version     int       `json:"version"`
	GeneratedAt string    `json:"generated_at"`
	Root        string    `json:"root"`
	Params      Params    `json:"params"`
	Clusters    []Cluster `json:"clusters"`
	Stats       Stats     `json:"stats"`
}

// Params captures the run parameters for diagnostics.
type Params struct {
	Threshold int `json:"threshold"`
	Workers   int `json:"workers"`
	MaxDim    int `json:"max_dim,omitempty"`
}

// Cluster groups files whose hashes sit within the distance threshold of
// the cluster representative. Only clusters with at least two members are
// reported.
type Cluster struct {
	Representative string         `json:"representative"`
	Hash           fastdhash.Hash `json:"hash"`
	Members        []Member       `json:"members"`
}

// Member is one file in a cluster.
type Member struct {
	Path     string         `json:"path"`
	Hash     fastdhash.Hash `json:"hash"`
	Distance int            `json:"distance"`        // to the representative
	Size     int64          `json:"size"`
	Exact    bool           `json:"exact,omitempty"` // byte-identical to the representative
}

// Stats aggregates run metrics.
type Stats struct {
	ScannedFiles    int `json:"scanned_files"`
	HashedFiles     int `json:"hashed_files"`
	FailedFiles     int `json:"failed_files"`
	DuplicateGroups int `json:"duplicate_groups"`
	DuplicateFiles  int `json:"duplicate_files"`
	ExactDuplicates int `json:"exact_duplicates"`
}

// New creates an empty report with defaults.
func New(root string, params Params) *Report {
	return &Report{
		Version:     SupportedReportVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Root:        root,
		Params:      params,
	}
}

// ComputeStats recalculates the cluster-derived statistics.
func (r *Report) ComputeStats() {
	r.Stats.DuplicateGroups = len(r.Clusters)
	r.Stats.DuplicateFiles = 0
	r.Stats.ExactDuplicates = 0
	for _, c := range r.Clusters {
		r.Stats.DuplicateFiles += len(c.Members)
		for _, m := range c.Members {
			if m.Exact {
				r.Stats.ExactDuplicates++
			}
		}
	}
}

// WriteJSON serializes the report to a JSON file.
func WriteJSON(r *Report, path string) error {
	r.ComputeStats()

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}
