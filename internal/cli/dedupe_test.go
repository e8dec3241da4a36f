package cli

import (
	"testing"

	fastdhash "github.com/9elt/fast-dhash"
	"github.com/9elt/fast-dhash/internal/scan"
)

func file(rel string, hash fastdhash.Hash, content uint64) hashedFile {
	return hashedFile{
		src:     scan.Source{RelPath: rel, Size: int64(len(rel))},
		hash:    hash,
		content: content,
	}
}

func TestClusterFiles(t *testing.T) {
	base := fastdhash.Hash(0xd6a288ac6d5cce14)
	files := []hashedFile{
		file("a.jpg", base, 1),
		// byte-identical copy, then a distance-2 near miss, then two
		// unrelated files.
		file("a_copy.jpg", base, 1),
		file("a_near.jpg", base^0x3, 2),
		file("far.jpg", base^0xfffff, 3),
		file("alone.png", 0x1234, 4),
	}

	clusters := clusterFiles(files, 5)

	if len(clusters) != 1 {
		t.Fatalf("clusters: got %d, want 1", len(clusters))
	}
	c := clusters[0]
	if c.Representative != "a.jpg" {
		t.Errorf("representative: %q", c.Representative)
	}
	if len(c.Members) != 2 {
		t.Fatalf("members: got %d, want 2", len(c.Members))
	}
	if c.Members[0].Path != "a_copy.jpg" || !c.Members[0].Exact || c.Members[0].Distance != 0 {
		t.Errorf("exact member: %+v", c.Members[0])
	}
	if c.Members[1].Path != "a_near.jpg" || c.Members[1].Exact || c.Members[1].Distance != 2 {
		t.Errorf("near member: %+v", c.Members[1])
	}
}

func TestClusterFiles_ExactBeatsThreshold(t *testing.T) {
	// Two byte-identical files cluster even with threshold 0 and would
	// cluster even if their perceptual hashes somehow differed.
	files := []hashedFile{
		file("x.jpg", 0xaaaa, 7),
		file("y.jpg", 0xaaaa, 7),
	}
	clusters := clusterFiles(files, 0)
	if len(clusters) != 1 || len(clusters[0].Members) != 1 || !clusters[0].Members[0].Exact {
		t.Fatalf("unexpected clustering: %+v", clusters)
	}
}

func TestClusterFiles_NoDuplicates(t *testing.T) {
	files := []hashedFile{
		file("a.jpg", 0x0000000000000000, 1),
		file("b.jpg", 0xffffffffffffffff, 2),
	}
	if clusters := clusterFiles(files, 11); len(clusters) != 0 {
		t.Fatalf("expected no clusters, got %d", len(clusters))
	}
}

func TestClusterFiles_StableOrder(t *testing.T) {
	// Input order must not change which file represents the cluster.
	a := file("a.jpg", 0x10, 1)
	b := file("b.jpg", 0x30, 2) // distance 1 from a
	for _, files := range [][]hashedFile{{a, b}, {b, a}} {
		clusters := clusterFiles(files, 5)
		if len(clusters) != 1 {
			t.Fatalf("clusters: got %d", len(clusters))
		}
		if clusters[0].Representative != "a.jpg" {
			t.Errorf("representative: %q, want a.jpg", clusters[0].Representative)
		}
	}
}
