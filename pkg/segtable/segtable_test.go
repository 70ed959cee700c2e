package segtable

import (
	"testing"

	"github.com/Fepozopo/threadloom/pkg/geometry"
	"github.com/Fepozopo/threadloom/pkg/nails"
)

// twoLinkKind is a minimal K=2 Kind stand-in used to exercise the index
// bijection independently of real tangent geometry.
type twoLinkKind struct{}

func (twoLinkKind) LinksPerNail() int  { return 2 }
func (twoLinkKind) Links() []nails.Link { return []nails.Link{nails.LinkA, nails.LinkB} }
func (twoLinkKind) Segment(a nails.Point[float64], _ nails.Link, b nails.Point[float64], _ nails.Link) (geometry.Segment[float64], bool) {
	return geometry.Segment[float64]{Start: a.Pos, End: b.Pos}, true
}
func (twoLinkKind) NextLink(l nails.Link) nails.Link { return l }

func buildNails(n int) []nails.Point[float64] {
	out := make([]nails.Point[float64], n)
	for i := range out {
		out[i] = nails.Point[float64]{Pos: geometry.Point[float64]{X: float64(i), Y: 0}}
	}
	return out
}

func TestIndexBijectionS2(t *testing.T) {
	const n, dMin = 7, 1
	table, err := Build(buildNails(n), twoLinkKind{}, dMin)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	const wantM = 56
	if len(table.Segments) != wantM {
		t.Fatalf("expected M=%d segments, got %d", wantM, len(table.Segments))
	}

	seen := make(map[int]bool)
	links := []nails.Link{nails.LinkA, nails.LinkB}
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			if !table.IsValidPair(i, j) {
				continue
			}
			for _, li := range links {
				for _, lj := range links {
					idx := table.SegmentIndex(i, li, j, lj)
					if idx < 0 || idx >= wantM {
						t.Fatalf("index %d out of range [0,%d)", idx, wantM)
					}
					if seen[idx] {
						t.Fatalf("duplicate index %d", idx)
					}
					seen[idx] = true
				}
			}
		}
	}
	if len(seen) != wantM {
		t.Fatalf("expected %d distinct indexes, got %d", wantM, len(seen))
	}
}

func TestIndexSymmetry(t *testing.T) {
	const n, dMin = 16, 3
	table, err := Build(buildNails(n), twoLinkKind{}, dMin)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	links := []nails.Link{nails.LinkA, nails.LinkB}
	count := 0
	for i := 0; i < n && count < 100; i++ {
		for j := 0; j < i && count < 100; j++ {
			if !table.IsValidPair(i, j) {
				continue
			}
			for _, li := range links {
				for _, lj := range links {
					a := table.SegmentIndex(i, li, j, lj)
					b := table.SegmentIndex(j, lj, i, li)
					if a != b {
						t.Fatalf("index(%d,%d,%d,%d)=%d != index(%d,%d,%d,%d)=%d", i, li, j, lj, a, j, lj, i, li, b)
					}
					count++
				}
			}
		}
	}
}

func TestMarkUsedReflectsInIsUsed(t *testing.T) {
	table, err := Build(buildNails(7), twoLinkKind{}, 1)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	idx := table.SegmentIndex(0, nails.LinkA, 2, nails.LinkA)
	if table.IsUsed(idx) {
		t.Fatal("expected segment unused before MarkUsed")
	}
	table.MarkUsed(idx)
	if !table.IsUsed(idx) {
		t.Fatal("expected segment used after MarkUsed")
	}
	other := table.SegmentIndex(0, nails.LinkA, 3, nails.LinkA)
	if table.IsUsed(other) {
		t.Fatal("expected unrelated segment to remain unused")
	}
}

func TestInvalidNailDistance(t *testing.T) {
	_, err := Build(buildNails(4), twoLinkKind{}, 2)
	if err == nil {
		t.Fatal("expected InvalidNailDistance error")
	}
	if _, ok := err.(ErrInvalidNailDistance); !ok {
		t.Fatalf("expected ErrInvalidNailDistance, got %T", err)
	}
}
