package search

import (
	"testing"

	"github.com/Fepozopo/threadloom/pkg/nails"
)

// fakeTable is a minimal Table stand-in: all pairs with |a-b|>1 are valid,
// and SegmentIndex is just a simple injective pairing for test purposes.
type fakeTable struct {
	n    int
	used map[int]bool
}

func (f fakeTable) CombCount() int { return f.n - 2 }
func (f fakeTable) IsValidPair(a, b int) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d > 1
}
func (f fakeTable) SegmentIndex(fromNail int, fromLink nails.Link, toNail int, toLink nails.Link) int {
	return fromNail*1000 + toNail*10 + int(fromLink)*2 + int(toLink)
}
func (f fakeTable) NailCount() int { return f.n }
func (f fakeTable) IsUsed(idx int) bool { return f.used[idx] }

func TestFindPicksHighestScoringCandidate(t *testing.T) {
	table := fakeTable{n: 6}
	links := []nails.Link{nails.LinkA}

	weights := make([]float64, 100)
	// segment to nail 3 gets a dedicated high-weight pixel; all others
	// share low-weight pixels.
	pixels := map[int][]int{}
	for toNail := 0; toNail < 6; toNail++ {
		if !table.IsValidPair(0, toNail) {
			continue
		}
		segIdx := table.SegmentIndex(0, nails.LinkA, toNail, nails.LinkA)
		pixels[segIdx] = []int{toNail}
		weights[toNail] = 1.0
	}
	bestSeg := table.SegmentIndex(0, nails.LinkA, 3, nails.LinkA)
	weights[3] = 100.0

	pixelsFor := func(segIndex int) []int { return pixels[segIndex] }

	res := Find[float64](table, pixelsFor, weights, 0, nails.LinkA, links)
	if !res.Found {
		t.Fatal("expected a result")
	}
	if res.Candidate.SegIndex != bestSeg {
		t.Fatalf("expected best segment %d, got %d (toNail=%d)", bestSeg, res.Candidate.SegIndex, res.Candidate.ToNail)
	}
}

func TestFindTieBreaksByLowerSegmentIndex(t *testing.T) {
	table := fakeTable{n: 6}
	links := []nails.Link{nails.LinkA}

	weights := make([]float64, 10)
	for i := range weights {
		weights[i] = 1.0
	}
	pixels := map[int][]int{}
	for toNail := 0; toNail < 6; toNail++ {
		if !table.IsValidPair(0, toNail) {
			continue
		}
		segIdx := table.SegmentIndex(0, nails.LinkA, toNail, nails.LinkA)
		pixels[segIdx] = []int{0}
	}
	pixelsFor := func(segIndex int) []int { return pixels[segIndex] }

	res := Find[float64](table, pixelsFor, weights, 0, nails.LinkA, links)
	if !res.Found {
		t.Fatal("expected a result")
	}
	// All candidates tie on score; the lowest segment index must win.
	minSeg := -1
	for segIdx := range pixels {
		if minSeg == -1 || segIdx < minSeg {
			minSeg = segIdx
		}
	}
	if res.Candidate.SegIndex != minSeg {
		t.Fatalf("expected tie-break to lowest segment index %d, got %d", minSeg, res.Candidate.SegIndex)
	}
}

func TestFindSkipsUsedSegments(t *testing.T) {
	table := fakeTable{n: 6, used: map[int]bool{}}
	links := []nails.Link{nails.LinkA}

	weights := make([]float64, 10)
	for i := range weights {
		weights[i] = 1.0
	}
	pixels := map[int][]int{}
	for toNail := 0; toNail < 6; toNail++ {
		if !table.IsValidPair(0, toNail) {
			continue
		}
		segIdx := table.SegmentIndex(0, nails.LinkA, toNail, nails.LinkA)
		pixels[segIdx] = []int{0}
	}
	weights[0] = 1.0

	// Mark every candidate but nail 4's segment as already used; the
	// search must skip them and land on the sole remaining candidate.
	otherSeg := table.SegmentIndex(0, nails.LinkA, 4, nails.LinkA)
	for segIdx := range pixels {
		if segIdx != otherSeg {
			table.used[segIdx] = true
		}
	}

	pixelsFor := func(segIndex int) []int { return pixels[segIndex] }
	res := Find[float64](table, pixelsFor, weights, 0, nails.LinkA, links)
	if !res.Found {
		t.Fatal("expected a result from the one unused candidate")
	}
	if res.Candidate.SegIndex != otherSeg {
		t.Fatalf("expected unused segment %d, got %d", otherSeg, res.Candidate.SegIndex)
	}
}

func TestFindReturnsNotFoundWhenAllCandidatesUsed(t *testing.T) {
	table := fakeTable{n: 6, used: map[int]bool{}}
	links := []nails.Link{nails.LinkA}

	weights := make([]float64, 10)
	pixels := map[int][]int{}
	for toNail := 0; toNail < 6; toNail++ {
		if !table.IsValidPair(0, toNail) {
			continue
		}
		segIdx := table.SegmentIndex(0, nails.LinkA, toNail, nails.LinkA)
		pixels[segIdx] = []int{0}
		table.used[segIdx] = true
	}
	pixelsFor := func(segIndex int) []int { return pixels[segIndex] }

	res := Find[float64](table, pixelsFor, weights, 0, nails.LinkA, links)
	if res.Found {
		t.Fatal("expected no result when every admissible candidate is used")
	}
}

func TestFindNoValidCandidates(t *testing.T) {
	table := fakeTable{n: 2}
	pixelsFor := func(segIndex int) []int { return nil }
	res := Find[float64](table, pixelsFor, nil, 0, nails.LinkA, []nails.Link{nails.LinkA})
	if res.Found {
		t.Fatal("expected no result when no pairs are valid")
	}
}
