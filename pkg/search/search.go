// Package search implements the parallel best-line scan: for a given
// starting nail and a color's residual weight map, find the admissible
// line whose covered pixels carry the most weight.
package search

import (
	"runtime"
	"sync"

	"github.com/Fepozopo/threadloom/pkg/geometry"
	"github.com/Fepozopo/threadloom/pkg/grid"
	"github.com/Fepozopo/threadloom/pkg/nails"
	"github.com/Fepozopo/threadloom/pkg/segtable"
)

// Candidate is one admissible line reachable from the current nail.
type Candidate struct {
	ToNail     int
	ToLink     nails.Link
	SegIndex   int
	PixelCount int
}

// Result is the winning candidate and its score.
type Result struct {
	Candidate Candidate
	Score     float64
	Found     bool
}

// Table is the narrow slice of segtable.Table the search needs: nail count,
// admissibility checks, segment lookup and used flags, kept as an interface
// so tests can supply a lightweight stand-in.
type Table[S geometry.Scalar] interface {
	CombCount() int
	IsValidPair(fromNail, toNail int) bool
	SegmentIndex(fromNail int, fromLink nails.Link, toNail int, toLink nails.Link) int
	NailCount() int
	IsUsed(idx int) bool
}

// PixelSource resolves a baked segment index to the pixel indexes it
// covers, backed by either a live rasterization or a precomputed buffer.
type PixelSource func(segIndex int) []int

// Find scans every admissible (toNail, toLink) pair reachable from
// (fromNail, fromLink), scoring each by the average residual weight of its
// covered pixels, and returns the best-scoring candidate. Ties are broken
// deterministically by preferring the lower segment index, matching the
// original engine's stable ordering.
//
// The scan is split across runtime.NumCPU() goroutines over the nail
// index range, following the row-chunking idiom used elsewhere in this
// tree for parallel pixel work; each goroutine only reads shared state and
// writes to its own result slot, so no locking is needed beyond the final
// join.
func Find[S geometry.Scalar](table Table[S], pixelsFor PixelSource, weights []S, fromNail int, fromLink nails.Link, links []nails.Link) Result {
	n := table.NailCount()
	if n == 0 {
		return Result{}
	}

	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	partial := make([]Result, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(slot, lo, hi int) {
			defer wg.Done()
			partial[slot] = scanRange(table, pixelsFor, weights, fromNail, fromLink, links, lo, hi)
		}(w, lo, hi)
	}
	wg.Wait()

	best := Result{}
	for _, r := range partial {
		if !r.Found {
			continue
		}
		if !best.Found || better(r, best) {
			best = r
		}
	}
	return best
}

func scanRange[S geometry.Scalar](table Table[S], pixelsFor PixelSource, weights []S, fromNail int, fromLink nails.Link, links []nails.Link, lo, hi int) Result {
	best := Result{}
	for toNail := lo; toNail < hi; toNail++ {
		if toNail == fromNail || !table.IsValidPair(fromNail, toNail) {
			continue
		}
		for _, toLink := range links {
			segIdx := table.SegmentIndex(fromNail, fromLink, toNail, toLink)
			if table.IsUsed(segIdx) {
				continue
			}
			pixels := pixelsFor(segIdx)
			if len(pixels) == 0 {
				continue
			}
			var sum float64
			for _, p := range pixels {
				sum += float64(weights[p])
			}
			score := sum / float64(len(pixels))
			cand := Result{
				Candidate: Candidate{ToNail: toNail, ToLink: toLink, SegIndex: segIdx, PixelCount: len(pixels)},
				Score:     score,
				Found:     true,
			}
			if !best.Found || better(cand, best) {
				best = cand
			}
		}
	}
	return best
}

// better reports whether a beats b: higher score wins, ties broken by
// the lower segment index.
func better(a, b Result) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Candidate.SegIndex < b.Candidate.SegIndex
}

// PixelSourceFromGrid builds a PixelSource that rasterizes segments
// on-demand from a baked segment table, for callers that did not
// precompute a pixel-index buffer.
func PixelSourceFromGrid[S geometry.Scalar](g grid.Grid, table *segtable.Table[S]) PixelSource {
	return func(segIndex int) []int {
		seg := table.Segments[segIndex].Segment
		return grid.PixelIndexesInSegment(g, seg)
	}
}

// PixelSourceFromBuffer builds a PixelSource backed by a precomputed flat
// pixel-index buffer, avoiding repeated rasterization during the hot
// search loop.
func PixelSourceFromBuffer(buf *grid.PixelIndexBuffer, segments []grid.PrecomputedSegment) PixelSource {
	return func(segIndex int) []int {
		return buf.Range(segments[segIndex])
	}
}
