// Package segtable builds and indexes the baked segment table: every
// admissible ordered (nail, link) pair's precomputed thread geometry.
package segtable

import (
	"fmt"

	"github.com/Fepozopo/threadloom/pkg/geometry"
	"github.com/Fepozopo/threadloom/pkg/nails"
)

// ErrInvalidNailDistance is returned when 2*dMin >= nailCount.
type ErrInvalidNailDistance struct {
	Max int // maximum permissible min_nail_distance
}

func (e ErrInvalidNailDistance) Error() string {
	return fmt.Sprintf("min_nail_distance too large: maximum permissible value is %d", e.Max)
}

// ErrGeometryFailure is returned when the nail Kind cannot build a segment
// for an admissible pair (e.g. circular nails placed too close together).
type ErrGeometryFailure struct {
	NailA, NailB int
}

func (e ErrGeometryFailure) Error() string {
	return fmt.Sprintf("could not build thread geometry between nails %d and %d", e.NailA, e.NailB)
}

// BakedSegment is the precomputed geometry for one admissible (nail,link)
// pair, plus whether it has already been used by a chosen step.
type BakedSegment[S geometry.Scalar] struct {
	Segment geometry.Segment[S]
	Used    bool
}

// distancer carries the admissibility window and canonical index math; it
// has no dependency on the baked data itself so it can be reused by the
// search package for offset iteration.
type distancer struct {
	minNailDistance int
	maxNailDistance int // N - minNailDistance
	linksPerNail    int
}

func (d distancer) isValid(aIdx, bIdx int) bool {
	diff := aIdx - bIdx
	if diff < 0 {
		diff = -diff
	}
	return diff > d.minNailDistance && diff < d.maxNailDistance
}

// indexOf computes the canonical bijective index for an admissible pair,
// following the closed-form construction in the original engine: sort by
// nail index (ties broken by link order), fold the "wrap-around" offsets
// above the max distance back into range, then lay out a triangular index
// scaled by K^2 per spec section 3.
func (d distancer) indexOf(aIdx int, aLink nails.Link, bIdx int, bLink nails.Link) int {
	bigIdx, bigLink, smallIdx, smallLink := aIdx, aLink, bIdx, bLink
	if bIdx > aIdx {
		bigIdx, bigLink, smallIdx, smallLink = bIdx, bLink, aIdx, aLink
	}
	k := d.linksPerNail
	sqK := k * k
	cap_ := d.maxNailDistance - 1

	a := 0
	if bigIdx > cap_ {
		diff := bigIdx - cap_
		bigIdx -= diff
		smallIdx -= diff
		a = diff * (cap_ - d.minNailDistance) * sqK
	}

	diff := bigIdx - d.minNailDistance
	return a + diff*(diff-1)*sqK/2 + k*diff*int(bigLink) + k*smallIdx + int(smallLink)
}

// CombCount is the number of admissible offsets from any nail (same for
// every nail under a given shape/dMin).
func (d distancer) combCount() int {
	return d.maxNailDistance - d.minNailDistance - 1
}

// Table is the baked segment table: one entry per admissible ordered
// (nail, link) pair, indexed by the canonical bijection.
type Table[S geometry.Scalar] struct {
	Nails     []nails.Point[S]
	Handle    nails.Kind[S]
	Segments  []BakedSegment[S]
	distancer distancer
}

// Build constructs the baked segment table for the given nails, shape
// handle, and minimum nail distance. It validates N > 2*dMin and
// propagates the first geometry failure encountered.
func Build[S geometry.Scalar](nailList []nails.Point[S], handle nails.Kind[S], minNailDistance int) (*Table[S], error) {
	n := len(nailList)
	if n <= 2*minNailDistance {
		return nil, ErrInvalidNailDistance{Max: (n - 1) / 2}
	}

	d := distancer{
		minNailDistance: minNailDistance,
		maxNailDistance: n - minNailDistance,
		linksPerNail:    handle.LinksPerNail(),
	}
	m := d.linksPerNail * d.linksPerNail * (n*(n-1)/2 - minNailDistance*n)
	segments := make([]BakedSegment[S], m)
	links := handle.Links()

	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			if !d.isValid(i, j) {
				continue
			}
			for _, li := range links {
				for _, lj := range links {
					seg, ok := handle.Segment(nailList[i], li, nailList[j], lj)
					if !ok {
						return nil, ErrGeometryFailure{NailA: i, NailB: j}
					}
					idx := d.indexOf(i, li, j, lj)
					segments[idx] = BakedSegment[S]{Segment: seg}
				}
			}
		}
	}

	return &Table[S]{Nails: nailList, Handle: handle, Segments: segments, distancer: d}, nil
}

// CombCount returns the number of admissible offsets reachable from any
// nail.
func (t *Table[S]) CombCount() int {
	return t.distancer.combCount()
}

// NailCount returns the number of nails in the table.
func (t *Table[S]) NailCount() int {
	return len(t.Nails)
}

// IsValidPair reports whether (fromNail, toNail) satisfies the admissible
// distance window.
func (t *Table[S]) IsValidPair(fromNail, toNail int) bool {
	return t.distancer.isValid(fromNail, toNail)
}

// SegmentIndex resolves the canonical table index for a (fromNail,
// fromLink) -> (toNail, toLink) pair. The caller must guarantee the pair is
// admissible.
func (t *Table[S]) SegmentIndex(fromNail int, fromLink nails.Link, toNail int, toLink nails.Link) int {
	return t.distancer.indexOf(fromNail, fromLink, toNail, toLink)
}

// MarkUsed marks the segment at idx as used.
func (t *Table[S]) MarkUsed(idx int) {
	t.Segments[idx].Used = true
}

// IsUsed reports whether the segment at idx has already been drawn.
func (t *Table[S]) IsUsed(idx int) bool {
	return t.Segments[idx].Used
}
