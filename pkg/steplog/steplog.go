// Package steplog records the build plan: the ordered sequence of threads
// chosen by the engine, plus the palette they were drawn from.
package steplog

import "github.com/Fepozopo/threadloom/pkg/nails"

// Color is one palette entry: a human-readable name and its sRGB value.
type Color struct {
	Name    string
	R, G, B uint8
}

// Step is one chosen thread: which color drew it, which baked segment it
// used, and the (nail, link) endpoints it connects.
type Step struct {
	ColorIdx   int
	SegIndex   int
	FromNail   int
	FromLink   nails.Link
	ToNail     int
	ToLink     nails.Link
}

// Log is the monotonically growing step record. It never shrinks.
type Log struct {
	Palette []Color
	Steps   []Step
}

// Append records a new step in build order.
func (l *Log) Append(s Step) {
	l.Steps = append(l.Steps, s)
}

// Reversed returns the steps in reverse build order, the order every
// renderer draws in so that early threads end up visually on top.
func (l *Log) Reversed() []Step {
	out := make([]Step, len(l.Steps))
	for i, s := range l.Steps {
		out[len(l.Steps)-1-i] = s
	}
	return out
}

// ColorsUsed returns the distinct palette indices appearing in the log, in
// the order each first appears when walking the log in reverse (i.e. the
// order the instructions renderer needs for its per-color headers).
func (l *Log) ColorsUsed() []int {
	seen := make(map[int]bool)
	var out []int
	for _, s := range l.Reversed() {
		if !seen[s.ColorIdx] {
			seen[s.ColorIdx] = true
			out = append(out, s.ColorIdx)
		}
	}
	return out
}
