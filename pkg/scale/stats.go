// Run statistics accumulated by the rewriting engine
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package scale

// Stats is the write-only accumulator for one run. It is safe to copy out
// and read once the run is over.
type Stats struct {
	// LinesTotal counts every input line seen.
	LinesTotal int

	// LinesModified counts every rewrite performed on an in-range
	// extrusion move.
	LinesModified int

	// G92Resets counts G92 E0 occurrences, range settings notwithstanding.
	G92Resets int

	// Resolved window actually applied to this run. Nil means unbounded.
	ZStart, ZEnd         *float64
	LayerStart, LayerEnd *int
	LayerHeight          *float64
}

// ModifiedPercent returns the share of input lines that were rewritten.
func (s Stats) ModifiedPercent() float64 {
	if s.LinesTotal == 0 {
		return 0
	}
	return float64(s.LinesModified) / float64(s.LinesTotal) * 100
}
