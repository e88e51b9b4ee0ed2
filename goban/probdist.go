package goban

// ProbDistEpsilon is the threshold below which a distribution mass is
// treated as empty, and the tolerance for total-reconciliation checks.
const ProbDistEpsilon = 1e-6

// Rand is the uniform random source consumed by the sampler. *rand.Rand
// satisfies it; each rollout goroutine supplies its own.
type Rand interface {
	Float64() float64
}

// ProbDist is a weighted distribution over board locations, with per-row
// partial sums so that muting and restoring a handful of points costs
// O(points touched) instead of O(board).
//
// Invariants: total == sum of all non-muted items; rowTotals[r] == sum of
// the non-muted items in bordered-array row r. Border and occupied cells
// always carry weight 0.
type ProbDist struct {
	stride    int
	items     []float64
	rowTotals []float64
	total     float64
}

// NewProbDist returns a zeroed distribution for a board with the given
// row stride. Most callers want the board-owned instances from
// Board.ProbDist; the prior assessor builds private throwaway ones.
func NewProbDist(stride int) *ProbDist {
	return &ProbDist{
		stride:    stride,
		items:     make([]float64, stride*stride),
		rowTotals: make([]float64, stride),
	}
}

// Total returns the summed weight of all locations.
func (pd *ProbDist) Total() float64 { return pd.total }

// One returns the weight of a single location.
func (pd *ProbDist) One(c Location) float64 { return pd.items[c] }

// RowTotal returns the summed weight of one bordered-array row.
func (pd *ProbDist) RowTotal(r int) float64 { return pd.rowTotals[r] }

// Set overwrites the weight of c, maintaining the total and the owning
// row sum by delta. w must be >= 0.
func (pd *ProbDist) Set(c Location, w float64) {
	d := w - pd.items[c]
	pd.items[c] = w
	pd.rowTotals[int(c)/pd.stride] += d
	pd.total += d
}

// Reset zeroes every weight and all running sums.
func (pd *ProbDist) Reset() {
	for i := range pd.items {
		pd.items[i] = 0
	}
	for i := range pd.rowTotals {
		pd.rowTotals[i] = 0
	}
	pd.total = 0
}

// muteLogMax bounds one selection's worth of mutes: the ko point plus the
// eight neighbors of the last move, with a little headroom.
const muteLogMax = 10

// MuteLog records pre-mute row totals so a selection can undo its mutes.
// Restoration replays entries in reverse order, so when the same row is
// muted repeatedly only the earliest backup ends up mattering.
type MuteLog struct {
	rows [muteLogMax]int
	vals [muteLogMax]float64
	n    int
}

// Len returns the number of recorded mutes.
func (l *MuteLog) Len() int { return l.n }

// Mute takes the weight of c out of the total and its row sum, recording
// the row's pre-mute sum in the log. The item's own weight is left in
// place: muting marks the point as not drawable, it does not forget the
// point's base weight (Pick is handed the muted set so its scan can skip
// them, and the local-pool bonus is derived from the surviving value).
func (pd *ProbDist) Mute(c Location, log *MuteLog) {
	if log.n >= muteLogMax {
		panic("goban: mute log overflow")
	}
	r := int(c) / pd.stride
	log.rows[log.n] = r
	log.vals[log.n] = pd.rowTotals[r]
	log.n++
	pd.total -= pd.items[c]
	pd.rowTotals[r] -= pd.items[c]
}

// Restore undoes a sequence of Mutes: row totals are replayed newest-first
// and the total is reset to the caller's backed-up value. After Restore
// the distribution is exactly what it was before the first Mute.
func (pd *ProbDist) Restore(log *MuteLog, prevTotal float64) {
	pd.total = prevTotal
	for i := log.n - 1; i >= 0; i-- {
		pd.rowTotals[log.rows[i]] = log.vals[i]
	}
	log.n = 0
}

// Pick draws a location with probability proportional to its weight among
// all locations not present in ignores. ignores must be sorted ascending
// and already muted, so that the running totals exclude their mass; the
// scan skips over them with a single linear merge, no hashing. Returns
// Pass when the remaining mass is below ProbDistEpsilon.
func (pd *ProbDist) Pick(rng Rand, ignores []Location) Location {
	if pd.total < ProbDistEpsilon {
		return Pass
	}

	stab := rng.Float64() * pd.total
	i := 0
	for r := 0; r < pd.stride; r++ {
		rowStart := Location(r * pd.stride)
		rowEnd := rowStart + Location(pd.stride)
		if stab >= pd.rowTotals[r] {
			stab -= pd.rowTotals[r]
			for i < len(ignores) && ignores[i] < rowEnd {
				i++
			}
			continue
		}
		k := i
		for c := rowStart; c < rowEnd; c++ {
			// The list may hold duplicates (a ko point that is also a
			// last-move neighbor is excluded twice), so advance past
			// everything below c before comparing.
			for k < len(ignores) && ignores[k] < c {
				k++
			}
			if k < len(ignores) && ignores[k] == c {
				continue
			}
			w := pd.items[c]
			if w <= 0 {
				continue
			}
			if stab < w {
				return c
			}
			stab -= w
		}
		// Fell off the row on accumulated rounding; settle on the
		// last eligible point instead.
		break
	}
	return pd.lastEligible(ignores)
}

// lastEligible returns the highest-indexed location with positive weight
// not present in ignores, or Pass if there is none. Only reached when
// floating point drift pushed the stab past the scanned mass.
func (pd *ProbDist) lastEligible(ignores []Location) Location {
	i := len(ignores) - 1
	for c := Location(len(pd.items) - 1); c >= 0; c-- {
		for i >= 0 && ignores[i] > c {
			i--
		}
		if i >= 0 && ignores[i] == c {
			continue
		}
		if pd.items[c] > 0 {
			return c
		}
	}
	return Pass
}
