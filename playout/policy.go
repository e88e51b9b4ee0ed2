package playout

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/zhanglei1949/pachi/goban"
	"github.com/zhanglei1949/pachi/pattern"
)

// Adjuster lets the owning search inject domain-specific distribution
// tweaks (forced moves, tactical vetoes) right before a move is sampled.
// The call is synchronous with full read/write access to the shared
// distribution; implementations must not retain the distribution past
// the call. When an adjuster ran, the selection ends with a full rebuild
// of the distribution instead of the cheap incremental restore.
type Adjuster interface {
	AdjustProbDist(b *goban.Board, color goban.Color, pd *goban.ProbDist)
}

// Policy is the gamma-based move selection policy. Its feature
// configurations and gamma tables are immutable after construction and
// freely shared between rollout goroutines; the per-board distributions
// it manipulates are not, so every in-flight rollout needs its own board.
type Policy struct {
	// selfatari is the weighting for self-atari moves. Parsed and kept
	// for compatibility, but the weighting itself is currently switched
	// off pending tuning; see moveWeight.
	selfatari float64

	choose patternSet // reduced feature set, consulted every rollout move
	assess patternSet // full feature set, consulted for priors only

	adjuster Adjuster
	log      zerolog.Logger
}

// SetAdjuster registers the distribution adjuster. Passing nil removes it.
func (p *Policy) SetAdjuster(a Adjuster) { p.adjuster = a }

// Close releases the gamma tables.
func (p *Policy) Close() {
	p.choose.gammas.Close()
	p.assess.gammas.Close()
}

// Rebuild recomputes color's whole board distribution from the fast
// feature configuration and returns the number of legal candidate moves.
func (p *Policy) Rebuild(b *goban.Board, color goban.Color) int {
	return p.choose.buildProbDist(b, color, b.ProbDist(color))
}

// Update re-scores the given locations in color's distribution. Called
// after a move is played with the changed neighborhood, so routine
// maintenance stays proportional to the board region that moved.
func (p *Policy) Update(b *goban.Board, color goban.Color, locs ...goban.Location) {
	pd := b.ProbDist(color)
	var buf [maxFeatures]pattern.Feature
	for _, c := range locs {
		pd.Set(c, p.choose.moveWeight(b, c, color, buf[:0]))
	}
}

// UpdateAround re-scores c and its eight neighbors in both colors'
// distributions, the usual refresh after c was just played. Capturing
// moves invalidate points beyond this neighborhood; the caller is
// expected to Rebuild in that case.
func (p *Policy) UpdateAround(b *goban.Board, c goban.Location) {
	n8 := b.Neighbors8(c)
	for _, color := range [2]goban.Color{goban.Black, goban.White} {
		p.Update(b, color, c)
		p.Update(b, color, n8[:]...)
	}
}

// Choose samples one move for color from the board-owned distribution,
// combined with the local pool seeded from the last move's neighborhood.
// Returns Pass when no weight remains. The shared distribution is
// returned to its pre-call state on every path: the caller sees the
// same object before and after, except for the move it was handed.
func (p *Policy) Choose(b *goban.Board, color goban.Color, rng goban.Rand) goban.Location {
	pd := b.ProbDist(color)
	mut := beginMutation(pd)

	// The owning search may want to adjust the distribution first.
	adjusted := p.adjuster != nil
	if adjusted {
		p.adjuster.AdjustProbDist(b, color, pd)
	}

	defer func() {
		if adjusted {
			p.repairAfterAdjust(b, color, pd, mut.prevTotal)
		} else {
			mut.restore()
		}
	}()

	// The ko-prohibited point must not get picked.
	if ko, koColor := b.Ko(); !ko.IsPass() && koColor == color {
		mut.exclude(ko)
	}

	// Contiguity: neighbors of the last move leave the global pool and
	// compete locally, at their base weight times the contiguity gamma.
	var lp localPool
	if last, _ := b.LastMove(); !last.IsPass() {
		bonus := p.choose.gammas.Lookup(pattern.Feature{Kind: pattern.KindContiguity, ID: 1})
		for _, n := range b.Neighbors8(last) {
			base := pd.One(n)
			mut.exclude(n)
			lp.add(n, base*bonus)
		}
	}

	stab := rng.Float64() * (lp.total + pd.Total())
	switch {
	case stab < lp.total-goban.ProbDistEpsilon:
		return lp.pick(stab)
	case pd.Total() >= goban.ProbDistEpsilon:
		return pd.Pick(rng, mut.excluded())
	default:
		return goban.Pass
	}
}

// repairAfterAdjust rebuilds the distribution after an adjuster ran,
// since the adjustments invalidated the incremental bookkeeping. The
// rebuilt mass must reconcile with the total backed up on entry; a
// divergence means the incremental state was broken before this call.
func (p *Policy) repairAfterAdjust(b *goban.Board, color goban.Color, pd *goban.ProbDist, prevTotal float64) {
	p.choose.buildProbDist(b, color, pd)
	if math.Abs(pd.Total()-prevTotal) >= goban.ProbDistEpsilon {
		panic(fmt.Sprintf("playout: rebuilt total %v diverged from backup %v",
			pd.Total(), prevTotal))
	}
}
