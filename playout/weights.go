// Package playout selects moves for randomized game rollouts from a
// probability distribution over the candidate points.
//
// Each board feature matched at a point carries a learned playing
// strength (gamma); a point's selection weight is the product of the
// gammas of every feature present there, so choosing a move amounts to
// sampling from a team competition between the points' feature sets.
// The per-color distribution lives on the board and is updated
// incrementally, keeping the per-move cost proportional to how much of
// the board actually changed.
package playout

import (
	"github.com/zhanglei1949/pachi/goban"
	"github.com/zhanglei1949/pachi/pattern"
)

// patternSet bundles one feature configuration: which feature kinds to
// match, the matcher itself and the gamma table scoring the matches. The
// policy holds two instances of the same type - a reduced one consulted
// for every rollout move and a full one for prior assessment - so the
// two configurations cannot drift structurally.
type patternSet struct {
	spec    pattern.Spec
	matcher pattern.Matcher
	gammas  *pattern.GammaTable
}

// moveWeight scores color playing at c. Pass, illegal moves and moves
// filling the mover's own single-point eye weigh 0 and are not
// candidates at all; every other move starts at 1 and multiplies in the
// gamma of each matched feature. Deterministic for identical inputs.
func (ps *patternSet) moveWeight(b *goban.Board, c goban.Location, color goban.Color, buf []pattern.Feature) float64 {
	if c.IsPass() || !b.IsLegal(c, color) || b.IsOnePointEye(c, color) {
		return 0
	}
	g := 1.0
	for _, f := range ps.matcher.Match(b, c, color, ps.spec, buf[:0]) {
		g *= ps.gammas.Lookup(f)
	}
	return g
}

// buildProbDist fills pd with the weight of every candidate point for
// color and returns how many of them were scored as legal.
func (ps *patternSet) buildProbDist(b *goban.Board, color goban.Color, pd *goban.ProbDist) int {
	pd.Reset()
	moves := 0
	var buf [maxFeatures]pattern.Feature
	for _, c := range b.Candidates() {
		w := ps.moveWeight(b, c, color, buf[:0])
		if w > 0 {
			moves++
		}
		pd.Set(c, w)
	}
	return moves
}

// maxFeatures caps the per-move feature scratch buffer; the matcher
// emits at most one feature per kind.
const maxFeatures = int(pattern.KindMax)
