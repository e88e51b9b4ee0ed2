package playout

import (
	"github.com/zhanglei1949/pachi/goban"
)

// PriorMap accumulates prior value estimates for the candidate moves an
// external evaluator has marked for consideration, as a running average
// weighted by simulated game counts.
type PriorMap struct {
	color    goban.Color
	consider []bool
	value    []float64
	games    []int
}

// NewPriorMap returns an empty map sized for b, estimating for color.
func NewPriorMap(b *goban.Board, color goban.Color) *PriorMap {
	return &PriorMap{
		color:    color,
		consider: make([]bool, b.Cells()),
		value:    make([]float64, b.Cells()),
		games:    make([]int, b.Cells()),
	}
}

// Color returns the side the priors are estimated for.
func (pm *PriorMap) Color() goban.Color { return pm.color }

// Consider marks c to be scored by the next assessment.
func (pm *PriorMap) Consider(c goban.Location) { pm.consider[c] = true }

// Considered reports whether c is marked for assessment.
func (pm *PriorMap) Considered(c goban.Location) bool { return pm.consider[c] }

// Add folds value in as the outcome of games simulated games at c.
func (pm *PriorMap) Add(c goban.Location, value float64, games int) {
	pm.value[c] += value * float64(games)
	pm.games[c] += games
}

// Value returns the accumulated prior estimate at c and the number of
// games backing it.
func (pm *PriorMap) Value(c goban.Location) (float64, int) {
	return pm.value[c], pm.games[c]
}

// AssessPriors scores every considered candidate with the full feature
// configuration and feeds its normalized weight into the map, scaled by
// the games sample budget. A pure read: it works on its own throwaway
// distribution and never touches the board-owned ones used by Choose.
//
// How best to map a gamma onto won games is an open question; the
// normalized weight is the naive answer. TODO: try sqrt(p).
func (p *Policy) AssessPriors(b *goban.Board, pm *PriorMap, games int) {
	pd := goban.NewProbDist(b.Stride())
	p.assess.buildProbDist(b, pm.color, pd)

	total := pd.Total()
	if total < goban.ProbDistEpsilon {
		p.log.Debug().Msg("no candidate mass to assess priors from")
		return
	}
	for _, c := range b.Candidates() {
		if !pm.Considered(c) {
			continue
		}
		pm.Add(c, pd.One(c)/total, games)
	}
}
