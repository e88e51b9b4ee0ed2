package playout

import (
	"fmt"

	"github.com/zhanglei1949/pachi/goban"
)

// localPoolCap is the local pool's capacity. It must equal the board's
// neighbor fan-out exactly: the pool holds one entry per neighbor of the
// last move and nothing else.
const localPoolCap = 8

// localPool is the bounded set of neighbor-of-last-move candidates,
// sampled separately from the board distribution with a contiguity
// bonus applied. It lives on the stack of a single selection call.
type localPool struct {
	n      int
	coords [localPoolCap]goban.Location
	items  [localPoolCap]float64
	total  float64
}

func (lp *localPool) add(c goban.Location, w float64) {
	if lp.n >= localPoolCap {
		panic("playout: local pool exceeds the board neighbor fan-out")
	}
	lp.coords[lp.n] = c
	lp.items[lp.n] = w
	lp.n++
	lp.total += w
}

// pick resolves a stab that fell inside the pool's mass. Running off the
// end means the recorded total and the entries disagree, which is a
// broken invariant, never a recoverable condition.
func (lp *localPool) pick(stab float64) goban.Location {
	for i := 0; i < lp.n; i++ {
		if stab <= lp.items[i] {
			return lp.coords[i]
		}
		stab -= lp.items[i]
	}
	panic(fmt.Sprintf("playout: local pool overdraw [%v]", stab))
}

// excludeMax bounds the per-selection exclusion list: the ko point plus
// the eight neighbors of the last move, with headroom mirroring the
// mute log.
const excludeMax = 10

// distMutation scopes one selection's destructive changes to the shared
// board distribution: every excluded point is muted with its row backup
// recorded, and restore puts the distribution back exactly as found.
// The exclusion list is kept ascending so the global sampler can skip it
// with a single linear merge.
type distMutation struct {
	pd        *goban.ProbDist
	prevTotal float64
	log       goban.MuteLog
	ignores   [excludeMax]goban.Location
	n         int
}

func beginMutation(pd *goban.ProbDist) distMutation {
	return distMutation{pd: pd, prevTotal: pd.Total()}
}

// exclude mutes c in the distribution and inserts it into the sorted
// exclusion list. Only the freshly appended entry can be out of order,
// so one insertion pass from the tail suffices.
func (m *distMutation) exclude(c goban.Location) {
	m.ignores[m.n] = c
	for i := m.n; i > 0 && m.ignores[i] < m.ignores[i-1]; i-- {
		m.ignores[i], m.ignores[i-1] = m.ignores[i-1], m.ignores[i]
	}
	m.n++
	m.pd.Mute(c, &m.log)
}

func (m *distMutation) excluded() []goban.Location { return m.ignores[:m.n] }

// restore reverts every mute, newest backup first, and resets the total
// to its pre-selection value.
func (m *distMutation) restore() {
	m.pd.Restore(&m.log, m.prevTotal)
}
