package playout

import (
	"math"
	"math/rand"
	"testing"

	"github.com/zhanglei1949/pachi/goban"
	"github.com/zhanglei1949/pachi/pattern"
)

// testPolicy wires a policy directly from gamma tables, skipping the
// option-string and file plumbing.
func testPolicy(chooseGammas, assessGammas *pattern.GammaTable) *Policy {
	m := pattern.NewShapeMatcher()
	return &Policy{
		selfatari: defaultSelfAtari,
		choose:    patternSet{spec: pattern.MatchFast, matcher: m, gammas: chooseGammas},
		assess:    patternSet{spec: pattern.MatchAll, matcher: m, gammas: assessGammas},
	}
}

func neutralPolicy() *Policy {
	return testPolicy(pattern.NewGammaTable(), pattern.NewGammaTable())
}

func place(b *goban.Board, color goban.Color, coords ...[2]int) {
	for _, xy := range coords {
		b.Play(b.Loc(xy[0], xy[1]), color)
	}
}

func TestBuildProbDistMatchesMoveWeights(t *testing.T) {
	p := neutralPolicy()
	b := goban.NewBoard(9)
	place(b, goban.Black, [2]int{2, 2}, [2]int{3, 2}, [2]int{6, 6})
	place(b, goban.White, [2]int{4, 4}, [2]int{4, 5})
	// Give black an eye at (0,0) so the eye-skip path is exercised.
	place(b, goban.Black, [2]int{1, 0}, [2]int{0, 1}, [2]int{1, 1})

	moves := p.Rebuild(b, goban.Black)
	pd := b.ProbDist(goban.Black)

	sum := 0.0
	count := 0
	var buf [maxFeatures]pattern.Feature
	for _, c := range b.Candidates() {
		w := p.choose.moveWeight(b, c, goban.Black, buf[:0])
		if got := pd.One(c); got != w {
			t.Fatalf("weight at %d: dist %v, independent %v", c, got, w)
		}
		if w > 0 {
			count++
		}
		sum += w
	}
	if moves != count {
		t.Fatalf("Rebuild reported %d moves, independent count %d", moves, count)
	}
	if math.Abs(pd.Total()-sum) > 1e-9 {
		t.Fatalf("total %v, independent sum %v", pd.Total(), sum)
	}

	if got := pd.One(b.Loc(4, 4)); got != 0 {
		t.Fatalf("occupied point carries weight %v", got)
	}
	if got := pd.One(b.Loc(0, 0)); got != 0 {
		t.Fatalf("own one-point eye carries weight %v", got)
	}
}

func TestChooseEmptyBoardNoLocalPool(t *testing.T) {
	p := neutralPolicy()
	b := goban.NewBoard(9)
	p.Rebuild(b, goban.Black)
	pd := b.ProbDist(goban.Black)
	before := pd.Total()

	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 50; i++ {
		c := p.Choose(b, goban.Black, rng)
		if c.IsPass() {
			t.Fatalf("pass on an empty board")
		}
		if !b.IsLegal(c, goban.Black) {
			t.Fatalf("illegal selection %d", c)
		}
		if pd.Total() != before {
			t.Fatalf("selection %d left total %v, want exactly %v", i, pd.Total(), before)
		}
	}
}

func TestChooseDeterministicForFixedSeed(t *testing.T) {
	run := func(seed int64) []goban.Location {
		p := neutralPolicy()
		b := goban.NewBoard(9)
		p.Rebuild(b, goban.Black)
		p.Rebuild(b, goban.White)
		rng := rand.New(rand.NewSource(seed))

		var moves []goban.Location
		color := goban.Black
		for i := 0; i < 40; i++ {
			c := p.Choose(b, color, rng)
			moves = append(moves, c)
			if !c.IsPass() {
				b.Play(c, color)
				// Keep both distributions canonical for the test.
				p.Rebuild(b, goban.Black)
				p.Rebuild(b, goban.White)
			} else {
				b.Play(goban.Pass, color)
			}
			color = color.Other()
		}
		return moves
	}

	a, b := run(99), run(99)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("move %d differs: %d vs %d", i, a[i], b[i])
		}
	}
	c := run(100)
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Errorf("different seeds produced identical 40-move sequences")
	}
}

func TestChooseNeverPicksKoPoint(t *testing.T) {
	p := neutralPolicy()
	b := goban.NewBoard(9)
	place(b, goban.White, [2]int{1, 1}, [2]int{2, 0}, [2]int{3, 1}, [2]int{2, 2})
	place(b, goban.Black, [2]int{1, 0}, [2]int{0, 1}, [2]int{1, 2})
	b.Play(b.Loc(2, 1), goban.Black) // sets up the ko at (1,1) against white

	ko, koColor := b.Ko()
	if ko != b.Loc(1, 1) || koColor != goban.White {
		t.Fatalf("test setup: ko = (%d, %v)", ko, koColor)
	}

	p.Rebuild(b, goban.White)
	pd := b.ProbDist(goban.White)
	before := pd.Total()

	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 300; i++ {
		c := p.Choose(b, goban.White, rng)
		if c == ko {
			t.Fatalf("selection %d returned the ko-forbidden point", i)
		}
		if pd.Total() != before {
			t.Fatalf("selection %d left total %v, want exactly %v", i, pd.Total(), before)
		}
	}
}

func TestChooseFavorsLocalPool(t *testing.T) {
	chooseGammas := pattern.NewGammaTable()
	chooseGammas.Set(pattern.Feature{Kind: pattern.KindContiguity, ID: 1}, 1e6)
	p := testPolicy(chooseGammas, pattern.NewGammaTable())

	b := goban.NewBoard(9)
	b.Play(b.Loc(4, 4), goban.White)
	p.Rebuild(b, goban.Black)

	neighbors := map[goban.Location]bool{}
	for _, n := range b.Neighbors8(b.Loc(4, 4)) {
		neighbors[n] = true
	}

	rng := rand.New(rand.NewSource(21))
	for i := 0; i < 100; i++ {
		c := p.Choose(b, goban.Black, rng)
		if !neighbors[c] {
			t.Fatalf("selection %d = %d, expected a neighbor of the last move", i, c)
		}
	}
}

func TestChoosePassesOnEmptyDistribution(t *testing.T) {
	p := neutralPolicy()
	b := goban.NewBoard(9)
	// Distribution never built: no weight anywhere, no last move.
	if c := p.Choose(b, goban.Black, rand.New(rand.NewSource(2))); !c.IsPass() {
		t.Fatalf("expected pass with no mass, got %d", c)
	}
}

type boostAdjuster struct {
	c     goban.Location
	calls int
}

func (a *boostAdjuster) AdjustProbDist(b *goban.Board, color goban.Color, pd *goban.ProbDist) {
	a.calls++
	pd.Set(a.c, pd.One(a.c)*50)
}

func TestAdjusterTriggersFullRepair(t *testing.T) {
	p := neutralPolicy()
	b := goban.NewBoard(9)
	b.Play(b.Loc(3, 3), goban.White)
	p.Rebuild(b, goban.Black)
	pd := b.ProbDist(goban.Black)

	target := b.Loc(5, 5)
	before := pd.Total()
	canonical := pd.One(target)

	adj := &boostAdjuster{c: target}
	p.SetAdjuster(adj)
	rng := rand.New(rand.NewSource(13))
	for i := 0; i < 20; i++ {
		c := p.Choose(b, goban.Black, rng)
		if c.IsPass() {
			t.Fatalf("pass on a nearly empty board")
		}
		if math.Abs(pd.Total()-before) > goban.ProbDistEpsilon {
			t.Fatalf("repair left total %v, backup %v", pd.Total(), before)
		}
		if pd.One(target) != canonical {
			t.Fatalf("repair left boosted weight %v at %d", pd.One(target), target)
		}
	}
	if adj.calls != 20 {
		t.Fatalf("adjuster ran %d times, want 20", adj.calls)
	}

	p.SetAdjuster(nil)
	if c := p.Choose(b, goban.Black, rng); c.IsPass() {
		t.Fatalf("pass after removing the adjuster")
	}
}

func TestGammaMissEqualsExplicitNeutral(t *testing.T) {
	b := goban.NewBoard(9)
	place(b, goban.White, [2]int{3, 4})
	place(b, goban.Black, [2]int{5, 4})
	c := b.Loc(4, 4)

	// Find the spatial feature the matcher reports at c, then compare a
	// table missing that entry against one carrying it explicitly at 1.
	m := pattern.NewShapeMatcher()
	var spatial pattern.Feature
	found := false
	for _, f := range m.Match(b, c, goban.Black, pattern.MatchFast, nil) {
		if f.Kind == pattern.KindSpatial {
			spatial = f
			found = true
		}
	}
	if !found {
		t.Fatalf("matcher reported no spatial feature")
	}

	missing := pattern.NewGammaTable()
	missing.Set(pattern.Feature{Kind: pattern.KindCapture, ID: 1}, 2.5)

	explicit := pattern.NewGammaTable()
	explicit.Set(pattern.Feature{Kind: pattern.KindCapture, ID: 1}, 2.5)
	explicit.Set(spatial, 1.0)

	pMissing := testPolicy(missing, pattern.NewGammaTable())
	pExplicit := testPolicy(explicit, pattern.NewGammaTable())

	var buf [maxFeatures]pattern.Feature
	wMissing := pMissing.choose.moveWeight(b, c, goban.Black, buf[:0])
	wExplicit := pExplicit.choose.moveWeight(b, c, goban.Black, buf[:0])
	if wMissing != wExplicit {
		t.Fatalf("missing-entry weight %v, explicit-neutral weight %v", wMissing, wExplicit)
	}
}

func TestUpdateAroundRefreshesNeighborhood(t *testing.T) {
	p := neutralPolicy()
	b := goban.NewBoard(9)
	p.Rebuild(b, goban.Black)
	p.Rebuild(b, goban.White)

	c := b.Loc(4, 4)
	b.Play(c, goban.Black)
	p.UpdateAround(b, c)

	for _, color := range [2]goban.Color{goban.Black, goban.White} {
		if got := b.ProbDist(color).One(c); got != 0 {
			t.Fatalf("played point still weighs %v for %v", got, color)
		}
	}

	// The refreshed region must agree with a from-scratch rebuild.
	fresh := goban.NewProbDist(b.Stride())
	p.choose.buildProbDist(b, goban.White, fresh)
	pd := b.ProbDist(goban.White)
	for _, n := range b.Neighbors8(c) {
		if pd.One(n) != fresh.One(n) {
			t.Fatalf("neighbor %d: incremental %v, rebuild %v", n, pd.One(n), fresh.One(n))
		}
	}
}
