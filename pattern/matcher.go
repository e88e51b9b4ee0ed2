package pattern

import (
	"github.com/zhanglei1949/pachi/goban"
)

// Matcher reports the ordered list of features present at a candidate
// move. Implementations must be read-only with respect to the board and
// safe for concurrent use from multiple rollout goroutines.
type Matcher interface {
	Match(b *goban.Board, c goban.Location, color goban.Color, spec Spec, buf []Feature) []Feature
}

// ShapeMatcher matches 3x3 spatial configurations around the move plus a
// small set of tactical features. It is stateless; one instance is shared
// by both the fast and the full feature configuration.
type ShapeMatcher struct{}

// NewShapeMatcher returns the shared matcher instance.
func NewShapeMatcher() *ShapeMatcher { return &ShapeMatcher{} }

// borderDistCap bounds the border-distance feature payload; farther moves
// all share one id.
const borderDistCap = 4

// Match appends the features present for color playing at c to buf and
// returns it. The order is fixed: spatial, capture, atari-escape,
// self-atari, border.
func (m *ShapeMatcher) Match(b *goban.Board, c goban.Location, color goban.Color, spec Spec, buf []Feature) []Feature {
	if spec.Wants(KindSpatial) {
		buf = append(buf, Feature{KindSpatial, m.spatialCode(b, c, color)})
	}

	if spec.Kinds&(kindBit(KindCapture)|kindBit(KindAtariEscape)) != 0 {
		captures, escapes := 0, 0
		other := color.Other()
		for _, n := range b.Neighbors4(c) {
			switch b.ColorAt(n) {
			case other:
				if b.InAtari(n) {
					captures++
				}
			case color:
				if b.InAtari(n) {
					escapes++
				}
			}
		}
		if spec.Wants(KindCapture) && captures > 0 {
			buf = append(buf, Feature{KindCapture, uint32(captures)})
		}
		if spec.Wants(KindAtariEscape) && escapes > 0 {
			buf = append(buf, Feature{KindAtariEscape, uint32(escapes)})
		}
	}

	if spec.Wants(KindSelfAtari) && b.SelfAtariAfter(c, color, spec.PreciseSelfAtari) {
		buf = append(buf, Feature{KindSelfAtari, 1})
	}

	if spec.Wants(KindBorder) {
		buf = append(buf, Feature{KindBorder, borderDistance(b, c)})
	}

	return buf
}

func borderDistance(b *goban.Board, c goban.Location) uint32 {
	x, y := b.X(c), b.Y(c)
	d := goban.Min(goban.Min(x, y), goban.Min(b.Size()-1-x, b.Size()-1-y))
	return uint32(goban.Min(d, borderDistCap))
}

// Cell codes of the spatial neighborhood, two bits per neighbor.
const (
	cellEmpty uint32 = iota
	cellOwn
	cellEnemy
	cellBorder
)

// neighborOffsets lists the 3x3 ring in the row-major order produced by
// Board.Neighbors8.
var neighborOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// symmetryPerms[t][i] gives, for board symmetry t, the ring index whose
// cell lands at ring position i. Built once from the dihedral transforms
// of the neighbor offsets.
var symmetryPerms [8][8]int

func init() {
	transforms := [8]func(x, y int) (int, int){
		func(x, y int) (int, int) { return x, y },
		func(x, y int) (int, int) { return -y, x },
		func(x, y int) (int, int) { return -x, -y },
		func(x, y int) (int, int) { return y, -x },
		func(x, y int) (int, int) { return -x, y },
		func(x, y int) (int, int) { return y, x },
		func(x, y int) (int, int) { return x, -y },
		func(x, y int) (int, int) { return -y, -x },
	}
	indexOf := func(x, y int) int {
		for i, off := range neighborOffsets {
			if off[0] == x && off[1] == y {
				return i
			}
		}
		panic("pattern: offset outside the 3x3 ring")
	}
	for t, tr := range transforms {
		for i, off := range neighborOffsets {
			tx, ty := tr(off[0], off[1])
			symmetryPerms[t][indexOf(tx, ty)] = i
		}
	}
}

// spatialCode computes the canonical 16-bit code of the 3x3 neighborhood
// around c as seen by color: the minimum code over the eight board
// symmetries, so that rotated and mirrored shapes share one id.
func (m *ShapeMatcher) spatialCode(b *goban.Board, c goban.Location, color goban.Color) uint32 {
	var cells [8]uint32
	for i, n := range b.Neighbors8(c) {
		switch b.ColorAt(n) {
		case goban.Empty:
			cells[i] = cellEmpty
		case color:
			cells[i] = cellOwn
		case goban.Border:
			cells[i] = cellBorder
		default:
			cells[i] = cellEnemy
		}
	}

	best := ^uint32(0)
	for t := 0; t < 8; t++ {
		code := uint32(0)
		for i := 0; i < 8; i++ {
			code = code<<2 | cells[symmetryPerms[t][i]]
		}
		if code < best {
			best = code
		}
	}
	return best
}
