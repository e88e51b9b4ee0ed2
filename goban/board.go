package goban

// Color identifies the contents of a board cell.
type Color uint8

const (
	Empty  Color = 0
	Black  Color = 1
	White  Color = 2
	Border Color = 3
)

// Other returns the opposing stone color. Only meaningful for Black/White.
func (c Color) Other() Color {
	if c == Black {
		return White
	}
	return Black
}

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	case Border:
		return "border"
	default:
		return "empty"
	}
}

// Location indexes a cell of the bordered board array.
type Location int

// Pass is the "no location" sentinel: a pass move, a cleared ko point,
// or "no previous move".
const Pass Location = -1

// IsPass reports whether the location is the pass/none sentinel.
func (c Location) IsPass() bool { return c < 0 }

// Board is a Go board with a one-cell sentinel border, in the style of a
// padded 1D mailbox. It tracks the free-point candidate list, the ko point,
// the last move and the per-color move distributions used by the playout
// policy.
type Board struct {
	size   int // playing area edge length
	stride int // size + 2, row stride of the bordered array

	stones []Color
	free   []Location // empty points, unordered
	freeAt []int      // location -> index into free, -1 when occupied/border

	ko        Location // forbidden recapture point, Pass when none
	koColor   Color    // side the ko prohibition applies to
	lastMove  Location // Pass before the first move or after a pass
	lastColor Color

	prob [2]*ProbDist // indexed by color-1, created on first use

	// scratch state for group walks; stamp-based so walks never allocate
	mark  []int32
	stamp int32
	queue []Location
}

// NewBoard returns an empty size x size board.
func NewBoard(size int) *Board {
	stride := size + 2
	cells := stride * stride
	b := &Board{
		size:     size,
		stride:   stride,
		stones:   make([]Color, cells),
		freeAt:   make([]int, cells),
		mark:     make([]int32, cells),
		queue:    make([]Location, 0, cells),
		ko:       Pass,
		lastMove: Pass,
	}
	for i := range b.stones {
		b.stones[i] = Border
		b.freeAt[i] = -1
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := b.Loc(x, y)
			b.stones[c] = Empty
			b.freeAt[c] = len(b.free)
			b.free = append(b.free, c)
		}
	}
	return b
}

// Size returns the playing area edge length.
func (b *Board) Size() int { return b.size }

// Stride returns the row stride of the bordered array.
func (b *Board) Stride() int { return b.stride }

// Cells returns the total cell count of the bordered array.
func (b *Board) Cells() int { return b.stride * b.stride }

// Loc maps zero-based playing coordinates to a Location.
func (b *Board) Loc(x, y int) Location { return Location((y+1)*b.stride + x + 1) }

// X returns the zero-based column of the location.
func (b *Board) X(c Location) int { return int(c)%b.stride - 1 }

// Y returns the zero-based row of the location.
func (b *Board) Y(c Location) int { return int(c)/b.stride - 1 }

// Row returns the bordered-array row of the location, the coarse
// partition key of the move distributions.
func (b *Board) Row(c Location) int { return int(c) / b.stride }

// ColorAt returns the cell contents at c.
func (b *Board) ColorAt(c Location) Color { return b.stones[c] }

// Ko returns the current ko-forbidden location (Pass when none) and the
// color it applies to.
func (b *Board) Ko() (Location, Color) { return b.ko, b.koColor }

// LastMove returns the last played location (Pass when none) and its color.
func (b *Board) LastMove() (Location, Color) { return b.lastMove, b.lastColor }

// Candidates returns the free-point list. Points on it may still be
// illegal for a particular side (suicide, ko); callers must check.
// The returned slice is owned by the board and invalidated by Play.
func (b *Board) Candidates() []Location { return b.free }

// Neighbors4 returns the four orthogonal neighbors of c.
func (b *Board) Neighbors4(c Location) [4]Location {
	s := Location(b.stride)
	return [4]Location{c - s, c - 1, c + 1, c + s}
}

// Neighbors8 returns all eight adjacent cells of c, border cells included.
func (b *Board) Neighbors8(c Location) [8]Location {
	s := Location(b.stride)
	return [8]Location{
		c - s - 1, c - s, c - s + 1,
		c - 1, c + 1,
		c + s - 1, c + s, c + s + 1,
	}
}

// diagonals returns the four diagonal neighbors of c.
func (b *Board) diagonals(c Location) [4]Location {
	s := Location(b.stride)
	return [4]Location{c - s - 1, c - s + 1, c + s - 1, c + s + 1}
}

// ProbDist returns the board-owned move distribution for the given side,
// creating it on first use. The distribution is reused across selections;
// it is not safe for concurrent mutation (the board and both distributions
// are owned by one goroutine at a time).
func (b *Board) ProbDist(color Color) *ProbDist {
	pd := b.prob[color-1]
	if pd == nil {
		pd = NewProbDist(b.stride)
		b.prob[color-1] = pd
	}
	return pd
}

func (b *Board) addFree(c Location) {
	b.freeAt[c] = len(b.free)
	b.free = append(b.free, c)
}

func (b *Board) removeFree(c Location) {
	i := b.freeAt[c]
	last := len(b.free) - 1
	moved := b.free[last]
	b.free[i] = moved
	b.freeAt[moved] = i
	b.free = b.free[:last]
	b.freeAt[c] = -1
}
