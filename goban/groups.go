package goban

// nextStamp advances the scratch marker used by group walks.
func (b *Board) nextStamp() int32 {
	b.stamp++
	return b.stamp
}

// groupLiberties counts the liberties of the group containing c, walking at
// most limit liberties before giving up the exact count. c must hold a stone.
func (b *Board) groupLiberties(c Location, limit int) int {
	color := b.stones[c]
	stamp := b.nextStamp()
	libs := 0
	b.queue = b.queue[:0]
	b.queue = append(b.queue, c)
	b.mark[c] = stamp
	for len(b.queue) > 0 {
		cur := b.queue[len(b.queue)-1]
		b.queue = b.queue[:len(b.queue)-1]
		for _, n := range b.Neighbors4(cur) {
			if b.mark[n] == stamp {
				continue
			}
			b.mark[n] = stamp
			switch b.stones[n] {
			case Empty:
				libs++
				if libs >= limit {
					return libs
				}
			case color:
				b.queue = append(b.queue, n)
			}
		}
	}
	return libs
}

// InAtari reports whether the group containing c has exactly one liberty.
func (b *Board) InAtari(c Location) bool {
	return b.groupLiberties(c, 2) == 1
}

// IsLegal reports whether color may play at c: the point is empty, is not
// the ko-forbidden point for that side, and the move is not suicide.
func (b *Board) IsLegal(c Location, color Color) bool {
	if b.stones[c] != Empty {
		return false
	}
	if c == b.ko && color == b.koColor {
		return false
	}
	return !b.isSuicide(c, color)
}

// isSuicide reports whether playing color at the empty point c would leave
// the new group with no liberties and capture nothing.
func (b *Board) isSuicide(c Location, color Color) bool {
	other := color.Other()
	for _, n := range b.Neighbors4(c) {
		switch b.stones[n] {
		case Empty:
			return false
		case color:
			if b.groupLiberties(n, 3) >= 2 {
				// Joining a group that keeps a liberty besides c.
				return false
			}
		case other:
			if b.InAtari(n) {
				// We capture, gaining at least one liberty.
				return false
			}
		}
	}
	return true
}

// IsEyelike reports whether every orthogonal neighbor of c is either
// color's stone or the board edge.
func (b *Board) IsEyelike(c Location, color Color) bool {
	for _, n := range b.Neighbors4(c) {
		if b.stones[n] != color && b.stones[n] != Border {
			return false
		}
	}
	return true
}

// IsOnePointEye reports whether c is a single-point eye of color: eyelike,
// and not a false eye by the diagonal count rule. The rule misreads some
// bulk nakade shapes (e.g. bulky five with the eye at the 1-1 point) as
// real eyes; playout quality is calibrated around that behavior, so it is
// kept as is.
func (b *Board) IsOnePointEye(c Location, color Color) bool {
	if !b.IsEyelike(c, color) {
		return false
	}
	other := color.Other()
	enemy, border := 0, 0
	for _, d := range b.diagonals(c) {
		switch b.stones[d] {
		case other:
			enemy++
		case Border:
			border++
		}
	}
	if border > 0 {
		return enemy == 0
	}
	return enemy <= 1
}

// SelfAtariAfter reports whether playing color at the empty point c would
// leave the resulting group with exactly one liberty. With exact set the
// whole prospective group is walked, liberties deduplicated and adjacent
// captures credited as fresh liberties; otherwise a capped estimate is
// used that double-counts liberties shared between joined groups and so
// can miss a self-atari.
func (b *Board) SelfAtariAfter(c Location, color Color, exact bool) bool {
	other := color.Other()
	if !exact {
		libs := 0
		for _, n := range b.Neighbors4(c) {
			switch b.stones[n] {
			case Empty:
				libs++
			case color:
				libs += b.groupLiberties(n, 3) - 1
			case other:
				if b.InAtari(n) {
					libs++
				}
			}
			if libs >= 2 {
				return false
			}
		}
		return libs == 1
	}

	stamp := b.nextStamp()
	b.mark[c] = stamp
	libs := 0
	b.queue = b.queue[:0]
	b.queue = append(b.queue, c)
	for len(b.queue) > 0 {
		cur := b.queue[len(b.queue)-1]
		b.queue = b.queue[:len(b.queue)-1]
		for _, n := range b.Neighbors4(cur) {
			if b.mark[n] == stamp {
				continue
			}
			b.mark[n] = stamp
			switch b.stones[n] {
			case Empty:
				libs++
			case color:
				b.queue = append(b.queue, n)
			case other:
				// A captured neighbor group opens its cells up;
				// credit the contact point as a liberty.
				if cur == c && b.InAtari(n) {
					libs++
				}
			}
			if libs >= 2 {
				return false
			}
		}
	}
	return libs == 1
}

// removeGroup takes the group containing c off the board, returning the
// number of stones removed. Removed points rejoin the free list.
func (b *Board) removeGroup(c Location) int {
	color := b.stones[c]
	b.queue = b.queue[:0]
	b.queue = append(b.queue, c)
	b.stones[c] = Empty
	b.addFree(c)
	n := 1
	for len(b.queue) > 0 {
		cur := b.queue[len(b.queue)-1]
		b.queue = b.queue[:len(b.queue)-1]
		for _, nb := range b.Neighbors4(cur) {
			if b.stones[nb] == color {
				b.stones[nb] = Empty
				b.addFree(nb)
				b.queue = append(b.queue, nb)
				n++
			}
		}
	}
	return n
}

// Play places a stone of color at c, performing captures and ko
// tracking, and returns the number of stones captured. The move must be
// legal (see IsLegal); playing the chosen move into the board state is
// the caller's responsibility in a rollout, the policy itself never
// calls Play. Pass c == Pass to play a pass.
func (b *Board) Play(c Location, color Color) int {
	if c.IsPass() {
		b.ko = Pass
		b.lastMove = Pass
		b.lastColor = color
		return 0
	}
	b.stones[c] = color
	b.removeFree(c)

	other := color.Other()
	captured := 0
	var lastCapture Location
	for _, n := range b.Neighbors4(c) {
		if b.stones[n] == other && b.groupLiberties(n, 1) == 0 {
			lastCapture = n
			captured += b.removeGroup(n)
		}
	}

	// A lone stone capturing exactly one stone and keeping a single
	// liberty (the captured point) sets up a ko.
	b.ko = Pass
	if captured == 1 && b.groupLiberties(c, 2) == 1 {
		alone := true
		for _, n := range b.Neighbors4(c) {
			if b.stones[n] == color {
				alone = false
				break
			}
		}
		if alone {
			b.ko = lastCapture
			b.koColor = other
		}
	}

	b.lastMove = c
	b.lastColor = color
	return captured
}
