package pattern

import "fmt"

// Kind classifies a board feature recognized at a candidate move.
type Kind uint8

const (
	// KindSpatial is a matched 3x3 stone configuration, identified by
	// its canonical neighborhood code.
	KindSpatial Kind = iota
	// KindCapture fires when the move captures an adjacent enemy group.
	KindCapture
	// KindAtariEscape fires when the move touches an own group in atari.
	KindAtariEscape
	// KindSelfAtari fires when the move puts its own group in atari.
	KindSelfAtari
	// KindBorder carries the move's distance from the board edge.
	KindBorder
	// KindContiguity weights play next to the previous move. It is never
	// emitted by the matcher; the selector looks its gamma up directly
	// when building the local candidate pool.
	KindContiguity

	KindMax
)

var kindNames = [KindMax]string{
	"spatial", "capture", "atariescape", "selfatari", "border", "contiguity",
}

func (k Kind) String() string {
	if k < KindMax {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// KindFromString resolves a feature kind name from a gamma table file.
func KindFromString(s string) (Kind, bool) {
	for k, name := range kindNames {
		if s == name {
			return Kind(k), true
		}
	}
	return KindMax, false
}

// Feature is one recognized property of a candidate move; its learned
// strength lives in a GammaTable keyed by the full (kind, id) pair.
type Feature struct {
	Kind Kind
	ID   uint32
}

func (f Feature) String() string { return fmt.Sprintf("%s.%d", f.Kind, f.ID) }

// Spec selects which feature kinds a match pass considers. The playout
// move chooser runs a reduced kind set to stay fast; the prior assessor
// matches everything.
type Spec struct {
	Kinds            uint32 // bit per Kind
	PreciseSelfAtari bool   // exact group walk for self-atari detection
}

func kindBit(k Kind) uint32 { return 1 << uint32(k) }

// Wants reports whether the spec matches features of kind k.
func (s Spec) Wants(k Kind) bool { return s.Kinds&kindBit(k) != 0 }

// Without returns a copy of the spec with kind k disabled.
func (s Spec) Without(k Kind) Spec {
	s.Kinds &^= kindBit(k)
	return s
}

// Only returns a copy of the spec matching nothing but kind k.
func (s Spec) Only(k Kind) Spec {
	s.Kinds &= kindBit(k)
	return s
}

// MatchAll matches every feature kind; used by the prior assessor.
var MatchAll = Spec{
	Kinds: kindBit(KindSpatial) | kindBit(KindCapture) | kindBit(KindAtariEscape) |
		kindBit(KindSelfAtari) | kindBit(KindBorder),
}

// MatchFast is the reduced kind set used for every rollout move.
var MatchFast = Spec{
	Kinds: kindBit(KindSpatial) | kindBit(KindCapture) | kindBit(KindSelfAtari),
}
