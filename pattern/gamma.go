package pattern

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// GammaTable maps features to their learned playing strengths. It is
// populated once at policy construction and read-only afterwards, so any
// number of rollout goroutines may share it.
type GammaTable struct {
	gammas map[Feature]float64
}

// NewGammaTable returns an empty table; every lookup resolves neutral.
func NewGammaTable() *GammaTable {
	return &GammaTable{gammas: make(map[Feature]float64)}
}

// Lookup returns the gamma of f, or 1 when the table has no entry: an
// unknown feature neither helps nor hurts a move.
func (t *GammaTable) Lookup(f Feature) float64 {
	if g, ok := t.gammas[f]; ok {
		return g
	}
	return 1
}

// Set records the gamma of f. Only used while loading and in tests.
func (t *GammaTable) Set(f Feature, g float64) { t.gammas[f] = g }

// Len returns the number of loaded entries.
func (t *GammaTable) Len() int { return len(t.gammas) }

// Entry is one (feature, gamma) pair from a table dump.
type Entry struct {
	Feature Feature
	Gamma   float64
}

// Entries returns a copy of the table contents in unspecified order.
// Diagnostic use only.
func (t *GammaTable) Entries() []Entry {
	entries := make([]Entry, 0, len(t.gammas))
	for f, g := range t.gammas {
		entries = append(entries, Entry{f, g})
	}
	return entries
}

// Close releases the table storage. Lookups after Close resolve neutral.
func (t *GammaTable) Close() { t.gammas = nil }

// LoadGammas reads a gamma table file: one "kind.id gamma" entry per
// line, '#' starting a comment. Returns os.ErrNotExist-wrapped errors for
// missing files so callers can choose to run with a neutral table.
func LoadGammas(path string) (*GammaTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open gamma table")
	}
	defer file.Close()

	t := NewGammaTable()
	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, errors.Errorf("%s:%d: want \"kind.id gamma\", got %q", path, line, text)
		}
		f, err := parseFeature(fields[0])
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d", path, line)
		}
		g, err := strconv.ParseFloat(fields[1], 64)
		if err != nil || g <= 0 {
			return nil, errors.Errorf("%s:%d: bad gamma %q", path, line, fields[1])
		}
		t.gammas[f] = g
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read gamma table")
	}
	return t, nil
}

func parseFeature(s string) (Feature, error) {
	kindStr, idStr, ok := strings.Cut(s, ".")
	if !ok {
		return Feature{}, errors.Errorf("bad feature %q", s)
	}
	kind, ok := KindFromString(kindStr)
	if !ok {
		return Feature{}, errors.Errorf("unknown feature kind %q", kindStr)
	}
	id, err := strconv.ParseUint(idStr, 0, 32)
	if err != nil {
		return Feature{}, errors.Errorf("bad feature id %q", idStr)
	}
	return Feature{kind, uint32(id)}, nil
}
