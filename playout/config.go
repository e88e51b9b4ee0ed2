package playout

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/zhanglei1949/pachi/pattern"
)

// DefaultGammaFile is the base gamma table path; the fast table used for
// rollout moves is derived by appending "f".
const DefaultGammaFile = "patterns.gamma"

// defaultSelfAtari comes from the feature strength table in Coulom's
// paper.
const defaultSelfAtari = 0.06

// New builds a policy from a colon-separated option string, e.g.
// "gammafile=tables/patterns.gamma:precisesa:xspat=0". Keys are
// case-insensitive:
//
//	selfatari=F   self-atari weighting factor (stored, currently inert)
//	precisesa[=B] precise self-atari detection within fast patterns
//	gammafile=P   base gamma table path; P+"f" holds the fast table
//	xspat=N       0: never match spatial features, 1: match only them
//
// An unknown option, or a missing value where one is required, is a
// fatal configuration error. One-time setup, not reentrant.
func New(arg string) *Policy {
	p := &Policy{
		selfatari: defaultSelfAtari,
		log:       log.Logger,
	}

	gammafile := DefaultGammaFile
	xspat := -1
	preciseSelfAtari := false

	for _, optspec := range strings.Split(arg, ":") {
		if optspec == "" {
			continue
		}
		name, val, hasVal := strings.Cut(optspec, "=")
		switch strings.ToLower(name) {
		case "selfatari":
			f, err := strconv.ParseFloat(val, 64)
			if !hasVal || err != nil {
				log.Fatal().Msgf("playout: invalid policy argument %s or missing value", name)
			}
			p.selfatari = f
		case "precisesa":
			n, _ := strconv.Atoi(val)
			preciseSelfAtari = !hasVal || n != 0
		case "gammafile":
			if !hasVal {
				log.Fatal().Msgf("playout: invalid policy argument %s or missing value", name)
			}
			gammafile = val
		case "xspat":
			n, err := strconv.Atoi(val)
			if !hasVal || err != nil {
				log.Fatal().Msgf("playout: invalid policy argument %s or missing value", name)
			}
			xspat = n
		default:
			log.Fatal().Msgf("playout: invalid policy argument %s or missing value", name)
		}
	}

	matcher := pattern.NewShapeMatcher()

	// One parametrized bundle, instantiated twice: the full
	// configuration assesses priors, the reduced one chooses rollout
	// moves and reads the derived fast gamma table.
	p.assess = patternSet{
		spec:    applyXspat(pattern.MatchAll, xspat),
		matcher: matcher,
		gammas:  loadGammaTable(gammafile),
	}
	chooseSpec := applyXspat(pattern.MatchFast, xspat)
	chooseSpec.PreciseSelfAtari = preciseSelfAtari
	p.choose = patternSet{
		spec:    chooseSpec,
		matcher: matcher,
		gammas:  loadGammaTable(gammafile + "f"),
	}
	return p
}

// applyXspat narrows a match spec per the xspat tri-state: 0 drops
// spatial features, 1 keeps nothing else, anything else leaves the spec
// alone.
func applyXspat(spec pattern.Spec, xspat int) pattern.Spec {
	switch xspat {
	case 0:
		return spec.Without(pattern.KindSpatial)
	case 1:
		return spec.Only(pattern.KindSpatial)
	default:
		return spec
	}
}

// loadGammaTable reads the table at path. A missing file only warns and
// yields a neutral table, so the policy stays usable without learned
// data; a malformed file is fatal.
func loadGammaTable(path string) *pattern.GammaTable {
	t, err := pattern.LoadGammas(path)
	if err == nil {
		log.Debug().Str("path", path).Int("entries", t.Len()).Msg("gamma table loaded")
		return t
	}
	if errors.Is(err, os.ErrNotExist) {
		log.Warn().Str("path", path).Msg("gamma table missing, all features neutral")
		return pattern.NewGammaTable()
	}
	log.Fatal().Err(err).Str("path", path).Msg("gamma table unreadable")
	return nil
}
