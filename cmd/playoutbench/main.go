package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"runtime/pprof"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/zhanglei1949/pachi/goban"
	"github.com/zhanglei1949/pachi/playout"
)

func main() {
	// --- Flags ---
	sizeFlag := flag.Int("size", 9, "board edge length")
	gamesFlag := flag.Int("games", 1000, "number of rollouts to run")
	workersFlag := flag.Int("workers", runtime.NumCPU(), "parallel rollout goroutines")
	seedFlag := flag.Int64("seed", 1, "base random seed")
	policyFlag := flag.String("policy", "", "policy options, e.g. gammafile=patterns.gamma:precisesa")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	memProfile := flag.String("memprofile", "", "write memory profile (heap) to file")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *sizeFlag < 2 {
		log.Fatal().Msgf("board size must be at least 2, got %d", *sizeFlag)
	}
	if *gamesFlag <= 0 {
		log.Fatal().Msgf("games must be positive, got %d", *gamesFlag)
	}
	workers := goban.Max(*workersFlag, 1)

	// --- Optional CPU profiling setup ---
	if *cpuProfile != "" {
		cpuFile, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	policy := playout.New(*policyFlag)
	defer policy.Close()

	fmt.Printf("playoutbench: size=%d games=%d workers=%d seed=%d\n",
		*sizeFlag, *gamesFlag, workers, *seedFlag)

	// The policy is shared read-only; each worker owns its board and
	// random source, so no distribution is ever mutated concurrently.
	var next, moves int64
	start := time.Now()
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		rng := rand.New(rand.NewSource(*seedFlag + int64(w)))
		g.Go(func() error {
			for atomic.AddInt64(&next, 1) <= int64(*gamesFlag) {
				b := goban.NewBoard(*sizeFlag)
				atomic.AddInt64(&moves, int64(rollout(policy, b, rng)))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("rollout worker failed")
	}
	elapsed := time.Since(start)

	fmt.Printf("total time: %v (%.0f games/s, %.0f moves/s)\n",
		elapsed, float64(*gamesFlag)/elapsed.Seconds(),
		float64(atomic.LoadInt64(&moves))/elapsed.Seconds())

	// --- Optional heap profile at the end ---
	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create memory profile")
		}
		defer f.Close()

		runtime.GC() // get up-to-date heap info
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not write memory profile")
		}
	}
}

// rollout plays one random game to two consecutive passes (or a move
// cap) and returns the number of moves made.
func rollout(policy *playout.Policy, b *goban.Board, rng *rand.Rand) int {
	policy.Rebuild(b, goban.Black)
	policy.Rebuild(b, goban.White)

	maxMoves := 3 * b.Size() * b.Size()
	color := goban.Black
	passes := 0
	n := 0
	for ; n < maxMoves && passes < 2; n++ {
		c := policy.Choose(b, color, rng)
		if c.IsPass() {
			passes++
			b.Play(goban.Pass, color)
		} else {
			passes = 0
			if caps := b.Play(c, color); caps > 0 {
				// Captures free points far outside the move's
				// neighborhood.
				policy.Rebuild(b, goban.Black)
				policy.Rebuild(b, goban.White)
			} else {
				policy.UpdateAround(b, c)
			}
		}
		color = color.Other()
	}
	return n
}
