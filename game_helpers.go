package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"

	"github.com/toruslife/gol/model"
	"github.com/toruslife/gol/utils"
)

// initializeGame builds a freshly seeded universe, reusing buffers from
// the pool.
func initializeGame(config utils.Config, pool *model.UniversePool) (*model.Universe, error) {
	universe, err := pool.Get(config.Width, config.Height)
	if err != nil {
		return nil, errors.Wrap(err, "[initializeGame] failed to create universe")
	}

	if config.RandomSeed {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		universe.SeedRandom(config.RandomDensity, rng)
		return universe, nil
	}

	// Fixed patterns: a couple of gliders plus blinkers, scaled to the grid
	if config.Width >= 10 && config.Height >= 10 {
		universe.SeedGlider(3, 3)
		if config.Width >= 20 && config.Height >= 15 {
			universe.SeedGlider(3, config.Width-8)
		}
		universe.SeedBlinker(config.Height/2, config.Width/4)
		if config.Width >= 30 {
			universe.SeedBlinker(3*config.Height/4, 3*config.Width/4)
		}
	} else {
		universe.SeedBlinker(config.Height/2, 0)
	}

	return universe, nil
}

// displayGameInfo shows the initial game information
func displayGameInfo(config utils.Config, universe *model.Universe) {
	fmt.Printf("Grid: %dx%d (toroidal) | Initial population: %d | Parallel: %v\n",
		universe.Width(), universe.Height(), universe.Population(), config.UseParallel)
	fmt.Println("Press Ctrl+C to exit gracefully")
	fmt.Println()
	time.Sleep(2 * time.Second)
}

// displayGameStatus shows the current game status
func displayGameStatus(
	generation, population int,
	status string,
	config utils.Config,
	universe *model.Universe,
	stats *utils.Stats,
) {
	density := float64(population) / float64(universe.Width()*universe.Height()) * 100

	fmt.Printf("Gen: %d | Population: %d | Density: %.1f%% | Status: %s\n",
		generation, population, density, status)
	fmt.Printf("Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs\n",
		stats.GenerationsPerSecond, stats.AveragePopulation, stats.Runtime().Seconds())
	fmt.Println()
}

// statusWord picks the colorized status label for the current frame.
func statusWord(population int, stagnant bool) string {
	switch {
	case population == 0:
		return aurora.Red("extinct").String()
	case stagnant:
		return aurora.Yellow("stagnant").String()
	default:
		return aurora.Green("active").String()
	}
}

// checkRestartConditions determines if the game should restart
func checkRestartConditions(population, stagnantCount int, config utils.Config) (bool, string) {
	if population == 0 {
		return true, "extinction"
	}
	if stagnantCount >= config.StagnationThreshold {
		return true, "stagnation"
	}
	return false, ""
}

// fingerprintHistory remembers the last few grid fingerprints so the
// loop can detect static grids and short cycles.
type fingerprintHistory struct {
	hashes []string
}

const historyDepth = 5

// Push records a fingerprint, keeping only the most recent entries.
func (h *fingerprintHistory) Push(fp string) {
	h.hashes = append(h.hashes, fp)
	if len(h.hashes) > historyDepth {
		h.hashes = h.hashes[1:]
	}
}

// Stagnant reports whether the fingerprint matches any of the last
// three recorded states, catching static grids and period-2/3 cycles.
func (h *fingerprintHistory) Stagnant(fp string) bool {
	if len(h.hashes) < 3 {
		return false
	}
	for i := len(h.hashes) - 3; i < len(h.hashes); i++ {
		if h.hashes[i] == fp {
			return true
		}
	}
	return false
}
