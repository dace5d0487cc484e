package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/integrii/flaggy"

	"github.com/toruslife/gol/model"
	"github.com/toruslife/gol/utils"
)

const configFile = "config.json"

func main() {
	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig(configFile)
	if err != nil {
		fmt.Println("Using default configuration (config.json not found)")
		config = utils.DefaultConfig()
	}
	parseFlags(&config)

	if err = config.Validate(); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	pool := model.NewUniversePool()
	universe, err := initializeGame(config, pool)
	if err != nil {
		fmt.Printf("Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	renderer := model.NewTerminalRenderer()
	stats := utils.NewStats()
	displayGameInfo(config, universe)

	// Handle Ctrl+C gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var (
		generation    = 0
		stagnantCount = 0
		history       fingerprintHistory
		lastFrameTime = time.Now()
	)

	for {
		select {
		case <-sigChan:
			fmt.Println("\nShutting down gracefully...")
			fmt.Printf("Final stats: %d generations in %.1f seconds\n",
				generation, stats.Runtime().Seconds())
			model.UniverseToPool(universe, pool)
			return
		default:
			// Continue with game loop
		}

		frameStart := time.Now()
		renderer.Clear()

		population := universe.Population()
		stats.Observe(generation, population, time.Since(lastFrameTime))
		lastFrameTime = frameStart

		stagnant := history.Stagnant(universe.Fingerprint())
		if stagnant {
			stagnantCount++
		} else {
			stagnantCount = 0
		}
		history.Push(universe.Fingerprint())

		displayGameStatus(generation, population, statusWord(population, stagnant), config, universe, stats)
		renderer.Display(universe)

		if config.MaxGenerations > 0 && generation >= config.MaxGenerations {
			fmt.Printf("\nReached maximum generations limit (%d)\n", config.MaxGenerations)
			break
		}

		if shouldRestart, reason := checkRestartConditions(population, stagnantCount, config); shouldRestart {
			if !config.AutoRestart {
				fmt.Printf("\nStopping due to %s\n", reason)
				break
			}
			fmt.Printf("Restarting due to %s...\n", reason)
			model.UniverseToPool(universe, pool)
			universe, err = initializeGame(config, pool)
			if err != nil {
				fmt.Printf("Failed to restart: %v\n", err)
				break
			}
			history = fingerprintHistory{}
			stagnantCount = 0
		}

		if config.UseParallel {
			universe.AdvanceGenerationParallel()
		} else {
			universe.AdvanceGeneration()
		}
		generation++

		// Wait before next frame
		time.Sleep(config.FrameRate)
	}
	model.UniverseToPool(universe, pool)
}

// parseFlags overrides config file values with command line flags.
// Flag defaults come from the loaded config, so unset flags keep the
// file's values.
func parseFlags(config *utils.Config) {
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Int(&config.Width, "x", "width", "Width of the simulation grid")
	flaggy.Int(&config.Height, "y", "height", "Height of the simulation grid")
	flaggy.Duration(&config.FrameRate, "i", "interval", "Interval between generations, e.g. 150ms")
	flaggy.Int(&config.MaxGenerations, "s", "maxGenerations", "Stop after this many generations (0 = unlimited)")
	flaggy.Bool(&config.UseParallel, "p", "parallel", "Advance generations with one worker per CPU")
	flaggy.Bool(&config.RandomSeed, "r", "random", "Seed with random cells instead of fixed patterns")
	flaggy.Parse()
}
