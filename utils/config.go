package utils

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
)

// Config holds the configuration for the demo runner. The simulation
// core takes only the two dimensions; everything else drives the
// terminal loop around it.
type Config struct {
	Width               int           `json:"width"`
	Height              int           `json:"height"`
	FrameRate           time.Duration `json:"frame_rate"`
	MaxGenerations      int           `json:"max_generations"`
	UseParallel         bool          `json:"use_parallel"`
	AutoRestart         bool          `json:"auto_restart"`
	StagnationThreshold int           `json:"stagnation_threshold"`
	RandomDensity       float64       `json:"random_density"`
	RandomSeed          bool          `json:"random_seed"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:               60,
		Height:              30,
		FrameRate:           150 * time.Millisecond,
		MaxGenerations:      1000,
		UseParallel:         true,
		AutoRestart:         true,
		StagnationThreshold: 5,
		RandomDensity:       0.15,
		RandomSeed:          false,
	}
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	if err = config.Validate(); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] invalid config in file: %+v", filename)
	}

	return config, nil
}

// Validate rejects configurations the simulation core would refuse.
func (c Config) Validate() error {
	if c.Width < 1 || c.Height < 1 {
		return errors.Errorf("[Validate] dimensions must be >= 1, got %dx%d", c.Width, c.Height)
	}
	if c.RandomDensity < 0 || c.RandomDensity > 1 {
		return errors.Errorf("[Validate] random_density must be in [0,1], got %v", c.RandomDensity)
	}
	return nil
}
