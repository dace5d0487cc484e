package utils

import "time"

// Stats tracks run statistics for the demo loop.
type Stats struct {
	Generations          int
	GenerationsPerSecond float64
	AveragePopulation    float64
	StartTime            time.Time
}

func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

// Observe records one completed generation.
func (s *Stats) Observe(generation, population int, duration time.Duration) {
	s.Generations = generation
	if duration > 0 {
		s.GenerationsPerSecond = 1.0 / duration.Seconds()
	}

	// Simple moving average for population
	if s.AveragePopulation == 0 {
		s.AveragePopulation = float64(population)
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(population) * 0.1)
	}
}

// Runtime returns the elapsed wall time since the run started.
func (s *Stats) Runtime() time.Duration {
	return time.Since(s.StartTime)
}
