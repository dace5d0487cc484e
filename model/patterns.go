package model

import "math/rand"

// glider is the smallest spaceship, as (row, col) offsets.
var glider = [][2]int{
	{0, 1},
	{1, 2},
	{2, 0}, {2, 1}, {2, 2},
}

// SeedGlider places a glider with its bounding box anchored at
// (row, col). Offsets that fall outside the grid are skipped, same as
// any batch seed.
func (u *Universe) SeedGlider(row, col int) {
	coords := make([][2]int, 0, len(glider))
	for _, rc := range glider {
		coords = append(coords, [2]int{row + rc[0], col + rc[1]})
	}
	u.Seed(coords)
}

// SeedBlinker places a horizontal blinker oscillator starting at
// (row, col).
func (u *Universe) SeedBlinker(row, col int) {
	u.Seed([][2]int{{row, col}, {row, col + 1}, {row, col + 2}})
}

// SeedRandom sets each cell to Alive with the given probability.
// Unlike the additive seeding operations this overwrites the whole
// grid, so it is only meant for initial population.
func (u *Universe) SeedRandom(density float64, rng *rand.Rand) {
	for i := range u.cells {
		if rng.Float64() < density {
			u.cells[i] = Alive
		} else {
			u.cells[i] = Dead
		}
	}
}
