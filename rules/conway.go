package rules

/*
Survives applies Conway's Game of Life rules to determine the next
state of a cell from its current state and live neighbor count:

 1. a live cell with fewer than two live neighbors dies (underpopulation)
 2. a live cell with two or three live neighbors lives on
 3. a live cell with more than three live neighbors dies (overpopulation)
 4. a dead cell with exactly three live neighbors becomes alive (reproduction)

Equivalent to the compact form (alive && neighbors == 2) || neighbors == 3.
*/
func Survives(alive bool, neighbors int) bool {
	switch {
	case alive && neighbors < 2:
		return false
	case alive && (neighbors == 2 || neighbors == 3):
		return true
	case alive && neighbors > 3:
		return false
	case !alive && neighbors == 3:
		return true
	default:
		return false
	}
}
