package model

import (
	"crypto/md5"
	"fmt"
	"math"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/toruslife/gol/rules"
)

// Universe owns a fixed-size toroidal grid of cells. The grid is stored
// as a flat row-major slice (index = row*width + col) alongside a
// scratch buffer of the same length, so a generation transition is
// computed entirely from the old grid and made visible by a single
// buffer swap.
//
// A Universe is single-owner: every operation is synchronous and runs
// to completion, so no locking is needed.
type Universe struct {
	width  int
	height int
	cells  []Cell
	next   []Cell
}

// NewUniverse creates a universe with the given dimensions and all
// cells Dead. Dimensions below 1, or large enough that width*height
// overflows, are rejected; zero-sized grids are never constructed.
func NewUniverse(width, height int) (*Universe, error) {
	u := &Universe{}
	if err := u.Reset(width, height); err != nil {
		return nil, err
	}
	return u, nil
}

// Reset revalidates the dimensions and returns the universe to the
// all-Dead state, reusing the existing buffers when they already have
// the right length. Used by UniversePool to recycle allocations.
func (u *Universe) Reset(width, height int) error {
	if width < 1 || height < 1 {
		return errors.Errorf("[Reset] dimensions must be >= 1, got %dx%d", width, height)
	}
	if height > math.MaxInt/width {
		return errors.Errorf("[Reset] grid %dx%d overflows cell storage", width, height)
	}

	u.width = width
	u.height = height
	size := width * height
	if len(u.cells) != size {
		u.cells = make([]Cell, size)
		u.next = make([]Cell, size)
	} else {
		u.Clear()
	}
	return nil
}

// Clear kills every cell without changing the dimensions.
func (u *Universe) Clear() {
	for i := range u.cells {
		u.cells[i] = Dead
		u.next[i] = Dead
	}
}

// Width returns the fixed grid width.
func (u *Universe) Width() int {
	return u.width
}

// Height returns the fixed grid height.
func (u *Universe) Height() int {
	return u.height
}

// ToIndex maps a (row, col) pair to its flat row-major index.
func (u *Universe) ToIndex(row, col int) int {
	return row*u.width + col
}

// FromIndex maps a flat index back to its (row, col) pair.
func (u *Universe) FromIndex(idx int) (row, col int) {
	return idx / u.width, idx % u.width
}

// inBounds reports whether the pair names a real grid position.
// Seeding coordinates are deliberately NOT wrapped: the toroidal
// topology applies to neighbor lookups only.
func (u *Universe) inBounds(row, col int) bool {
	return row >= 0 && row < u.height && col >= 0 && col < u.width
}

// Seed sets each in-range (row, col) pair to Alive and returns how many
// pairs were skipped for being out of range. Batch input may come from
// an external host, so invalid entries are skipped rather than failing
// the whole call. Seeding is idempotent and additive: already-alive
// cells are unaffected and no cell is ever cleared.
func (u *Universe) Seed(coords [][2]int) (skipped int) {
	for _, rc := range coords {
		if !u.inBounds(rc[0], rc[1]) {
			skipped++
			continue
		}
		u.cells[u.ToIndex(rc[0], rc[1])] = Alive
	}
	return skipped
}

// SeedOne sets a single cell to Alive. Unlike batch Seed, an
// out-of-range coordinate here is caller misuse and is rejected.
func (u *Universe) SeedOne(row, col int) error {
	if !u.inBounds(row, col) {
		return errors.Errorf("[SeedOne] coordinate (%d,%d) outside %dx%d grid", row, col, u.width, u.height)
	}
	u.cells[u.ToIndex(row, col)] = Alive
	return nil
}

// NeighborCount counts the Alive cells among the 8 neighbors of
// (row, col) under toroidal wraparound. The double-modulo keeps the
// wrapped coordinate non-negative: Go's % is a truncating remainder,
// so (0-1)%height alone would be negative.
func (u *Universe) NeighborCount(row, col int) int {
	count := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r := ((row+dr)%u.height + u.height) % u.height
			c := ((col+dc)%u.width + u.width) % u.width
			count += int(u.cells[u.ToIndex(r, c)])
		}
	}
	return count
}

// AdvanceGeneration computes the next generation from the current grid
// and replaces the grid atomically. Every cell's fate is decided from
// the old grid only; the new generation becomes visible all at once
// when the buffers swap.
func (u *Universe) AdvanceGeneration() {
	u.mustConsistent()
	for row := 0; row < u.height; row++ {
		u.advanceRows(row, row+1)
	}
	u.cells, u.next = u.next, u.cells
}

// AdvanceGenerationParallel is AdvanceGeneration with the row scan
// partitioned across CPUs. Workers write disjoint row bands of the
// scratch buffer and read only the old grid, so the result is
// identical to the serial scan.
func (u *Universe) AdvanceGenerationParallel() {
	u.mustConsistent()

	var (
		eg            errgroup.Group
		numWorkers    = runtime.NumCPU()
		rowsPerWorker = (u.height + numWorkers - 1) / numWorkers
	)

	for i := 0; i < numWorkers; i++ {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, u.height)
		)
		if startRow >= u.height {
			break
		}

		eg.Go(func() error {
			u.advanceRows(startRow, endRow)
			return nil
		})
	}

	// Workers never return errors; Wait is only a join point.
	_ = eg.Wait()

	u.cells, u.next = u.next, u.cells
}

// Tick advances one generation. Alias kept for hosts that drive the
// simulation from an animation loop.
func (u *Universe) Tick() {
	u.AdvanceGeneration()
}

// advanceRows writes rows [startRow, endRow) of the next generation
// into the scratch buffer, reading only the current grid.
func (u *Universe) advanceRows(startRow, endRow int) {
	for row := startRow; row < endRow; row++ {
		for col := 0; col < u.width; col++ {
			idx := u.ToIndex(row, col)
			alive := rules.Survives(u.cells[idx] == Alive, u.NeighborCount(row, col))
			if alive {
				u.next[idx] = Alive
			} else {
				u.next[idx] = Dead
			}
		}
	}
}

// ExportCells returns a snapshot copy of the grid as 0/1 bytes in
// row-major order. The copy never aliases internal storage, so the
// caller cannot mutate simulation state through it.
func (u *Universe) ExportCells() []byte {
	out := make([]byte, len(u.cells))
	for i, c := range u.cells {
		out[i] = c.Encode()
	}
	return out
}

// RawCellView exposes the live cell storage for zero-copy reads by a
// host renderer. The returned slice is a view, not a copy: it reflects
// every subsequent mutation and MUST NOT be written to.
func (u *Universe) RawCellView() []Cell {
	return u.cells
}

// Render produces the human-readable grid dump: height lines of width
// glyphs each, top row first, joined by newlines with no trailing
// newline.
func (u *Universe) Render() string {
	var b strings.Builder
	b.Grow(len(u.cells)*3 + u.height) // glyphs are 3 bytes in UTF-8
	for row := 0; row < u.height; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < u.width; col++ {
			b.WriteRune(u.cells[u.ToIndex(row, col)].Glyph())
		}
	}
	return b.String()
}

// Population returns the number of Alive cells.
func (u *Universe) Population() (count int) {
	for _, c := range u.cells {
		count += int(c)
	}
	return count
}

// Fingerprint returns an MD5 hash of the current grid state, used for
// cheap stagnation/cycle detection by callers.
func (u *Universe) Fingerprint() string {
	h := md5.New()
	for _, c := range u.cells {
		h.Write([]byte{c.Encode()})
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// mustConsistent panics if the storage length no longer matches the
// dimensions. That can only happen through an implementation bug, so
// it is fatal rather than recoverable.
func (u *Universe) mustConsistent() {
	if len(u.cells) != u.width*u.height || len(u.next) != len(u.cells) {
		panic(fmt.Sprintf("universe storage %d/%d does not match %dx%d grid",
			len(u.cells), len(u.next), u.width, u.height))
	}
}
