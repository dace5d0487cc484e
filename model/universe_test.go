package model

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/toruslife/gol/rules"
)

func mustUniverse(t testing.TB, width, height int) *Universe {
	t.Helper()
	u, err := NewUniverse(width, height)
	if err != nil {
		t.Fatalf("NewUniverse(%d, %d): %v", width, height, err)
	}
	return u
}

func liveSet(u *Universe) map[[2]int]bool {
	live := map[[2]int]bool{}
	for idx, c := range u.RawCellView() {
		if c == Alive {
			row, col := u.FromIndex(idx)
			live[[2]int{row, col}] = true
		}
	}
	return live
}

func TestNewUniverseRejectsInvalidDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 5}, {5, 0}, {0, 0}, {-1, 3}, {3, -1}} {
		if _, err := NewUniverse(dims[0], dims[1]); err == nil {
			t.Errorf("NewUniverse(%d, %d) accepted invalid dimensions", dims[0], dims[1])
		}
	}
}

func TestNewUniverseStartsDead(t *testing.T) {
	u := mustUniverse(t, 4, 3)
	if got := len(u.RawCellView()); got != 12 {
		t.Fatalf("storage length = %d, want 12", got)
	}
	if got := u.Population(); got != 0 {
		t.Errorf("new universe population = %d, want 0", got)
	}
	if u.Width() != 4 || u.Height() != 3 {
		t.Errorf("dimensions = %dx%d, want 4x3", u.Width(), u.Height())
	}
}

func TestIndexBijection(t *testing.T) {
	u := mustUniverse(t, 3, 3)

	cases := []struct {
		row, col, idx int
	}{
		{0, 0, 0},
		{1, 0, 3},
		{2, 2, 8},
	}
	for _, c := range cases {
		if got := u.ToIndex(c.row, c.col); got != c.idx {
			t.Errorf("ToIndex(%d, %d) = %d, want %d", c.row, c.col, got, c.idx)
		}
		if row, col := u.FromIndex(c.idx); row != c.row || col != c.col {
			t.Errorf("FromIndex(%d) = (%d, %d), want (%d, %d)", c.idx, row, col, c.row, c.col)
		}
	}

	// Round trip over every valid index
	for idx := 0; idx < 9; idx++ {
		row, col := u.FromIndex(idx)
		if back := u.ToIndex(row, col); back != idx {
			t.Errorf("ToIndex(FromIndex(%d)) = %d", idx, back)
		}
	}
}

func TestSeedIdempotence(t *testing.T) {
	once := mustUniverse(t, 5, 5)
	twice := mustUniverse(t, 5, 5)

	coords := [][2]int{{1, 1}, {2, 3}}
	once.Seed(coords)
	twice.Seed(coords)
	twice.Seed(coords)

	if !bytes.Equal(once.ExportCells(), twice.ExportCells()) {
		t.Error("seeding twice produced a different grid than seeding once")
	}
	if got := twice.Population(); got != 2 {
		t.Errorf("population after double seed = %d, want 2", got)
	}
}

func TestSeedSkipsOutOfRange(t *testing.T) {
	u := mustUniverse(t, 4, 4)

	skipped := u.Seed([][2]int{{1, 1}, {4, 0}, {0, 4}, {-1, 2}, {3, 3}})
	if skipped != 3 {
		t.Errorf("skipped = %d, want 3", skipped)
	}
	want := map[[2]int]bool{{1, 1}: true, {3, 3}: true}
	if got := liveSet(u); len(got) != len(want) || !got[[2]int{1, 1}] || !got[[2]int{3, 3}] {
		t.Errorf("live set = %v, want %v", got, want)
	}
}

func TestSeedOne(t *testing.T) {
	u := mustUniverse(t, 3, 3)

	if err := u.SeedOne(1, 2); err != nil {
		t.Fatalf("SeedOne(1, 2): %v", err)
	}
	if u.RawCellView()[u.ToIndex(1, 2)] != Alive {
		t.Error("SeedOne did not set the cell alive")
	}

	for _, rc := range [][2]int{{3, 0}, {0, 3}, {-1, 0}, {0, -1}} {
		if err := u.SeedOne(rc[0], rc[1]); err == nil {
			t.Errorf("SeedOne(%d, %d) accepted an out-of-range coordinate", rc[0], rc[1])
		}
	}
	if got := u.Population(); got != 1 {
		t.Errorf("population = %d, want 1", got)
	}
}

func TestExportCells(t *testing.T) {
	u := mustUniverse(t, 2, 2)
	u.Seed([][2]int{{0, 0}, {1, 1}})

	got := u.ExportCells()
	want := []byte{1, 0, 0, 1}
	if !bytes.Equal(got, want) {
		t.Fatalf("ExportCells() = %v, want %v", got, want)
	}

	// The export is a snapshot: mutating it must not touch the grid.
	got[1] = 1
	if u.RawCellView()[1] != Dead {
		t.Error("mutating the exported copy changed simulation state")
	}
}

func TestRawCellViewReflectsLiveState(t *testing.T) {
	u := mustUniverse(t, 3, 3)
	view := u.RawCellView()

	if err := u.SeedOne(1, 1); err != nil {
		t.Fatal(err)
	}
	if view[u.ToIndex(1, 1)] != Alive {
		t.Error("raw view did not reflect a later seed; storage was reallocated")
	}
}

func TestNeighborCountToroidal(t *testing.T) {
	u := mustUniverse(t, 4, 4)
	// 0100
	// 0010
	// 1000
	// 0000
	u.Seed([][2]int{{1, 2}, {2, 0}})

	cases := []struct {
		row, col, want int
	}{
		{0, 0, 0},
		{1, 0, 1},
		{1, 1, 2},
		{2, 1, 2},
		{3, 2, 0},
	}
	for _, c := range cases {
		if got := u.NeighborCount(c.row, c.col); got != c.want {
			t.Errorf("NeighborCount(%d, %d) = %d, want %d", c.row, c.col, got, c.want)
		}
	}
}

// TestNeighborCountWrapsEdges pins the wraparound arithmetic: a corner
// cell must see the opposite corner as a neighbor in both directions.
func TestNeighborCountWrapsEdges(t *testing.T) {
	u := mustUniverse(t, 3, 3)
	if err := u.SeedOne(2, 2); err != nil {
		t.Fatal(err)
	}

	// (0,0)'s neighbor at offset (-1,-1) wraps to (2,2).
	if got := u.NeighborCount(0, 0); got != 1 {
		t.Errorf("NeighborCount(0, 0) = %d, want 1 (wrap from (2,2))", got)
	}
	// (2,2) itself is not its own neighbor.
	if got := u.NeighborCount(2, 2); got != 0 {
		t.Errorf("NeighborCount(2, 2) = %d, want 0", got)
	}
	// On a single row the same cell is seen through both the left and
	// right wrap.
	row := mustUniverse(t, 3, 1)
	if err := row.SeedOne(0, 0); err != nil {
		t.Fatal(err)
	}
	if got := row.NeighborCount(0, 1); got < 1 {
		t.Errorf("NeighborCount(0, 1) on 3x1 = %d, want >= 1", got)
	}
}

func TestGliderStep(t *testing.T) {
	u := mustUniverse(t, 10, 10)
	u.Seed([][2]int{{3, 4}, {4, 5}, {5, 3}, {5, 4}, {5, 5}})

	u.AdvanceGeneration()

	want := map[[2]int]bool{
		{4, 3}: true,
		{4, 5}: true,
		{5, 4}: true,
		{5, 5}: true,
		{6, 4}: true,
	}
	got := liveSet(u)
	if len(got) != len(want) {
		t.Fatalf("live cells after one step = %v, want %v", got, want)
	}
	for rc := range want {
		if !got[rc] {
			t.Errorf("cell (%d,%d) dead, want alive", rc[0], rc[1])
		}
	}
}

func TestTickMatchesAdvanceGeneration(t *testing.T) {
	a := mustUniverse(t, 6, 6)
	b := mustUniverse(t, 6, 6)
	a.SeedBlinker(2, 1)
	b.SeedBlinker(2, 1)

	a.AdvanceGeneration()
	b.Tick()

	if !bytes.Equal(a.ExportCells(), b.ExportCells()) {
		t.Error("Tick produced a different grid than AdvanceGeneration")
	}
}

// naiveNext computes the next generation from a frozen snapshot taken
// before any cell is written, serving as the simultaneity oracle.
func naiveNext(u *Universe) []Cell {
	snapshot := append([]Cell(nil), u.RawCellView()...)
	w, h := u.Width(), u.Height()
	next := make([]Cell, len(snapshot))
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			neighbors := 0
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					if dr == 0 && dc == 0 {
						continue
					}
					r := ((row+dr)%h + h) % h
					c := ((col+dc)%w + w) % w
					neighbors += int(snapshot[r*w+c])
				}
			}
			if rules.Survives(snapshot[row*w+col] == Alive, neighbors) {
				next[row*w+col] = Alive
			}
		}
	}
	return next
}

func TestAdvanceGenerationSimultaneity(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 10; trial++ {
		serial := mustUniverse(t, 17, 13)
		serial.SeedRandom(0.3, rng)

		parallel := mustUniverse(t, 17, 13)
		var coords [][2]int
		for rc := range liveSet(serial) {
			coords = append(coords, rc)
		}
		if skipped := parallel.Seed(coords); skipped != 0 {
			t.Fatalf("trial %d: %d seed coordinates skipped", trial, skipped)
		}

		want := naiveNext(serial)

		serial.AdvanceGeneration()
		parallel.AdvanceGenerationParallel()

		for i := range want {
			if serial.RawCellView()[i] != want[i] {
				row, col := serial.FromIndex(i)
				t.Fatalf("trial %d: serial advance diverged from frozen-snapshot oracle at (%d,%d)", trial, row, col)
			}
			if parallel.RawCellView()[i] != want[i] {
				row, col := parallel.FromIndex(i)
				t.Fatalf("trial %d: parallel advance diverged from frozen-snapshot oracle at (%d,%d)", trial, row, col)
			}
		}
	}
}

func TestRenderFormat(t *testing.T) {
	u := mustUniverse(t, 2, 2)
	if got, want := u.Render(), "◻◻\n◻◻"; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}

	u.Seed([][2]int{{0, 0}, {1, 1}})
	if got, want := u.Render(), "◼◻\n◻◼"; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestFingerprint(t *testing.T) {
	u := mustUniverse(t, 4, 4)
	empty := u.Fingerprint()
	if again := u.Fingerprint(); again != empty {
		t.Error("fingerprint of an unchanged grid is not stable")
	}

	if err := u.SeedOne(1, 1); err != nil {
		t.Fatal(err)
	}
	if u.Fingerprint() == empty {
		t.Error("fingerprint did not change after seeding")
	}
}

func TestResetRejectsInvalidAndKeepsBuffers(t *testing.T) {
	u := mustUniverse(t, 4, 4)
	if err := u.SeedOne(0, 0); err != nil {
		t.Fatal(err)
	}

	if err := u.Reset(0, 4); err == nil {
		t.Error("Reset(0, 4) accepted invalid dimensions")
	}

	if err := u.Reset(4, 4); err != nil {
		t.Fatal(err)
	}
	if got := u.Population(); got != 0 {
		t.Errorf("population after reset = %d, want 0", got)
	}
}
