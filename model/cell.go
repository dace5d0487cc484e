package model

// Cell is the state of a single grid position. The numeric values are
// part of the export contract: Dead is 0 and Alive is 1, so a cell can
// be summed directly into a neighbor count and copied byte-for-byte
// into an exported buffer.
type Cell uint8

const (
	Dead  Cell = 0
	Alive Cell = 1
)

const (
	aliveGlyph = '◼'
	deadGlyph  = '◻'
)

// Encode returns the numeric form of the cell: Dead→0, Alive→1.
func (c Cell) Encode() byte {
	return byte(c)
}

// Glyph returns the single-character human-readable form of the cell.
func (c Cell) Glyph() rune {
	if c == Alive {
		return aliveGlyph
	}
	return deadGlyph
}

// String implements fmt.Stringer using the glyph form.
func (c Cell) String() string {
	return string(c.Glyph())
}
