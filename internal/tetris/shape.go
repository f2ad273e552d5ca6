// Package tetris holds the game-state engine: the bordered board, the shape
// catalog, collision and placement, line clearing, scoring, gravity timing
// and the input state machine that ties them together.
package tetris

// Offset is a cell displacement from a shape's pivot.
type Offset struct {
	DX int
	DY int
}

// Linear returns the offset as a distance in the board's flat cell array.
func (o Offset) Linear() int {
	return o.DY*Cols + o.DX
}

var (
	TL = Offset{DX: -1, DY: -1}
	TC = Offset{DX: 0, DY: -1}
	TR = Offset{DX: 1, DY: -1}
	ML = Offset{DX: -1, DY: 0}
	MR = Offset{DX: 1, DY: 0}
	BL = Offset{DX: -1, DY: 1}
	BC = Offset{DX: 0, DY: 1}
	BR = Offset{DX: 1, DY: 1}

	farRight = Offset{DX: 2, DY: 0}
	farDown  = Offset{DX: 0, DY: 2}
)

type ShapeID int

// Shape is one rotation of a piece. The pivot cell is implicit; Offsets
// locate the other three cells.
type Shape struct {
	ID      ShapeID
	Next    ShapeID
	Offsets [3]Offset
	Color   Color
}

// Families is the number of distinct pieces. Catalog entries 0..Families-1
// are each family's starting rotation.
const Families = 7

var catalog = [...]Shape{
	{ID: 0, Next: 7, Offsets: [3]Offset{TL, TC, MR}, Color: 2},
	{ID: 1, Next: 8, Offsets: [3]Offset{TR, TC, ML}, Color: 3},
	{ID: 2, Next: 9, Offsets: [3]Offset{ML, MR, BC}, Color: 1},
	{ID: 3, Next: 3, Offsets: [3]Offset{TL, TC, ML}, Color: 4},
	{ID: 4, Next: 12, Offsets: [3]Offset{ML, BL, MR}, Color: 5},
	{ID: 5, Next: 15, Offsets: [3]Offset{ML, BR, MR}, Color: 6},
	{ID: 6, Next: 18, Offsets: [3]Offset{ML, MR, farRight}, Color: 7},
	{ID: 7, Next: 0, Offsets: [3]Offset{TC, ML, BL}, Color: 2},
	{ID: 8, Next: 1, Offsets: [3]Offset{TC, MR, BR}, Color: 3},
	{ID: 9, Next: 10, Offsets: [3]Offset{TC, MR, BC}, Color: 1},
	{ID: 10, Next: 11, Offsets: [3]Offset{TC, ML, MR}, Color: 1},
	{ID: 11, Next: 2, Offsets: [3]Offset{TC, ML, BC}, Color: 1},
	{ID: 12, Next: 13, Offsets: [3]Offset{TC, BC, BR}, Color: 5},
	{ID: 13, Next: 14, Offsets: [3]Offset{TR, ML, MR}, Color: 5},
	{ID: 14, Next: 4, Offsets: [3]Offset{TL, TC, BC}, Color: 5},
	{ID: 15, Next: 16, Offsets: [3]Offset{TR, TC, BC}, Color: 6},
	{ID: 16, Next: 17, Offsets: [3]Offset{TL, MR, ML}, Color: 6},
	{ID: 17, Next: 5, Offsets: [3]Offset{TC, BC, BL}, Color: 6},
	{ID: 18, Next: 6, Offsets: [3]Offset{TC, BC, farDown}, Color: 7},
}

// CatalogSize is the number of rotation entries across all families.
const CatalogSize = len(catalog)

// Lookup returns the catalog entry for id, or nil when id is out of range.
func Lookup(id ShapeID) *Shape {
	if id < 0 || int(id) >= len(catalog) {
		return nil
	}
	return &catalog[id]
}

// Rotate returns the next rotation in the shape's family.
func (s *Shape) Rotate() *Shape {
	return &catalog[s.Next]
}

// RotateBack returns the rotation whose next entry is s.
func (s *Shape) RotateBack() *Shape {
	for i := range catalog {
		if catalog[i].Next == s.ID {
			return &catalog[i]
		}
	}
	return s
}

// Family returns the catalog index of the starting rotation of s's piece.
func (s *Shape) Family() ShapeID {
	first := s.ID
	for r := s.Rotate(); r != s; r = r.Rotate() {
		if r.ID < first {
			first = r.ID
		}
	}
	return first
}

// Cells returns the linear positions of the four cells when the pivot sits
// at pos.
func (s *Shape) Cells(pos int) [4]int {
	return [4]int{
		pos,
		pos + s.Offsets[0].Linear(),
		pos + s.Offsets[1].Linear(),
		pos + s.Offsets[2].Linear(),
	}
}

// Source is a uniform random source. *math/rand/v2.Rand satisfies it.
type Source interface {
	Uint64() uint64
}

// RandomShape picks one of the families uniformly and returns its starting
// rotation.
func RandomShape(src Source) *Shape {
	return &catalog[src.Uint64()%Families]
}
