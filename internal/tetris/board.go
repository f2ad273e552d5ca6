package tetris

const (
	Cols = 12
	Rows = 23
	Size = Rows * Cols

	// SpawnPos is the pivot of a freshly spawned piece: row 1, column 5.
	SpawnPos = Cols + 5

	// FirstVisibleRow and LastVisibleRow bound the rows a renderer shows.
	// Row 0 is the hidden spawn row; the last visible row is the floor.
	FirstVisibleRow = 1
	LastVisibleRow  = Rows - 2

	// rows scanned for clears; the two floor rows are border.
	firstPlayRow = 1
	lastPlayRow  = Rows - 3
)

// Color is a cell's content. Empty means free; everything else blocks.
type Color int

const (
	Empty  Color = 0
	Border Color = 8
)

// Board is the fixed play field including its border.
type Board struct {
	cells [Size]Color
}

func NewBoard() *Board {
	b := &Board{}
	b.Reset()
	return b
}

// Reset empties the field and redraws the border: both side columns and
// the two bottom rows.
func (b *Board) Reset() {
	for i := range b.cells {
		col, row := i%Cols, i/Cols
		if col == 0 || col == Cols-1 || row >= Rows-2 {
			b.cells[i] = Border
			continue
		}
		b.cells[i] = Empty
	}
}

// At returns the color at linear position pos. Positions off the grid read
// as Border so that they never fit.
func (b *Board) At(pos int) Color {
	if pos < 0 || pos >= Size {
		return Border
	}
	return b.cells[pos]
}

func (b *Board) Cell(col, row int) Color {
	if col < 0 || col >= Cols || row < 0 || row >= Rows {
		return Border
	}
	return b.cells[row*Cols+col]
}

// Set writes a single playable cell. Border cells and off-grid positions are
// left untouched.
func (b *Board) Set(col, row int, c Color) {
	if col < 1 || col >= Cols-1 || row < 0 || row >= Rows-2 {
		return
	}
	b.cells[row*Cols+col] = c
}

// Fits reports whether all four cells of s pivoted at pos are empty.
func (b *Board) Fits(s *Shape, pos int) bool {
	for _, p := range s.Cells(pos) {
		if b.At(p) != Empty {
			return false
		}
	}
	return true
}

// Place writes c into the four cells of s pivoted at pos. Placing Empty
// erases the shape.
func (b *Board) Place(s *Shape, pos int, c Color) {
	for _, p := range s.Cells(pos) {
		if p < 0 || p >= Size {
			continue
		}
		b.cells[p] = c
	}
}

// ClearPhase is called by ClearLines after each row is emptied (RowClearing)
// and after the rows above it have moved down (LineShifting).
type ClearPhase func(state State, row int)

// ClearLines removes every full playable row, moving the rows above it down
// by one, and returns how many rows were removed. After a shift the same
// row index is examined again because new content moved into it.
func (b *Board) ClearLines(phase ClearPhase) int {
	cleared := 0
	for row := firstPlayRow; row <= lastPlayRow; row++ {
		if !b.rowFull(row) {
			continue
		}
		cleared++
		for col := 1; col < Cols-1; col++ {
			b.cells[row*Cols+col] = Empty
		}
		if phase != nil {
			phase(RowClearing, row)
		}
		b.shiftDown(row)
		if phase != nil {
			phase(LineShifting, row)
		}
		row--
	}
	return cleared
}

func (b *Board) rowFull(row int) bool {
	for col := 1; col < Cols-1; col++ {
		if b.cells[row*Cols+col] == Empty {
			return false
		}
	}
	return true
}

// shiftDown copies every row above row one step down, playable columns only,
// and empties the hidden top row.
func (b *Board) shiftDown(row int) {
	for y := row; y > 0; y-- {
		copy(b.cells[y*Cols+1:y*Cols+Cols-1], b.cells[(y-1)*Cols+1:(y-1)*Cols+Cols-1])
	}
	for col := 1; col < Cols-1; col++ {
		b.cells[col] = Empty
	}
}

// Snapshot returns a copy of every cell.
func (b *Board) Snapshot() [Size]Color {
	return b.cells
}
