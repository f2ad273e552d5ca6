package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fillRow(b *Board, row int, c Color) {
	for col := 1; col < Cols-1; col++ {
		b.Set(col, row, c)
	}
}

func TestNewBoardBorder(t *testing.T) {
	b := NewBoard()
	for row := 0; row < Rows; row++ {
		assert.Equal(t, Border, b.Cell(0, row), "left wall row %d", row)
		assert.Equal(t, Border, b.Cell(Cols-1, row), "right wall row %d", row)
	}
	for col := 0; col < Cols; col++ {
		assert.Equal(t, Border, b.Cell(col, Rows-1))
		assert.Equal(t, Border, b.Cell(col, Rows-2))
	}
	for row := 0; row < Rows-2; row++ {
		for col := 1; col < Cols-1; col++ {
			require.Equal(t, Empty, b.Cell(col, row))
		}
	}
}

func TestBoardSetIgnoresBorder(t *testing.T) {
	b := NewBoard()
	b.Set(0, 5, 3)
	b.Set(Cols-1, 5, 3)
	b.Set(4, Rows-1, 3)
	b.Set(-1, -1, 3)
	assert.Equal(t, NewBoard().Snapshot(), b.Snapshot())
}

func TestFits(t *testing.T) {
	t.Run("empty board", func(t *testing.T) {
		b := NewBoard()
		for id := ShapeID(0); int(id) < CatalogSize; id++ {
			assert.True(t, b.Fits(Lookup(id), 5*Cols+5), "shape %d", id)
		}
	})

	t.Run("false iff a referenced cell is occupied", func(t *testing.T) {
		b := NewBoard()
		s := Lookup(2)
		pos := 6*Cols + 5
		for _, cell := range s.Cells(pos) {
			b.Set(cell%Cols, cell/Cols, 4)
			assert.False(t, b.Fits(s, pos))
			b.Set(cell%Cols, cell/Cols, Empty)
			assert.True(t, b.Fits(s, pos))
		}
		b.Set(8, 8, 4)
		assert.True(t, b.Fits(s, pos))
	})

	t.Run("walls and floor block", func(t *testing.T) {
		b := NewBoard()
		tee := Lookup(2)
		assert.False(t, b.Fits(tee, 6*Cols+1))
		assert.True(t, b.Fits(tee, 6*Cols+2))
		assert.False(t, b.Fits(tee, 6*Cols+Cols-2))
		assert.False(t, b.Fits(tee, (Rows-3)*Cols+5))
	})

	t.Run("off grid never fits", func(t *testing.T) {
		b := NewBoard()
		assert.False(t, b.Fits(Lookup(3), 0))
		assert.False(t, b.Fits(Lookup(3), Size+Cols))
	})
}

func TestPlaceAndErase(t *testing.T) {
	b := NewBoard()
	b.Set(3, 19, 5)
	before := b.Snapshot()

	for id := ShapeID(0); int(id) < CatalogSize; id++ {
		s := Lookup(id)
		pos := 10*Cols + 6
		b.Place(s, pos, s.Color)
		for _, cell := range s.Cells(pos) {
			assert.Equal(t, s.Color, b.At(cell))
		}
		assert.False(t, b.Fits(s, pos))
		b.Place(s, pos, Empty)
		require.Equal(t, before, b.Snapshot(), "shape %d", id)
	}
}

func TestClearLines(t *testing.T) {
	t.Run("non-adjacent rows", func(t *testing.T) {
		b := NewBoard()
		fillRow(b, 20, 1)
		fillRow(b, 18, 2)
		b.Set(4, 19, 6)
		b.Set(3, 17, 5)
		b.Set(2, 10, 7)

		require.Equal(t, 2, b.ClearLines(nil))

		assert.Equal(t, Color(6), b.Cell(4, 20))
		assert.Equal(t, Color(5), b.Cell(3, 19))
		assert.Equal(t, Color(7), b.Cell(2, 12))
		assert.Equal(t, Empty, b.Cell(2, 10))
		assert.Equal(t, Empty, b.Cell(1, 20))
		assert.Equal(t, Border, b.Cell(0, 20))
		assert.Equal(t, Border, b.Cell(5, 21))
	})

	t.Run("adjacent rows are both removed", func(t *testing.T) {
		b := NewBoard()
		fillRow(b, 20, 1)
		fillRow(b, 19, 2)
		b.Set(7, 18, 3)
		b.Set(8, 5, 4)

		require.Equal(t, 2, b.ClearLines(nil))

		assert.Equal(t, Color(3), b.Cell(7, 20))
		assert.Equal(t, Color(4), b.Cell(8, 7))
		for col := 1; col < Cols-1; col++ {
			assert.Equal(t, Empty, b.Cell(col, 19))
			if col != 7 {
				assert.Equal(t, Empty, b.Cell(col, 20))
			}
		}
	})

	t.Run("four rows", func(t *testing.T) {
		b := NewBoard()
		for row := 17; row <= 20; row++ {
			fillRow(b, row, 1)
		}
		require.Equal(t, 4, b.ClearLines(nil))
		assert.Equal(t, NewBoard().Snapshot(), b.Snapshot())
	})

	t.Run("hidden row moves down and empties", func(t *testing.T) {
		b := NewBoard()
		fillRow(b, 20, 1)
		b.Set(5, 0, 2)
		require.Equal(t, 1, b.ClearLines(nil))
		assert.Equal(t, Color(2), b.Cell(5, 1))
		assert.Equal(t, Empty, b.Cell(5, 0))
	})

	t.Run("phases alternate per row", func(t *testing.T) {
		b := NewBoard()
		fillRow(b, 20, 1)
		fillRow(b, 15, 1)
		var phases []State
		var rows []int
		b.ClearLines(func(s State, row int) {
			phases = append(phases, s)
			rows = append(rows, row)
		})
		assert.Equal(t, []State{RowClearing, LineShifting, RowClearing, LineShifting}, phases)
		assert.Equal(t, []int{15, 15, 20, 20}, rows)
	})

	t.Run("nothing full", func(t *testing.T) {
		b := NewBoard()
		b.Set(1, 20, 1)
		before := b.Snapshot()
		assert.Zero(t, b.ClearLines(nil))
		assert.Equal(t, before, b.Snapshot())
	})
}
