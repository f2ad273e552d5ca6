package main

import "github.com/KaiqueGovani/microtetris/internal/tetris"

// canvas is the bubbletea frontend's renderer. The display draws into it
// cell by cell and View serializes it.
type canvas struct {
	cells   [tetris.Rows][tetris.Cols]tetris.Color
	preview [tetris.PreviewRows][tetris.PreviewCols]tetris.Color
	level   int
	points  int64
	frames  int
}

func (c *canvas) DrawCell(col, row int, color tetris.Color) {
	if row < 0 || row >= tetris.Rows || col < 0 || col >= tetris.Cols {
		return
	}
	c.cells[row][col] = color
}

func (c *canvas) DrawPreviewCell(col, row int, color tetris.Color) {
	c.preview[row][col] = color
}

func (c *canvas) ShowStatus(level int, points int64) {
	c.level, c.points = level, points
}

func (c *canvas) Clear() {
	c.cells = [tetris.Rows][tetris.Cols]tetris.Color{}
	c.preview = [tetris.PreviewRows][tetris.PreviewCols]tetris.Color{}
}

func (c *canvas) Flush() { c.frames++ }
