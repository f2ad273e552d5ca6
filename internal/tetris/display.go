package tetris

// Renderer receives the cells that changed since the last refresh.
type Renderer interface {
	DrawCell(col, row int, c Color)
	Flush()
}

// PreviewRenderer is implemented by renderers that show the next piece.
// Preview cells are laid out on a PreviewCols x PreviewRows grid.
type PreviewRenderer interface {
	DrawPreviewCell(col, row int, c Color)
}

// Clearer is implemented by renderers that can blank their whole surface.
// Display.Invalidate calls it so that the shadow and the screen agree.
type Clearer interface {
	Clear()
}

// StatusRenderer is implemented by renderers that show level and points.
type StatusRenderer interface {
	ShowStatus(level int, points int64)
}

const (
	PreviewCols = 5
	PreviewRows = 4

	// pivot of the preview piece inside the preview grid
	previewPivotCol = 1
	previewPivotRow = 2
)

// Display keeps a shadow of what the renderer last drew so that a refresh
// only emits changed cells.
type Display struct {
	r       Renderer
	shadow  [Size]Color
	preview [PreviewRows][PreviewCols]Color

	status      bool
	level       int
	points      int64
	invalidated bool
}

func NewDisplay(r Renderer) *Display {
	return &Display{r: r, invalidated: true}
}

// Invalidate forgets the shadow. The next Update redraws every non-empty
// cell, as after the screen was cleared.
func (d *Display) Invalidate() {
	d.shadow = [Size]Color{}
	d.preview = [PreviewRows][PreviewCols]Color{}
	d.invalidated = true
	if c, ok := d.r.(Clearer); ok {
		c.Clear()
	}
}

// Update draws the difference between b and the shadow, then the preview
// of peek and the status line when they changed. It returns the number of
// DrawCell calls issued.
func (d *Display) Update(b *Board, peek *Shape, score Score) int {
	draws := 0
	for row := FirstVisibleRow; row <= LastVisibleRow; row++ {
		for col := 0; col < Cols; col++ {
			i := row*Cols + col
			c := b.cells[i]
			if c == d.shadow[i] {
				continue
			}
			d.shadow[i] = c
			d.r.DrawCell(col, row, c)
			draws++
		}
	}
	if pr, ok := d.r.(PreviewRenderer); ok && peek != nil {
		d.updatePreview(pr, peek)
	}
	if sr, ok := d.r.(StatusRenderer); ok {
		if d.invalidated || !d.status || score.Level != d.level || score.Points != d.points {
			d.status, d.level, d.points = true, score.Level, score.Points
			sr.ShowStatus(score.Level, score.Points)
		}
	}
	d.invalidated = false
	d.r.Flush()
	return draws
}

func (d *Display) updatePreview(pr PreviewRenderer, peek *Shape) {
	var next [PreviewRows][PreviewCols]Color
	next[previewPivotRow][previewPivotCol] = peek.Color
	for _, o := range peek.Offsets {
		col, row := previewPivotCol+o.DX, previewPivotRow+o.DY
		if col < 0 || col >= PreviewCols || row < 0 || row >= PreviewRows {
			continue
		}
		next[row][col] = peek.Color
	}
	for row := range next {
		for col, c := range next[row] {
			if c == d.preview[row][col] {
				continue
			}
			d.preview[row][col] = c
			pr.DrawPreviewCell(col, row, c)
		}
	}
}
