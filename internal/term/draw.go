package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/KaiqueGovani/microtetris/internal/tetris"
)

func (t *Terminal) DrawCell(col, row int, c tetris.Color) {
	t.fill(col*cellWidth, row-tetris.FirstVisibleRow, c)
}

func (t *Terminal) DrawPreviewCell(col, row int, c tetris.Color) {
	t.fill(sideX+col*cellWidth, previewY+1+row, c)
}

func (t *Terminal) fill(x, y int, c tetris.Color) {
	st := cellStyle(c)
	for i := 0; i < cellWidth; i++ {
		t.screen.SetContent(x+i, y, ' ', nil, st)
	}
}

func (t *Terminal) ShowStatus(level int, points int64) {
	t.clearLine(sideX, levelY)
	t.clearLine(sideX, pointsY)
	drawText(t.screen, sideX, levelY, fmt.Sprintf("Level  : %d", level), tcell.StyleDefault)
	drawText(t.screen, sideX, pointsY, fmt.Sprintf("Points : %d", points), tcell.StyleDefault)
}

// Clear blanks the screen and redraws the labels and the key help.
func (t *Terminal) Clear() {
	t.screen.Clear()
	drawText(t.screen, sideX, previewY, "Preview:", tcell.StyleDefault)
	drawText(t.screen, sideX, keysY, "Keys:", tcell.StyleDefault)
	for i, line := range HelpLines(t.keys) {
		drawText(t.screen, sideX, keysY+1+i, line, tcell.StyleDefault)
	}
}

func (t *Terminal) Flush() { t.screen.Show() }

// ShowText replaces the side pane with lines and shows the result.
func (t *Terminal) ShowText(lines ...string) {
	_, h := t.screen.Size()
	for y := 0; y < max(h, sideMinRows); y++ {
		t.clearLine(sideX, y)
	}
	for i, line := range lines {
		drawText(t.screen, sideX, i, line, tcell.StyleDefault)
	}
	t.screen.Show()
}

func (t *Terminal) clearLine(x, y int) {
	w, _ := t.screen.Size()
	for ; x < w; x++ {
		t.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
	}
}

// HelpLines describes the bindings of keys, one action per line.
func HelpLines(keys tetris.Keymap) []string {
	order := []tetris.Action{
		tetris.ActionLeft, tetris.ActionRotate, tetris.ActionReverseRotate, tetris.ActionRight,
		tetris.ActionDrop, tetris.ActionPause, tetris.ActionRestart, tetris.ActionQuit,
	}
	lines := make([]string, 0, len(order))
	for _, a := range order {
		lines = append(lines, fmt.Sprintf("%-5s - %s", KeyName(keys.Key(a)), a))
	}
	return lines
}

func KeyName(r rune) string {
	if r == ' ' {
		return "space"
	}
	return string(r)
}

const tabWidth = 8

// drawText writes text from (x, y), expanding tabs to stops relative to x.
func drawText(s tcell.Screen, x, y int, text string, st tcell.Style) {
	col := 0
	for _, ch := range text {
		if ch == '\t' {
			col = (col/tabWidth + 1) * tabWidth
			continue
		}
		s.SetContent(x+col, y, ch, nil, st)
		col++
	}
}
