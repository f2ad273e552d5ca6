package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/KaiqueGovani/microtetris/internal/term"
	"github.com/KaiqueGovani/microtetris/internal/tetris"
)

type Theme struct {
	Name        string
	BorderColor lipgloss.Color
	TextColor   lipgloss.Color
	AccentColor lipgloss.Color
	// indexed by piece color 1..7
	PieceColors [7]lipgloss.Color
}

const levelShiftThemeName = "Level Shift"

var themes = []Theme{
	{
		Name:        "ANSI",
		BorderColor: lipgloss.Color("8"),
		TextColor:   lipgloss.Color("7"),
		AccentColor: lipgloss.Color("11"),
		PieceColors: [7]lipgloss.Color{"1", "2", "3", "4", "5", "6", "7"},
	},
	{
		Name:        "Amber Terminal",
		BorderColor: lipgloss.Color("214"),
		TextColor:   lipgloss.Color("223"),
		AccentColor: lipgloss.Color("208"),
		PieceColors: [7]lipgloss.Color{"220", "214", "222", "208", "215", "216", "223"},
	},
	{
		Name:        "Ocean Neon",
		BorderColor: lipgloss.Color("33"),
		TextColor:   lipgloss.Color("159"),
		AccentColor: lipgloss.Color("39"),
		PieceColors: [7]lipgloss.Color{"45", "39", "51", "44", "50", "75", "81"},
	},
	{
		Name:        "Forest CRT",
		BorderColor: lipgloss.Color("22"),
		TextColor:   lipgloss.Color("120"),
		AccentColor: lipgloss.Color("34"),
		PieceColors: [7]lipgloss.Color{"47", "64", "77", "48", "71", "35", "106"},
	},
	{
		Name:        "Mono Matrix",
		BorderColor: lipgloss.Color("250"),
		TextColor:   lipgloss.Color("245"),
		AccentColor: lipgloss.Color("82"),
		PieceColors: [7]lipgloss.Color{"236", "239", "242", "245", "248", "251", "254"},
	},
	{
		Name:        "Volcanic",
		BorderColor: lipgloss.Color("203"),
		TextColor:   lipgloss.Color("223"),
		AccentColor: lipgloss.Color("214"),
		PieceColors: [7]lipgloss.Color{"52", "88", "124", "160", "196", "202", "208"},
	},
	{
		Name:        levelShiftThemeName,
		BorderColor: lipgloss.Color("8"),
		TextColor:   lipgloss.Color("7"),
		AccentColor: lipgloss.Color("11"),
		PieceColors: [7]lipgloss.Color{"1", "2", "3", "4", "5", "6", "7"},
	},
}

func themeIndexByName(name string) int {
	for i, theme := range themes {
		if strings.EqualFold(theme.Name, name) {
			return i
		}
	}
	return -1
}

// resolveGameTheme returns the theme to draw with at level. Level Shift
// walks through the other themes, one per level.
func resolveGameTheme(selected Theme, level int) Theme {
	if selected.Name != levelShiftThemeName {
		return selected
	}
	cycle := len(themes) - 1
	if level < 1 {
		level = 1
	}
	return themes[(level-1)%cycle]
}

// cellColor maps a board color to the theme. Empty cells have none.
func (t Theme) cellColor(c tetris.Color) (lipgloss.Color, bool) {
	switch {
	case c == tetris.Border:
		return t.BorderColor, true
	case c > tetris.Empty && int(c) <= len(t.PieceColors):
		return t.PieceColors[c-1], true
	default:
		return "", false
	}
}

func renderCell(theme Theme, c tetris.Color) string {
	if color, ok := theme.cellColor(c); ok {
		return lipgloss.NewStyle().Background(color).Render("  ")
	}
	return "  "
}

func renderBoard(c *canvas, theme Theme) string {
	var b strings.Builder
	for row := tetris.FirstVisibleRow; row <= tetris.LastVisibleRow; row++ {
		for col := 0; col < tetris.Cols; col++ {
			b.WriteString(renderCell(theme, c.cells[row][col]))
		}
		if row < tetris.LastVisibleRow {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderPreview(c *canvas, theme Theme) string {
	rows := make([]string, 0, tetris.PreviewRows)
	for _, line := range c.preview {
		var b strings.Builder
		for _, cell := range line {
			b.WriteString(renderCell(theme, cell))
		}
		rows = append(rows, b.String())
	}
	return strings.Join(rows, "\n")
}

func renderInfo(m Model, theme Theme) string {
	pad := lipgloss.NewStyle().PaddingLeft(2)
	lines := []string{
		"",
		helpStyle(theme).Render(fmt.Sprintf("Level  : %d", m.canvas.level)),
		helpStyle(theme).Render(fmt.Sprintf("Points : %d", m.canvas.points)),
		"",
		titleStyle(theme).Render("Preview:"),
		renderPreview(m.canvas, theme),
		"",
		titleStyle(theme).Render("Keys:"),
	}
	for _, line := range term.HelpLines(m.keys) {
		lines = append(lines, helpStyle(theme).Render(line))
	}
	if m.session.State() == tetris.Paused {
		lines = append(lines, "", highlightStyle(theme).Render("Paused"))
	}
	return pad.Render(strings.Join(lines, "\n"))
}

func renderResult(m Model, theme Theme) string {
	lines := make([]string, 0, len(m.result)+2)
	for i, line := range m.result {
		line = strings.ReplaceAll(line, "\t", "  ")
		if i == 0 {
			line = titleStyle(theme).Render(line)
		}
		lines = append(lines, line)
	}
	if m.warning != "" {
		lines = append(lines, "", warningStyle(theme).Render(m.warning))
	}
	return lipgloss.NewStyle().PaddingLeft(2).Render(strings.Join(lines, "\n"))
}

func viewGame(m Model) string {
	theme := resolveGameTheme(m.theme, m.canvas.level)
	board := renderBoard(m.canvas, theme)
	side := renderInfo(m, theme)
	if len(m.result) > 0 {
		side = renderResult(m, theme)
	}
	content := lipgloss.JoinHorizontal(lipgloss.Top, board, side)
	if m.width > 0 && m.width < lipgloss.Width(content) {
		content = lipgloss.JoinVertical(lipgloss.Left, board, side)
	}
	return center(m.width, m.height, content)
}

func titleStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.AccentColor).Bold(true)
}

func highlightStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.AccentColor).Bold(true)
}

func helpStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.TextColor)
}

func warningStyle(Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
}

func center(width, height int, content string) string {
	if width == 0 || height == 0 {
		return content
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
