package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kaiquegovani/tetrigo/highscore"
	"github.com/kaiquegovani/tetrigo/tetris"
)

type Theme struct {
	Name        string
	BorderColor lipgloss.Color
	TextColor   lipgloss.Color
	AccentColor lipgloss.Color
	// PieceColors is indexed by piece kind in I, J, L, O, S, Z, T order.
	PieceColors []lipgloss.Color
}

const levelShiftThemeName = "Level Shift"

var themes = []Theme{
	{
		Name:        "Classic Tetris",
		BorderColor: lipgloss.Color("15"),
		TextColor:   lipgloss.Color("250"),
		AccentColor: lipgloss.Color("226"),
		PieceColors: []lipgloss.Color{"51", "21", "208", "226", "46", "196", "93"},
	},
	{
		Name:        "Amber Terminal",
		BorderColor: lipgloss.Color("214"),
		TextColor:   lipgloss.Color("223"),
		AccentColor: lipgloss.Color("208"),
		PieceColors: []lipgloss.Color{"220", "214", "222", "208", "215", "216", "223"},
	},
	{
		Name:        "Ocean Neon",
		BorderColor: lipgloss.Color("33"),
		TextColor:   lipgloss.Color("159"),
		AccentColor: lipgloss.Color("39"),
		PieceColors: []lipgloss.Color{"45", "39", "51", "44", "50", "75", "81"},
	},
	{
		Name:        "Forest CRT",
		BorderColor: lipgloss.Color("22"),
		TextColor:   lipgloss.Color("120"),
		AccentColor: lipgloss.Color("34"),
		PieceColors: []lipgloss.Color{"47", "64", "77", "48", "71", "35", "106"},
	},
	{
		Name:        "Mono Matrix",
		BorderColor: lipgloss.Color("250"),
		TextColor:   lipgloss.Color("245"),
		AccentColor: lipgloss.Color("82"),
		PieceColors: []lipgloss.Color{"236", "239", "242", "245", "248", "251", "254"},
	},
	{
		Name:        "Sunset Arcade",
		BorderColor: lipgloss.Color("209"),
		TextColor:   lipgloss.Color("223"),
		AccentColor: lipgloss.Color("214"),
		PieceColors: []lipgloss.Color{"202", "208", "214", "172", "203", "166", "130"},
	},
	{
		Name:        "Ice Circuit",
		BorderColor: lipgloss.Color("117"),
		TextColor:   lipgloss.Color("195"),
		AccentColor: lipgloss.Color("123"),
		PieceColors: []lipgloss.Color{"51", "45", "117", "87", "159", "81", "75"},
	},
	{
		Name:        "Retro LCD",
		BorderColor: lipgloss.Color("100"),
		TextColor:   lipgloss.Color("113"),
		AccentColor: lipgloss.Color("149"),
		PieceColors: []lipgloss.Color{"58", "64", "65", "71", "72", "78", "107"},
	},
	{
		Name:        "Volcanic",
		BorderColor: lipgloss.Color("203"),
		TextColor:   lipgloss.Color("223"),
		AccentColor: lipgloss.Color("214"),
		PieceColors: []lipgloss.Color{"52", "88", "124", "160", "196", "202", "208"},
	},
	{
		Name:        levelShiftThemeName,
		BorderColor: lipgloss.Color("15"),
		TextColor:   lipgloss.Color("250"),
		AccentColor: lipgloss.Color("226"),
		PieceColors: []lipgloss.Color{"51", "21", "208", "226", "46", "196", "93"},
	},
}

func themeIndexByName(name string) int {
	for i, theme := range themes {
		if theme.Name == name {
			return i
		}
	}
	return -1
}

func (t Theme) colorFor(kind tetris.Kind) lipgloss.Color {
	if !kind.Valid() || len(t.PieceColors) == 0 {
		return t.BorderColor
	}
	return t.PieceColors[(int(kind)-1)%len(t.PieceColors)]
}

func currentTheme(m Model) Theme {
	if m.themeIndex < 0 || m.themeIndex >= len(themes) {
		return themes[0]
	}
	return themes[m.themeIndex]
}

func viewMenu(m Model) string {
	theme := currentTheme(m)
	sound := "S: sound off"
	if m.config.Sound {
		sound = "S: sound on"
	}
	content := renderMenu("TETRIGO", menuItems, m.menuIndex, "Enter to select, "+sound+", Q to quit", theme)
	return center(m.width, m.height, content)
}

func viewThemes(m Model) string {
	theme := currentTheme(m)
	items := make([]string, 0, len(themes))
	for _, t := range themes {
		items = append(items, t.Name)
	}
	preview := renderThemeSelectionPreview(theme)
	footer := fmt.Sprintf("Enter to apply, +/- scale (%dx), Esc to back", clampScale(m.config.Scale))
	menu := renderMenu("Themes", items, m.themeIndex, footer, theme)
	content := lipgloss.JoinVertical(lipgloss.Left, preview, "", menu)
	return center(m.width, m.height, content)
}

func renderThemeSelectionPreview(theme Theme) string {
	indices := levelShiftThemeIndices()
	if theme.Name != levelShiftThemeName || len(indices) == 0 {
		return lipgloss.JoinVertical(
			lipgloss.Left,
			titleStyle(theme).Render("Theme Preview"),
			renderPreviewPieceGrid(theme),
		)
	}

	previewCount := min(3, len(indices))
	sections := make([]string, 0, previewCount)
	for i := 0; i < previewCount; i++ {
		previewTheme := themes[indices[i]]
		section := lipgloss.JoinVertical(
			lipgloss.Left,
			helpStyle(theme).Render(fmt.Sprintf("Level %d -> %s", i+1, previewTheme.Name)),
			renderPreviewPieceGrid(previewTheme),
		)
		sections = append(sections, section)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle(theme).Render("Theme Preview (Level Shift)"),
		helpStyle(theme).Render("Cycles palette every level during gameplay."),
		lipgloss.JoinHorizontal(lipgloss.Top, sections...),
	)
}

func renderPreviewPieceGrid(theme Theme) string {
	top := renderPreviewPieceRow(theme, tetris.Kinds[:4])
	bottom := renderPreviewPieceRow(theme, tetris.Kinds[4:])
	return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
}

func renderPreviewPieceRow(theme Theme, kinds []tetris.Kind) string {
	items := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		piece := lipgloss.NewStyle().MarginRight(1).Render(renderMiniPiece(kind, theme, 1))
		items = append(items, piece)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, items...)
}

func viewScores(m Model) string {
	theme := currentTheme(m)
	var b strings.Builder
	b.WriteString(titleStyle(theme).Render("High Scores"))
	b.WriteString("\n\n")
	if !m.scoresOK {
		b.WriteString("No scores yet.\n")
	} else {
		b.WriteString(renderTable(m.scores, theme))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle(theme).Render("Enter to back"))
	return center(m.width, m.height, b.String())
}

// renderTable lists both histories side by side, in stored order.
func renderTable(table highscore.Table, theme Theme) string {
	var b strings.Builder
	b.WriteString(helpStyle(theme).Render(fmt.Sprintf("%3s  %9s  %6s", "#", "Score", "Lines")))
	b.WriteString("\n")
	rows := max(len(table.Scores), len(table.Lines))
	for i := 0; i < rows; i++ {
		score, lines := "-", "-"
		if i < len(table.Scores) {
			score = fmt.Sprint(table.Scores[i])
		}
		if i < len(table.Lines) {
			lines = fmt.Sprint(table.Lines[i])
		}
		b.WriteString(fmt.Sprintf("%2d.  %9s  %6s\n", i+1, score, lines))
	}
	return b.String()
}

func viewGameOver(m Model) string {
	theme := currentTheme(m)
	var b strings.Builder
	b.WriteString(titleStyle(theme).Render("Game Over"))
	b.WriteString("\n\n")
	if m.board != nil {
		b.WriteString(summaryLine("Score", m.board.Score(), m.summary.NewScore, theme))
		b.WriteString(summaryLine("Lines", m.board.Lines(), m.summary.NewLines, theme))
		b.WriteString(fmt.Sprintf("Level: %d\n", m.board.Level()))
	}
	if m.summary.SaveError != nil {
		b.WriteString("\n")
		b.WriteString(warningStyle(theme).Render("Could not save high scores"))
		b.WriteString("\n")
	}
	if len(m.summary.Table.Scores) > 0 {
		b.WriteString("\n")
		b.WriteString(renderTable(m.summary.Table, theme))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle(theme).Render("R to play again, Enter for menu, Q to quit"))
	return center(m.width, m.height, b.String())
}

func summaryLine(label string, value uint32, record bool, theme Theme) string {
	line := fmt.Sprintf("%s: %d", label, value)
	if record {
		line += " " + highlightStyle(theme).Render("[NEW HIGHSCORE]")
	}
	return line + "\n"
}

func viewGame(m Model) string {
	if m.board == nil {
		return ""
	}
	theme := resolveGameTheme(m)
	scale := clampScale(m.config.Scale)
	minWidth, minHeight := minGameSize(scale)
	if m.width > 0 && m.height > 0 && (m.width < minWidth || m.height < minHeight) {
		message := fmt.Sprintf("Terminal too small. Need at least %dx%d. Current %dx%d.", minWidth, minHeight, m.width, m.height)
		return center(m.width, m.height, message)
	}
	board := renderBoard(m.board, theme, scale)
	info := renderInfo(m, theme)
	content := lipgloss.JoinHorizontal(lipgloss.Top, board, info)
	if m.width > 0 && m.width < minWidth+24 {
		content = lipgloss.JoinVertical(lipgloss.Left, board, info)
	}
	return center(m.width, m.height, content)
}

func resolveGameTheme(m Model) Theme {
	selected := currentTheme(m)
	if selected.Name != levelShiftThemeName || m.board == nil {
		return selected
	}
	indices := levelShiftThemeIndices()
	if len(indices) == 0 {
		return selected
	}
	level := int(m.board.Level())
	return themes[indices[(level-1+len(indices))%len(indices)]]
}

func levelShiftThemeIndices() []int {
	indices := make([]int, 0, len(themes))
	for i, theme := range themes {
		if theme.Name == levelShiftThemeName {
			continue
		}
		indices = append(indices, i)
	}
	return indices
}

// boardCells overlays the active piece on a copy of the settled grid.
func boardCells(b *tetris.Board) []tetris.Row {
	rows := b.Rows()
	if p, ok := b.Active(); ok {
		for _, c := range p.Cells() {
			if c.Y >= 0 && c.Y < len(rows) && c.X >= 0 && c.X < tetris.Width {
				rows[c.Y][c.X] = uint8(p.Kind)
			}
		}
	}
	return rows
}

func renderBoard(b *tetris.Board, theme Theme, scale int) string {
	border := lipgloss.NewStyle().Foreground(theme.BorderColor)
	cellText := strings.Repeat(" ", cellWidth(scale))
	edge := border.Render("+" + strings.Repeat("-", tetris.Width*cellWidth(scale)) + "+")
	var sb strings.Builder
	sb.WriteString(edge)
	sb.WriteString("\n")
	for _, row := range boardCells(b) {
		for repeat := 0; repeat < scale; repeat++ {
			sb.WriteString(border.Render("|"))
			for _, v := range row {
				if v == 0 {
					sb.WriteString(cellText)
					continue
				}
				style := lipgloss.NewStyle().Background(theme.colorFor(tetris.Kind(v)))
				sb.WriteString(style.Render(cellText))
			}
			sb.WriteString(border.Render("|"))
			sb.WriteString("\n")
		}
	}
	sb.WriteString(edge)
	return sb.String()
}

func renderInfo(m Model, theme Theme) string {
	var b strings.Builder
	pad := lipgloss.NewStyle().PaddingLeft(2)
	b.WriteString(pad.Render(fmt.Sprintf("Score: %d", m.board.Score())))
	b.WriteString("\n")
	b.WriteString(pad.Render(fmt.Sprintf("Lines: %d", m.board.Lines())))
	b.WriteString("\n")
	b.WriteString(pad.Render(fmt.Sprintf("Level: %d", m.board.Level())))
	b.WriteString("\n\n")
	if m.lastEvent != "" {
		b.WriteString(pad.Render(highlightStyle(theme).Render(m.lastEvent)))
		b.WriteString("\n")
		b.WriteString(pad.Render(highlightStyle(theme).Render(fmt.Sprintf("+%d", m.lastDelta))))
		b.WriteString("\n\n")
	}
	keys := []string{
		"Arrows/HJKL: move",
		"X or Up: rotate",
		"Down: soft drop",
		"Space: hard drop",
		"P: pause",
		"Q: end game",
	}
	for _, line := range keys {
		b.WriteString(pad.Render(helpStyle(theme).Render(line)))
		b.WriteString("\n")
	}
	if m.paused {
		b.WriteString("\n")
		b.WriteString(pad.Render(highlightStyle(theme).Render("Paused")))
	}
	return b.String()
}

func renderMiniPiece(kind tetris.Kind, theme Theme, scale int) string {
	shapes := tetris.ShapesFor(kind)
	if len(shapes) == 0 {
		return ""
	}
	shape := shapes[0]
	cellText := strings.Repeat(" ", cellWidth(scale))
	filled := lipgloss.NewStyle().Background(theme.colorFor(kind))
	var b strings.Builder
	for y := 0; y < 4; y++ {
		for repeat := 0; repeat < scale; repeat++ {
			for x := 0; x < 4; x++ {
				if !shape.Filled(y, x) {
					b.WriteString(cellText)
					continue
				}
				b.WriteString(filled.Render(cellText))
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func minGameSize(scale int) (int, int) {
	width := tetris.Width*cellWidth(scale) + 4
	height := tetris.Height*scale + 4
	return width, height
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

func clampScale(value int) int {
	if value < 1 {
		return 1
	}
	if value > 3 {
		return 3
	}
	return value
}

func cellWidth(scale int) int {
	if scale < 1 {
		scale = 1
	}
	return 2 * scale
}

func renderMenu(title string, items []string, selected int, footer string, theme Theme) string {
	maxWidth := lipgloss.Width(title)
	for _, item := range items {
		maxWidth = max(maxWidth, lipgloss.Width(item))
	}
	maxWidth = max(maxWidth, lipgloss.Width(footer))
	lineStyle := lipgloss.NewStyle().Width(maxWidth).Align(lipgloss.Center)
	var b strings.Builder
	b.WriteString(lineStyle.Render(titleStyle(theme).Render(title)))
	b.WriteString("\n\n")
	for i, line := range items {
		if i == selected {
			b.WriteString(lineStyle.Render(highlightStyle(theme).Render(line)))
		} else {
			b.WriteString(lineStyle.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(lineStyle.Render(helpStyle(theme).Render(footer)))
	return b.String()
}
