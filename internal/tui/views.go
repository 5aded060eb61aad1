package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/memoy/tui-go/internal/model"
	"github.com/memoy/tui-go/internal/session"
)

const (
	cellWidth  = 5
	debugWidth = 48
)

var banner = []string{
	"█▀▄▀█ █▀▀ █▀▄▀█ █▀█ █▄█",
	"█ ▀ █ ██▄ █ ▀ █ █▄█  █ ",
}

var menuItems = []string{
	"New Game",
	"Timed Game",
	"High Scores",
	"Exit",
}

// View renders the model
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.viewMode {
	case ViewModeTitle:
		content = m.renderTitle()
	case ViewModeMenu:
		content = m.renderMenu()
	case ViewModeDifficulty:
		content = m.renderDifficulty()
	case ViewModeName:
		content = m.renderName()
	case ViewModePlay:
		content = m.renderPlay()
	case ViewModeScores:
		content = m.renderScoresView()
	case ViewModeHelp:
		content = m.renderHelp()
	}

	if !m.ready {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func renderBanner() string {
	return BannerStyle.Render(BannerTextStyle.Render(strings.Join(banner, "\n")))
}

func (m Model) renderTitle() string {
	boot := HeaderStyle.Render(bootText[:m.bootIdx])
	if m.bootIdx < len(bootText) {
		boot += DimStyle.Render("▌")
		return boot
	}

	prompt := " "
	if m.blinkOn {
		prompt = SubtitleStyle.Render("Press Enter to start")
	}
	return lipgloss.JoinVertical(lipgloss.Center, boot, "", renderBanner(), "", prompt)
}

func (m Model) renderMenu() string {
	var b strings.Builder
	for i, item := range menuItems {
		line := fmt.Sprintf("%d. %s", i+1, item)
		if i == m.menuIdx {
			b.WriteString(MenuSelectedStyle.Render("❯ " + line))
		} else {
			b.WriteString(MenuItemStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	parts := []string{renderBanner(), "", PanelStyle.Render(strings.TrimRight(b.String(), "\n"))}
	if m.notice != "" {
		parts = append(parts, WarningStyle.Render(m.notice))
	}
	parts = append(parts, StatusBarStyle.Render(m.help.View(m.keys)))
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func (m Model) renderDifficulty() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Choose difficulty"))
	b.WriteString("\n\n")
	for i, d := range m.difficulties {
		line := fmt.Sprintf("%d. %s (%dx%d)", i+1, d.Name, d.GridSize, d.GridSize)
		if i == m.difficultyIdx {
			b.WriteString(MenuSelectedStyle.Render("❯ " + line))
		} else {
			b.WriteString(MenuItemStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return lipgloss.JoinVertical(lipgloss.Center,
		PanelStyle.Render(strings.TrimRight(b.String(), "\n")),
		m.help.View(m.keys))
}

func (m Model) renderName() string {
	title := "Enter your name"
	if m.settings.Timed {
		title += fmt.Sprintf(" (timed: %s)", m.settings.TimeLimit)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		HeaderStyle.Render(title),
		"",
		InputStyle.Render(m.nameInput.View()),
		DimStyle.Render("Leave empty to play as "+model.DefaultPlayerName),
	)
}

func (m Model) renderPlay() string {
	if m.ctrl == nil {
		return ""
	}
	snap := m.ctrl.Snapshot()

	parts := []string{
		renderStats(snap),
		BoardStyle.Render(renderBoard(snap)),
	}

	if msg := m.resultLine(snap); msg != "" {
		parts = append(parts, msg)
	}
	if snap.Warning != "" {
		parts = append(parts, WarningStyle.Render(snap.Warning))
	}

	if snap.Done() {
		parts = append(parts, DimStyle.Render("Press Enter to return to the menu"))
	} else {
		prompt := "Pick a card (row col)"
		if snap.FirstPick >= 0 {
			prompt = "Pick the second card (row col)"
		}
		parts = append(parts, StatLabelStyle.Render(prompt), InputStyle.Render(m.pickInput.View()))
		parts = append(parts, StatusBarStyle.Render(m.help.View(playKeys{m.keys})))
	}

	main := lipgloss.JoinVertical(lipgloss.Left, parts...)
	if !m.debug.IsEnabled() {
		return main
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, main, "  ",
		m.debug.Render(debugWidth, lipgloss.Height(main)))
}

func (m Model) resultLine(snap session.Snapshot) string {
	if m.errMsg != "" && !snap.Done() {
		return ErrorStyle.Render(m.errMsg)
	}
	switch snap.Message {
	case model.MessageMatch:
		return SuccessStyle.Render("✨ MATCH FOUND! ✨")
	case model.MessageNoMatch:
		return ErrorStyle.Render("❌ Not a match.")
	case model.MessageTimesUp:
		return WarningStyle.Render("⏰ Time's up! Game over.")
	case model.MessageFinished:
		return SuccessStyle.Render(fmt.Sprintf("🎉 Finished in %d moves! Final score: %d", snap.Moves, snap.Score))
	}
	return ""
}

func renderStats(snap session.Snapshot) string {
	stats := []string{
		StatLabelStyle.Render("Player ") + PlayerStyle.Render(snap.PlayerName),
		StatLabelStyle.Render("Moves ") + MovesStyle.Render(fmt.Sprint(snap.Moves)),
		StatLabelStyle.Render("Matches ") + MatchesStyle.Render(fmt.Sprintf("%d/%d", snap.MatchedPairs, snap.TotalPairs)),
		StatLabelStyle.Render("Score ") + ScoreStyle.Render(fmt.Sprint(snap.Score)),
		StatLabelStyle.Render("Time ") + formatDuration(snap.Elapsed),
	}
	if snap.Timed {
		left := formatDuration(snap.Remaining)
		if snap.Remaining <= 10*time.Second {
			left = ErrorStyle.Render(left)
		}
		stats = append(stats, StatLabelStyle.Render("Left ")+left)
	}
	return strings.Join(stats, "  ")
}

// renderBoard draws the grid with row and column labels
func renderBoard(snap session.Snapshot) string {
	var b strings.Builder

	b.WriteString(strings.Repeat(" ", 4))
	for c := 0; c < snap.GridSize; c++ {
		b.WriteString(AxisStyle.Render(center(fmt.Sprint(c), cellWidth)))
	}
	b.WriteString("\n")

	for r := 0; r < snap.GridSize; r++ {
		b.WriteString(AxisStyle.Render(fmt.Sprintf("%2d |", r)))
		for c := 0; c < snap.GridSize; c++ {
			b.WriteString(renderCell(snap.Cell(r, c)))
		}
		if r < snap.GridSize-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderCell(cell session.Cell) string {
	switch cell.State {
	case model.CellRevealed:
		return cellStyle(cell).Render(center(" "+cell.Symbol+" ", cellWidth))
	case model.CellMatched:
		return cellStyle(cell).Render(center("["+cell.Symbol+"]", cellWidth))
	default:
		return HiddenCardStyle.Render(center("###", cellWidth))
	}
}

func cellStyle(cell session.Cell) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true)
	if cell.Color != "" {
		s = s.Foreground(lipgloss.Color(string(cell.Color)))
	}
	return s
}

func center(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}

func formatDuration(d time.Duration) string {
	secs := max(int(d/time.Second), 0)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func (m Model) renderScoresView() string {
	var rows []model.HighScoreEntry
	if m.ledger != nil {
		rows = m.ledger.Rows()
	}
	return lipgloss.JoinVertical(lipgloss.Center,
		HeaderStyle.Render("High Scores"),
		"",
		RenderScores(rows),
		"",
		DimStyle.Render("Press Enter or Esc to go back"),
	)
}

// RenderScores formats the high-score table
func RenderScores(rows []model.HighScoreEntry) string {
	if len(rows) == 0 {
		return DimStyle.Render("No high scores yet.")
	}

	nameWidth := len("Name")
	for _, r := range rows {
		nameWidth = max(nameWidth, lipgloss.Width(r.PlayerName))
	}

	format := fmt.Sprintf("%%-4s %%-%ds %%6s %%6s %%6s", nameWidth)
	header := fmt.Sprintf(format, "#", "Name", "Moves", "Time", "Score")

	var b strings.Builder
	b.WriteString(TableHeaderStyle.Render(header))
	b.WriteString("\n")
	b.WriteString(TableRuleStyle.Render(strings.Repeat("─", lipgloss.Width(header))))
	for i, r := range rows {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf(format,
			fmt.Sprintf("%d.", i+1),
			r.PlayerName,
			fmt.Sprint(r.Moves),
			fmt.Sprintf("%ds", r.ElapsedSeconds),
			fmt.Sprint(r.Score),
		))
	}
	return b.String()
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(HelpTitleStyle.Render("How to play"))
	b.WriteString("\n\n")
	b.WriteString(HelpDescStyle.Render("Find every matching pair. Type a row and column, e.g. \"1 2\" or \"1,2\".\n"))
	b.WriteString(HelpDescStyle.Render("Each pair of picks costs a move. Matches earn a bonus.\n\n"))

	for _, group := range m.keys.FullHelp() {
		for _, k := range group {
			h := k.Help()
			b.WriteString(HelpKeyStyle.Render(fmt.Sprintf("%-10s", h.Key)))
			b.WriteString(HelpDescStyle.Render(h.Desc))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(DimStyle.Render("Press ? or Esc to close"))
	return HelpStyle.Render(b.String())
}
