package cli

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/seatplan/pkg/rules"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	paneStyle         = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

// =============================================================================
// SeatingModel - Interactive seating browser
// =============================================================================

// SeatingModel is the bubbletea model for browsing a solved seating. The left
// pane lists tables; the right pane shows who sits at the selected table and
// which rules apply to them.
type SeatingModel struct {
	Tables   [][]string
	Seats    int
	Unseated []string
	Rules    *rules.Rules
	Cursor   int
}

// NewSeatingModel creates a seating browser.
func NewSeatingModel(tables [][]string, seats int, unseated []string, r *rules.Rules) SeatingModel {
	return SeatingModel{
		Tables:   tables,
		Seats:    seats,
		Unseated: unseated,
		Rules:    r,
	}
}

func (m SeatingModel) Init() tea.Cmd {
	return nil
}

func (m SeatingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Tables)-1 {
				m.Cursor++
			}
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			m.Cursor = max(len(m.Tables)-1, 0)
		}
	}
	return m, nil
}

func (m SeatingModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Seating"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	if len(m.Tables) == 0 {
		b.WriteString(listDimStyle.Render("  no tables"))
		b.WriteString("\n")
		return b.String()
	}

	var list strings.Builder
	for i, guests := range m.Tables {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%sTable %-3d %d/%d", cursor, i, len(guests), m.Seats)
		if i == m.Cursor {
			list.WriteString(listSelectedStyle.Render(line))
		} else {
			list.WriteString(listNormalStyle.Render(line))
		}
		list.WriteString("\n")
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		paneStyle.Render(strings.TrimRight(list.String(), "\n")),
		paneStyle.Render(m.tableDetail(m.Cursor)),
	))
	b.WriteString("\n")

	if len(m.Unseated) > 0 {
		b.WriteString("\n")
		b.WriteString(StyleWarning.Render("Unseated: " + strings.Join(m.Unseated, ", ")))
		b.WriteString("\n")
	}
	return b.String()
}

// tableDetail lists each guest at table i with their friends and enemies.
func (m SeatingModel) tableDetail(i int) string {
	guests := m.Tables[i]
	if len(guests) == 0 {
		return listDimStyle.Render("empty table")
	}

	var b strings.Builder
	for _, guest := range guests {
		b.WriteString(StyleValue.Render(guest))
		b.WriteString("\n")
		if friends := m.friendsOf(guest); len(friends) > 0 {
			b.WriteString(StyleSuccess.Render("  with  " + strings.Join(friends, ", ")))
			b.WriteString("\n")
		}
		if m.Rules != nil {
			if enemies := m.Rules.Enemies(guest); len(enemies) > 0 {
				b.WriteString(StyleError.Render("  apart " + strings.Join(enemies, ", ")))
				b.WriteString("\n")
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// friendsOf returns the guests sharing a friend group with guest.
func (m SeatingModel) friendsOf(guest string) []string {
	if m.Rules == nil {
		return nil
	}
	var friends []string
	for _, group := range m.Rules.Groups() {
		if !slices.Contains(group, guest) {
			continue
		}
		for _, other := range group {
			if other != guest && !slices.Contains(friends, other) {
				friends = append(friends, other)
			}
		}
	}
	slices.Sort(friends)
	return friends
}
