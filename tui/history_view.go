package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/cardscan/models"
	"github.com/harperreed/cardscan/state"
	"github.com/harperreed/cardscan/vcard"
)

func (m Model) renderHistoryView() string {
	st := m.styles()
	history := m.dispatcher.State().History

	var s strings.Builder
	s.WriteString(st.title.Render("HISTORY"))
	s.WriteString("\n\n")

	if len(history) == 0 {
		s.WriteString(st.dim.Render("No scanned contacts yet."))
		s.WriteString("\n")
		s.WriteString(st.help.Render("Esc: Back"))
		return s.String()
	}

	columns := []table.Column{
		{Title: "Name", Width: 25},
		{Title: "Company", Width: 20},
		{Title: "Email", Width: 25},
		{Title: "Scanned", Width: 12},
	}

	var rows []table.Row
	for _, c := range history {
		rows = append(rows, table.Row{
			c.FullName,
			c.Company,
			c.Email,
			time.UnixMilli(c.Timestamp).Format("2006-01-02"),
		})
	}

	height := m.height - 10
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	if m.historyRow < len(rows) {
		t.SetCursor(m.historyRow)
	}

	s.WriteString(t.View())
	s.WriteString("\n\n")
	s.WriteString(st.help.Render("↑/↓: Navigate • Enter: Open • e: Export vCard • d: Delete • Esc: Back"))
	s.WriteString(m.renderNotice())
	return s.String()
}

func (m Model) handleHistoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	history := m.dispatcher.State().History

	switch msg.String() {
	case "esc":
		m.dispatcher.Dispatch(state.SetStep{Step: models.StepScan})
		m = m.syncWithStep()
		return m, nil
	case "up", "k":
		if m.historyRow > 0 {
			m.historyRow--
		}
	case "down", "j":
		if m.historyRow < len(history)-1 {
			m.historyRow++
		}
	case "enter":
		if m.historyRow < len(history) {
			m.dispatcher.Dispatch(state.LoadContact{Contact: history[m.historyRow]})
			m.dispatcher.Dispatch(state.SetStep{Step: models.StepActions})
			m = m.syncWithStep()
		}
		return m, nil
	case "e":
		if m.historyRow < len(history) {
			path, err := vcard.WriteFile(history[m.historyRow], ".")
			if err != nil {
				m.notice = fmt.Sprintf("Export failed: %v", err)
			} else {
				m.notice = "Exported " + path
			}
		}
		return m, nil
	case "d":
		if m.historyRow < len(history) {
			m.dispatcher.Dispatch(state.DeleteContact{ID: history[m.historyRow].ID})
			if m.historyRow > 0 {
				m.historyRow--
			}
		}
		return m, nil
	}
	return m, nil
}
