package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/cardscan/models"
	"github.com/harperreed/cardscan/state"
)

var scanMenu = []string{
	"Scan card image",
	"Scan QR code",
	"Read NFC tag",
	"Manual entry",
	"History",
	"Settings",
}

func (m Model) renderScanView() string {
	st := m.styles()
	var s strings.Builder

	s.WriteString(st.title.Render("CARDSCAN"))
	s.WriteString("\n\n")

	for i, item := range scanMenu {
		if i == m.menuIndex {
			s.WriteString(st.selected.Render("> " + item))
		} else {
			s.WriteString("  " + item)
		}
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(st.help.Render("↑/↓: Navigate • Enter: Select • t: Toggle theme • q: Quit"))
	s.WriteString(m.renderNotice())
	return s.String()
}

func (m Model) handleScanKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.orch.Shutdown()
		return m, tea.Quit
	case "up", "k":
		if m.menuIndex > 0 {
			m.menuIndex--
		}
	case "down", "j":
		if m.menuIndex < len(scanMenu)-1 {
			m.menuIndex++
		}
	case "t":
		m.dispatcher.Dispatch(state.ToggleTheme{})
	case "enter":
		return m.selectMenuItem()
	}
	return m, nil
}

func (m Model) selectMenuItem() (tea.Model, tea.Cmd) {
	m.notice = ""
	switch m.menuIndex {
	case 0:
		m.viewMode = ViewFilePrompt
		m.pathInput.SetValue("")
		m.pathInput.Focus()
		return m, nil
	case 1:
		return m, func() tea.Msg {
			_ = m.orch.StartQRScan(context.Background())
			return pipelineDoneMsg{}
		}
	case 2:
		return m, func() tea.Msg {
			_ = m.orch.StartNFCScan(context.Background())
			return pipelineDoneMsg{}
		}
	case 3:
		m.orch.ManualEntry()
		m = m.syncWithStep()
		return m, nil
	case 4:
		m.dispatcher.Dispatch(state.SetStep{Step: models.StepHistory})
		m = m.syncWithStep()
		return m, nil
	case 5:
		m.viewMode = ViewSettings
		m.settingsTab = 0
		m.settingsRow = 0
		m.settingsAdd = false
		return m, nil
	}
	return m, nil
}

func (m Model) renderFilePrompt() string {
	st := m.styles()
	var s strings.Builder

	s.WriteString(st.title.Render("SCAN CARD IMAGE"))
	s.WriteString("\n\n")
	s.WriteString(m.pathInput.View())
	s.WriteString("\n")
	s.WriteString(st.help.Render("Enter: Scan • Esc: Back"))
	s.WriteString(m.renderNotice())
	return s.String()
}

func (m Model) handleFilePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.viewMode = ViewWorkflow
		return m, nil
	case "enter":
		path := strings.TrimSpace(m.pathInput.Value())
		if path == "" {
			return m, nil
		}
		m.viewMode = ViewWorkflow
		return m, m.captureCmd(path)
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

// captureCmd runs the full capture pipeline off the event loop.
func (m Model) captureCmd(path string) tea.Cmd {
	return func() tea.Msg {
		encoded, err := m.images.FileToEncoded(path)
		if err != nil {
			return noticeMsg{text: fmt.Sprintf("Could not read %s: %v", path, err)}
		}
		m.orch.CaptureImage(context.Background(), encoded)
		return pipelineDoneMsg{}
	}
}

func (m Model) renderQRView() string {
	st := m.styles()
	var s strings.Builder

	s.WriteString(st.title.Render("QR SCAN"))
	s.WriteString("\n\n")
	s.WriteString(m.spin.View())
	s.WriteString(" Point the camera at a QR code...")
	s.WriteString("\n")
	s.WriteString(st.help.Render("Esc: Cancel"))
	s.WriteString(m.renderNotice())
	return s.String()
}

func (m Model) handleQRKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.orch.Cancel()
		m = m.syncWithStep()
	}
	return m, nil
}

func (m Model) renderProcessingView() string {
	st := m.styles()
	var s strings.Builder

	s.WriteString(st.title.Render("PROCESSING"))
	s.WriteString("\n\n")
	s.WriteString(m.spin.View())
	s.WriteString(" ")
	s.WriteString(st.status.Render(m.dispatcher.State().ProcessingStatus))
	s.WriteString("\n")
	s.WriteString(st.help.Render("Esc: Cancel"))
	s.WriteString(m.renderNotice())
	return s.String()
}

func (m Model) handleProcessingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.orch.Cancel()
		m = m.syncWithStep()
	}
	return m, nil
}
