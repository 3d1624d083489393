package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/harperreed/cardscan/models"
	"github.com/harperreed/cardscan/state"
)

var settingsTabs = []string{"Signatures", "Categories", "Templates"}

func (m Model) renderSettingsView() string {
	st := m.styles()
	var s strings.Builder

	s.WriteString(st.title.Render("SETTINGS"))
	s.WriteString("\n\n")

	var tabs []string
	for i, tab := range settingsTabs {
		if i == m.settingsTab {
			tabs = append(tabs, st.selected.Render("["+tab+"]"))
		} else {
			tabs = append(tabs, st.dim.Render(" "+tab+" "))
		}
	}
	s.WriteString(strings.Join(tabs, " "))
	s.WriteString("\n\n")

	rows := m.settingsRows()
	for i, row := range rows {
		if i == m.settingsRow {
			s.WriteString(st.selected.Render("> " + row))
		} else {
			s.WriteString("  " + row)
		}
		s.WriteString("\n")
	}
	if len(rows) == 0 {
		s.WriteString(st.dim.Render("(empty)"))
		s.WriteString("\n")
	}

	switch {
	case m.settingsAdd:
		s.WriteString("\n")
		s.WriteString("New: " + m.settingsInput.View())
		s.WriteString("\n")
		s.WriteString(st.help.Render("Enter: Add • Esc: Cancel"))
	case m.settingsConfirm != "":
		count := state.TemplateCountForCategory(m.dispatcher.State().Templates, m.settingsConfirm)
		s.WriteString("\n")
		s.WriteString(st.notice.Render(fmt.Sprintf("Delete %q? %d template(s) reference it.", m.settingsConfirm, count)))
		s.WriteString("\n")
		s.WriteString(st.help.Render("y: Delete • any other key: Cancel"))
	case m.sigEditID != "":
		s.WriteString("\n")
		for i, label := range sigEditLabels {
			if i == m.sigEditFocus {
				s.WriteString(st.selected.Render("> " + label + ": "))
			} else {
				s.WriteString("  " + st.dim.Render(label+": "))
			}
			s.WriteString(m.sigEditInputs[i].View())
			s.WriteString("\n")
		}
		s.WriteString(st.help.Render("Tab: Next field • Enter: Save • Esc: Cancel"))
	default:
		s.WriteString("\n")
		s.WriteString(st.help.Render("Tab: Switch section • ↑/↓: Navigate • a: Add • e: Edit • d: Delete • Esc: Back"))
	}
	s.WriteString(m.renderNotice())
	return s.String()
}

var sigEditLabels = []string{"Name", "Title", "Company"}

func (m Model) settingsRows() []string {
	s := m.dispatcher.State()
	switch m.settingsTab {
	case 0:
		rows := make([]string, len(s.Signatures))
		for i, sig := range s.Signatures {
			label := sig.Name
			if sig.IsDefault {
				label += " (default)"
			}
			rows[i] = label
		}
		return rows
	case 1:
		return append([]string(nil), s.Categories...)
	case 2:
		rows := make([]string, len(s.Templates))
		for i, t := range s.Templates {
			rows[i] = fmt.Sprintf("%s  [%s]", t.Name, t.Category)
		}
		return rows
	}
	return nil
}

func (m Model) handleSettingsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.settingsAdd {
		return m.handleSettingsAddKeys(msg)
	}
	if m.settingsConfirm != "" {
		return m.handleConfirmDeleteKeys(msg)
	}
	if m.sigEditID != "" {
		return m.handleSignatureEditKeys(msg)
	}

	rows := m.settingsRows()
	switch msg.String() {
	case "esc":
		m.viewMode = ViewWorkflow
		return m, nil
	case "tab":
		m.settingsTab = (m.settingsTab + 1) % len(settingsTabs)
		m.settingsRow = 0
	case "up", "k":
		if m.settingsRow > 0 {
			m.settingsRow--
		}
	case "down", "j":
		if m.settingsRow < len(rows)-1 {
			m.settingsRow++
		}
	case "a":
		m.settingsAdd = true
		m.settingsInput.SetValue("")
		m.settingsInput.Focus()
	case "e":
		m = m.beginSignatureEdit()
	case "d":
		m = m.deleteSettingsRow()
	}
	return m, nil
}

// handleConfirmDeleteKeys resolves a pending category deletion. Only "y"
// deletes; every other key keeps the category.
func (m Model) handleConfirmDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	name := m.settingsConfirm
	m.settingsConfirm = ""
	if msg.String() != "y" {
		return m, nil
	}
	m.dispatcher.Dispatch(state.DeleteCategory{Name: name})
	if m.settingsRow > 0 {
		m.settingsRow--
	}
	return m, nil
}

// beginSignatureEdit opens the field editor for the selected signature.
// Edits apply only on the Signatures tab.
func (m Model) beginSignatureEdit() Model {
	if m.settingsTab != 0 {
		return m
	}
	s := m.dispatcher.State()
	if m.settingsRow >= len(s.Signatures) {
		return m
	}
	sig := s.Signatures[m.settingsRow]

	var data models.SignatureData
	if sig.Data != nil {
		data = *sig.Data
	}
	values := []string{data.Name, data.Title, data.Company}

	inputs := make([]textinput.Model, len(sigEditLabels))
	for i, label := range sigEditLabels {
		inputs[i] = textinput.New()
		inputs[i].Placeholder = label
		inputs[i].CharLimit = 100
		inputs[i].SetValue(values[i])
	}
	inputs[0].Focus()

	m.sigEditID = sig.ID
	m.sigEditInputs = inputs
	m.sigEditFocus = 0
	return m
}

func (m Model) handleSignatureEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.sigEditID = ""
		return m, nil
	case "tab", "down":
		m.sigEditFocus = (m.sigEditFocus + 1) % len(m.sigEditInputs)
		m.updateSigEditFocus()
		return m, nil
	case "shift+tab", "up":
		m.sigEditFocus = (m.sigEditFocus - 1 + len(m.sigEditInputs)) % len(m.sigEditInputs)
		m.updateSigEditFocus()
		return m, nil
	case "enter":
		m = m.commitSignatureEdit()
		return m, nil
	}

	var cmd tea.Cmd
	m.sigEditInputs[m.sigEditFocus], cmd = m.sigEditInputs[m.sigEditFocus].Update(msg)
	return m, cmd
}

func (m *Model) updateSigEditFocus() {
	for i := range m.sigEditInputs {
		if i == m.sigEditFocus {
			m.sigEditInputs[i].Focus()
		} else {
			m.sigEditInputs[i].Blur()
		}
	}
}

// commitSignatureEdit writes the edited fields back and regenerates the
// cached markup content from them.
func (m Model) commitSignatureEdit() Model {
	for _, sig := range m.dispatcher.State().Signatures {
		if sig.ID != m.sigEditID {
			continue
		}
		data := &models.SignatureData{}
		if sig.Data != nil {
			*data = *sig.Data
		}
		data.Name = strings.TrimSpace(m.sigEditInputs[0].Value())
		data.Title = strings.TrimSpace(m.sigEditInputs[1].Value())
		data.Company = strings.TrimSpace(m.sigEditInputs[2].Value())

		sig.Data = data
		sig.Content = models.RenderSignature(data)
		if data.Name != "" {
			sig.Name = data.Name
		}
		m.dispatcher.Dispatch(state.UpdateSignature{Signature: sig})
		break
	}
	m.sigEditID = ""
	return m
}

// deleteSettingsRow enforces the floors: the last signature and the last
// category cannot be removed.
func (m Model) deleteSettingsRow() Model {
	s := m.dispatcher.State()
	switch m.settingsTab {
	case 0:
		if m.settingsRow >= len(s.Signatures) {
			return m
		}
		if err := state.CanDeleteSignature(s.Signatures); err != nil {
			m.notice = err.Error()
			return m
		}
		deleted := s.Signatures[m.settingsRow].ID
		m.dispatcher.Dispatch(state.DeleteSignature{ID: deleted})
		if m.selectedSig == deleted {
			m.selectedSig = state.NextSignatureSelection(m.dispatcher.State().Signatures, deleted)
		}
	case 1:
		if m.settingsRow >= len(s.Categories) {
			return m
		}
		if err := state.CanDeleteCategory(s.Categories); err != nil {
			m.notice = err.Error()
			return m
		}
		// Deleting a category orphans its templates; confirm with the count.
		m.settingsConfirm = s.Categories[m.settingsRow]
		return m
	case 2:
		if m.settingsRow >= len(s.Templates) {
			return m
		}
		m.dispatcher.Dispatch(state.DeleteTemplate{ID: s.Templates[m.settingsRow].ID})
	}
	if m.settingsRow > 0 {
		m.settingsRow--
	}
	return m
}

func (m Model) handleSettingsAddKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.settingsAdd = false
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.settingsInput.Value())
		if name == "" {
			m.settingsAdd = false
			return m, nil
		}
		m = m.addSettingsRow(name)
		m.settingsAdd = false
		return m, nil
	}

	var cmd tea.Cmd
	m.settingsInput, cmd = m.settingsInput.Update(msg)
	return m, cmd
}

func (m Model) addSettingsRow(name string) Model {
	switch m.settingsTab {
	case 0:
		data := &models.SignatureData{Name: name}
		m.dispatcher.Dispatch(state.AddSignature{Signature: models.UserSignature{
			ID:      uuid.New().String(),
			Name:    name,
			Content: models.RenderSignature(data),
			Data:    data,
		}})
	case 1:
		m.dispatcher.Dispatch(state.AddCategory{Name: name})
	case 2:
		category := m.dispatcher.State().Categories[0]
		if m.selectedCategory != "" {
			category = m.selectedCategory
		}
		m.dispatcher.Dispatch(state.AddTemplate{Template: models.EmailTemplate{
			ID:       uuid.New().String(),
			Name:     name,
			Category: category,
		}})
	}
	return m
}
