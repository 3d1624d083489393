package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/cardscan/models"
	"github.com/harperreed/cardscan/state"
)

// formFields maps form rows to contact fields. Social rows follow and are
// handled separately.
var formFields = []struct {
	label string
	field string
}{
	{"Full name", state.FieldFullName},
	{"Title", state.FieldTitle},
	{"Company", state.FieldCompany},
	{"Email", state.FieldEmail},
	{"Phone", state.FieldPhone},
	{"Website", state.FieldWebsite},
	{"Address", state.FieldAddress},
	{"Notes", state.FieldNotes},
}

func (m *Model) initForm() {
	draft := m.dispatcher.State().CurrentContact
	if draft == nil {
		m.formInputs = nil
		return
	}

	inputs := make([]textinput.Model, len(formFields)+len(models.Platforms))
	values := map[string]string{
		state.FieldFullName: draft.FullName,
		state.FieldTitle:    draft.Title,
		state.FieldCompany:  draft.Company,
		state.FieldEmail:    draft.Email,
		state.FieldPhone:    draft.Phone,
		state.FieldWebsite:  draft.Website,
		state.FieldAddress:  draft.Address,
		state.FieldNotes:    draft.Notes,
	}

	for i, f := range formFields {
		inputs[i] = textinput.New()
		inputs[i].Placeholder = f.label
		inputs[i].CharLimit = 500
		inputs[i].SetValue(values[f.field])
	}
	for i, p := range models.Platforms {
		idx := len(formFields) + i
		inputs[idx] = textinput.New()
		inputs[idx].Placeholder = p
		inputs[idx].CharLimit = 200
		inputs[idx].SetValue(draft.Socials[p])
	}

	m.formInputs = inputs
	m.focusIndex = 0
	m.updateFormFocus()
}

func (m *Model) updateFormFocus() {
	for i := range m.formInputs {
		if i == m.focusIndex {
			m.formInputs[i].Focus()
		} else {
			m.formInputs[i].Blur()
		}
	}
}

func (m Model) renderValidateView() string {
	st := m.styles()
	var s strings.Builder

	s.WriteString(st.title.Render("VALIDATE CONTACT"))
	s.WriteString("\n\n")

	if m.formInputs == nil {
		s.WriteString(st.dim.Render("No draft contact."))
		return s.String()
	}

	for i, input := range m.formInputs {
		label := m.formLabel(i)
		if i == m.focusIndex {
			s.WriteString(st.selected.Render("> " + label + ": "))
		} else {
			s.WriteString("  " + st.dim.Render(label+": "))
		}
		s.WriteString(input.View())
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(st.help.Render("Tab/Shift+Tab: Next/Prev field • Enter: Save • Ctrl+D: Dictate • Esc: Discard"))
	s.WriteString(m.renderNotice())
	return s.String()
}

func (m Model) formLabel(i int) string {
	if i < len(formFields) {
		return formFields[i].label
	}
	return models.Platforms[i-len(formFields)]
}

func (m Model) handleValidateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.formInputs == nil {
		if msg.String() == "esc" {
			m.orch.Cancel()
			m = m.syncWithStep()
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.orch.Cancel()
		m = m.syncWithStep()
		return m, nil
	case "tab", "down":
		m.focusIndex = (m.focusIndex + 1) % len(m.formInputs)
		m.updateFormFocus()
		return m, nil
	case "shift+tab", "up":
		m.focusIndex = (m.focusIndex - 1 + len(m.formInputs)) % len(m.formInputs)
		m.updateFormFocus()
		return m, nil
	case "enter":
		m.commitForm()
		m.orch.SaveDraft()
		m = m.syncWithStep()
		return m, nil
	case "ctrl+d":
		if cap := m.orch.SpeechCapability(); !cap.Available() {
			m.notice = fmt.Sprintf("Dictation unavailable: %v", cap.Err())
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.formInputs[m.focusIndex], cmd = m.formInputs[m.focusIndex].Update(msg)
	return m, cmd
}

// commitForm writes edited values into the draft through the reducer, one
// field at a time.
func (m Model) commitForm() {
	for i, f := range formFields {
		m.dispatcher.Dispatch(state.UpdateContactField{
			Field: f.field,
			Value: m.formInputs[i].Value(),
		})
	}
	for i, p := range models.Platforms {
		m.dispatcher.Dispatch(state.UpdateSocial{
			Platform: p,
			Value:    m.formInputs[len(formFields)+i].Value(),
		})
	}
}
