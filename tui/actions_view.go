package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/cardscan/models"
	"github.com/harperreed/cardscan/pipeline"
	"github.com/harperreed/cardscan/state"
	"github.com/harperreed/cardscan/vcard"
)

var actionItems = []string{
	"Category",
	"Template",
	"Signature",
	"Context",
	"Generate message",
	"Copy message to clipboard",
	"Export vCard",
	"Show outreach links",
	"New scan",
}

const (
	actionCategory = iota
	actionTemplate
	actionSignature
	actionContext
	actionGenerate
	actionCopy
	actionExport
	actionLinks
	actionNewScan
)

// initActions seeds the selection state from the reducer's current lists.
func (m *Model) initActions() {
	s := m.dispatcher.State()
	m.actionIndex = 0
	m.generated = nil
	m.generating = false
	m.editingContext = false
	m.contextInput.SetValue("")
	m.selectedCategory = state.SelectCategory(s.Categories, m.selectedCategory)
	filtered := state.TemplatesForCategory(s.Templates, m.selectedCategory)
	m.selectedTemplate = state.SelectTemplate(filtered, m.selectedTemplate)
	if m.selectedSig == "" {
		m.selectedSig = state.DefaultSignatureSelection(s.Signatures)
	}
}

func (m Model) renderActionsView() string {
	st := m.styles()
	s := m.dispatcher.State()
	contact := s.CurrentContact

	var b strings.Builder
	b.WriteString(st.title.Render("ACTIONS"))
	b.WriteString("\n\n")

	if contact == nil {
		b.WriteString(st.dim.Render("No contact selected."))
		b.WriteString("\n")
		b.WriteString(st.help.Render("Esc: Back"))
		return b.String()
	}

	b.WriteString(st.selected.Render(contact.FullName))
	if contact.Company != "" {
		b.WriteString(st.dim.Render("  " + contact.Company))
	}
	b.WriteString("\n\n")

	for i, item := range actionItems {
		cursor := "  "
		if i == m.actionIndex {
			cursor = st.selected.Render("> ")
		}
		b.WriteString(cursor)
		switch i {
		case actionCategory:
			b.WriteString(fmt.Sprintf("%s: %s", item, m.selectedCategory))
		case actionTemplate:
			b.WriteString(fmt.Sprintf("%s: %s", item, m.templateName()))
		case actionSignature:
			b.WriteString(fmt.Sprintf("%s: %s", item, m.signatureName()))
		case actionContext:
			if m.editingContext {
				b.WriteString(item + ": " + m.contextInput.View())
			} else if v := strings.TrimSpace(m.contextInput.Value()); v != "" {
				b.WriteString(fmt.Sprintf("%s: %s", item, v))
			} else {
				b.WriteString(item + ": " + st.dim.Render("(none)"))
			}
		default:
			b.WriteString(item)
		}
		b.WriteString("\n")
	}

	if m.generating {
		b.WriteString("\n" + m.spin.View() + " Generating message...\n")
	} else if m.generated != nil {
		b.WriteString("\n")
		if m.generated.Subject != "" {
			b.WriteString(st.status.Render("Subject: "+m.generated.Subject) + "\n")
		}
		b.WriteString(m.generated.Body + "\n")
	}

	b.WriteString("\n")
	b.WriteString(st.help.Render("↑/↓: Navigate • ←/→: Change value • Enter: Run • Esc: Done"))
	b.WriteString(m.renderNotice())
	return b.String()
}

func (m Model) templateName() string {
	for _, t := range m.dispatcher.State().Templates {
		if t.ID == m.selectedTemplate {
			return t.Name
		}
	}
	return "(none)"
}

func (m Model) signatureName() string {
	for _, sig := range m.dispatcher.State().Signatures {
		if sig.ID == m.selectedSig {
			return sig.Name
		}
	}
	return "(none)"
}

func (m Model) handleActionsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editingContext {
		switch msg.String() {
		case "esc":
			m.editingContext = false
			return m, nil
		case "enter":
			m.editingContext = false
			m.contextInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.contextInput, cmd = m.contextInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "esc":
		m.orch.Cancel()
		m = m.syncWithStep()
		return m, nil
	case "up", "k":
		if m.actionIndex > 0 {
			m.actionIndex--
		}
	case "down", "j":
		if m.actionIndex < len(actionItems)-1 {
			m.actionIndex++
		}
	case "left", "h":
		m = m.cycleSelection(-1)
	case "right", "l":
		m = m.cycleSelection(1)
	case "enter":
		return m.runAction()
	}
	return m, nil
}

// cycleSelection steps the focused selector. Changing category re-resolves
// the template against the filtered list.
func (m Model) cycleSelection(delta int) Model {
	s := m.dispatcher.State()
	switch m.actionIndex {
	case actionCategory:
		m.selectedCategory = cycle(s.Categories, m.selectedCategory, delta)
		filtered := state.TemplatesForCategory(s.Templates, m.selectedCategory)
		m.selectedTemplate = state.SelectTemplate(filtered, m.selectedTemplate)
		m.generated = nil
	case actionTemplate:
		filtered := state.TemplatesForCategory(s.Templates, m.selectedCategory)
		ids := make([]string, len(filtered))
		for i, t := range filtered {
			ids[i] = t.ID
		}
		m.selectedTemplate = cycle(ids, m.selectedTemplate, delta)
		m.generated = nil
	case actionSignature:
		ids := make([]string, len(s.Signatures))
		for i, sig := range s.Signatures {
			ids[i] = sig.ID
		}
		m.selectedSig = cycle(ids, m.selectedSig, delta)
	}
	return m
}

func cycle(items []string, current string, delta int) string {
	if len(items) == 0 {
		return ""
	}
	idx := 0
	for i, item := range items {
		if item == current {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(items)) % len(items)
	return items[idx]
}

func (m Model) runAction() (tea.Model, tea.Cmd) {
	contact := m.dispatcher.State().CurrentContact
	if contact == nil {
		return m, nil
	}

	switch m.actionIndex {
	case actionContext:
		m.editingContext = true
		m.contextInput.Focus()
		return m, nil
	case actionGenerate:
		return m.startGenerate(*contact)
	case actionCopy:
		if m.generated == nil {
			m.notice = "Generate a message first."
			return m, nil
		}
		if err := vcard.Copy(m.generated.Subject, m.generated.Body, m.signatureContent()); err != nil {
			m.notice = fmt.Sprintf("Clipboard unavailable: %v", err)
		} else {
			m.notice = "Message copied."
		}
		return m, nil
	case actionExport:
		path, err := vcard.WriteFile(*contact, ".")
		if err != nil {
			m.notice = fmt.Sprintf("Export failed: %v", err)
		} else {
			m.notice = "Exported " + path
		}
		return m, nil
	case actionLinks:
		m.notice = m.outreachLinks(*contact)
		return m, nil
	case actionNewScan:
		m.orch.Cancel()
		m = m.syncWithStep()
		return m, nil
	}
	return m, nil
}

func (m Model) startGenerate(contact models.Contact) (tea.Model, tea.Cmd) {
	if m.selectedTemplate == "" {
		m.notice = "No template available in this category."
		return m, nil
	}

	req := pipeline.GenerateRequest{
		ContactName:    contact.FullName,
		ContactCompany: contact.Company,
		ContactTitle:   contact.Title,
		TemplateName:   m.templateName(),
		Category:       m.selectedCategory,
		Context:        strings.TrimSpace(m.contextInput.Value()),
		SenderName:     m.senderName(),
		ShortFormat:    models.ShortFormatCategory(m.selectedCategory),
	}

	m.generating = true
	m.generated = nil
	extractor := m.extractor
	return m, func() tea.Msg {
		msg := extractor.GenerateMessage(context.Background(), req)
		return messageMsg{message: msg}
	}
}

func (m Model) senderName() string {
	for _, sig := range m.dispatcher.State().Signatures {
		if sig.ID == m.selectedSig {
			if sig.Data != nil && sig.Data.Name != "" {
				return sig.Data.Name
			}
			return sig.Name
		}
	}
	return ""
}

func (m Model) signatureContent() string {
	for _, sig := range m.dispatcher.State().Signatures {
		if sig.ID == m.selectedSig {
			return sig.Content
		}
	}
	return ""
}

// outreachLinks renders the deep links for the current contact in one
// notice line per channel.
func (m Model) outreachLinks(c models.Contact) string {
	var links []string
	subject, body := "", ""
	if m.generated != nil {
		subject, body = m.generated.Subject, m.generated.Body
	}
	if c.Email != "" {
		links = append(links, vcard.MailtoURL(c.Email, subject, body))
	}
	if c.Phone != "" {
		links = append(links, vcard.SMSURL(c.Phone, body))
		links = append(links, vcard.WhatsAppURL(c.Phone, body))
	}
	for _, p := range models.Platforms {
		if v := c.Socials[p]; v != "" {
			links = append(links, vcard.SocialURL(p, v))
		}
	}
	if len(links) == 0 {
		return "No contact channels available."
	}
	return strings.Join(links, "\n  ")
}
