// ABOUTME: Built-in defaults seeded on first run
// ABOUTME: Default signature, category list, and template catalog
package models

import "fmt"

// DefaultSignatureID is the fixed id of the seeded signature so reseeding
// after a wipe produces the same entry.
const DefaultSignatureID = "sig-default"

// DefaultSignature returns the signature seeded when no signatures are
// stored. The collection is never allowed to be empty after startup.
func DefaultSignature() UserSignature {
	data := &SignatureData{
		Name:    "Your Name",
		Title:   "Job Title",
		Company: "Company",
	}
	return UserSignature{
		ID:        DefaultSignatureID,
		Name:      "Default",
		Content:   RenderSignature(data),
		IsDefault: true,
		Data:      data,
	}
}

// Template categories shipped with the app. CategoryMessaging and
// CategorySocial switch message generation to short formats.
const (
	CategoryNetworking = "Networking & Business"
	CategoryFormal     = "Formal & Protocol"
	CategoryClub       = "Club & Community"
	CategoryMessaging  = "SMS & Messaging"
	CategorySocial     = "Social Media"
)

// ShortFormatCategory reports whether the category generates short-form
// messages without a subject line.
func ShortFormatCategory(category string) bool {
	return category == CategoryMessaging || category == CategorySocial
}

// DefaultCategories returns the built-in category list in display order.
func DefaultCategories() []string {
	return []string{
		CategoryNetworking,
		CategoryFormal,
		CategoryClub,
		CategoryMessaging,
		CategorySocial,
	}
}

// DefaultTemplates returns the built-in template catalog. These carry fixed
// ids so the unified template store stays stable across runs.
func DefaultTemplates() []EmailTemplate {
	return []EmailTemplate{
		{ID: "tmpl-followup", Name: "Meeting Follow-up", Category: CategoryNetworking},
		{ID: "tmpl-intro", Name: "Introduction", Category: CategoryNetworking},
		{ID: "tmpl-thanks", Name: "Thank You Note", Category: CategoryNetworking},
		{ID: "tmpl-invite", Name: "Official Invitation", Category: CategoryFormal},
		{ID: "tmpl-congrats", Name: "Congratulations", Category: CategoryFormal},
		{ID: "tmpl-club-welcome", Name: "Welcome Message", Category: CategoryClub},
		{ID: "tmpl-club-event", Name: "Event Teaser", Category: CategoryClub},
		{ID: "tmpl-sms-checkin", Name: "Quick Check-in", Category: CategoryMessaging},
		{ID: "tmpl-sms-confirm", Name: "Meeting Confirmation", Category: CategoryMessaging},
		{ID: "tmpl-social-connect", Name: "Connection Request", Category: CategorySocial},
	}
}

// RenderSignature renders the cached markup content from structured fields.
// Callers regenerate Content through this whenever Data exists.
func RenderSignature(data *SignatureData) string {
	if data == nil {
		return ""
	}
	content := fmt.Sprintf("<b>%s</b><br/><i>%s</i><br/>%s", data.Name, data.Title, data.Company)
	if data.Logo != "" {
		content += fmt.Sprintf(`<br/><br/><img src="%s" alt="Logo" style="display: block; max-height: 80px; max-width: 200px; height: auto; border: 0;" />`, data.Logo)
	}
	return content
}
