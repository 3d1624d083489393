// ABOUTME: Referential-integrity guards and selection rules
// ABOUTME: Deletion floors, template filtering, and default selections
package state

import (
	"errors"

	"github.com/harperreed/cardscan/models"
)

// Blocked deletions are rejected at the call site with an explanation;
// the reducer itself applies whatever it is told.
var (
	ErrLastSignature = errors.New("cannot delete the last remaining signature")
	ErrLastCategory  = errors.New("cannot delete the last remaining category")
)

// CanDeleteSignature rejects deletion when one signature remains. The
// signature collection never drops to zero through the UI.
func CanDeleteSignature(signatures []models.UserSignature) error {
	if len(signatures) <= 1 {
		return ErrLastSignature
	}
	return nil
}

// CanDeleteCategory rejects deletion of the last category.
func CanDeleteCategory(categories []string) error {
	if len(categories) <= 1 {
		return ErrLastCategory
	}
	return nil
}

// TemplatesForCategory is the live filter by exact category match. Orphaned
// templates (category deleted) simply never appear in any filtered view.
func TemplatesForCategory(templates []models.EmailTemplate, category string) []models.EmailTemplate {
	var out []models.EmailTemplate
	for _, t := range templates {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

// TemplateCountForCategory is the figure shown in the delete-category
// confirmation: how many templates will become unreachable.
func TemplateCountForCategory(templates []models.EmailTemplate, category string) int {
	n := 0
	for _, t := range templates {
		if t.Category == category {
			n++
		}
	}
	return n
}

// SelectTemplate keeps the current selection if it is still in the
// filtered set, otherwise falls back to the set's first entry, or "" when
// the set is empty.
func SelectTemplate(filtered []models.EmailTemplate, currentID string) string {
	for _, t := range filtered {
		if t.ID == currentID {
			return currentID
		}
	}
	if len(filtered) > 0 {
		return filtered[0].ID
	}
	return ""
}

// SelectCategory keeps the current selection if it still exists, otherwise
// falls back to the first category, or "" when none exist.
func SelectCategory(categories []string, current string) string {
	for _, c := range categories {
		if c == current {
			return current
		}
	}
	if len(categories) > 0 {
		return categories[0]
	}
	return ""
}

// DefaultSignatureSelection picks the entry flagged default, falling back
// to the first entry. Used once, when no selection exists yet.
func DefaultSignatureSelection(signatures []models.UserSignature) string {
	for _, sig := range signatures {
		if sig.IsDefault {
			return sig.ID
		}
	}
	if len(signatures) > 0 {
		return signatures[0].ID
	}
	return ""
}

// NextSignatureSelection is the fallback after a successful deletion: the
// first remaining entry.
func NextSignatureSelection(signatures []models.UserSignature, deletedID string) string {
	for _, sig := range signatures {
		if sig.ID != deletedID {
			return sig.ID
		}
	}
	return ""
}
