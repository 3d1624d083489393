// ABOUTME: Pure reducer implementing every workflow state transition
// ABOUTME: Copy-on-write over immutable snapshots, side-effect free
package state

import "github.com/harperreed/cardscan/models"

// Reduce maps (state, action) to the next state. It never mutates its
// input: nested slices and maps are copied before modification so each
// returned state is an independent snapshot. Persistence happens in the
// Dispatcher, never here.
func Reduce(s models.AppState, a Action) models.AppState {
	switch a := a.(type) {
	case SetStep:
		s.Step = a.Step
		return s

	case SetProcessingStatus:
		s.ProcessingStatus = a.Status
		return s

	case SetCurrentContact:
		s.CurrentContact = cloneContactPtr(a.Contact)
		return s

	case UpdateContactField:
		if s.CurrentContact == nil {
			return s
		}
		draft := cloneContact(*s.CurrentContact)
		if !setContactField(&draft, a.Field, a.Value) {
			return s
		}
		s.CurrentContact = &draft
		return s

	case UpdateSocial:
		if s.CurrentContact == nil {
			return s
		}
		draft := cloneContact(*s.CurrentContact)
		draft.Socials[a.Platform] = a.Value
		s.CurrentContact = &draft
		return s

	case SaveContact:
		s.History = upsertContact(s.History, a.Contact)
		return s

	case DeleteContact:
		history := make([]models.Contact, 0, len(s.History))
		for _, c := range s.History {
			if c.ID != a.ID {
				history = append(history, c)
			}
		}
		s.History = history
		return s

	case LoadContact:
		c := cloneContact(a.Contact)
		s.CurrentContact = &c
		s.Step = models.StepActions
		return s

	case AddSignature:
		s.Signatures = append(cloneSignatures(s.Signatures), a.Signature)
		return s

	case UpdateSignature:
		sigs := cloneSignatures(s.Signatures)
		for i := range sigs {
			if sigs[i].ID == a.Signature.ID {
				sigs[i] = a.Signature
			}
		}
		s.Signatures = sigs
		return s

	case DeleteSignature:
		sigs := make([]models.UserSignature, 0, len(s.Signatures))
		for _, sig := range s.Signatures {
			if sig.ID != a.ID {
				sigs = append(sigs, sig)
			}
		}
		s.Signatures = sigs
		return s

	case AddCategory:
		for _, c := range s.Categories {
			if c == a.Name {
				return s
			}
		}
		s.Categories = append(cloneStrings(s.Categories), a.Name)
		return s

	case DeleteCategory:
		cats := make([]string, 0, len(s.Categories))
		for _, c := range s.Categories {
			if c != a.Name {
				cats = append(cats, c)
			}
		}
		s.Categories = cats
		return s

	case AddTemplate:
		s.Templates = append(cloneTemplates(s.Templates), a.Template)
		return s

	case DeleteTemplate:
		tmpls := make([]models.EmailTemplate, 0, len(s.Templates))
		for _, t := range s.Templates {
			if t.ID != a.ID {
				tmpls = append(tmpls, t)
			}
		}
		s.Templates = tmpls
		return s

	case ToggleTheme:
		s.IsDarkMode = !s.IsDarkMode
		return s

	default:
		return s
	}
}

// upsertContact inserts-or-replaces by id. New ids prepend (newest first);
// an existing id is replaced in place, keeping its original position.
func upsertContact(history []models.Contact, c models.Contact) []models.Contact {
	for i := range history {
		if history[i].ID == c.ID {
			next := make([]models.Contact, len(history))
			copy(next, history)
			next[i] = c
			return next
		}
	}
	next := make([]models.Contact, 0, len(history)+1)
	next = append(next, c)
	next = append(next, history...)
	return next
}

func setContactField(c *models.Contact, field, value string) bool {
	switch field {
	case FieldFullName:
		c.FullName = value
	case FieldTitle:
		c.Title = value
	case FieldCompany:
		c.Company = value
	case FieldEmail:
		c.Email = value
	case FieldPhone:
		c.Phone = value
	case FieldWebsite:
		c.Website = value
	case FieldAddress:
		c.Address = value
	case FieldNotes:
		c.Notes = value
	case FieldProfileImage:
		c.ProfileImage = value
	default:
		return false
	}
	return true
}

func cloneContact(c models.Contact) models.Contact {
	socials := make(map[string]string, len(c.Socials))
	for k, v := range c.Socials {
		socials[k] = v
	}
	c.Socials = socials
	return c
}

func cloneContactPtr(c *models.Contact) *models.Contact {
	if c == nil {
		return nil
	}
	clone := cloneContact(*c)
	return &clone
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneSignatures(in []models.UserSignature) []models.UserSignature {
	out := make([]models.UserSignature, len(in))
	copy(out, in)
	return out
}

func cloneTemplates(in []models.EmailTemplate) []models.EmailTemplate {
	out := make([]models.EmailTemplate, len(in))
	copy(out, in)
	return out
}
