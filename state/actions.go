// ABOUTME: Action types dispatched through the reducer
// ABOUTME: One struct per transition in the workflow state machine
package state

import "github.com/harperreed/cardscan/models"

// Action is a state transition request. The reducer is total over actions:
// anything it does not recognize leaves the state unchanged.
type Action interface {
	isAction()
}

// Contact field names accepted by UpdateContactField. An unknown field is a
// no-op rather than an error so the reducer never throws.
const (
	FieldFullName     = "fullName"
	FieldTitle        = "title"
	FieldCompany      = "company"
	FieldEmail        = "email"
	FieldPhone        = "phone"
	FieldWebsite      = "website"
	FieldAddress      = "address"
	FieldNotes        = "notes"
	FieldProfileImage = "profileImage"
)

type SetStep struct {
	Step models.AppStep
}

type SetProcessingStatus struct {
	Status string
}

// SetCurrentContact replaces the draft. A nil contact clears it.
type SetCurrentContact struct {
	Contact *models.Contact
}

type UpdateContactField struct {
	Field string
	Value string
}

type UpdateSocial struct {
	Platform string
	Value    string
}

// SaveContact upserts by id into history: prepend when new, in-place
// replace when the id already exists.
type SaveContact struct {
	Contact models.Contact
}

type DeleteContact struct {
	ID string
}

// LoadContact sets a history entry as the draft and jumps to Actions.
type LoadContact struct {
	Contact models.Contact
}

type AddSignature struct {
	Signature models.UserSignature
}

type UpdateSignature struct {
	Signature models.UserSignature
}

type DeleteSignature struct {
	ID string
}

type AddCategory struct {
	Name string
}

type DeleteCategory struct {
	Name string
}

type AddTemplate struct {
	Template models.EmailTemplate
}

type DeleteTemplate struct {
	ID string
}

type ToggleTheme struct{}

func (SetStep) isAction()             {}
func (SetProcessingStatus) isAction() {}
func (SetCurrentContact) isAction()   {}
func (UpdateContactField) isAction()  {}
func (UpdateSocial) isAction()        {}
func (SaveContact) isAction()         {}
func (DeleteContact) isAction()       {}
func (LoadContact) isAction()         {}
func (AddSignature) isAction()        {}
func (UpdateSignature) isAction()     {}
func (DeleteSignature) isAction()     {}
func (AddCategory) isAction()         {}
func (DeleteCategory) isAction()      {}
func (AddTemplate) isAction()         {}
func (DeleteTemplate) isAction()      {}
func (ToggleTheme) isAction()         {}
