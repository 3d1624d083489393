// ABOUTME: Data models for scanned contacts and workflow state
// ABOUTME: Defines Contact, UserSignature, EmailTemplate, and AppState structs
package models

import (
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// AppStep is the workflow state the UI is currently in.
type AppStep string

const (
	StepScan       AppStep = "SCAN"
	StepQRScan     AppStep = "QR_SCAN"
	StepProcessing AppStep = "PROCESSING"
	StepValidate   AppStep = "VALIDATE"
	StepActions    AppStep = "ACTIONS"
	StepHistory    AppStep = "HISTORY"
)

// Social platform keys. Contact.Socials maps these to URLs or handles.
const (
	PlatformLinkedIn  = "linkedin"
	PlatformTwitter   = "twitter"
	PlatformFacebook  = "facebook"
	PlatformInstagram = "instagram"
)

// Platforms lists the supported social keys in display order.
var Platforms = []string{PlatformLinkedIn, PlatformTwitter, PlatformFacebook, PlatformInstagram}

// Contact is a scanned or manually created address-book entry. All string
// fields use "" as the unset value; a manual entry may be entirely empty.
type Contact struct {
	ID           string            `json:"id"`
	Timestamp    int64             `json:"timestamp"` // unix milliseconds
	ScanImage    string            `json:"scanImage,omitempty"`
	ProfileImage string            `json:"profileImage,omitempty"`
	FullName     string            `json:"fullName"`
	Title        string            `json:"title"`
	Company      string            `json:"company"`
	Email        string            `json:"email"`
	Phone        string            `json:"phone"`
	Website      string            `json:"website"`
	Address      string            `json:"address"`
	Socials      map[string]string `json:"socials"`
	Notes        string            `json:"notes,omitempty"`
}

// SignatureData is the structured source of truth for a signature. When
// present, the rendered Content is regenerated from these fields.
type SignatureData struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Company string `json:"company"`
	Logo    string `json:"logo"`
}

// UserSignature is a named sending identity shown in the profile switcher.
type UserSignature struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Content   string         `json:"content"`
	IsDefault bool           `json:"isDefault"`
	Data      *SignatureData `json:"data,omitempty"`
}

// EmailTemplate names a message type within a category. Category must match
// an entry in AppState.Categories to be reachable through the category
// filter; deleting a category orphans its templates without purging them.
type EmailTemplate struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// AppState is the aggregate owned by the reducer. Categories and Templates
// are unified lists holding both built-in defaults and user additions.
type AppState struct {
	Step             AppStep
	CurrentContact   *Contact
	History          []Contact
	Signatures       []UserSignature
	Categories       []string
	Templates        []EmailTemplate
	IsDarkMode       bool
	ProcessingStatus string
}

// NewContactID returns a time-ordered unique id for a contact. ULIDs keep
// history ids sortable by creation instant without collision risk.
func NewContactID() string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// Now returns the contact timestamp for the current instant.
func Now() int64 {
	return time.Now().UnixMilli()
}

// NewContact returns an empty draft contact with a fresh id and timestamp.
func NewContact() Contact {
	return Contact{
		ID:        NewContactID(),
		Timestamp: Now(),
		Socials:   map[string]string{},
	}
}
