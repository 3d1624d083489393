// ABOUTME: Contact MCP tool handlers over the reducer-backed store
// ABOUTME: Implements find_contacts, get_contact, save_contact, delete_contact, export_vcard
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/cardscan/models"
	"github.com/harperreed/cardscan/state"
	"github.com/harperreed/cardscan/vcard"
)

type ContactHandlers struct {
	dispatcher *state.Dispatcher
}

func NewContactHandlers(d *state.Dispatcher) *ContactHandlers {
	return &ContactHandlers{dispatcher: d}
}

type ContactOutput struct {
	ID        string            `json:"id"`
	Timestamp int64             `json:"timestamp"`
	FullName  string            `json:"full_name"`
	Title     string            `json:"title,omitempty"`
	Company   string            `json:"company,omitempty"`
	Email     string            `json:"email,omitempty"`
	Phone     string            `json:"phone,omitempty"`
	Website   string            `json:"website,omitempty"`
	Address   string            `json:"address,omitempty"`
	Socials   map[string]string `json:"socials,omitempty"`
	Notes     string            `json:"notes,omitempty"`
}

func contactToOutput(c models.Contact) ContactOutput {
	return ContactOutput{
		ID:        c.ID,
		Timestamp: c.Timestamp,
		FullName:  c.FullName,
		Title:     c.Title,
		Company:   c.Company,
		Email:     c.Email,
		Phone:     c.Phone,
		Website:   c.Website,
		Address:   c.Address,
		Socials:   c.Socials,
		Notes:     c.Notes,
	}
}

type FindContactsInput struct {
	Query string `json:"query,omitempty" jsonschema:"Search query (matches name, company, and email)"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 10)"`
}

type FindContactsOutput struct {
	Contacts []ContactOutput `json:"contacts"`
	Count    int             `json:"count"`
}

func (h *ContactHandlers) FindContacts(_ context.Context, _ *mcp.CallToolRequest, input FindContactsInput) (*mcp.CallToolResult, FindContactsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	query := strings.ToLower(input.Query)
	var out []ContactOutput
	for _, c := range h.dispatcher.State().History {
		if query != "" &&
			!strings.Contains(strings.ToLower(c.FullName), query) &&
			!strings.Contains(strings.ToLower(c.Company), query) &&
			!strings.Contains(strings.ToLower(c.Email), query) {
			continue
		}
		out = append(out, contactToOutput(c))
		if len(out) >= limit {
			break
		}
	}

	return nil, FindContactsOutput{Contacts: out, Count: len(out)}, nil
}

type GetContactInput struct {
	ID string `json:"id" jsonschema:"Contact ID (required)"`
}

func (h *ContactHandlers) GetContact(_ context.Context, _ *mcp.CallToolRequest, input GetContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	c, ok := h.find(input.ID)
	if !ok {
		return nil, ContactOutput{}, fmt.Errorf("contact %s not found", input.ID)
	}
	return nil, contactToOutput(c), nil
}

type SaveContactInput struct {
	ID       string `json:"id,omitempty" jsonschema:"Existing contact ID to update; omit to create"`
	FullName string `json:"full_name" jsonschema:"Contact full name"`
	Title    string `json:"title,omitempty" jsonschema:"Job title"`
	Company  string `json:"company,omitempty" jsonschema:"Company name"`
	Email    string `json:"email,omitempty" jsonschema:"Email address"`
	Phone    string `json:"phone,omitempty" jsonschema:"Phone number"`
	Website  string `json:"website,omitempty" jsonschema:"Website URL"`
	Address  string `json:"address,omitempty" jsonschema:"Postal address"`
	Notes    string `json:"notes,omitempty" jsonschema:"Notes about the contact"`
}

func (h *ContactHandlers) SaveContact(_ context.Context, _ *mcp.CallToolRequest, input SaveContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	var c models.Contact
	if input.ID != "" {
		existing, ok := h.find(input.ID)
		if !ok {
			return nil, ContactOutput{}, fmt.Errorf("contact %s not found", input.ID)
		}
		c = existing
	} else {
		c = models.NewContact()
	}

	c.FullName = input.FullName
	c.Title = input.Title
	c.Company = input.Company
	c.Email = input.Email
	c.Phone = input.Phone
	c.Website = input.Website
	c.Address = input.Address
	c.Notes = input.Notes

	h.dispatcher.Dispatch(state.SaveContact{Contact: c})
	return nil, contactToOutput(c), nil
}

type DeleteContactInput struct {
	ID string `json:"id" jsonschema:"Contact ID (required)"`
}

type DeleteContactOutput struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

func (h *ContactHandlers) DeleteContact(_ context.Context, _ *mcp.CallToolRequest, input DeleteContactInput) (*mcp.CallToolResult, DeleteContactOutput, error) {
	if _, ok := h.find(input.ID); !ok {
		return nil, DeleteContactOutput{}, fmt.Errorf("contact %s not found", input.ID)
	}
	h.dispatcher.Dispatch(state.DeleteContact{ID: input.ID})
	return nil, DeleteContactOutput{Deleted: true, ID: input.ID}, nil
}

type ExportVCardInput struct {
	ID string `json:"id" jsonschema:"Contact ID (required)"`
}

type ExportVCardOutput struct {
	Filename string `json:"filename"`
	VCard    string `json:"vcard"`
}

func (h *ContactHandlers) ExportVCard(_ context.Context, _ *mcp.CallToolRequest, input ExportVCardInput) (*mcp.CallToolResult, ExportVCardOutput, error) {
	c, ok := h.find(input.ID)
	if !ok {
		return nil, ExportVCardOutput{}, fmt.Errorf("contact %s not found", input.ID)
	}
	return nil, ExportVCardOutput{Filename: vcard.Filename(c), VCard: vcard.Generate(c)}, nil
}

func (h *ContactHandlers) find(id string) (models.Contact, bool) {
	for _, c := range h.dispatcher.State().History {
		if c.ID == id {
			return c, true
		}
	}
	return models.Contact{}, false
}
