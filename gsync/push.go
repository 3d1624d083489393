// ABOUTME: Pushes saved contacts to Google Contacts via the People API
// ABOUTME: Optional, gated on stored OAuth credentials
package gsync

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	"google.golang.org/api/people/v1"

	"github.com/harperreed/cardscan/models"
)

// NewPeopleClient creates an authenticated People API service.
func NewPeopleClient(ctx context.Context, token *oauth2.Token) (*people.Service, error) {
	if token == nil {
		return nil, fmt.Errorf("token cannot be nil")
	}

	config := NewOAuthConfig()
	client := config.Client(ctx, token)

	service, err := people.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create People service: %w", err)
	}

	return service, nil
}

// PushContact creates one Google contact from a saved card. Returns the
// resource name of the created person.
func PushContact(ctx context.Context, svc *people.Service, c models.Contact) (string, error) {
	person := &people.Person{
		Names: []*people.Name{{UnstructuredName: c.FullName}},
	}
	if c.Email != "" {
		person.EmailAddresses = []*people.EmailAddress{{Value: c.Email}}
	}
	if c.Phone != "" {
		person.PhoneNumbers = []*people.PhoneNumber{{Value: c.Phone, Type: "mobile"}}
	}
	if c.Company != "" || c.Title != "" {
		person.Organizations = []*people.Organization{{Name: c.Company, Title: c.Title}}
	}
	if c.Website != "" {
		person.Urls = []*people.Url{{Value: c.Website}}
	}
	if c.Address != "" {
		person.Addresses = []*people.Address{{FormattedValue: c.Address, Type: "work"}}
	}
	if c.Notes != "" {
		person.Biographies = []*people.Biography{{Value: c.Notes}}
	}

	created, err := svc.People.CreateContact(person).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create Google contact: %w", err)
	}
	return created.ResourceName, nil
}
