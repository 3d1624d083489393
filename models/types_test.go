// ABOUTME: Tests for model serialization and defaults
// ABOUTME: Verifies JSON field names, id generation, and signature rendering
package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactJSONFieldNames(t *testing.T) {
	c := Contact{
		ID:        "01J8ME3P",
		Timestamp: 1700000000000,
		FullName:  "Jane Doe",
		Title:     "CTO",
		Company:   "Acme",
		Email:     "jane@acme.com",
		Phone:     "+15550100",
		Website:   "acme.com",
		Address:   "1 Main St",
		Socials:   map[string]string{"linkedin": "janedoe"},
		Notes:     "hi",
	}

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))

	for _, key := range []string{"id", "timestamp", "fullName", "title", "company", "email", "phone", "website", "address", "socials", "notes"} {
		assert.Contains(t, raw, key)
	}
	assert.NotContains(t, raw, "scanImage", "empty optional fields must be omitted")
}

func TestContactRoundTrip(t *testing.T) {
	c := NewContact()
	c.FullName = "Jane Doe"
	c.Socials["twitter"] = "@jane"

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var back Contact
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, c, back)
}

func TestLegacyContactWithoutSocialsParses(t *testing.T) {
	var c Contact
	require.NoError(t, json.Unmarshal([]byte(`{"id":"x","timestamp":1,"fullName":"Old"}`), &c))
	assert.Equal(t, "Old", c.FullName)
	assert.Nil(t, c.Socials)
}

func TestNewContactIDsAreUniqueAndSortable(t *testing.T) {
	a := NewContactID()
	b := NewContactID()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 26, "ulid encoding is 26 chars")
}

func TestNewContactStartsEmpty(t *testing.T) {
	c := NewContact()
	assert.NotEmpty(t, c.ID)
	assert.NotZero(t, c.Timestamp)
	assert.NotNil(t, c.Socials)
	assert.Empty(t, c.FullName)
}

func TestDefaultSignature(t *testing.T) {
	sig := DefaultSignature()
	assert.Equal(t, DefaultSignatureID, sig.ID)
	assert.True(t, sig.IsDefault)
	require.NotNil(t, sig.Data)
	assert.Equal(t, RenderSignature(sig.Data), sig.Content)
}

func TestRenderSignature(t *testing.T) {
	data := &SignatureData{Name: "Jane", Title: "CTO", Company: "Acme"}
	content := RenderSignature(data)
	assert.Contains(t, content, "<b>Jane</b>")
	assert.Contains(t, content, "<i>CTO</i>")
	assert.Contains(t, content, "Acme")
	assert.NotContains(t, content, "<img", "no logo means no image tag")

	withLogo := RenderSignature(&SignatureData{Name: "Jane", Logo: "data:image/png;base64,x"})
	assert.Contains(t, withLogo, "<img")
}

func TestDefaultTemplatesCoverAllDefaultCategories(t *testing.T) {
	cats := make(map[string]bool)
	for _, c := range DefaultCategories() {
		cats[c] = true
	}
	for _, tmpl := range DefaultTemplates() {
		assert.Truef(t, cats[tmpl.Category], "template %q references unknown category %q", tmpl.Name, tmpl.Category)
		assert.NotEmpty(t, tmpl.ID)
	}
}
