// ABOUTME: Tests for vCard generation, parsing, and export
// ABOUTME: Covers round-trip fidelity, name splitting, and filename fallback
package vcard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harperreed/cardscan/models"
)

func sampleContact() models.Contact {
	return models.Contact{
		ID:        "c1",
		Timestamp: 1700000000000,
		FullName:  "Jane van der Berg",
		Title:     "CTO",
		Company:   "Acme Corp",
		Email:     "jane@acme.com",
		Phone:     "+1 (555) 010-0199",
		Website:   "https://acme.com",
		Address:   "1 Main St, Springfield",
		Notes:     "met at gophercon",
		Socials: map[string]string{
			models.PlatformLinkedIn: "https://www.linkedin.com/in/janevdb",
			models.PlatformTwitter:  "@janevdb",
		},
	}
}

func TestGenerateStructure(t *testing.T) {
	card := Generate(sampleContact())

	if !strings.HasPrefix(card, "BEGIN:VCARD\nVERSION:3.0\n") {
		t.Errorf("missing preamble:\n%s", card)
	}
	if !strings.HasSuffix(card, "END:VCARD") {
		t.Errorf("missing terminator:\n%s", card)
	}

	for _, want := range []string{
		"FN:Jane van der Berg",
		"N:Berg;Jane van der;;;",
		"ORG:Acme Corp",
		"TITLE:CTO",
		"TEL;TYPE=CELL:+1 (555) 010-0199",
		"EMAIL:jane@acme.com",
		"URL:https://acme.com",
		"ADR;TYPE=WORK:;;1 Main St, Springfield;;;;",
		"NOTE:met at gophercon",
		"X-SOCIALPROFILE;type=linkedin:https://www.linkedin.com/in/janevdb",
		"X-SOCIALPROFILE;type=twitter:@janevdb",
	} {
		if !strings.Contains(card, want+"\n") && !strings.Contains(card, want) {
			t.Errorf("missing line %q in:\n%s", want, card)
		}
	}
}

func TestGenerateParseRoundTrip(t *testing.T) {
	original := sampleContact()
	parsed := Parse(Generate(original))

	if parsed.FullName != original.FullName {
		t.Errorf("FullName = %q", parsed.FullName)
	}
	if parsed.Company != original.Company {
		t.Errorf("Company = %q", parsed.Company)
	}
	if parsed.Title != original.Title {
		t.Errorf("Title = %q", parsed.Title)
	}
	if parsed.Email != original.Email {
		t.Errorf("Email = %q", parsed.Email)
	}
	if parsed.Phone != original.Phone {
		t.Errorf("Phone = %q", parsed.Phone)
	}
	if parsed.Website != original.Website {
		t.Errorf("Website = %q", parsed.Website)
	}
	if parsed.Address != original.Address {
		t.Errorf("Address = %q", parsed.Address)
	}
	if parsed.Notes != original.Notes {
		t.Errorf("Notes = %q", parsed.Notes)
	}
	if parsed.Socials[models.PlatformLinkedIn] != original.Socials[models.PlatformLinkedIn] {
		t.Errorf("linkedin = %q", parsed.Socials[models.PlatformLinkedIn])
	}
	if parsed.Socials[models.PlatformTwitter] != original.Socials[models.PlatformTwitter] {
		t.Errorf("twitter = %q", parsed.Socials[models.PlatformTwitter])
	}
}

func TestParseSkipsUnknownLines(t *testing.T) {
	card := "BEGIN:VCARD\nVERSION:3.0\nFN:Solo\nX-UNKNOWN:whatever\nnot a tag line\nEND:VCARD"
	c := Parse(card)
	if c.FullName != "Solo" {
		t.Errorf("FullName = %q", c.FullName)
	}
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		full  string
		first string
		last  string
	}{
		{"Jane Doe", "Jane", "Doe"},
		{"Jane van der Berg", "Jane van der", "Berg"},
		{"Prince", "Prince", ""},
		{"", "", ""},
	}
	for _, tt := range tests {
		first, last := splitName(tt.full)
		if first != tt.first || last != tt.last {
			t.Errorf("splitName(%q) = (%q, %q), want (%q, %q)", tt.full, first, last, tt.first, tt.last)
		}
	}
}

func TestFilename(t *testing.T) {
	if got := Filename(models.Contact{FullName: "Jane Doe"}); got != "Jane Doe.vcf" {
		t.Errorf("Filename = %q", got)
	}
	if got := Filename(models.Contact{FullName: "  "}); got != "contact.vcf" {
		t.Errorf("fallback Filename = %q", got)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	c := sampleContact()

	path, err := WriteFile(c, dir)
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if filepath.Base(path) != "Jane van der Berg.vcf" {
		t.Errorf("path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != Generate(c) {
		t.Error("written file differs from generated card")
	}
}
