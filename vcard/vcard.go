// ABOUTME: vCard 3.0 generation and parsing for contact export
// ABOUTME: Maps contact fields to fixed tags with social-profile extensions
package vcard

import (
	"fmt"
	"os"
	"strings"

	"github.com/harperreed/cardscan/models"
)

// Generate renders a contact as a vCard 3.0 record. Structured name is
// split on the last space: everything before is the given name, the final
// token the family name.
func Generate(c models.Contact) string {
	first, last := splitName(c.FullName)

	var b strings.Builder
	b.WriteString("BEGIN:VCARD\n")
	b.WriteString("VERSION:3.0\n")
	fmt.Fprintf(&b, "FN:%s\n", c.FullName)
	fmt.Fprintf(&b, "N:%s;%s;;;\n", last, first)
	fmt.Fprintf(&b, "ORG:%s\n", c.Company)
	fmt.Fprintf(&b, "TITLE:%s\n", c.Title)
	fmt.Fprintf(&b, "TEL;TYPE=CELL:%s\n", c.Phone)
	fmt.Fprintf(&b, "EMAIL:%s\n", c.Email)
	fmt.Fprintf(&b, "URL:%s\n", c.Website)
	fmt.Fprintf(&b, "ADR;TYPE=WORK:;;%s;;;;\n", c.Address)
	fmt.Fprintf(&b, "NOTE:%s\n", c.Notes)

	if v := c.Socials[models.PlatformLinkedIn]; v != "" {
		fmt.Fprintf(&b, "X-SOCIALPROFILE;type=linkedin:%s\n", v)
	}
	if v := c.Socials[models.PlatformTwitter]; v != "" {
		fmt.Fprintf(&b, "X-SOCIALPROFILE;type=twitter:%s\n", v)
	}

	b.WriteString("END:VCARD")
	return b.String()
}

// Parse recovers the structured tags from a generated vCard. It is shape
// tolerant: unknown lines are skipped. Used for import of QR/NFC vCards
// and to verify exports round-trip.
func Parse(data string) models.Contact {
	c := models.Contact{Socials: map[string]string{}}
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimRight(line, "\r")
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		tag, _, _ := strings.Cut(key, ";")
		switch strings.ToUpper(tag) {
		case "FN":
			c.FullName = value
		case "ORG":
			c.Company = value
		case "TITLE":
			c.Title = value
		case "TEL":
			c.Phone = value
		case "EMAIL":
			c.Email = value
		case "URL":
			c.Website = value
		case "ADR":
			// ADR:;;street;;;; (the street component is all we emit)
			parts := strings.Split(value, ";")
			if len(parts) > 2 {
				c.Address = parts[2]
			}
		case "NOTE":
			c.Notes = value
		case "X-SOCIALPROFILE":
			if strings.Contains(strings.ToLower(key), "linkedin") {
				c.Socials[models.PlatformLinkedIn] = value
			} else if strings.Contains(strings.ToLower(key), "twitter") {
				c.Socials[models.PlatformTwitter] = value
			}
		}
	}
	return c
}

// Filename is the download name for a contact's card: the full name with
// a fixed fallback when empty.
func Filename(c models.Contact) string {
	name := strings.TrimSpace(c.FullName)
	if name == "" {
		name = "contact"
	}
	return name + ".vcf"
}

// WriteFile exports a contact as a .vcf file in dir and returns the path.
func WriteFile(c models.Contact, dir string) (string, error) {
	path := dir + string(os.PathSeparator) + Filename(c)
	if err := os.WriteFile(path, []byte(Generate(c)), 0644); err != nil {
		return "", fmt.Errorf("failed to write vcard: %w", err)
	}
	return path, nil
}

func splitName(full string) (first, last string) {
	parts := strings.Fields(full)
	if len(parts) < 2 {
		return full, ""
	}
	return strings.Join(parts[:len(parts)-1], " "), parts[len(parts)-1]
}
