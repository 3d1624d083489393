// ABOUTME: Card CLI commands
// ABOUTME: Human-friendly commands for browsing and exporting scanned contacts
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/harperreed/cardscan/models"
	"github.com/harperreed/cardscan/state"
	"github.com/harperreed/cardscan/vcard"
)

// ListCardsCommand lists scanned contacts, newest first.
func ListCardsCommand(dispatcher *state.Dispatcher, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	query := fs.String("query", "", "Search by name, company, or email")
	limit := fs.Int("limit", 50, "Maximum results")
	_ = fs.Parse(args)

	q := strings.ToLower(*query)
	var matched []models.Contact
	for _, c := range dispatcher.State().History {
		if q != "" &&
			!strings.Contains(strings.ToLower(c.FullName), q) &&
			!strings.Contains(strings.ToLower(c.Company), q) &&
			!strings.Contains(strings.ToLower(c.Email), q) {
			continue
		}
		matched = append(matched, c)
		if len(matched) >= *limit {
			break
		}
	}

	if len(matched) == 0 {
		fmt.Println("No contacts found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tCOMPANY\tEMAIL\tSCANNED\tID")
	_, _ = fmt.Fprintln(w, "----\t-------\t-----\t-------\t--")
	for _, c := range matched {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			orDash(c.FullName), orDash(c.Company), orDash(c.Email),
			time.UnixMilli(c.Timestamp).Format("2006-01-02"), shortID(c.ID))
	}
	_ = w.Flush()

	fmt.Printf("\nTotal: %d contact(s)\n", len(matched))
	return nil
}

// ShowCardCommand prints a single contact in full.
func ShowCardCommand(dispatcher *state.Dispatcher, args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	_ = fs.Parse(args)

	if len(fs.Args()) < 1 {
		return fmt.Errorf("contact ID is required")
	}

	c, ok := findContact(dispatcher, fs.Args()[0])
	if !ok {
		return fmt.Errorf("contact not found: %s", fs.Args()[0])
	}

	fmt.Printf("%s (ID: %s)\n", c.FullName, c.ID)
	printField("Title", c.Title)
	printField("Company", c.Company)
	printField("Email", c.Email)
	printField("Phone", c.Phone)
	printField("Website", c.Website)
	printField("Address", c.Address)
	for platform, handle := range c.Socials {
		printField(platform, handle)
	}
	printField("Notes", c.Notes)
	fmt.Printf("  Scanned: %s\n", time.UnixMilli(c.Timestamp).Format(time.RFC1123))
	return nil
}

// ExportCardCommand writes a contact as a .vcf file.
func ExportCardCommand(dispatcher *state.Dispatcher, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	output := fs.String("output", "", "Output path (default <name>.vcf in the current directory)")
	_ = fs.Parse(args)

	if len(fs.Args()) < 1 {
		return fmt.Errorf("contact ID is required")
	}

	c, ok := findContact(dispatcher, fs.Args()[0])
	if !ok {
		return fmt.Errorf("contact not found: %s", fs.Args()[0])
	}

	var path string
	if *output != "" {
		path = *output
		if err := os.WriteFile(path, []byte(vcard.Generate(c)), 0644); err != nil {
			return fmt.Errorf("failed to write vCard: %w", err)
		}
	} else {
		var err error
		path, err = vcard.WriteFile(c, ".")
		if err != nil {
			return fmt.Errorf("failed to write vCard: %w", err)
		}
	}

	fmt.Printf("✓ Exported %s to %s\n", c.FullName, path)
	return nil
}

// DeleteCardCommand removes a contact from history.
func DeleteCardCommand(dispatcher *state.Dispatcher, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	_ = fs.Parse(args)

	if len(fs.Args()) < 1 {
		return fmt.Errorf("contact ID is required")
	}

	c, ok := findContact(dispatcher, fs.Args()[0])
	if !ok {
		return fmt.Errorf("contact not found: %s", fs.Args()[0])
	}

	dispatcher.Dispatch(state.DeleteContact{ID: c.ID})
	fmt.Printf("✓ Contact deleted: %s\n", c.ID)
	return nil
}

// AddCardCommand creates a contact from flags, without the scan pipeline.
func AddCardCommand(dispatcher *state.Dispatcher, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	name := fs.String("name", "", "Contact name (required)")
	title := fs.String("title", "", "Job title")
	company := fs.String("company", "", "Company name")
	email := fs.String("email", "", "Email address")
	phone := fs.String("phone", "", "Phone number")
	website := fs.String("website", "", "Website URL")
	notes := fs.String("notes", "", "Notes about the contact")
	_ = fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("--name is required")
	}

	c := models.NewContact()
	c.FullName = *name
	c.Title = *title
	c.Company = *company
	c.Email = *email
	c.Phone = *phone
	c.Website = *website
	c.Notes = *notes

	dispatcher.Dispatch(state.SaveContact{Contact: c})
	fmt.Printf("✓ Contact created: %s (ID: %s)\n", c.FullName, c.ID)
	return nil
}

// findContact accepts either a full ID or an unambiguous prefix.
func findContact(dispatcher *state.Dispatcher, id string) (models.Contact, bool) {
	var match models.Contact
	var found bool
	for _, c := range dispatcher.State().History {
		if c.ID == id {
			return c, true
		}
		if strings.HasPrefix(c.ID, id) {
			if found {
				return models.Contact{}, false // ambiguous prefix
			}
			match = c
			found = true
		}
	}
	return match, found
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func printField(label, value string) {
	if value == "" {
		return
	}
	if label != "" {
		label = strings.ToUpper(label[:1]) + label[1:]
	}
	fmt.Printf("  %s: %s\n", label, value)
}
