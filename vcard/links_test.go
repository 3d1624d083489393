// ABOUTME: Tests for outbound link builders
// ABOUTME: Covers sms separator platform split, handle normalization, and deep links
package vcard

import (
	"strings"
	"testing"

	"github.com/harperreed/cardscan/models"
)

func TestMailtoURL(t *testing.T) {
	got := MailtoURL("jane@acme.com", "Nice meeting you", "Hello & welcome")
	if !strings.HasPrefix(got, "mailto:jane@acme.com?") {
		t.Errorf("prefix wrong: %q", got)
	}
	if !strings.Contains(got, "subject=Nice+meeting+you") {
		t.Errorf("subject not encoded: %q", got)
	}
	if !strings.Contains(got, "body=Hello+%26+welcome") {
		t.Errorf("body not encoded: %q", got)
	}
}

func TestSMSURLSeparatorByPlatform(t *testing.T) {
	tests := []struct {
		goos string
		want string
	}{
		{"darwin", "sms:+15550100&body=hi"},
		{"ios", "sms:+15550100&body=hi"},
		{"linux", "sms:+15550100?body=hi"},
		{"windows", "sms:+15550100?body=hi"},
		{"android", "sms:+15550100?body=hi"},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			if got := smsURL("+1 (555) 0100", "hi", tt.goos); got != tt.want {
				t.Errorf("smsURL = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWhatsAppURLStripsToDigits(t *testing.T) {
	got := WhatsAppURL("+1 (555) 010-0199", "hello there")
	if got != "https://wa.me/15550100199?text=hello+there" {
		t.Errorf("WhatsAppURL = %q", got)
	}
}

func TestSocialURLEmptyValueFallsBackToHome(t *testing.T) {
	tests := []struct {
		platform string
		want     string
	}{
		{models.PlatformLinkedIn, "https://www.linkedin.com"},
		{models.PlatformTwitter, "https://twitter.com"},
		{models.PlatformFacebook, "https://www.facebook.com"},
		{models.PlatformInstagram, "https://www.instagram.com"},
	}
	for _, tt := range tests {
		if got := SocialURL(tt.platform, ""); got != tt.want {
			t.Errorf("SocialURL(%s, \"\") = %q, want %q", tt.platform, got, tt.want)
		}
	}
}

func TestSocialURLHandles(t *testing.T) {
	tests := []struct {
		name     string
		platform string
		value    string
		want     string
	}{
		{"linkedin full url kept", models.PlatformLinkedIn, "https://www.linkedin.com/in/janevdb", "https://www.linkedin.com/in/janevdb"},
		{"linkedin bare handle", models.PlatformLinkedIn, "janevdb", "https://www.linkedin.com/in/janevdb"},
		{"twitter at-handle", models.PlatformTwitter, "@janevdb", "https://twitter.com/janevdb"},
		{"twitter url collapsed to handle", models.PlatformTwitter, "https://twitter.com/janevdb", "https://twitter.com/janevdb"},
		{"facebook messenger deep link", models.PlatformFacebook, "jane.vdb", "http://m.me/jane.vdb"},
		{"instagram dm deep link", models.PlatformInstagram, "@janevdb", "https://ig.me/m/janevdb"},
		{"trailing slash trimmed", models.PlatformTwitter, "https://twitter.com/janevdb/", "https://twitter.com/janevdb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SocialURL(tt.platform, tt.value); got != tt.want {
				t.Errorf("SocialURL = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGoogleContactsURL(t *testing.T) {
	if got := GoogleContactsURL(); got != "https://contacts.google.com/new" {
		t.Errorf("GoogleContactsURL = %q", got)
	}
}

func TestComposePlain(t *testing.T) {
	got := ComposePlain("Hello", "Body text", "<b>Jane</b><br/><i>CTO</i>")
	want := "Subject: Hello\n\nBody text\n\n--\nJane\nCTO"
	if got != want {
		t.Errorf("ComposePlain = %q, want %q", got, want)
	}
}

func TestComposePlainNoSubject(t *testing.T) {
	got := ComposePlain("", "Short text", "Jane")
	if strings.Contains(got, "Subject:") {
		t.Errorf("empty subject must omit the subject line: %q", got)
	}
	if !strings.HasPrefix(got, "Short text") {
		t.Errorf("body must lead: %q", got)
	}
}

func TestComposeRich(t *testing.T) {
	got := ComposeRich("Hi", "line1\nline2", "<b>Jane</b>")
	if !strings.Contains(got, "<strong>Subject:</strong> Hi") {
		t.Errorf("subject missing: %q", got)
	}
	if !strings.Contains(got, "line1<br/>line2") {
		t.Errorf("newlines not converted: %q", got)
	}
	if !strings.Contains(got, "<b>Jane</b>") {
		t.Errorf("signature markup must be preserved: %q", got)
	}
}

func TestStripMarkup(t *testing.T) {
	got := StripMarkup(`<b>Jane Doe</b><br/><i>CTO</i><br/>Acme<img src="x"/>`)
	if got != "Jane Doe\nCTO\nAcme" {
		t.Errorf("StripMarkup = %q", got)
	}
}
