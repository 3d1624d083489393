// ABOUTME: Outbound messaging and social deep-link builders
// ABOUTME: mailto, sms, WhatsApp, and social-network URL construction
package vcard

import (
	"net/url"
	"runtime"
	"strings"

	"github.com/harperreed/cardscan/models"
)

// MailtoURL builds a mailto: URI with percent-encoded subject and body.
func MailtoURL(email, subject, body string) string {
	return "mailto:" + email +
		"?subject=" + url.QueryEscape(subject) +
		"&body=" + url.QueryEscape(body)
}

// SMSURL builds an sms: URI. Apple platforms separate the body parameter
// with '&', everything else uses '?'.
func SMSURL(phone, body string) string {
	return smsURL(phone, body, runtime.GOOS)
}

func smsURL(phone, body, goos string) string {
	sep := "?"
	if goos == "darwin" || goos == "ios" {
		sep = "&"
	}
	return "sms:" + stripPhone(phone, true) + sep + "body=" + url.QueryEscape(body)
}

// WhatsAppURL builds a wa.me link with a digits-only phone number.
func WhatsAppURL(phone, body string) string {
	return "https://wa.me/" + stripPhone(phone, false) + "?text=" + url.QueryEscape(body)
}

// GoogleContactsURL opens the new-contact form.
func GoogleContactsURL() string {
	return "https://contacts.google.com/new"
}

// SocialURL resolves a platform value (full URL or bare handle) to a
// message/profile deep link, falling back to the network's home page when
// the contact has no value for that platform.
func SocialURL(platform, value string) string {
	if value == "" {
		switch platform {
		case models.PlatformLinkedIn:
			return "https://www.linkedin.com"
		case models.PlatformTwitter:
			return "https://twitter.com"
		case models.PlatformFacebook:
			return "https://www.facebook.com"
		case models.PlatformInstagram:
			return "https://www.instagram.com"
		}
		return ""
	}

	handle := normalizeHandle(value)
	switch platform {
	case models.PlatformLinkedIn:
		if strings.Contains(value, "http") {
			return value
		}
		return "https://www.linkedin.com/in/" + handle
	case models.PlatformTwitter:
		return "https://twitter.com/" + handle
	case models.PlatformFacebook:
		return "http://m.me/" + handle
	case models.PlatformInstagram:
		return "https://ig.me/m/" + handle
	}
	return ""
}

// normalizeHandle extracts a bare handle from a URL or @-prefixed value.
func normalizeHandle(value string) string {
	handle := strings.TrimSuffix(value, "/")
	if strings.Contains(handle, "http") {
		parts := strings.Split(handle, "/")
		handle = parts[len(parts)-1]
	}
	return strings.ReplaceAll(handle, "@", "")
}

// stripPhone reduces a phone number to digits, optionally keeping a
// leading '+'.
func stripPhone(phone string, keepPlus bool) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if keepPlus && r == '+' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
