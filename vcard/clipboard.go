// ABOUTME: Clipboard export of drafted messages with signature
// ABOUTME: Plain-text always; rich markup only where the platform allows
package vcard

import (
	"strings"

	"github.com/atotto/clipboard"
)

// ComposePlain assembles the plain-text clipboard form of a drafted
// message: optional subject line, body, then the signature with markup
// stripped.
func ComposePlain(subject, body, signatureContent string) string {
	var b strings.Builder
	if subject != "" {
		b.WriteString("Subject: " + subject + "\n\n")
	}
	b.WriteString(body)
	b.WriteString("\n\n--\n")
	b.WriteString(StripMarkup(signatureContent))
	return b.String()
}

// ComposeRich assembles the rich (HTML) clipboard form.
func ComposeRich(subject, body, signatureContent string) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family: sans-serif; font-size: 14px; color: #333;">`)
	if subject != "" {
		b.WriteString("<strong>Subject:</strong> " + subject + "<br/><br/>")
	}
	b.WriteString(strings.ReplaceAll(body, "\n", "<br/>"))
	b.WriteString("<br/><br/>--<br/>")
	b.WriteString(signatureContent)
	b.WriteString("</div>")
	return b.String()
}

// Copy writes a drafted message to the system clipboard. Terminal
// clipboards are plain-text only, so the rich form is not attempted here;
// callers with a multi-format clipboard capability pass both forms to
// their own writer and fall back to this one.
func Copy(subject, body, signatureContent string) error {
	return clipboard.WriteAll(ComposePlain(subject, body, signatureContent))
}

// StripMarkup flattens signature markup to plain text: <br/> becomes a
// newline, every other tag is dropped.
func StripMarkup(content string) string {
	s := strings.ReplaceAll(content, "<br/>", "\n")
	s = strings.ReplaceAll(s, "<br>", "\n")
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}
