// ABOUTME: Tests for the deterministic message fallback and extraction parsing
// ABOUTME: Exercises the offline paths; no network calls
package gemini

import (
	"strings"
	"testing"

	"github.com/harperreed/cardscan/pipeline"
)

func TestFallbackMessageDeterministic(t *testing.T) {
	req := pipeline.GenerateRequest{
		ContactName:  "Jane Doe",
		TemplateName: "Follow-up",
		SenderName:   "Harper",
	}

	first := FallbackMessage(req)
	second := FallbackMessage(req)
	if first != second {
		t.Error("fallback must be deterministic for the same request")
	}

	if first.Subject != "Message: Follow-up" {
		t.Errorf("Subject = %q", first.Subject)
	}
	if !strings.Contains(first.Body, "Hello Jane Doe,") {
		t.Errorf("Body missing greeting: %q", first.Body)
	}
	if !strings.Contains(first.Body, "Follow-up") {
		t.Errorf("Body missing template name: %q", first.Body)
	}
	if !strings.HasSuffix(first.Body, "Harper") {
		t.Errorf("Body missing sender: %q", first.Body)
	}
}

func TestFallbackMessageShortFormatHasNoSubject(t *testing.T) {
	req := pipeline.GenerateRequest{
		ContactName:  "Jane",
		TemplateName: "Quick hello",
		SenderName:   "Harper",
		ShortFormat:  true,
	}
	if got := FallbackMessage(req); got.Subject != "" {
		t.Errorf("short format must have empty subject, got %q", got.Subject)
	}
}

func TestShortFormatConstraint(t *testing.T) {
	if shortFormatConstraint(false) != "" {
		t.Error("long format must add no constraint")
	}
	if c := shortFormatConstraint(true); !strings.Contains(c, "empty subject") {
		t.Errorf("short constraint incomplete: %q", c)
	}
}

func TestStripDataURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"data:image/jpeg;base64,abc123", "abc123"},
		{"abc123", "abc123"},
	}
	for _, tt := range tests {
		if got := stripDataURL(tt.in); got != tt.want {
			t.Errorf("stripDataURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
