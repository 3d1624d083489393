// ABOUTME: AI message generation with deterministic fallback
// ABOUTME: Category-aware tone, short formats for SMS and social templates
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/harperreed/cardscan/pipeline"
)

// GenerateMessage drafts an outbound subject/body for a contact. Unlike
// extraction, a generation failure never propagates: the caller gets the
// deterministic fallback message instead.
func (c *Client) GenerateMessage(ctx context.Context, req pipeline.GenerateRequest) pipeline.Message {
	prompt := fmt.Sprintf(`You are a professional assistant writing an outbound message.

**Recipient Info:**
Name: %s
Company: %s
Title: %s

**Context of interaction:**
%s

**Message Type / Goal:** %q
**Category:** %s

**Sender Name:** %s

**Instructions:**
1. Write the subject and the body.
2. Adapt the tone to the category and message type.
3. Use the specific message type name to determine the exact content.
4. Return JSON with 'subject' and 'body'.
%s`,
		req.ContactName, req.ContactCompany, req.ContactTitle,
		req.Context, req.TemplateName, req.Category, req.SenderName,
		shortFormatConstraint(req.ShortFormat))

	greq := genRequest{
		Contents:         []genContent{{Parts: []genPart{{Text: prompt}}}},
		GenerationConfig: genConfig{ResponseMimeType: "application/json"},
	}

	text, err := c.generate(ctx, greq)
	if err != nil {
		log.Printf("message generation failed, using fallback: %v", err)
		return FallbackMessage(req)
	}

	var m pipeline.Message
	if err := json.Unmarshal([]byte(text), &m); err != nil {
		log.Printf("message generation returned malformed JSON, using fallback: %v", err)
		return FallbackMessage(req)
	}

	if m.Subject == "" && !req.ShortFormat {
		m.Subject = req.TemplateName
	}
	if m.Body == "" {
		m.Body = FallbackMessage(req).Body
	}
	return m
}

func shortFormatConstraint(short bool) string {
	if !short {
		return ""
	}
	return "Constraint: Keep the body short (under 280 chars for socials, under 160 for SMS). Return an empty subject."
}

// FallbackMessage is the deterministic template used when generation is
// unavailable. Same request, same message.
func FallbackMessage(req pipeline.GenerateRequest) pipeline.Message {
	subject := "Message: " + req.TemplateName
	if req.ShortFormat {
		subject = ""
	}
	return pipeline.Message{
		Subject: subject,
		Body: fmt.Sprintf("Hello %s,\n\nI am writing to you regarding: %s.\n\nBest regards,\n%s",
			req.ContactName, req.TemplateName, req.SenderName),
	}
}
