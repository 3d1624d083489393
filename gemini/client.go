// ABOUTME: Gemini REST client implementing the AI extraction collaborator
// ABOUTME: Structured-JSON extraction from card images, QR text, and NFC payloads
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"

	"github.com/harperreed/cardscan/pipeline"
)

const (
	defaultModel = "gemini-2.5-flash"
	baseURL      = "https://generativelanguage.googleapis.com/v1beta/models"
)

// Client calls the Gemini generateContent endpoint. It implements
// pipeline.Extractor: extraction failures are returned as errors, message
// generation falls back to a deterministic template instead.
type Client struct {
	apiKey string
	model  string
	http   *http.Client
}

// NewClient reads the API key from GEMINI_API_KEY, consulting a local
// .env file and the stored setup file first.
func NewClient() (*Client, error) {
	_ = godotenv.Load()
	_ = godotenv.Load(filepath.Join(xdg.DataHome, "cardscan", ".env"))

	key := os.Getenv("GEMINI_API_KEY")
	if key == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set (run 'cardscan setup')")
	}

	return &Client{
		apiKey: key,
		model:  defaultModel,
		http:   &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// request/response shapes for generateContent.
type genRequest struct {
	Contents         []genContent `json:"contents"`
	GenerationConfig genConfig    `json:"generationConfig"`
}

type genContent struct {
	Parts []genPart `json:"parts"`
}

type genPart struct {
	Text       string         `json:"text,omitempty"`
	InlineData *genInlineData `json:"inline_data,omitempty"`
}

type genInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type genConfig struct {
	ResponseMimeType string `json:"responseMimeType"`
}

type genResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// ExtractFromImage analyzes a card image plus OCR hint text.
func (c *Client) ExtractFromImage(ctx context.Context, encoded, hint string) (pipeline.ExtractedFields, error) {
	prompt := fmt.Sprintf(`Analyze this business card image and the provided OCR text to extract contact details.
OCR Text: %q

Extract the following JSON fields accurately: fullName, title, company, email, phone, website, address, linkedin, twitter, facebook, instagram.
If a field is not found, return an empty string. Format phone numbers internationally if possible.
For socials, extract the full URL or handle.`, hint)

	req := genRequest{
		Contents: []genContent{{Parts: []genPart{
			{InlineData: &genInlineData{MimeType: "image/jpeg", Data: stripDataURL(encoded)}},
			{Text: prompt},
		}}},
		GenerationConfig: genConfig{ResponseMimeType: "application/json"},
	}

	return c.extract(ctx, req)
}

// ExtractFromText analyzes raw QR or NFC payload text (vCard, MeCard, or
// free text).
func (c *Client) ExtractFromText(ctx context.Context, raw string) (pipeline.ExtractedFields, error) {
	prompt := fmt.Sprintf(`Analyze this text to extract contact details. It is likely QR code or NFC tag content (vCard, MeCard or raw text).
Text Content: %q

Extract the following JSON fields accurately: fullName, title, company, email, phone, website, address, linkedin, twitter, facebook, instagram.
If a field is not found, return an empty string. Format phone numbers internationally if possible.
For socials, extract the full URL or handle.`, raw)

	req := genRequest{
		Contents:         []genContent{{Parts: []genPart{{Text: prompt}}}},
		GenerationConfig: genConfig{ResponseMimeType: "application/json"},
	}

	return c.extract(ctx, req)
}

func (c *Client) extract(ctx context.Context, req genRequest) (pipeline.ExtractedFields, error) {
	text, err := c.generate(ctx, req)
	if err != nil {
		return pipeline.ExtractedFields{}, fmt.Errorf("extraction failed: %w", err)
	}

	var raw struct {
		FullName  string `json:"fullName"`
		Title     string `json:"title"`
		Company   string `json:"company"`
		Email     string `json:"email"`
		Phone     string `json:"phone"`
		Website   string `json:"website"`
		Address   string `json:"address"`
		LinkedIn  string `json:"linkedin"`
		Twitter   string `json:"twitter"`
		Facebook  string `json:"facebook"`
		Instagram string `json:"instagram"`
	}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return pipeline.ExtractedFields{}, fmt.Errorf("extraction returned malformed JSON: %w", err)
	}

	return pipeline.ExtractedFields{
		FullName: raw.FullName,
		Title:    raw.Title,
		Company:  raw.Company,
		Email:    raw.Email,
		Phone:    raw.Phone,
		Website:  raw.Website,
		Address:  raw.Address,
		Socials: map[string]string{
			"linkedin":  raw.LinkedIn,
			"twitter":   raw.Twitter,
			"facebook":  raw.Facebook,
			"instagram": raw.Instagram,
		},
	}, nil
}

func (c *Client) generate(ctx context.Context, req genRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", baseURL, c.model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	var decoded genResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode gemini response: %w", err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	return decoded.Candidates[0].Content.Parts[0].Text, nil
}

// stripDataURL removes a data:image/...;base64, prefix when present.
func stripDataURL(encoded string) string {
	if i := strings.Index(encoded, ";base64,"); i >= 0 && strings.HasPrefix(encoded, "data:image/") {
		return encoded[i+len(";base64,"):]
	}
	return encoded
}
