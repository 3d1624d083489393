// ABOUTME: Best-effort OCR collaborator wrapping the tesseract CLI
// ABOUTME: Degrades to empty text; an OCR miss never aborts a pipeline
package ocr

import (
	"context"
	"encoding/base64"
	"log"
	"os"
	"os/exec"
	"strings"

	"github.com/harperreed/cardscan/pipeline"
)

// Recognizer shells out to tesseract when it is installed. Recognize
// returns "" on any failure: the AI extractor works from the image alone
// and OCR text is only a hint.
type Recognizer struct {
	binary string
}

// New returns a tesseract-backed recognizer.
func New() *Recognizer {
	return &Recognizer{binary: "tesseract"}
}

// Probe reports whether tesseract is on PATH. Used for the one-time
// capability check.
func (r *Recognizer) Probe() error {
	_, err := exec.LookPath(r.binary)
	return err
}

// Recognize runs OCR over an encoded image and returns the extracted
// plain text, or "" when tesseract is missing or fails.
func (r *Recognizer) Recognize(ctx context.Context, encoded string) string {
	if err := r.Probe(); err != nil {
		return ""
	}

	raw := encoded
	if i := strings.Index(raw, ";base64,"); i >= 0 && strings.HasPrefix(raw, "data:") {
		raw = raw[i+len(";base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		log.Printf("ocr: failed to decode image: %v", err)
		return ""
	}

	tmp, err := os.CreateTemp("", "cardscan-ocr-*.jpg")
	if err != nil {
		log.Printf("ocr: failed to create temp file: %v", err)
		return ""
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		log.Printf("ocr: failed to write temp file: %v", err)
		return ""
	}
	_ = tmp.Close()

	// "-" sends the recognized text to stdout
	out, err := exec.CommandContext(ctx, r.binary, tmp.Name(), "-").Output()
	if err != nil {
		log.Printf("ocr: tesseract failed: %v", err)
		return ""
	}
	return string(out)
}

var _ pipeline.Recognizer = (*Recognizer)(nil)
