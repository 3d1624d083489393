// ABOUTME: External collaborator interfaces for the ingestion pipelines
// ABOUTME: Image processing, OCR, AI extraction, and hardware scanners
package pipeline

import "context"

// ImageProcessor resizes and encodes card images. Output is capped to the
// given max dimensions with aspect ratio preserved.
type ImageProcessor interface {
	Resize(encoded string, maxWidth, maxHeight int, format string, quality int) (string, error)
	FileToEncoded(path string) (string, error)
}

// Recognizer runs best-effort text recognition over an encoded image. It
// returns "" on failure and never an error: a blank OCR result does not
// abort the pipeline.
type Recognizer interface {
	Recognize(ctx context.Context, encoded string) string
}

// ExtractedFields is the partial contact the AI extractor returns. Missing
// fields are empty strings; Socials may be nil.
type ExtractedFields struct {
	FullName string            `json:"fullName"`
	Title    string            `json:"title"`
	Company  string            `json:"company"`
	Email    string            `json:"email"`
	Phone    string            `json:"phone"`
	Website  string            `json:"website"`
	Address  string            `json:"address"`
	Socials  map[string]string `json:"socials"`
}

// Message is a generated outbound subject/body pair.
type Message struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Extractor is the AI collaborator. Extraction failures are returned as
// errors and abort the pipeline; GenerateMessage instead degrades to a
// deterministic templated message and never fails.
type Extractor interface {
	ExtractFromImage(ctx context.Context, encoded, hint string) (ExtractedFields, error)
	ExtractFromText(ctx context.Context, raw string) (ExtractedFields, error)
	GenerateMessage(ctx context.Context, req GenerateRequest) Message
}

// GenerateRequest carries everything message generation needs.
type GenerateRequest struct {
	ContactName    string
	ContactCompany string
	ContactTitle   string
	TemplateName   string
	Category       string
	Context        string
	SenderName     string
	ShortFormat    bool
}

// Subscription is a cancellable hardware event stream handle. Stop releases
// the underlying resource and is safe to call more than once.
type Subscription interface {
	Stop()
}

// QRScanner owns the camera while subscribed. onDecode fires once per
// decoded code; onErr reports a terminal scanner failure.
type QRScanner interface {
	Subscribe(onDecode func(text string), onErr func(err error)) (Subscription, error)
}

// NFCReader owns the NFC reader while subscribed. onRead delivers the
// assembled text payload of one tag.
type NFCReader interface {
	Subscribe(onRead func(payload string), onErr func(err error)) (Subscription, error)
}
