// ABOUTME: Workflow orchestrator driving capture, QR, and NFC ingestion
// ABOUTME: Runs staged async pipelines with stale-response guards and cancellation
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/harperreed/cardscan/models"
	"github.com/harperreed/cardscan/state"
)

// Dispatcher is the mutation surface the orchestrator drives. Implemented
// by *state.Dispatcher.
type Dispatcher interface {
	Dispatch(a state.Action) models.AppState
	State() models.AppState
}

// Notifier surfaces a blocking user-visible notice. All pipeline failures
// go through it; none are silently swallowed.
type Notifier func(message string)

// Orchestrator sequences the asynchronous ingestion steps. Each pipeline
// run gets a generation token; a run whose token is stale (cancelled or
// superseded) discards its result instead of touching state.
type Orchestrator struct {
	dispatcher Dispatcher
	images     ImageProcessor
	ocr        Recognizer
	extractor  Extractor
	qr         QRScanner
	nfc        NFCReader
	notify     Notifier

	cameraCap Capability
	nfcCap    Capability
	speechCap Capability

	mu     sync.Mutex
	gen    uint64
	qrSub  Subscription
	nfcSub Subscription
}

// Options wires the orchestrator's collaborators.
type Options struct {
	Images    ImageProcessor
	OCR       Recognizer
	Extractor Extractor
	QR        QRScanner
	NFC       NFCReader
	Notify    Notifier
	CameraCap Capability
	NFCCap    Capability
	SpeechCap Capability
}

// New creates an orchestrator. Notify defaults to a no-op.
func New(d Dispatcher, opts Options) *Orchestrator {
	notify := opts.Notify
	if notify == nil {
		notify = func(string) {}
	}
	return &Orchestrator{
		dispatcher: d,
		images:     opts.Images,
		ocr:        opts.OCR,
		extractor:  opts.Extractor,
		qr:         opts.QR,
		nfc:        opts.NFC,
		notify:     notify,
		cameraCap:  opts.CameraCap,
		nfcCap:     opts.NFCCap,
		speechCap:  opts.SpeechCap,
	}
}

// SpeechCapability reports whether dictation input is available. No
// terminal backend exists yet, so callers should expect Unavailable.
func (o *Orchestrator) SpeechCapability() Capability {
	return o.speechCap
}

// begin starts a pipeline generation and moves to Processing.
func (o *Orchestrator) begin(status string) uint64 {
	o.mu.Lock()
	o.gen++
	gen := o.gen
	o.mu.Unlock()
	o.dispatcher.Dispatch(state.SetStep{Step: models.StepProcessing})
	o.dispatcher.Dispatch(state.SetProcessingStatus{Status: status})
	return gen
}

// stale reports whether a pipeline result arrived after cancellation or
// after another pipeline superseded it.
func (o *Orchestrator) stale(gen uint64) bool {
	o.mu.Lock()
	current := o.gen
	o.mu.Unlock()
	if gen != current {
		return true
	}
	return o.dispatcher.State().Step != models.StepProcessing
}

func (o *Orchestrator) setStatus(gen uint64, status string) bool {
	if o.stale(gen) {
		return false
	}
	o.dispatcher.Dispatch(state.SetProcessingStatus{Status: status})
	return true
}

// fail aborts a pipeline: user notice, back to Scan, draft untouched.
func (o *Orchestrator) fail(gen uint64, message string) {
	if o.stale(gen) {
		return
	}
	o.notify(message)
	o.dispatcher.Dispatch(state.SetStep{Step: models.StepScan})
}

// promote installs the extracted contact as the draft and moves to Validate.
func (o *Orchestrator) promote(gen uint64, c models.Contact) {
	if o.stale(gen) {
		return
	}
	o.dispatcher.Dispatch(state.SetCurrentContact{Contact: &c})
	o.dispatcher.Dispatch(state.SetStep{Step: models.StepValidate})
}

// CaptureImage runs the camera/file ingestion pipeline: resize, OCR, AI
// extraction. OCR degrades to empty text; extraction failure aborts.
func (o *Orchestrator) CaptureImage(ctx context.Context, encoded string) {
	gen := o.begin("Optimizing image...")

	resized, err := o.images.Resize(encoded, 1024, 1024, "jpeg", 85)
	if err != nil {
		o.fail(gen, "Processing failed. Please try again.")
		return
	}

	if !o.setStatus(gen, "Reading text...") {
		return
	}
	ocrText := o.ocr.Recognize(ctx, resized)

	if !o.setStatus(gen, "Analyzing card...") {
		return
	}
	fields, err := o.extractor.ExtractFromImage(ctx, resized, ocrText)
	if err != nil {
		o.fail(gen, "Processing failed. Please try again.")
		return
	}

	contact := contactFromFields(fields, "")
	contact.ScanImage = resized
	o.promote(gen, contact)
}

// IngestQRText runs the extraction stage of the QR pipeline over an
// already-decoded code.
func (o *Orchestrator) IngestQRText(ctx context.Context, decoded string) {
	gen := o.begin("Analyzing QR code...")

	fields, err := o.extractor.ExtractFromText(ctx, decoded)
	if err != nil {
		o.fail(gen, "Could not read a contact from this QR code.")
		return
	}

	contact := contactFromFields(fields, "QR Contact")
	contact.Notes = "Imported from QR code.\nRaw content: " + truncate(decoded, 50)
	o.promote(gen, contact)
}

// ingestNFCPayload runs the extraction stage of the NFC pipeline.
func (o *Orchestrator) ingestNFCPayload(ctx context.Context, payload string) {
	gen := o.begin("Reading NFC data...")

	if !o.setStatus(gen, "Analyzing NFC data...") {
		return
	}
	fields, err := o.extractor.ExtractFromText(ctx, payload)
	if err != nil {
		o.fail(gen, "Error while reading the tag data.")
		return
	}

	contact := contactFromFields(fields, "NFC Contact")
	contact.Notes = "Imported via NFC.\nContent: " + truncate(payload, 50)
	o.promote(gen, contact)
}

// StartQRScan acquires the camera and moves to the QR scanning step.
// Acquiring stops any previous subscription first.
func (o *Orchestrator) StartQRScan(ctx context.Context) error {
	if !o.cameraCap.Available() {
		o.notify(fmt.Sprintf("Camera unavailable: %v", o.cameraCap.Err()))
		return o.cameraCap.Err()
	}

	o.stopQR()
	o.dispatcher.Dispatch(state.SetStep{Step: models.StepQRScan})

	sub, err := o.qr.Subscribe(
		func(text string) {
			o.stopQR()
			o.IngestQRText(ctx, text)
		},
		func(err error) {
			o.stopQR()
			o.notify(qrErrorMessage(err))
			o.dispatcher.Dispatch(state.SetStep{Step: models.StepScan})
		},
	)
	if err != nil {
		o.notify(qrErrorMessage(err))
		o.dispatcher.Dispatch(state.SetStep{Step: models.StepScan})
		return err
	}

	o.mu.Lock()
	o.qrSub = sub
	o.mu.Unlock()
	return nil
}

// StartNFCScan acquires the NFC reader and waits for one tag.
func (o *Orchestrator) StartNFCScan(ctx context.Context) error {
	if !o.nfcCap.Available() {
		o.notify(fmt.Sprintf("NFC unavailable: %v", o.nfcCap.Err()))
		return o.nfcCap.Err()
	}

	o.stopNFC()
	gen := o.begin("Hold the tag near the reader...")

	sub, err := o.nfc.Subscribe(
		func(payload string) {
			o.stopNFC()
			if o.stale(gen) {
				return
			}
			o.ingestNFCPayload(ctx, payload)
		},
		func(err error) {
			o.stopNFC()
			o.fail(gen, "Read error. Hold the tag longer.")
		},
	)
	if err != nil {
		o.fail(gen, "Could not start the NFC scan. Check that NFC is enabled and permitted.")
		return err
	}

	o.mu.Lock()
	o.nfcSub = sub
	o.mu.Unlock()
	return nil
}

// ManualEntry creates an empty draft and jumps straight to Validate.
func (o *Orchestrator) ManualEntry() {
	c := models.NewContact()
	o.dispatcher.Dispatch(state.SetCurrentContact{Contact: &c})
	o.dispatcher.Dispatch(state.SetStep{Step: models.StepValidate})
}

// SaveDraft promotes the draft into history and moves to Actions.
func (o *Orchestrator) SaveDraft() {
	s := o.dispatcher.State()
	if s.CurrentContact == nil {
		return
	}
	o.dispatcher.Dispatch(state.SaveContact{Contact: *s.CurrentContact})
	o.dispatcher.Dispatch(state.SetStep{Step: models.StepActions})
}

// Cancel is the logical cancellation: release hardware, invalidate any
// in-flight pipeline, clear the draft, and return to Scan. Already-issued
// external calls are abandoned, not interrupted; the stale guard drops
// their late results.
func (o *Orchestrator) Cancel() {
	o.mu.Lock()
	o.gen++
	o.mu.Unlock()
	o.stopQR()
	o.stopNFC()
	o.dispatcher.Dispatch(state.SetStep{Step: models.StepScan})
	o.dispatcher.Dispatch(state.SetCurrentContact{Contact: nil})
}

// Shutdown releases held hardware on the way out of the program.
func (o *Orchestrator) Shutdown() {
	o.stopQR()
	o.stopNFC()
}

func (o *Orchestrator) stopQR() {
	o.mu.Lock()
	sub := o.qrSub
	o.qrSub = nil
	o.mu.Unlock()
	if sub != nil {
		sub.Stop()
	}
}

func (o *Orchestrator) stopNFC() {
	o.mu.Lock()
	sub := o.nfcSub
	o.nfcSub = nil
	o.mu.Unlock()
	if sub != nil {
		sub.Stop()
	}
}

// contactFromFields merges extracted values over empty-string defaults and
// stamps a fresh id and timestamp. fallbackName fills FullName for
// QR/NFC-sourced contacts when extraction found none.
func contactFromFields(f ExtractedFields, fallbackName string) models.Contact {
	c := models.NewContact()
	c.FullName = f.FullName
	if c.FullName == "" {
		c.FullName = fallbackName
	}
	c.Title = f.Title
	c.Company = f.Company
	c.Email = f.Email
	c.Phone = f.Phone
	c.Website = f.Website
	c.Address = f.Address
	for _, p := range models.Platforms {
		if v, ok := f.Socials[p]; ok && v != "" {
			c.Socials[p] = v
		}
	}
	return c
}

// qrErrorMessage distinguishes a permission refusal, which is actionable
// and worth retrying, from generic unavailability.
func qrErrorMessage(err error) string {
	if err == nil {
		return "Could not access the camera."
	}
	if strings.Contains(strings.ToLower(err.Error()), "permission") {
		return "Camera access denied. Allow camera access and try again."
	}
	return fmt.Sprintf("Could not access the camera: %v", err)
}

// truncate shortens to n runes so multibyte payloads never get cut
// mid-sequence.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
