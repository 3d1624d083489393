// ABOUTME: Tests for the ingestion orchestrator
// ABOUTME: Covers promotion, abort semantics, stale-response guards, and hardware handoff
package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/harperreed/cardscan/models"
	"github.com/harperreed/cardscan/state"
)

type memStore struct {
	slots map[string][]byte
}

func newMemStore() *memStore { return &memStore{slots: map[string][]byte{}} }

func (m *memStore) GetSlot(slot string) ([]byte, bool, error) {
	data, ok := m.slots[slot]
	return data, ok, nil
}

func (m *memStore) SetSlot(slot string, data []byte) error {
	m.slots[slot] = data
	return nil
}

type fakeImages struct {
	resizeErr error
}

func (f *fakeImages) Resize(encoded string, maxWidth, maxHeight int, format string, quality int) (string, error) {
	if f.resizeErr != nil {
		return "", f.resizeErr
	}
	return "resized:" + encoded, nil
}

func (f *fakeImages) FileToEncoded(path string) (string, error) {
	return "file:" + path, nil
}

type fakeOCR struct{ text string }

func (f *fakeOCR) Recognize(ctx context.Context, encoded string) string { return f.text }

type fakeExtractor struct {
	fields     ExtractedFields
	err        error
	block      chan struct{} // when non-nil, extraction waits on it
	gotHint    string
	gotRawText string
}

func (f *fakeExtractor) ExtractFromImage(ctx context.Context, encoded, hint string) (ExtractedFields, error) {
	f.gotHint = hint
	if f.block != nil {
		<-f.block
	}
	return f.fields, f.err
}

func (f *fakeExtractor) ExtractFromText(ctx context.Context, raw string) (ExtractedFields, error) {
	f.gotRawText = raw
	if f.block != nil {
		<-f.block
	}
	return f.fields, f.err
}

func (f *fakeExtractor) GenerateMessage(ctx context.Context, req GenerateRequest) Message {
	return Message{Subject: "s", Body: "b"}
}

type fakeSub struct{ stops int }

func (f *fakeSub) Stop() { f.stops++ }

type fakeScanner struct {
	subs     []*fakeSub
	onDecode func(string)
	onErr    func(error)
	err      error
}

func (f *fakeScanner) Subscribe(onDecode func(string), onErr func(error)) (Subscription, error) {
	if f.err != nil {
		return nil, f.err
	}
	sub := &fakeSub{}
	f.subs = append(f.subs, sub)
	f.onDecode = onDecode
	f.onErr = onErr
	return sub, nil
}

type notices struct{ messages []string }

func (n *notices) notify(message string) { n.messages = append(n.messages, message) }

func newTestOrchestrator(extractor *fakeExtractor) (*Orchestrator, *state.Dispatcher, *notices, *fakeScanner, *fakeScanner) {
	d := state.NewDispatcher(models.AppState{Step: models.StepScan}, newMemStore())
	n := &notices{}
	qr := &fakeScanner{}
	nfc := &fakeScanner{}
	o := New(d, Options{
		Images:    &fakeImages{},
		OCR:       &fakeOCR{text: "ocr text"},
		Extractor: extractor,
		QR:        qr,
		NFC:       nfc,
		Notify:    n.notify,
		CameraCap: ProbeCapability("camera", func() error { return nil }),
		NFCCap:    ProbeCapability("nfc", func() error { return nil }),
	})
	return o, d, n, qr, nfc
}

func TestCaptureImagePromotesDraft(t *testing.T) {
	ex := &fakeExtractor{fields: ExtractedFields{
		FullName: "Jane Doe",
		Company:  "Acme",
		Socials:  map[string]string{"linkedin": "janedoe", "myspace": "ignored"},
	}}
	o, d, n, _, _ := newTestOrchestrator(ex)

	o.CaptureImage(context.Background(), "img")

	s := d.State()
	if s.Step != models.StepValidate {
		t.Fatalf("expected Validate, got %s", s.Step)
	}
	if s.CurrentContact == nil {
		t.Fatal("expected a draft contact")
	}
	if s.CurrentContact.FullName != "Jane Doe" || s.CurrentContact.Company != "Acme" {
		t.Errorf("extracted fields lost: %+v", s.CurrentContact)
	}
	if s.CurrentContact.ScanImage != "resized:img" {
		t.Errorf("expected resized image attached, got %q", s.CurrentContact.ScanImage)
	}
	if s.CurrentContact.Socials["linkedin"] != "janedoe" {
		t.Error("known social platform dropped")
	}
	if _, ok := s.CurrentContact.Socials["myspace"]; ok {
		t.Error("unknown social platform should be ignored")
	}
	if len(s.History) != 0 {
		t.Error("capture must not touch history before save")
	}
	if len(n.messages) != 0 {
		t.Errorf("unexpected notices: %v", n.messages)
	}
	if ex.gotHint != "ocr text" {
		t.Errorf("OCR hint not passed through, got %q", ex.gotHint)
	}
}

func TestCaptureImageExtractionFailureAborts(t *testing.T) {
	ex := &fakeExtractor{err: errors.New("model overloaded")}
	o, d, n, _, _ := newTestOrchestrator(ex)

	o.CaptureImage(context.Background(), "img")

	s := d.State()
	if s.Step != models.StepScan {
		t.Errorf("expected return to Scan, got %s", s.Step)
	}
	if s.CurrentContact != nil {
		t.Error("aborted pipeline must not install a draft")
	}
	if len(s.History) != 0 {
		t.Error("aborted pipeline must not touch history")
	}
	if len(n.messages) != 1 {
		t.Fatalf("expected one notice, got %v", n.messages)
	}
}

func TestCaptureImageResizeFailureAborts(t *testing.T) {
	ex := &fakeExtractor{}
	d := state.NewDispatcher(models.AppState{Step: models.StepScan}, newMemStore())
	n := &notices{}
	o := New(d, Options{
		Images:    &fakeImages{resizeErr: errors.New("bad image")},
		OCR:       &fakeOCR{},
		Extractor: ex,
		Notify:    n.notify,
	})

	o.CaptureImage(context.Background(), "img")

	if d.State().Step != models.StepScan {
		t.Errorf("expected Scan, got %s", d.State().Step)
	}
	if len(n.messages) != 1 {
		t.Errorf("expected one notice, got %v", n.messages)
	}
}

func TestCancelInvalidatesInFlightPipeline(t *testing.T) {
	ex := &fakeExtractor{
		fields: ExtractedFields{FullName: "Late Result"},
		block:  make(chan struct{}),
	}
	o, d, _, _, _ := newTestOrchestrator(ex)

	done := make(chan struct{})
	go func() {
		o.CaptureImage(context.Background(), "img")
		close(done)
	}()

	// Wait for the pipeline to reach the blocking extraction stage.
	deadline := time.After(2 * time.Second)
	for d.State().Step != models.StepProcessing {
		select {
		case <-deadline:
			t.Fatal("pipeline never reached Processing")
		case <-time.After(time.Millisecond):
		}
	}

	o.Cancel()
	close(ex.block)
	<-done

	s := d.State()
	if s.Step != models.StepScan {
		t.Errorf("expected Scan after cancel, got %s", s.Step)
	}
	if s.CurrentContact != nil {
		t.Error("late result must be discarded after cancel")
	}
	if len(s.History) != 0 {
		t.Error("history must be unchanged")
	}
}

func TestNewPipelineSupersedesOldOne(t *testing.T) {
	ex := &fakeExtractor{fields: ExtractedFields{FullName: "QR"}}
	o, d, _, _, _ := newTestOrchestrator(ex)

	gen := o.begin("old pipeline")
	o.IngestQRText(context.Background(), "BEGIN:VCARD")

	if o.setStatus(gen, "should not apply") {
		t.Error("superseded generation must be stale")
	}
	if d.State().Step != models.StepValidate {
		t.Errorf("newest pipeline result must win, got %s", d.State().Step)
	}
}

func TestIngestQRTextFallbacks(t *testing.T) {
	long := strings.Repeat("x", 80)
	ex := &fakeExtractor{fields: ExtractedFields{}}
	o, d, _, _, _ := newTestOrchestrator(ex)

	o.IngestQRText(context.Background(), long)

	s := d.State()
	if s.CurrentContact == nil {
		t.Fatal("expected draft")
	}
	if s.CurrentContact.FullName != "QR Contact" {
		t.Errorf("expected fallback name, got %q", s.CurrentContact.FullName)
	}
	if !strings.Contains(s.CurrentContact.Notes, "Imported from QR code.") {
		t.Errorf("expected provenance note, got %q", s.CurrentContact.Notes)
	}
	if !strings.Contains(s.CurrentContact.Notes, long[:50]+"...") {
		t.Errorf("expected raw content truncated to 50, got %q", s.CurrentContact.Notes)
	}
}

func TestIngestQRTextTruncatesMultibyteOnRunes(t *testing.T) {
	long := strings.Repeat("é", 80)
	ex := &fakeExtractor{fields: ExtractedFields{}}
	o, d, _, _, _ := newTestOrchestrator(ex)

	o.IngestQRText(context.Background(), long)

	s := d.State()
	if s.CurrentContact == nil {
		t.Fatal("expected draft")
	}
	if !utf8.ValidString(s.CurrentContact.Notes) {
		t.Fatalf("note is not valid UTF-8: %q", s.CurrentContact.Notes)
	}
	if !strings.Contains(s.CurrentContact.Notes, strings.Repeat("é", 50)+"...") {
		t.Errorf("expected raw content truncated to 50 runes, got %q", s.CurrentContact.Notes)
	}
}

func TestStartQRScanStopsPreviousSubscription(t *testing.T) {
	ex := &fakeExtractor{}
	o, _, _, qr, _ := newTestOrchestrator(ex)

	if err := o.StartQRScan(context.Background()); err != nil {
		t.Fatalf("first subscribe failed: %v", err)
	}
	if err := o.StartQRScan(context.Background()); err != nil {
		t.Fatalf("second subscribe failed: %v", err)
	}

	if len(qr.subs) != 2 {
		t.Fatalf("expected 2 subscriptions, got %d", len(qr.subs))
	}
	if qr.subs[0].stops == 0 {
		t.Error("previous subscription must be stopped before a new one starts")
	}
	if qr.subs[1].stops != 0 {
		t.Error("active subscription must not be stopped")
	}
}

func TestQRDecodeReleasesCameraBeforeExtraction(t *testing.T) {
	ex := &fakeExtractor{fields: ExtractedFields{FullName: "Decoded"}}
	o, d, _, qr, _ := newTestOrchestrator(ex)

	if err := o.StartQRScan(context.Background()); err != nil {
		t.Fatal(err)
	}
	if d.State().Step != models.StepQRScan {
		t.Fatalf("expected QRScan step, got %s", d.State().Step)
	}

	qr.onDecode("decoded text")

	if qr.subs[0].stops == 0 {
		t.Error("camera must be released on decode")
	}
	if d.State().Step != models.StepValidate {
		t.Errorf("expected Validate after decode, got %s", d.State().Step)
	}
	if ex.gotRawText != "decoded text" {
		t.Errorf("decoded text not forwarded, got %q", ex.gotRawText)
	}
}

func TestQRScannerErrorReturnsToScan(t *testing.T) {
	ex := &fakeExtractor{}
	o, d, n, qr, _ := newTestOrchestrator(ex)

	if err := o.StartQRScan(context.Background()); err != nil {
		t.Fatal(err)
	}
	qr.onErr(errors.New("camera permission denied"))

	if d.State().Step != models.StepScan {
		t.Errorf("expected Scan, got %s", d.State().Step)
	}
	if len(n.messages) != 1 || !strings.Contains(n.messages[0], "denied") {
		t.Errorf("expected actionable permission notice, got %v", n.messages)
	}
}

func TestStartQRScanUnavailableCamera(t *testing.T) {
	ex := &fakeExtractor{}
	d := state.NewDispatcher(models.AppState{Step: models.StepScan}, newMemStore())
	n := &notices{}
	o := New(d, Options{
		Extractor: ex,
		QR:        &fakeScanner{},
		Notify:    n.notify,
		CameraCap: Unavailable("camera", "no camera found"),
	})

	if err := o.StartQRScan(context.Background()); err == nil {
		t.Error("expected error from unavailable camera")
	}
	if d.State().Step != models.StepScan {
		t.Errorf("step must not change, got %s", d.State().Step)
	}
	if len(n.messages) != 1 {
		t.Errorf("expected one notice, got %v", n.messages)
	}
}

func TestNFCReadPromotesDraft(t *testing.T) {
	ex := &fakeExtractor{fields: ExtractedFields{FullName: "Tag Person"}}
	o, d, _, _, nfc := newTestOrchestrator(ex)

	if err := o.StartNFCScan(context.Background()); err != nil {
		t.Fatal(err)
	}
	if d.State().Step != models.StepProcessing {
		t.Fatalf("expected Processing while waiting for tag, got %s", d.State().Step)
	}

	nfc.onDecode("tag payload")

	s := d.State()
	if s.Step != models.StepValidate {
		t.Errorf("expected Validate, got %s", s.Step)
	}
	if s.CurrentContact == nil || s.CurrentContact.FullName != "Tag Person" {
		t.Errorf("expected extracted draft, got %+v", s.CurrentContact)
	}
	if !strings.Contains(s.CurrentContact.Notes, "Imported via NFC.") {
		t.Errorf("expected NFC provenance note, got %q", s.CurrentContact.Notes)
	}
}

func TestManualEntry(t *testing.T) {
	ex := &fakeExtractor{}
	o, d, _, _, _ := newTestOrchestrator(ex)

	o.ManualEntry()

	s := d.State()
	if s.Step != models.StepValidate {
		t.Errorf("expected Validate, got %s", s.Step)
	}
	if s.CurrentContact == nil || s.CurrentContact.ID == "" {
		t.Error("expected an empty draft with a fresh id")
	}
	if s.CurrentContact.FullName != "" {
		t.Error("manual draft must start empty")
	}
}

func TestSaveDraftPromotesToHistory(t *testing.T) {
	ex := &fakeExtractor{}
	o, d, _, _, _ := newTestOrchestrator(ex)

	o.ManualEntry()
	d.Dispatch(state.UpdateContactField{Field: state.FieldFullName, Value: "Saved Person"})
	o.SaveDraft()

	s := d.State()
	if s.Step != models.StepActions {
		t.Errorf("expected Actions, got %s", s.Step)
	}
	if len(s.History) != 1 || s.History[0].FullName != "Saved Person" {
		t.Errorf("expected saved contact at head, got %+v", s.History)
	}
}

func TestSaveDraftWithoutDraftIsNoOp(t *testing.T) {
	ex := &fakeExtractor{}
	o, d, _, _, _ := newTestOrchestrator(ex)

	o.SaveDraft()

	if len(d.State().History) != 0 {
		t.Error("save without a draft must do nothing")
	}
}

func TestShutdownReleasesSubscriptions(t *testing.T) {
	ex := &fakeExtractor{}
	o, _, _, qr, _ := newTestOrchestrator(ex)

	if err := o.StartQRScan(context.Background()); err != nil {
		t.Fatal(err)
	}
	o.Shutdown()

	if qr.subs[0].stops == 0 {
		t.Error("shutdown must stop the active subscription")
	}
}
