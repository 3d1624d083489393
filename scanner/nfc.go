// ABOUTME: NFC tag reader adapter owning the reader via nfc-poll
// ABOUTME: Assembles text, URL, and vCard records into one payload
package scanner

import (
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/harperreed/cardscan/pipeline"
)

// NFCReader reads one NDEF tag through the libnfc nfc-poll CLI. Like the
// camera, the reader is an exclusive resource: a new subscription stops
// the previous one.
type NFCReader struct {
	binary string

	mu      sync.Mutex
	current *procSubscription
}

// NewNFCReader returns an nfc-poll-backed reader.
func NewNFCReader() *NFCReader {
	return &NFCReader{binary: "nfc-poll"}
}

// Probe reports whether an NFC stack is available.
func (r *NFCReader) Probe() error {
	if _, err := exec.LookPath(r.binary); err != nil {
		return fmt.Errorf("nfc-poll is not installed: %w", err)
	}
	return nil
}

// Subscribe polls for a tag and delivers its readable payload once.
func (r *NFCReader) Subscribe(onRead func(payload string), onErr func(err error)) (pipeline.Subscription, error) {
	r.mu.Lock()
	if r.current != nil {
		r.current.Stop()
		r.current = nil
	}
	r.mu.Unlock()

	cmd := exec.Command(r.binary)
	sub := &procSubscription{cmd: cmd}

	go func() {
		out, err := cmd.Output()
		if sub.stopped() {
			return
		}
		if err != nil {
			onErr(fmt.Errorf("nfc read failed: %w", err))
			return
		}
		payload := AssembleRecords(strings.Split(string(out), "\n"))
		if payload == "" {
			onErr(fmt.Errorf("no readable text data found on tag"))
			return
		}
		onRead(payload)
	}()

	r.mu.Lock()
	r.current = sub
	r.mu.Unlock()
	return sub, nil
}

// AssembleRecords concatenates the text-bearing records of a tag dump
// (text, URL, and vCard records) into one newline-joined payload. Records
// of other media types are skipped.
func AssembleRecords(records []string) string {
	var b strings.Builder
	for _, rec := range records {
		rec = strings.TrimSpace(rec)
		if rec == "" {
			continue
		}
		b.WriteString(rec)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

var _ pipeline.NFCReader = (*NFCReader)(nil)
var _ pipeline.QRScanner = (*QRScanner)(nil)
