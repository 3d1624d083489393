// ABOUTME: QR code scanner adapter owning the camera via zbarcam
// ABOUTME: Cancellable subscription with stop-before-start discipline
package scanner

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/harperreed/cardscan/pipeline"
)

// QRScanner streams decoded codes from the zbarcam CLI. Exactly one
// subscription may hold the camera at a time; Subscribe stops any previous
// stream before starting.
type QRScanner struct {
	binary string

	mu      sync.Mutex
	current *procSubscription
}

// NewQRScanner returns a zbarcam-backed scanner.
func NewQRScanner() *QRScanner {
	return &QRScanner{binary: "zbarcam"}
}

// Probe reports whether the scanner binary is available.
func (s *QRScanner) Probe() error {
	if _, err := exec.LookPath(s.binary); err != nil {
		return fmt.Errorf("zbarcam is not installed: %w", err)
	}
	return nil
}

// Subscribe acquires the camera and decodes frames until the first QR
// code, a failure, or Stop.
func (s *QRScanner) Subscribe(onDecode func(text string), onErr func(err error)) (pipeline.Subscription, error) {
	s.mu.Lock()
	if s.current != nil {
		s.current.Stop()
		s.current = nil
	}
	s.mu.Unlock()

	// --raw prints the decoded payload without the symbology prefix
	cmd := exec.Command(s.binary, "--raw", "-1")
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open scanner pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start camera: %w", err)
	}

	sub := &procSubscription{cmd: cmd}
	go consumeStream(stdout, cmd.Wait, sub.stopped, onDecode, onErr)

	s.mu.Lock()
	s.current = sub
	s.mu.Unlock()
	return sub, nil
}

// consumeStream reads decoded lines until the first non-empty payload,
// then reaps the process exactly once and reports the outcome. A stopped
// subscription reports nothing.
func consumeStream(r io.Reader, wait func() error, stopped func() bool, onDecode func(text string), onErr func(err error)) {
	scanner := bufio.NewScanner(r)
	var text string
	for scanner.Scan() {
		text = strings.TrimSpace(scanner.Text())
		if text != "" {
			break
		}
	}

	err := wait()
	if stopped() {
		return
	}
	if text != "" {
		onDecode(text)
		return
	}
	if err == nil {
		err = fmt.Errorf("camera stream ended without a code")
	}
	onErr(err)
}

// procSubscription wraps a scanner process as a cancellable handle.
type procSubscription struct {
	cmd  *exec.Cmd
	mu   sync.Mutex
	done bool
}

// Stop releases the camera. Safe to call repeatedly and on error paths.
func (p *procSubscription) Stop() {
	p.mu.Lock()
	if p.done {
		p.mu.Unlock()
		return
	}
	p.done = true
	p.mu.Unlock()
	if p.cmd.Process != nil {
		_ = p.cmd.Process.Kill()
	}
}

func (p *procSubscription) stopped() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}
