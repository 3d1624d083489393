// ABOUTME: Tests for the QR stream consumer
// ABOUTME: Covers decode, skipped blank lines, failure reporting, and stop
package scanner

import (
	"errors"
	"strings"
	"testing"
)

func TestConsumeStreamDecodesFirstPayload(t *testing.T) {
	waits := 0
	var decoded string
	consumeStream(strings.NewReader("MECARD:N:Jane;;\n"),
		func() error { waits++; return nil },
		func() bool { return false },
		func(text string) { decoded = text },
		func(err error) { t.Fatalf("unexpected error: %v", err) },
	)

	if decoded != "MECARD:N:Jane;;" {
		t.Errorf("decoded = %q", decoded)
	}
	if waits != 1 {
		t.Errorf("process reaped %d times, want 1", waits)
	}
}

func TestConsumeStreamSkipsBlankLines(t *testing.T) {
	var decoded string
	consumeStream(strings.NewReader("\n   \nhttps://acme.com\n"),
		func() error { return nil },
		func() bool { return false },
		func(text string) { decoded = text },
		func(err error) { t.Fatalf("unexpected error: %v", err) },
	)

	if decoded != "https://acme.com" {
		t.Errorf("decoded = %q", decoded)
	}
}

func TestConsumeStreamSurfacesProcessFailure(t *testing.T) {
	waitErr := errors.New("exit status 1")
	waits := 0
	var got error
	consumeStream(strings.NewReader("\n"),
		func() error { waits++; return waitErr },
		func() bool { return false },
		func(text string) { t.Fatalf("unexpected decode %q", text) },
		func(err error) { got = err },
	)

	if !errors.Is(got, waitErr) {
		t.Errorf("error = %v, want the process failure", got)
	}
	if waits != 1 {
		t.Errorf("process reaped %d times, want 1", waits)
	}
}

func TestConsumeStreamEmptyStreamWithoutError(t *testing.T) {
	var got error
	consumeStream(strings.NewReader(""),
		func() error { return nil },
		func() bool { return false },
		func(text string) { t.Fatalf("unexpected decode %q", text) },
		func(err error) { got = err },
	)

	if got == nil || !strings.Contains(got.Error(), "without a code") {
		t.Errorf("error = %v, want stream-ended failure", got)
	}
}

func TestConsumeStreamStoppedReportsNothing(t *testing.T) {
	consumeStream(strings.NewReader("payload\n"),
		func() error { return errors.New("killed") },
		func() bool { return true },
		func(text string) { t.Fatalf("unexpected decode %q", text) },
		func(err error) { t.Fatalf("unexpected error: %v", err) },
	)
}
