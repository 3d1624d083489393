// ABOUTME: Non-interactive card scan command
// ABOUTME: Runs the image ingestion pipeline over a file and saves the result
package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/harperreed/cardscan/gemini"
	"github.com/harperreed/cardscan/imaging"
	"github.com/harperreed/cardscan/ocr"
	"github.com/harperreed/cardscan/pipeline"
	"github.com/harperreed/cardscan/state"
)

// ScanCardCommand runs the full capture pipeline over an image file and
// saves the extracted contact to history.
func ScanCardCommand(dispatcher *state.Dispatcher, args []string) error {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("usage: cardscan card scan <image>")
	}
	path := fs.Arg(0)

	extractor, err := gemini.NewClient()
	if err != nil {
		return err
	}

	images := imaging.New()
	encoded, err := images.FileToEncoded(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var failure string
	orch := pipeline.New(dispatcher, pipeline.Options{
		Images:    images,
		OCR:       ocr.New(),
		Extractor: extractor,
		Notify:    func(message string) { failure = message },
	})

	fmt.Println("Scanning card...")
	orch.CaptureImage(context.Background(), encoded)
	if failure != "" {
		return fmt.Errorf("%s", failure)
	}

	saved := dispatcher.State().CurrentContact
	if saved == nil {
		return fmt.Errorf("no contact could be extracted from %s", path)
	}
	orch.SaveDraft()

	fmt.Printf("✓ Saved %s (%s)\n", orDash(saved.FullName), shortID(saved.ID))
	if saved.Company != "" {
		fmt.Printf("  Company: %s\n", saved.Company)
	}
	if saved.Email != "" {
		fmt.Printf("  Email:   %s\n", saved.Email)
	}
	if saved.Phone != "" {
		fmt.Printf("  Phone:   %s\n", saved.Phone)
	}
	return nil
}
