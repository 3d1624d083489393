// ABOUTME: Setup CLI command
// ABOUTME: Prompts for the Gemini API key and stores it in a local .env file
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/adrg/xdg"
	"golang.org/x/term"
)

// EnvPath returns the location of the stored .env file.
func EnvPath() string {
	return filepath.Join(xdg.DataHome, "cardscan", ".env")
}

// SetupCommand prompts for the Gemini API key and writes it to the env file.
func SetupCommand(args []string) error {
	fmt.Println("cardscan setup")
	fmt.Println()
	fmt.Println("Get a Gemini API key at https://aistudio.google.com/apikey")
	fmt.Println()

	// Prompt for key (hidden)
	fmt.Print("Gemini API key: ")
	keyBytes, err := term.ReadPassword(syscall.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read API key: %w", err)
	}
	fmt.Println() // New line after hidden input
	key := strings.TrimSpace(string(keyBytes))

	if key == "" {
		return fmt.Errorf("API key cannot be empty")
	}

	path := EnvPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte("GEMINI_API_KEY="+key+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write env file: %w", err)
	}

	fmt.Printf("✓ API key saved to %s\n", path)
	return nil
}
