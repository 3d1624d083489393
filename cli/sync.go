// ABOUTME: Google Contacts CLI commands
// ABOUTME: Handles OAuth setup and pushing scanned contacts to Google
package cli

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os/exec"
	"runtime"

	"golang.org/x/oauth2"

	"github.com/harperreed/cardscan/gsync"
	"github.com/harperreed/cardscan/state"
)

// SyncInitCommand handles OAuth setup
func SyncInitCommand(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	_ = fs.Parse(args)

	ctx := context.Background()

	config := gsync.NewOAuthConfig()
	if config.ClientID == "" || config.ClientSecret == "" {
		return fmt.Errorf("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET must be set")
	}

	// Start local server for OAuth callback
	callbackChan := make(chan *oauth2.Token)
	errChan := make(chan error)

	http.HandleFunc("/oauth/callback", func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			errChan <- fmt.Errorf("no authorization code received")
			return
		}

		token, err := config.Exchange(ctx, code)
		if err != nil {
			errChan <- fmt.Errorf("failed to exchange code: %w", err)
			return
		}

		callbackChan <- token
		_, _ = fmt.Fprintf(w, "Authorization successful! You can close this window.")
	})

	server := &http.Server{Addr: ":8080"}
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	authURL := config.AuthCodeURL("state", oauth2.AccessTypeOffline)

	fmt.Println("Opening browser for Google OAuth...")
	fmt.Printf("\nIf browser doesn't open, visit this URL:\n%s\n\n", authURL)

	_ = openBrowser(authURL)

	select {
	case token := <-callbackChan:
		_ = server.Shutdown(ctx)

		if err := gsync.SaveToken(token); err != nil {
			return fmt.Errorf("failed to save token: %w", err)
		}

		fmt.Printf("\n✓ Authenticated successfully\n")
		fmt.Printf("✓ Tokens saved to %s\n\n", gsync.TokenPath())
		fmt.Println("Ready to push! Run 'cardscan sync push <id>' to send a contact to Google.")

		return nil

	case err := <-errChan:
		_ = server.Shutdown(ctx)
		return fmt.Errorf("OAuth flow failed: %w", err)
	}
}

// SyncPushCommand pushes a scanned contact to Google Contacts
func SyncPushCommand(dispatcher *state.Dispatcher, args []string) error {
	fs := flag.NewFlagSet("push", flag.ExitOnError)
	_ = fs.Parse(args)

	if len(fs.Args()) < 1 {
		return fmt.Errorf("contact ID is required")
	}

	contact, ok := findContact(dispatcher, fs.Args()[0])
	if !ok {
		return fmt.Errorf("contact not found: %s", fs.Args()[0])
	}

	token, err := gsync.LoadToken()
	if err != nil {
		return fmt.Errorf("no authentication token found. Run 'cardscan sync init' first: %w", err)
	}

	ctx := context.Background()
	client, err := gsync.NewPeopleClient(ctx, token)
	if err != nil {
		return fmt.Errorf("failed to create People API client: %w", err)
	}

	resourceName, err := gsync.PushContact(ctx, client, contact)
	if err != nil {
		return fmt.Errorf("failed to push contact: %w", err)
	}

	fmt.Printf("✓ Pushed %s to Google Contacts (%s)\n", contact.FullName, resourceName)
	return nil
}

// openBrowser attempts to open URL in default browser
func openBrowser(url string) error {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "darwin":
		cmd = "open"
		args = []string{url}
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start", url}
	default:
		cmd = "xdg-open"
		args = []string{url}
	}

	command := exec.Command(cmd, args...)
	return command.Start()
}
