// ABOUTME: Entry point for the cardscan TUI, CLI, and MCP server
// ABOUTME: Routes to the workflow TUI or subcommands based on arguments
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/cardscan/cli"
	"github.com/harperreed/cardscan/gemini"
	"github.com/harperreed/cardscan/imaging"
	"github.com/harperreed/cardscan/ocr"
	"github.com/harperreed/cardscan/pipeline"
	"github.com/harperreed/cardscan/scanner"
	"github.com/harperreed/cardscan/state"
	"github.com/harperreed/cardscan/store"
	"github.com/harperreed/cardscan/tui"
)

const version = "0.1.0"

func main() {
	showVersion := flag.Bool("version", false, "Show version and exit")
	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("cardscan version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()

	// No command: run the interactive workflow.
	if len(args) == 0 {
		if err := runTUI(); err != nil {
			log.Fatalf("Error: %v", err)
		}
		return
	}

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "mcp":
		client, dispatcher, err := openDispatcher()
		if err != nil {
			log.Fatalf("Failed to open store: %v", err)
		}
		defer client.Close()

		if err := cli.MCPCommand(dispatcher); err != nil {
			log.Fatalf("MCP server failed: %v", err)
		}

	case "card":
		if len(commandArgs) == 0 {
			fmt.Println("Error: card requires a subcommand")
			printUsage()
			os.Exit(1)
		}

		client, dispatcher, err := openDispatcher()
		if err != nil {
			log.Fatalf("Failed to open store: %v", err)
		}
		defer client.Close()

		sub := commandArgs[0]
		subArgs := commandArgs[1:]

		var cmdErr error
		switch sub {
		case "list":
			cmdErr = cli.ListCardsCommand(dispatcher, subArgs)
		case "show":
			cmdErr = cli.ShowCardCommand(dispatcher, subArgs)
		case "add":
			cmdErr = cli.AddCardCommand(dispatcher, subArgs)
		case "scan":
			cmdErr = cli.ScanCardCommand(dispatcher, subArgs)
		case "export":
			cmdErr = cli.ExportCardCommand(dispatcher, subArgs)
		case "delete":
			cmdErr = cli.DeleteCardCommand(dispatcher, subArgs)
		default:
			fmt.Printf("Unknown card command: %s\n\n", sub)
			printUsage()
			os.Exit(1)
		}
		if cmdErr != nil {
			log.Fatalf("Error: %v", cmdErr)
		}

	case "sync":
		if len(commandArgs) == 0 {
			fmt.Println("Error: sync requires a subcommand")
			printUsage()
			os.Exit(1)
		}

		sub := commandArgs[0]
		subArgs := commandArgs[1:]

		switch sub {
		case "init":
			if err := cli.SyncInitCommand(subArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "push":
			client, dispatcher, err := openDispatcher()
			if err != nil {
				log.Fatalf("Failed to open store: %v", err)
			}
			defer client.Close()

			if err := cli.SyncPushCommand(dispatcher, subArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		default:
			fmt.Printf("Unknown sync command: %s\n\n", sub)
			printUsage()
			os.Exit(1)
		}

	case "setup":
		if err := cli.SetupCommand(commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// openDispatcher opens the KV store and replays persisted state into a
// fresh dispatcher.
func openDispatcher() (*store.Client, *state.Dispatcher, error) {
	client, err := store.Open()
	if err != nil {
		return nil, nil, err
	}

	initial := state.Bootstrap(client, lipgloss.HasDarkBackground())
	return client, state.NewDispatcher(initial, client), nil
}

func runTUI() error {
	client, dispatcher, err := openDispatcher()
	if err != nil {
		return err
	}
	defer client.Close()

	images := imaging.New()
	recognizer := ocr.New()
	qr := scanner.NewQRScanner()
	nfc := scanner.NewNFCReader()

	extractor, err := gemini.NewClient()
	if err != nil {
		return err
	}

	notices := tui.NewNoticeBuffer()
	orch := pipeline.New(dispatcher, pipeline.Options{
		Images:    images,
		OCR:       recognizer,
		Extractor: extractor,
		QR:        qr,
		NFC:       nfc,
		Notify:    notices.Notifier(),
		CameraCap: pipeline.ProbeCapability("camera", qr.Probe),
		NFCCap:    pipeline.ProbeCapability("nfc", nfc.Probe),
		SpeechCap: pipeline.Unavailable("speech", "no speech backend in the terminal build"),
	})

	return tui.Run(dispatcher, orch, images, extractor, notices)
}

func printUsage() {
	fmt.Printf(`cardscan v%s - Business card scanner

USAGE:
  cardscan [global flags] <command> [subcommand] [flags]

GLOBAL FLAGS:
  --version              Show version and exit

COMMANDS:
  (none)                 Start the interactive scan workflow
  mcp                    Start MCP server for Claude Desktop
  card                   Contact history commands
  sync                   Google Contacts commands
  setup                  Store the Gemini API key

CARD COMMANDS:
  cardscan card list        List scanned contacts
    --query <text>            Search by name, company, or email
    --limit <n>               Max results (default: 50)

  cardscan card show <id>   Show a contact in full

  cardscan card add         Add a contact without scanning
    --name <name>             Contact name (required)
    --title <title>           Job title
    --company <company>       Company name
    --email <email>           Email address
    --phone <phone>           Phone number
    --website <url>           Website URL
    --notes <notes>           Notes about the contact

  cardscan card scan <image>  Extract a contact from a card image

  cardscan card export [flags] <id>  Write a contact as a .vcf file
    --output <path>           Output path (default: <name>.vcf)

  cardscan card delete <id>  Delete a contact

SYNC COMMANDS:
  cardscan sync init        Authenticate with Google (OAuth)
  cardscan sync push <id>   Push a contact to Google Contacts

EXAMPLES:
  # Scan a card interactively
  cardscan

  # Start MCP server for Claude Desktop
  cardscan mcp

  # Find everyone from Acme
  cardscan card list --query "Acme"

  # Export a contact to share
  cardscan card export 01J8ME3P

`, version)
}
