// ABOUTME: MCP server subcommand
// ABOUTME: Exposes the contact history as MCP tools over stdio
package cli

import (
	"context"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/cardscan/handlers"
	"github.com/harperreed/cardscan/state"
)

// MCPCommand starts the MCP server on stdio
func MCPCommand(dispatcher *state.Dispatcher) error {
	log.Println("Starting cardscan MCP server...")

	contactHandlers := handlers.NewContactHandlers(dispatcher)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "cardscan",
		Version: "0.1.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_contacts",
		Description: "Search scanned contacts by name, company, or email",
	}, contactHandlers.FindContacts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_contact",
		Description: "Get a single contact by ID",
	}, contactHandlers.GetContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "save_contact",
		Description: "Create a new contact or update an existing one by ID",
	}, contactHandlers.SaveContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_contact",
		Description: "Delete a contact from history by ID",
	}, contactHandlers.DeleteContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "export_vcard",
		Description: "Render a contact as a vCard 3.0 document",
	}, contactHandlers.ExportVCard)

	ctx := context.Background()
	return server.Run(ctx, &mcp.StdioTransport{})
}
