// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the card database to LLM clients via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/hemolymph/internal/apperr"
	"github.com/starford/hemolymph/internal/catalog"
	"github.com/starford/hemolymph/internal/models"
	"github.com/starford/hemolymph/internal/present"
)

// RichTextFormatURI is the resource holding RichTextFormatContract.
const RichTextFormatURI = "hemolymph://rich-text-format"

const defaultSearchLimit = 50

// CardService is the card catalog as used by the MCP tools.
type CardService interface {
	GetCard(ctx context.Context, id string) (*models.Card, error)
	Search(ctx context.Context, query string) ([]models.Card, error)
	QueryText(query string) string
	CreateCard(ctx context.Context, c *models.Card) (string, error)
}

// Server wraps the MCP server with the card tools.
type Server struct {
	mcp *server.MCPServer
	svc CardService
}

// New creates a new MCP server with all card tools registered.
func New(svc CardService, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Hemolymph",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_cards",
		mcp.WithDescription("Search cards. Cards whose name matches come first, then cards matching "+
			"type, kins, keywords or description. An empty query lists every card."),
		mcp.WithString("query", mcp.Description("Search text (empty for all cards)")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of cards to list (default 50)")),
	), s.searchCards)

	s.mcp.AddTool(mcp.NewTool("read_card",
		mcp.WithDescription("Read a card as plain text: name, cost line, description, flavor text and stats."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Card id")),
	), s.readCard)

	s.mcp.AddTool(mcp.NewTool("get_card_json",
		mcp.WithDescription("Return the stored JSON record of a card, including its rich text description."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Card id")),
	), s.getCardJSON)

	s.mcp.AddTool(mcp.NewTool("add_card",
		mcp.WithDescription("Add a new card to the catalog. The description MUST follow the rich text "+
			"format contract; read it first via the get_rich_text_format tool or the "+
			RichTextFormatURI+" resource."),
		mcp.WithString("card", mcp.Required(), mcp.Description("Card record as a JSON object")),
	), s.addCard)

	s.mcp.AddTool(mcp.NewTool("get_rich_text_format",
		mcp.WithDescription("Returns the JSON format of card descriptions (rich text)."),
	), s.getRichTextFormat)

	s.mcp.AddResource(
		mcp.NewResource(RichTextFormatURI, "Rich Text Format",
			mcp.WithResourceDescription("JSON format of card descriptions."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readRichTextFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) searchCards(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	limit := req.GetInt("limit", defaultSearchLimit)
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	cards, err := s.svc.Search(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Showing %d %s", len(cards), s.svc.QueryText(query))
	for i, c := range cards {
		if i == limit {
			fmt.Fprintf(&b, "\n... %d more", len(cards)-limit)
			break
		}
		fmt.Fprintf(&b, "\n%s\t%s\t%s", c.ID, c.Name, c.CostLine())
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) readCard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	card, errResult := s.lookup(ctx, req)
	if errResult != nil {
		return errResult, nil
	}
	return mcp.NewToolResultText(present.PlainCard(card)), nil
}

func (s *Server) getCardJSON(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	card, errResult := s.lookup(ctx, req)
	if errResult != nil {
		return errResult, nil
	}
	out, err := json.MarshalIndent(card, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

// lookup resolves the id argument to a card or a tool error result.
func (s *Server) lookup(ctx context.Context, req mcp.CallToolRequest) (*models.Card, *mcp.CallToolResult) {
	id, err := req.RequireString("id")
	if err != nil {
		return nil, mcp.NewToolResultError(err.Error())
	}
	card, err := s.svc.GetCard(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, mcp.NewToolResultError(fmt.Sprintf("not found: %s", id))
	}
	if err != nil {
		return nil, mcp.NewToolResultError(err.Error())
	}
	return card, nil
}

func (s *Server) addCard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("card")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	card, err := catalog.Decode([]byte(raw))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	path, err := s.svc.CreateCard(ctx, card)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created: %s (%s)", card.ID, path)), nil
}

func (s *Server) getRichTextFormat(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(RichTextFormatContract), nil
}

func (s *Server) readRichTextFormatResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      RichTextFormatURI,
			MIMEType: "text/markdown",
			Text:     RichTextFormatContract,
		},
	}, nil
}
