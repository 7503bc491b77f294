package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/hemolymph/internal/cardservice"
	"github.com/starford/hemolymph/internal/richtext"
	"github.com/starford/hemolymph/internal/testutil"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	dir, store := testutil.TestCatalog(t)
	db := testutil.TestDB(t)
	testutil.WriteCard(t, dir, db, "mantis.json", `{
		"id": "mantis", "name": "Mantis", "type": "creature", "cost": 3, "health": 2, "defense": 1, "power": 4,
		"description": [{"String": "Devour "}, {"CardSearch": {"display": "an ant", "search": "k:ant"}}],
		"flavor_text": "It prays."
	}`)
	testutil.WriteCard(t, dir, db, "ant.json", `{"id": "ant", "name": "Ant", "type": "creature", "cost": 1}`)
	return New(cardservice.NewService(store, db), "test")
}

func callTool(t *testing.T, srv *Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" test helper, so handlers are called directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "search_cards":
		result, err = srv.searchCards(ctx, req)
	case "read_card":
		result, err = srv.readCard(ctx, req)
	case "get_card_json":
		result, err = srv.getCardJSON(ctx, req)
	case "add_card":
		result, err = srv.addCard(ctx, req)
	case "get_rich_text_format":
		result, err = srv.getRichTextFormat(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestSearchCards(t *testing.T) {
	srv := testServer(t)

	text := resultText(callTool(t, srv, "search_cards", map[string]any{"query": "mantis"}))
	want := "Showing 1 cards matching \"mantis\"\nmantis\tMantis\tCreature :: 3 Blood"
	if text != want {
		t.Errorf("search = %q, want %q", text, want)
	}
}

func TestSearchCards_AllWithLimit(t *testing.T) {
	srv := testServer(t)

	text := resultText(callTool(t, srv, "search_cards", map[string]any{"limit": float64(1)}))
	lines := strings.Split(text, "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %q", lines)
	}
	if lines[0] != "Showing 2 all cards" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "ant\t") {
		t.Errorf("first card = %q", lines[1])
	}
	if lines[2] != "... 1 more" {
		t.Errorf("tail = %q", lines[2])
	}
}

func TestReadCard(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "read_card", map[string]any{"id": "mantis"})
	if r.IsError {
		t.Fatalf("unexpected error: %s", resultText(r))
	}
	text := resultText(r)
	for _, want := range []string{"Mantis", "Creature :: 3 Blood", "Devour an ant", "It prays.", "2/1/4"} {
		if !strings.Contains(text, want) {
			t.Errorf("read_card missing %q in %q", want, text)
		}
	}
}

func TestReadCardMissing(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "read_card", map[string]any{"id": "nope"})
	if !r.IsError {
		t.Error("expected error for missing card")
	}
	if resultText(r) != "not found: nope" {
		t.Errorf("error text = %q", resultText(r))
	}

	r = callTool(t, srv, "read_card", map[string]any{})
	if !r.IsError {
		t.Error("expected error for missing id argument")
	}
}

func TestGetCardJSON(t *testing.T) {
	srv := testServer(t)
	text := resultText(callTool(t, srv, "get_card_json", map[string]any{"id": "mantis"}))

	var rec struct {
		ID          string              `json:"id"`
		Description richtext.RichString `json:"description"`
	}
	if err := json.Unmarshal([]byte(text), &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.ID != "mantis" || richtext.Text(rec.Description) != "Devour an ant" {
		t.Errorf("record = %+v", rec)
	}
}

func TestAddCard(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "add_card", map[string]any{
		"card": `{"id": "moth", "name": "Moth", "type": "creature", "description": ["Flies."]}`,
	})
	if r.IsError {
		t.Fatalf("add_card error: %s", resultText(r))
	}
	if got := resultText(r); got != "created: moth (moth.json)" {
		t.Errorf("add result = %q", got)
	}

	text := resultText(callTool(t, srv, "read_card", map[string]any{"id": "moth"}))
	if !strings.Contains(text, "Flies.") {
		t.Errorf("added card not readable: %q", text)
	}

	r = callTool(t, srv, "add_card", map[string]any{"card": `{"id": "moth", "name": "Moth"}`})
	if !r.IsError {
		t.Error("expected error for duplicate card")
	}
}

func TestAddCard_Invalid(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "add_card", map[string]any{"card": `{"id": "x", "name": "X", "description": [{"Bold": "x"}]}`})
	if !r.IsError {
		t.Error("expected error for unknown rich text tag")
	}
}

func TestGetRichTextFormat(t *testing.T) {
	srv := testServer(t)
	text := resultText(callTool(t, srv, "get_rich_text_format", nil))
	if text != RichTextFormatContract {
		t.Error("contract text mismatch")
	}
	for _, tag := range []string{"String", "LineBreak", "CardId", "SpecificCard", "CardSearch", "Saga"} {
		if !strings.Contains(text, tag) {
			t.Errorf("contract missing %s", tag)
		}
	}
}

func TestContractExampleIsValid(t *testing.T) {
	start := strings.Index(RichTextFormatContract, "```json\n")
	end := strings.LastIndex(RichTextFormatContract, "```")
	if start < 0 || end <= start {
		t.Fatal("contract example not found")
	}
	example := RichTextFormatContract[start+len("```json\n") : end]

	srv := testServer(t)
	r := callTool(t, srv, "add_card", map[string]any{"card": example})
	if r.IsError {
		t.Fatalf("contract example rejected: %s", resultText(r))
	}
}
