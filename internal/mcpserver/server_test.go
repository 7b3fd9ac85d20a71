package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/JaviLianes8/RealTajoFCBack/internal/league"
	"github.com/JaviLianes8/RealTajoFCBack/internal/service"
	"github.com/JaviLianes8/RealTajoFCBack/internal/store"
)

var testImpl = &mcp.Implementation{Name: "realtajo-test", Version: "0.1.0"}

func newServices(t *testing.T) *service.Services {
	t.Helper()
	fs, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	return service.New(service.Deps{Store: fs, Archive: fs, Team: "REAL TAJO"})
}

func roundUpload(n string) service.Upload {
	lines := []string{
		"Jornada " + n,
		"Descansa AMERICA",
		"REAL SPORT 2 - 1",
		"11-10-2025",
		"15:30",
		"REAL TAJO",
		"Campo: ENRIQUE MORENO - B - Hierba Artificial",
	}
	html := "<html><body><p>" + strings.Join(lines, "</p><p>") + "</p></body></html>"
	return service.Upload{Filename: "jornada.html", ContentType: "text/html", Data: []byte(html)}
}

func session(t *testing.T, services *service.Services) *mcp.ClientSession {
	t.Helper()
	srv := New(services, "test")

	serverT, clientT := mcp.NewInMemoryTransports()
	ctx := context.Background()
	go func() { _ = srv.Run(ctx, serverT) }()

	client := mcp.NewClient(testImpl, nil)
	s, err := client.Connect(ctx, clientT, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func call(t *testing.T, s *mcp.ClientSession, name string, args any) (string, bool) {
	t.Helper()
	result, err := s.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	tc, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("CallTool(%s): expected TextContent", name)
	}
	return tc.Text, result.IsError
}

func TestListTools(t *testing.T) {
	s := session(t, newServices(t))
	res, err := s.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}
	want := map[string]bool{"classification": true, "matchday": true, "calendar": true, "top_scorers": true, "team_fixtures": true}
	for _, tool := range res.Tools {
		delete(want, tool.Name)
	}
	if len(want) != 0 {
		t.Fatalf("missing tools: %v", want)
	}
}

func TestMatchdayTool(t *testing.T) {
	services := newServices(t)
	ctx := context.Background()
	for _, n := range []string{"1", "2"} {
		if _, err := services.Matchdays.Process(ctx, roundUpload(n)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	s := session(t, services)

	text, isErr := call(t, s, "matchday", map[string]any{})
	if isErr {
		t.Fatalf("unexpected tool error: %s", text)
	}
	var round league.Matchday
	if err := json.Unmarshal([]byte(text), &round); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if round.Number != 2 || len(round.Fixtures) != 1 {
		t.Fatalf("expected the tracked fixture of matchday 2, got %+v", round)
	}

	text, _ = call(t, s, "matchday", map[string]any{"number": 1, "full": true})
	if err := json.Unmarshal([]byte(text), &round); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if round.Number != 1 || len(round.Fixtures) != 2 {
		t.Fatalf("expected every fixture of matchday 1, got %+v", round)
	}

	if text, isErr := call(t, s, "matchday", map[string]any{"number": 9}); !isErr || !strings.Contains(text, "not found") {
		t.Fatalf("expected a not found tool error, got %q", text)
	}
}

func TestTeamFixturesTool(t *testing.T) {
	services := newServices(t)
	if _, err := services.Matchdays.Process(context.Background(), roundUpload("3")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := session(t, services)

	text, isErr := call(t, s, "team_fixtures", map[string]any{})
	if isErr {
		t.Fatalf("unexpected tool error: %s", text)
	}
	var resp struct {
		Team      string            `json:"team"`
		Matchdays []league.Matchday `json:"matchdays"`
	}
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Team != "REAL TAJO" || len(resp.Matchdays) != 1 || resp.Matchdays[0].Number != 3 {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestEmptyStoreReportsToolErrors(t *testing.T) {
	s := session(t, newServices(t))
	for _, name := range []string{"classification", "calendar", "top_scorers"} {
		if text, isErr := call(t, s, name, map[string]any{}); !isErr {
			t.Errorf("%s: expected a tool error, got %q", name, text)
		}
	}
}
