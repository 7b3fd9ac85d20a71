// Package mcpserver exposes the stored league records as MCP tools.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/JaviLianes8/RealTajoFCBack/internal/league"
	"github.com/JaviLianes8/RealTajoFCBack/internal/service"
)

// MatchdayArgs selects a matchday. Zero means the latest one.
type MatchdayArgs struct {
	Number int  `json:"number,omitempty" jsonschema:"Matchday number (0 or omitted = latest)"`
	Full   bool `json:"full,omitempty" jsonschema:"Return every fixture instead of the tracked team's"`
}

// NoArgs is the input of tools without parameters.
type NoArgs struct{}

// New builds an MCP server with the league tools registered.
func New(services *service.Services, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "realtajo", Version: version}, nil)
	Register(server, services)
	return server
}

// Register adds the league tools to server.
func Register(server *mcp.Server, services *service.Services) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "classification",
		Description: "Current league standings with the tracked team's last match",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ NoArgs) (*mcp.CallToolResult, any, error) {
		table, err := services.Classification.Get(ctx)
		if err != nil {
			return toolError(err), nil, nil
		}
		return jsonResult(table.View())
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "matchday",
		Description: "Fixtures of a matchday, reduced to the tracked team unless full is set",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args MatchdayArgs) (*mcp.CallToolResult, any, error) {
		var (
			round *league.Matchday
			err   error
		)
		switch {
		case args.Number < 0:
			return toolError(fmt.Errorf("number must be >= 0")), nil, nil
		case args.Number == 0:
			round, err = services.Matchdays.Latest(ctx)
		default:
			round, err = services.Matchdays.Get(ctx, args.Number)
		}
		if err != nil {
			return toolError(err), nil, nil
		}
		if args.Full {
			return jsonResult(round)
		}
		return jsonResult(round.ForTeam(services.Team))
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "calendar",
		Description: "Season calendar of the tracked team",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ NoArgs) (*mcp.CallToolResult, any, error) {
		cal, err := services.Calendar.Get(ctx)
		if err != nil {
			return toolError(err), nil, nil
		}
		return jsonResult(cal)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "top_scorers",
		Description: "Scorer table ordered by goals",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ NoArgs) (*mcp.CallToolResult, any, error) {
		table, err := services.TopScorers.Get(ctx)
		if err != nil {
			return toolError(err), nil, nil
		}
		return jsonResult(table.View())
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "team_fixtures",
		Description: "The tracked team's fixture in every stored matchday",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ NoArgs) (*mcp.CallToolResult, any, error) {
		rounds, err := services.Matchdays.TeamFixtures(ctx)
		if err != nil {
			return toolError(err), nil, nil
		}
		return jsonResult(map[string]any{
			"team":      services.Team,
			"matchdays": rounds,
		})
	})
}

// HTTPHandler serves server over streamable HTTP with JSON responses.
func HTTPHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})
}

func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil, nil
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
