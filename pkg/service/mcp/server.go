package mcp

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/omnifind/pkg/model"
	"github.com/m-mizutani/omnifind/pkg/usecase/history"
	"github.com/m-mizutani/omnifind/pkg/usecase/reading"
	"github.com/m-mizutani/omnifind/pkg/utils/logging"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	ServerName    = "omnifind"
	ServerVersion = "0.1.0"

	ToolCast        = "cast_divination"
	ToolListHistory = "list_history"
	ToolShowHistory = "show_history"
)

// Server exposes casting and history lookup as MCP tools
type Server struct {
	reading *reading.UseCase
	history *history.UseCase
	server  *mcp.Server
}

// NewServer registers every tool on a fresh MCP server
func NewServer(readingUC *reading.UseCase, historyUC *history.UseCase) *Server {
	s := &Server{
		reading: readingUC,
		history: historyUC,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		}, nil),
	}

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolCast,
		Description: "Cast a lost-item divination and record it in history. Returns the saved record as JSON.",
		InputSchema: castSchema(),
	}, s.cast)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolListHistory,
		Description: "List recorded divinations, newest first.",
	}, s.listHistory)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolShowHistory,
		Description: "Show one recorded divination by id.",
	}, s.showHistory)

	return s
}

// Run serves over stdio until ctx is done or the peer disconnects
func (s *Server) Run(ctx context.Context) error {
	if err := s.server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return goerr.Wrap(err, "mcp server stopped")
	}
	return nil
}

// Handler returns a streamable HTTP handler serving this server
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return s.server
	}, nil)
}

type castParams struct {
	ItemName     string `json:"item_name"`
	LostLocation string `json:"lost_location,omitempty"`
	Direction    string `json:"direction,omitempty"`
	LostTime     string `json:"lost_time,omitempty"`
	Lang         string `json:"lang,omitempty"`
}

func castSchema() *jsonschema.Schema {
	directions := make([]any, 0, len(model.Directions))
	for _, d := range model.Directions {
		directions = append(directions, string(d))
	}

	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"item_name": {
				Type:        "string",
				Description: "What was lost, e.g. keys or 钥匙",
			},
			"lost_location": {
				Type:        "string",
				Description: "Where it was lost, e.g. Subway, Home, 酒店",
			},
			"direction": {
				Type:        "string",
				Description: "Compass direction of the loss relative to the seeker",
				Enum:        directions,
			},
			"lost_time": {
				Type:        "string",
				Description: "Local datetime 2006-01-02T15:04, or one of now, 1h, 12h",
			},
			"lang": {
				Type:        "string",
				Description: "Result language: zh (default) or en",
			},
		},
		Required: []string{"item_name"},
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode tool result")
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(data)},
		},
	}, nil
}

func (s *Server) cast(ctx context.Context, req *mcp.CallToolRequest, params *castParams) (*mcp.CallToolResult, any, error) {
	dir, ok := model.ParseDirection(params.Direction)
	if !ok {
		logging.From(ctx).Warn("unknown direction, using center", "direction", params.Direction)
	}
	lang, _ := model.ParseLanguage(params.Lang)

	out, err := s.reading.Cast(ctx, model.Input{
		ItemName:     params.ItemName,
		LostLocation: params.LostLocation,
		Direction:    dir,
		LostTime:     params.LostTime,
	}, lang)
	if err != nil {
		return nil, nil, err
	}

	res, err := jsonResult(out.Item)
	return res, nil, err
}

type listParams struct{}

func (s *Server) listHistory(ctx context.Context, req *mcp.CallToolRequest, _ *listParams) (*mcp.CallToolResult, any, error) {
	items, err := s.history.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	res, err := jsonResult(items)
	return res, nil, err
}

type showParams struct {
	ID string `json:"id" jsonschema:"History record id"`
}

func (s *Server) showHistory(ctx context.Context, req *mcp.CallToolRequest, params *showParams) (*mcp.CallToolResult, any, error) {
	item, err := s.history.Show(ctx, model.HistoryID(params.ID))
	if err != nil {
		return nil, nil, err
	}

	res, err := jsonResult(item)
	return res, nil, err
}
