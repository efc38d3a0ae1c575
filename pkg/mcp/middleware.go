package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/iconport/pkg/mcplog"
)

// callLogMiddleware records every tool call in the call log. Only installed
// when s.callLog is non-nil.
func (s *Server) callLogMiddleware() server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			start := mcplog.Now()
			result, err := next(ctx, req)

			args := req.GetArguments()
			entry := mcplog.Entry{
				Time:       start.UTC().Format(time.RFC3339),
				Tool:       req.Params.Name,
				Args:       mcplog.RedactArgs(args),
				DurationMs: time.Since(start).Milliseconds(),
				Bytes:      mcplog.ContentBytes(result),
			}
			if name, ok := args["name"].(string); ok {
				entry.Icon = name
			}
			switch {
			case err != nil:
				entry.Failed = true
				entry.Error = err.Error()
			case result != nil && result.IsError:
				entry.Failed = true
				entry.Error = firstText(result)
			}
			_ = s.callLog.Record(entry)

			return result, err
		}
	}
}

func firstText(result *mcp.CallToolResult) string {
	for _, c := range result.Content {
		if text, ok := c.(mcp.TextContent); ok {
			return text.Text
		}
	}
	return ""
}
