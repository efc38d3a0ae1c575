// Package mcp exposes the converter as an MCP server over stdio, so editor
// agents can convert icons without touching the file system.
package mcp

import (
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/iconport/pkg/convert"
	"github.com/gnana997/iconport/pkg/mcplog"
)

// Server serves the conversion tools.
type Server struct {
	mcpServer *server.MCPServer
	conv      *convert.Converter
	logger    *slog.Logger
	callLog   *mcplog.Logger // nil disables the call log

	// outputs caches convert_icon results by name and source digest.
	outputs *lru.Cache[string, *convert.Output]
}

// NewServer builds a server around conv. cacheSize <= 0 selects
// convert.DefaultCacheSize.
func NewServer(conv *convert.Converter, version string, logger *slog.Logger, callLog *mcplog.Logger, cacheSize int) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cacheSize <= 0 {
		cacheSize = convert.DefaultCacheSize
	}
	outputs, err := lru.New[string, *convert.Output](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create output cache: %w", err)
	}

	s := &Server{conv: conv, logger: logger, callLog: callLog, outputs: outputs}

	opts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	}
	if callLog != nil {
		opts = append(opts, server.WithToolHandlerMiddleware(s.callLogMiddleware()))
	}
	s.mcpServer = server.NewMCPServer("iconport", version, opts...)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: convertIconTool(), Handler: s.handleConvertIcon},
		server.ServerTool{Tool: listIconsTool(), Handler: s.handleListIcons},
		server.ServerTool{Tool: convertDirectoryTool(), Handler: s.handleConvertDirectory},
	)

	return s, nil
}

// ServeStdio serves on stdin/stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	s.logger.Info("serving MCP on stdio", "tools", len(ToolNames))
	return server.ServeStdio(s.mcpServer)
}
