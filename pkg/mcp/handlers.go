package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gnana997/iconport/pkg/convert"
	"github.com/gnana997/iconport/pkg/naming"
)

type convertIconResponse struct {
	Component   string   `json:"component"`
	Controllers []string `json:"controllers"`
	Warnings    []string `json:"warnings,omitempty"`
	Cached      bool     `json:"cached"`
	Code        string   `json:"code"`
}

type iconEntry struct {
	File      string `json:"file"`
	Path      string `json:"path"`
	Component string `json:"component"`
}

type failure struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

type directoryResponse struct {
	Attempted  int       `json:"attempted"`
	Converted  int       `json:"converted"`
	Unchanged  int       `json:"unchanged"`
	Failed     int       `json:"failed"`
	Fallbacks  int       `json:"fallbacks"`
	DurationMs int64     `json:"duration_ms"`
	OutputDir  string    `json:"output_dir"`
	Failures   []failure `json:"failures,omitempty"`
}

func (s *Server) handleConvertIcon(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	source, err := req.RequireString("source")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name = filepath.Base(name)

	key := name + ":" + convert.Digest([]byte(source))
	out, cached := s.outputs.Get(key)
	if !cached {
		out, err = s.conv.ConvertSource(name, []byte(source))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		s.outputs.Add(key, out)
	}

	return jsonResult(convertIconResponse{
		Component:   out.Icon.Unit.ComponentName,
		Controllers: out.Icon.ControllerNames(),
		Warnings:    out.Warnings,
		Cached:      cached,
		Code:        string(out.Text),
	})
}

func (s *Server) handleListIcons(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opts := s.conv.Options()
	dir := req.GetString("dir", opts.InputDir)

	files, err := convert.Discover(dir, opts.Include, opts.Exclude)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	entries := make([]iconEntry, 0, len(files))
	for _, f := range files {
		entries = append(entries, iconEntry{
			File:      filepath.Base(f),
			Path:      f,
			Component: naming.ComponentName(naming.Stem(f)),
		})
	}
	return jsonResult(entries)
}

func (s *Server) handleConvertDirectory(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summary, err := s.conv.Run(ctx)
	if summary == nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err != nil {
		s.logger.Warn("directory conversion interrupted", "error", err)
	}

	resp := directoryResponse{
		Attempted:  summary.Attempted,
		Converted:  summary.Converted,
		Unchanged:  summary.Unchanged,
		Failed:     summary.Failed,
		Fallbacks:  summary.Fallbacks,
		DurationMs: summary.Duration.Milliseconds(),
		OutputDir:  s.conv.Options().OutputDir,
	}
	for _, r := range summary.Failures() {
		resp.Failures = append(resp.Failures, failure{File: filepath.Base(r.Path), Error: r.Err.Error()})
	}
	return jsonResult(resp)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return mcp.NewToolResultText(string(b)), nil
}
