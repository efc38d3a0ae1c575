package main

import (
	"github.com/spf13/cobra"

	"github.com/gnana997/iconport/pkg/convert"
	mcpserver "github.com/gnana997/iconport/pkg/mcp"
	"github.com/gnana997/iconport/pkg/mcplog"
)

func newServeCmd(global *globalOptions) *cobra.Command {
	var logPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the conversion tools over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd, global, nil)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("mcp-log") {
				p, err := absFlag("mcp-log", logPath)
				if err != nil {
					return err
				}
				a.cfg.MCPLog = p
			}

			callLog, err := mcplog.Open(a.cfg.MCPLog)
			if err != nil {
				return err
			}
			if callLog != nil {
				defer callLog.Close()
			}

			conv, err := convert.New(a.cfg.ConvertOptions(), a.logger)
			if err != nil {
				return err
			}
			defer conv.Close()

			srv, err := mcpserver.NewServer(conv, version, a.logger, callLog, a.cfg.CacheSize)
			if err != nil {
				return err
			}
			return srv.ServeStdio()
		},
	}
	cmd.Flags().StringVar(&logPath, "mcp-log", "", "Append a JSONL record of every tool call to this file")
	return cmd
}
