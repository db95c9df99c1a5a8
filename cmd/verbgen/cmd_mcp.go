package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	verbmcp "github.com/speaknative/verbgen/internal/mcp"
)

func mcpCmd() *cobra.Command {
	var (
		manifestPath string
		catalogPath  string
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP (Model Context Protocol) server over stdio",
		Long: `Starts an MCP JSON-RPC 2.0 server that reads from stdin and writes to stdout.
All diagnostic logs go to stderr so that stdout remains exclusively MCP protocol traffic.

Tools exposed:
  list_verbs   — curated verbs, optionally flattened for a source/target locale pair
  get_verb     — full manifest record of a verb
  conjugation  — forms of a verb in one locale, tense and person
  find_form    — which verb, tense and person produce a form`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger()

			idx, source, err := newIndex(manifestPath, catalogPath, logger)
			if err != nil {
				return fmt.Errorf("mcp: %w", err)
			}

			srv := verbmcp.NewServer(idx, version, logger)

			// Use a standard log.Logger pointing at stderr for the mcp-go error logger.
			errLogger := log.New(os.Stderr, "mcp: ", log.LstdFlags)

			logger.Info("mcp: verbgen MCP server starting", "transport", "stdio", "source", source, "verbs", idx.Len())

			return mcpserver.ServeStdio(
				srv.MCPServer(),
				mcpserver.WithErrorLogger(errLogger),
			)
		},
	}

	cmd.Flags().StringVar(&manifestPath, "manifest", "", "serve this manifest file instead of generating")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "YAML catalog to use instead of the embedded one")
	return cmd
}
