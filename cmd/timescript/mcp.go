package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/timescript/internal/cli"
	"github.com/aretw0/timescript/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts TimeScript as an MCP Server.
This allows AI agents to compile and validate scripts as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		addr, _ := cmd.Flags().GetString("addr")

		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		srv := mcp.NewServer(app.Engine, app.Logger)

		switch transport {
		case "stdio":
			// Logs go to stderr so they never corrupt JSON-RPC on stdout.
			app.Logger.Info("Starting TimeScript MCP Server (Stdio)")
			return srv.ServeStdio()
		case "sse":
			sc := cli.NewSignalContext(cmd.Context())
			defer sc.Cancel()

			if err := srv.ServeSSE(sc, addr, baseURL(addr)); err != nil {
				return err
			}
			app.Logger.Info("MCP Server stopped gracefully", "signal", fmt.Sprint(sc.Signal()))
			return nil
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

// baseURL turns a listen address such as ":8081" into the URL clients dial.
func baseURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringP("transport", "t", "stdio", "Transport to use (stdio, sse)")
	mcpCmd.Flags().String("addr", ":8081", "Listen address for the SSE transport")
}
