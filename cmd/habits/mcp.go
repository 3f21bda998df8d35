// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/habits/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants to read and update your habits through a
standardized protocol. The server communicates via stdin/stdout; logs go to
the log file only.

CONFIGURATION:

  {
    "mcpServers": {
      "habits": {
        "command": "habits",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  list_habits        Habits with today's state and streaks
  create_habit       Create a habit
  update_habit       Edit a habit
  delete_habit       Delete a habit by ID
  toggle_completion  Mark or unmark a day
  get_plan           Show the plan
  set_plan           Switch free/premium
  get_stats          Overview and progress

AVAILABLE RESOURCES:

  habits://today     Today's done and pending habits
  habits://summary   Overview, plan and pending names`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(store, logger)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
