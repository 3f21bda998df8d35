// ABOUTME: CLI command printing the build version.
// ABOUTME: Version is overridden at link time with -ldflags.
package main

import (
	"fmt"

	"github.com/harperreed/habits/internal/mcp"
	"github.com/spf13/cobra"
)

var version = "dev"

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print the version",
	Annotations: map[string]string{skipStore: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("habits %s\n", version)
	},
}

func init() {
	mcp.Version = version
	rootCmd.AddCommand(versionCmd)
}
