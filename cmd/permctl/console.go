package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sevy33/permissions-in-go/pkg/console"
	"github.com/sevy33/permissions-in-go/pkg/console/tui"
)

// consoleCmd represents the console command
var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Browse and edit projects in a terminal UI",
	Long: `Open the administration console against a running server.

Keys: Enter opens a project, n/p/g add a project, permission or group,
e edits a permission, Space toggles the permission for the focused group,
d and D delete after a y/n confirmation, c shows the project's API key,
q quits.

Example:
  permctl console --url http://localhost:8000`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		vm := console.New(newClient(cmd))
		if err := tui.Run(vm); err != nil {
			fmt.Fprintf(os.Stderr, "Console failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}
