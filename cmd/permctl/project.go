package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// requestTimeout bounds a single API call made by a client command
const requestTimeout = 30 * time.Second

// projectCmd represents the project command
var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
	Long:  `List, create, delete and import projects.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'project' requires a subcommand (list, create, delete, import)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(projectCmd)
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}
