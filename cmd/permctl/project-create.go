package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// projectCreateCmd represents the project create command
var projectCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a project",
	Long: `Create a project and print its generated API key.

Example:
  permctl project create Billing --description "Invoices and payments"`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var description *string
		if cmd.Flags().Changed("description") {
			d, _ := cmd.Flags().GetString("description")
			description = &d
		}

		ctx, cancel := requestContext()
		defer cancel()

		project, err := newClient(cmd).CreateProject(ctx, args[0], description)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create project: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Created project %d (%s)\n", project.ID, project.Name)
		fmt.Printf("API key: %s\n", project.APIKey)
	},
}

func init() {
	projectCmd.AddCommand(projectCreateCmd)
	projectCreateCmd.Flags().StringP("description", "d", "", "Project description")
}
