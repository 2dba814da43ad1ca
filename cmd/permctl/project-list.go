package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sevy33/permissions-in-go/pkg/model"
)

// projectListCmd represents the project list command
var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	Long: `List every project with its permission and group counts.

Example:
  permctl project list
  permctl project list -o json`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")

		ctx, cancel := requestContext()
		defer cancel()

		projects, err := newClient(cmd).ListProjects(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list projects: %v\n", err)
			os.Exit(1)
		}

		if err := printProjects(projects, output); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to print projects: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	projectCmd.AddCommand(projectListCmd)
	projectListCmd.Flags().StringP("output", "o", "text", "Output format (text, json or yaml)")
}

func printProjects(projects []model.Project, output string) error {
	switch output {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(projects)
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		defer func() { _ = enc.Close() }()
		return enc.Encode(projects)
	case "text":
	default:
		return fmt.Errorf("unknown output format %q", output)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPERMISSIONS\tGROUPS\tAPI KEY")
	for _, p := range projects {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\n", p.ID, p.Name, len(p.Permissions), len(p.PermissionGroups), p.APIKey)
	}
	return w.Flush()
}
