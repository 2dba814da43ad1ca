package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sevy33/permissions-in-go/pkg/catalog"
)

// catalogCmd represents the catalog command
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Render a project's permission catalog",
	Long: `Render a project's exported permissions as a Markdown document, one
section per group, or as HTML with --html.

Example:
  permctl catalog --api-key 0b7c... > PERMISSIONS.md
  permctl catalog --api-key 0b7c... --html > permissions.html`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		apiKey, _ := cmd.Flags().GetString("api-key")
		asHTML, _ := cmd.Flags().GetBool("html")

		ctx, cancel := requestContext()
		defer cancel()

		project, err := newClient(cmd).ExportProject(ctx, apiKey)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to fetch project: %v\n", err)
			os.Exit(1)
		}

		if !asHTML {
			fmt.Print(catalog.Markdown(*project))
			return
		}
		out, err := catalog.HTML(*project)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to render catalog: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(out)
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().StringP("api-key", "k", "", "API key of the project")
	catalogCmd.Flags().Bool("html", false, "Render HTML instead of Markdown")
	_ = catalogCmd.MarkFlagRequired("api-key")
}
