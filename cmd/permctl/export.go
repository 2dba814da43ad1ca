package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the exported permissions of one or all projects",
	Long: `Print what applications see through the export API: each group with
the permissions it currently enables.

Without --api-key every project is exported.

Example:
  permctl export
  permctl export --api-key 0b7c... -o yaml`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		apiKey, _ := cmd.Flags().GetString("api-key")
		output, _ := cmd.Flags().GetString("output")

		ctx, cancel := requestContext()
		defer cancel()

		c := newClient(cmd)
		var (
			data interface{}
			err  error
		)
		if apiKey == "" {
			data, err = c.ExportAll(ctx)
		} else {
			data, err = c.ExportProject(ctx, apiKey)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
			os.Exit(1)
		}

		switch output {
		case "yaml":
			enc := yaml.NewEncoder(os.Stdout)
			err = enc.Encode(data)
			_ = enc.Close()
		case "json":
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			err = enc.Encode(data)
		default:
			err = fmt.Errorf("unknown output format %q", output)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("api-key", "k", "", "Export only the project with this API key")
	exportCmd.Flags().StringP("output", "o", "json", "Output format (json or yaml)")
}
