package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sevy33/permissions-in-go/pkg/audit"
	"github.com/sevy33/permissions-in-go/pkg/db"
	"github.com/sevy33/permissions-in-go/pkg/manifest"
	gormstore "github.com/sevy33/permissions-in-go/pkg/server/store/gorm"
)

// projectImportCmd represents the project import command
var projectImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Create or update a project from a YAML manifest",
	Long: `Create or update a project from a YAML manifest.

The project is matched by name. Permissions are created or updated by key,
groups are created by name, and every group gets exactly the permissions it
lists. Nothing is deleted. The whole manifest is applied in one transaction.

With --watch the manifest is applied again every time the file is saved.

Requires the DATABASE_URL environment variable.

Example manifest:
  project:
    name: Billing
  permissions:
    - key: invoice.read
      description: Read invoices
  groups:
    - name: Admins
      permissions: [invoice.read]

Example:
  permctl project import billing.yml
  permctl project import billing.yml --watch`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := args[0]
		watch, _ := cmd.Flags().GetBool("watch")

		m, err := manifest.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid manifest: %v\n", err)
			os.Exit(1)
		}

		cfg, log := loadConfig()
		audit.SetEnabled(cfg.AuditEnabled)

		database, err := db.Connect(db.Config{Log: log})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to connect to DB: %v\n", err)
			os.Exit(1)
		}
		st := gormstore.NewStore(database)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		result, err := manifest.Apply(ctx, st, m)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Import failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s: %s\n", m.Project.Name, result)
		if result.ProjectCreated {
			fmt.Printf("API key: %s\n", result.APIKey)
		}

		if !watch {
			return
		}
		if err := manifest.Watch(ctx, st, path, log); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to watch manifest: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Shutting down...")
	},
}

func init() {
	projectCmd.AddCommand(projectImportCmd)
	projectImportCmd.Flags().BoolP("watch", "w", false, "Re-apply the manifest whenever the file changes")
}
