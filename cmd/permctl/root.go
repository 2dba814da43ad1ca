package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sevy33/permissions-in-go/pkg/client"
	"github.com/sevy33/permissions-in-go/pkg/config"
	"github.com/sevy33/permissions-in-go/pkg/logging"
)

var rootCmd = &cobra.Command{
	Use:   "permctl",
	Short: "Permissions server and administration tool",
	Long: `Run the permissions server and manage its projects, permissions and
permission groups.

Client commands (project, export, catalog, console) talk to a running
server at --url. Commands that need the database directly (server, db,
project import) read DATABASE_URL.`,
}

func init() {
	rootCmd.PersistentFlags().String("url", defaultServerURL(), "permissions server URL (PERMCTL_URL)")
	rootCmd.PersistentFlags().String("token", os.Getenv("PERMCTL_TOKEN"), "admin bearer token (PERMCTL_TOKEN)")
}

func defaultServerURL() string {
	if u := os.Getenv("PERMCTL_URL"); u != "" {
		return u
	}
	return "http://localhost:" + defaultPort()
}

// newClient builds an API client from the persistent flags
func newClient(cmd *cobra.Command) *client.Client {
	url, _ := cmd.Flags().GetString("url")
	token, _ := cmd.Flags().GetString("token")

	var opts []client.Option
	if token != "" {
		opts = append(opts, client.WithToken(token))
	}
	return client.New(url, opts...)
}

// loadConfig loads and validates configuration, exiting on failure
func loadConfig() (*config.Config, *logrus.Logger) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid logging configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg, log
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
