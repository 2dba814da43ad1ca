package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sevy33/permissions-in-go/pkg/client"
)

// waitCmd represents the wait command
var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait for the permissions server to be ready",
	Long: `Wait for the permissions server to be ready by polling /health.

The server counts as ready once it answers and can reach its database.

Example:
  permctl wait
  permctl wait --port 3000 --retries 60`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetInt("port")
		retries, _ := cmd.Flags().GetInt("retries")

		if err := waitForServer(port, retries); err != nil {
			fmt.Fprintf(os.Stderr, "Server did not become ready: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(waitCmd)
	waitCmd.Flags().IntP("port", "p", defaultPortInt(), "Server port to check")
	waitCmd.Flags().IntP("retries", "r", 90, "Number of retries")
}

func waitForServer(port, retries int) error {
	c := client.New(
		fmt.Sprintf("http://localhost:%d", port),
		client.WithHTTPClient(&http.Client{Timeout: 2 * time.Second}),
	)

	fmt.Println("Waiting for the permissions server to be ready...")

	for i := 0; i < retries; i++ {
		if err := c.Health(context.Background()); err == nil {
			fmt.Println()
			fmt.Println("Server is ready")
			return nil
		}

		fmt.Print(".")
		time.Sleep(1 * time.Second)
	}

	fmt.Println()
	return fmt.Errorf("server is not ready after %d seconds", retries)
}
