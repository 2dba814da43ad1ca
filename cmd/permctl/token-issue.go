package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sevy33/permissions-in-go/pkg/server/middleware"
)

// tokenIssueCmd represents the token issue command
var tokenIssueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Issue an admin bearer token",
	Long: `Issue an HS256 admin token signed with admin_token_secret.

The token is valid for admin_token_ttl seconds unless --ttl is given.
Pass it to client commands with --token or PERMCTL_TOKEN.

Example:
  export PERMCTL_TOKEN=$(permctl token issue --subject alice)`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		subject, _ := cmd.Flags().GetString("subject")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		cfg, _ := loadConfig()
		if !cfg.TokenGateEnabled() {
			fmt.Fprintln(os.Stderr, "admin_token_secret is not configured")
			os.Exit(1)
		}
		if ttl == 0 {
			ttl = cfg.TokenTTL()
		}

		token, err := middleware.IssueToken(cfg.AdminTokenSecret, subject, ttl)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to issue token: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(token)
	},
}

func init() {
	tokenCmd.AddCommand(tokenIssueCmd)
	tokenIssueCmd.Flags().StringP("subject", "s", "", "Operator name recorded as the token subject")
	tokenIssueCmd.Flags().Duration("ttl", 0, "Token lifetime (default: admin_token_ttl)")
	_ = tokenIssueCmd.MarkFlagRequired("subject")
}
