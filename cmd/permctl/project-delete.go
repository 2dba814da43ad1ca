package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// projectDeleteCmd represents the project delete command
var projectDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a project with its permissions and groups",
	Long: `Delete a project together with all of its permissions, groups and
group toggles. Asks for confirmation unless --yes is given.

Example:
  permctl project delete 3
  permctl project delete 3 --yes`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid project id: %s\n", args[0])
			os.Exit(1)
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirm(fmt.Sprintf("Delete project %d and all associated permissions and groups?", id)) {
			fmt.Println("Aborted")
			return
		}

		ctx, cancel := requestContext()
		defer cancel()

		if err := newClient(cmd).DeleteProject(ctx, id); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to delete project: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Deleted project %d\n", id)
	},
}

func init() {
	projectCmd.AddCommand(projectDeleteCmd)
	projectDeleteCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
