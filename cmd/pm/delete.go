package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Short:   "Delete a process and its entire subtree",
	GroupID: "processes",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		force, _ := cmd.Flags().GetBool("force")

		if !force {
			fmt.Printf("Delete %s and all of its descendants? [y/N] ", id)
			reader := bufio.NewReader(os.Stdin)
			answer, _ := reader.ReadString('\n')
			answer = strings.ToLower(strings.TrimSpace(answer))
			if answer != "y" && answer != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		deleted, err := pmClient.DeleteProcess(context.Background(), id)
		if err != nil {
			return fmt.Errorf("deleting process %s: %w", id, err)
		}

		if jsonOutput {
			printJSON(map[string][]string{"deletedIds": deleted})
		} else {
			fmt.Printf("Deleted %d processes:\n", len(deleted))
			for _, d := range deleted {
				fmt.Printf("  %s\n", d)
			}
		}
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolP("force", "f", false, "skip the confirmation prompt")
}
