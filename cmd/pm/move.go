package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var moveCmd = &cobra.Command{
	Use:     "move <id>",
	Short:   "Move a process under a new parent (or to the area root)",
	GroupID: "processes",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		parent, _ := cmd.Flags().GetString("parent")
		toRoot, _ := cmd.Flags().GetBool("root")

		if toRoot == (parent != "") {
			return fmt.Errorf("specify exactly one of --parent or --root")
		}

		var parentID *string
		if parent != "" {
			parentID = &parent
		}

		p, err := pmClient.MoveProcess(context.Background(), id, parentID)
		if err != nil {
			return fmt.Errorf("moving process %s: %w", id, err)
		}

		if jsonOutput {
			printJSON(p)
		} else {
			printProcessTable(p)
		}
		return nil
	},
}

func init() {
	moveCmd.Flags().StringP("parent", "p", "", "new parent process ID")
	moveCmd.Flags().Bool("root", false, "promote the process to an area root")
}
