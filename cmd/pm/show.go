package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:     "show <id>",
	Short:   "Show details of a process",
	GroupID: "processes",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		p, err := pmClient.GetProcess(context.Background(), id)
		if err != nil {
			return fmt.Errorf("getting process %s: %w", id, err)
		}

		if jsonOutput {
			printJSON(p)
			return nil
		}

		printProcessTable(p)

		// Show the ancestry path for nested processes.
		if p.ParentID != nil {
			path, err := pmClient.Breadcrumb(context.Background(), id)
			if err == nil && len(path) > 1 {
				fmt.Println()
				fmt.Println("Path:")
				printBreadcrumbPath(path)
			}
		}
		return nil
	},
}
