package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var treeCmd = &cobra.Command{
	Use:     "tree",
	Short:   "Show the full process tree, optionally filtered by name",
	GroupID: "views",
	RunE: func(cmd *cobra.Command, args []string) error {
		query, _ := cmd.Flags().GetString("query")
		areaID, _ := cmd.Flags().GetString("area")

		roots, err := pmClient.GetTree(context.Background(), query)
		if err != nil {
			return fmt.Errorf("getting tree: %w", err)
		}

		if areaID != "" {
			kept := roots[:0]
			for _, r := range roots {
				if r.AreaID == areaID {
					kept = append(kept, r)
				}
			}
			roots = kept
		}

		if jsonOutput {
			printJSON(roots)
			return nil
		}

		if len(roots) == 0 {
			if query != "" {
				fmt.Printf("No processes matching %q.\n", query)
			} else {
				fmt.Println("No processes found.")
			}
			return nil
		}

		printProcessTree(roots)
		return nil
	},
}

func init() {
	treeCmd.Flags().StringP("query", "q", "", "keep only subtrees whose name matches (case-insensitive)")
	treeCmd.Flags().StringP("area", "a", "", "show only roots belonging to the given area")
}
