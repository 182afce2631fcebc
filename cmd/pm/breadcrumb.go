package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var breadcrumbCmd = &cobra.Command{
	Use:     "breadcrumb <id>",
	Short:   "Show the ancestry path of a process, root first",
	GroupID: "views",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		path, err := pmClient.Breadcrumb(context.Background(), id)
		if err != nil {
			return fmt.Errorf("getting breadcrumb for %s: %w", id, err)
		}

		if jsonOutput {
			printJSON(path)
			return nil
		}

		names := make([]string, len(path))
		for i, p := range path {
			names[i] = p.Name
		}
		fmt.Println(strings.Join(names, " > "))
		return nil
	},
}
