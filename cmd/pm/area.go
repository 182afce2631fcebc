package main

import (
	"context"
	"fmt"

	"github.com/groblegark/procmap/internal/client"
	"github.com/spf13/cobra"
)

var areaCmd = &cobra.Command{
	Use:     "area <command>",
	Short:   "Manage areas",
	GroupID: "areas",
}

var areaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all areas in display order",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := pmClient.ListAreas(context.Background())
		if err != nil {
			return fmt.Errorf("listing areas: %w", err)
		}

		if jsonOutput {
			printJSON(resp.Areas)
		} else {
			printAreaListTable(resp.Areas, resp.Total)
		}
		return nil
	},
}

var areaCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new area",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := &client.CreateAreaRequest{Name: args[0]}
		if cmd.Flags().Changed("order") {
			order, _ := cmd.Flags().GetInt("order")
			req.Order = &order
		}

		area, err := pmClient.CreateArea(context.Background(), req)
		if err != nil {
			return fmt.Errorf("creating area: %w", err)
		}

		if jsonOutput {
			printJSON(area)
		} else {
			printAreaTable(area)
		}
		return nil
	},
}

var areaShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show details of an area",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		area, err := pmClient.GetArea(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("getting area %s: %w", args[0], err)
		}

		if jsonOutput {
			printJSON(area)
		} else {
			printAreaTable(area)
		}
		return nil
	},
}

var areaRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename an area",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[1]
		area, err := pmClient.UpdateArea(context.Background(), args[0], &client.UpdateAreaRequest{Name: &name})
		if err != nil {
			return fmt.Errorf("renaming area %s: %w", args[0], err)
		}

		if jsonOutput {
			printJSON(area)
		} else {
			printAreaTable(area)
		}
		return nil
	},
}

var areaDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an area and all of its processes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := pmClient.DeleteArea(context.Background(), args[0]); err != nil {
			return fmt.Errorf("deleting area %s: %w", args[0], err)
		}
		if !jsonOutput {
			fmt.Printf("Deleted area %s\n", args[0])
		}
		return nil
	},
}

var areaReorderCmd = &cobra.Command{
	Use:   "reorder <id> [<id> ...]",
	Short: "Reorder areas by listing their IDs in the desired order",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := pmClient.ReorderAreas(context.Background(), args); err != nil {
			return fmt.Errorf("reordering areas: %w", err)
		}

		resp, err := pmClient.ListAreas(context.Background())
		if err != nil {
			return fmt.Errorf("listing areas: %w", err)
		}

		if jsonOutput {
			printJSON(resp.Areas)
		} else {
			printAreaListTable(resp.Areas, resp.Total)
		}
		return nil
	},
}

func init() {
	areaCreateCmd.Flags().Int("order", 0, "position among areas (default: append)")

	areaCmd.AddCommand(areaListCmd)
	areaCmd.AddCommand(areaCreateCmd)
	areaCmd.AddCommand(areaShowCmd)
	areaCmd.AddCommand(areaRenameCmd)
	areaCmd.AddCommand(areaDeleteCmd)
	areaCmd.AddCommand(areaReorderCmd)
}
