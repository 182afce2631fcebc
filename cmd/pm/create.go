package main

import (
	"context"
	"fmt"

	"github.com/groblegark/procmap/internal/client"
	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:     "create <name>",
	Short:   "Create a new process",
	GroupID: "processes",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		areaID, _ := cmd.Flags().GetString("area")
		parentID, _ := cmd.Flags().GetString("parent")
		tools, _ := cmd.Flags().GetString("tools")
		responsible, _ := cmd.Flags().GetString("responsible")
		docs, _ := cmd.Flags().GetString("docs")
		status, _ := cmd.Flags().GetString("status")

		req := &client.CreateProcessRequest{
			Name:          name,
			AreaID:        areaID,
			Tools:         tools,
			Responsible:   responsible,
			Documentation: docs,
			Status:        status,
		}
		if parentID != "" {
			req.ParentID = &parentID
		}
		if cmd.Flags().Changed("order") {
			order, _ := cmd.Flags().GetInt("order")
			req.Order = &order
		}

		p, err := pmClient.CreateProcess(context.Background(), req)
		if err != nil {
			return fmt.Errorf("creating process: %w", err)
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
	createCmd.Flags().StringP("area", "a", "", "area ID (required)")
	createCmd.Flags().StringP("parent", "p", "", "parent process ID (omit for an area root)")
	createCmd.Flags().String("tools", "", "tools used by the process")
	createCmd.Flags().String("responsible", "", "who is responsible for the process")
	createCmd.Flags().String("docs", "", "documentation link or notes")
	createCmd.Flags().StringP("status", "s", "", "process status (MANUAL or SYSTEMIC)")
	createCmd.Flags().Int("order", 0, "position among siblings (default: append)")
	createCmd.MarkFlagRequired("area")
}
