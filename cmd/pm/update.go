package main

import (
	"context"
	"fmt"

	"github.com/groblegark/procmap/internal/client"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:     "update <id>",
	Short:   "Update fields of a process",
	GroupID: "processes",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		req := &client.UpdateProcessRequest{}
		changed := false

		if cmd.Flags().Changed("name") {
			v, _ := cmd.Flags().GetString("name")
			req.Name = &v
			changed = true
		}
		if cmd.Flags().Changed("tools") {
			v, _ := cmd.Flags().GetString("tools")
			req.Tools = &v
			changed = true
		}
		if cmd.Flags().Changed("responsible") {
			v, _ := cmd.Flags().GetString("responsible")
			req.Responsible = &v
			changed = true
		}
		if cmd.Flags().Changed("docs") {
			v, _ := cmd.Flags().GetString("docs")
			req.Documentation = &v
			changed = true
		}
		if cmd.Flags().Changed("status") {
			v, _ := cmd.Flags().GetString("status")
			req.Status = &v
			changed = true
		}
		if cmd.Flags().Changed("order") {
			v, _ := cmd.Flags().GetInt("order")
			req.Order = &v
			changed = true
		}

		if !changed {
			return fmt.Errorf("no fields to update (use --name, --tools, --responsible, --docs, --status or --order)")
		}

		p, err := pmClient.UpdateProcess(context.Background(), id, req)
		if err != nil {
			return fmt.Errorf("updating process %s: %w", id, err)
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
	updateCmd.Flags().String("name", "", "new name")
	updateCmd.Flags().String("tools", "", "tools used by the process")
	updateCmd.Flags().String("responsible", "", "who is responsible for the process")
	updateCmd.Flags().String("docs", "", "documentation link or notes")
	updateCmd.Flags().StringP("status", "s", "", "process status (MANUAL or SYSTEMIC)")
	updateCmd.Flags().Int("order", 0, "position among siblings")
}
