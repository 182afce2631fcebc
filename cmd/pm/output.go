package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/groblegark/procmap/internal/model"
	"github.com/groblegark/procmap/internal/ui"
)

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printProcessTable(p *model.Process) {
	fmt.Printf("ID:            %s\n", p.ID)
	fmt.Printf("Name:          %s\n", p.Name)
	fmt.Printf("Area:          %s\n", p.AreaID)
	if p.ParentID != nil {
		fmt.Printf("Parent:        %s\n", *p.ParentID)
	} else {
		fmt.Printf("Parent:        %s\n", ui.RenderMuted("(root)"))
	}
	fmt.Printf("Level:         %d\n", p.Level)
	fmt.Printf("Order:         %d\n", p.Order)
	if p.Status != "" {
		fmt.Printf("Status:        %s\n", ui.RenderStatus(p.Status.String()))
	}
	if p.Tools != "" {
		fmt.Printf("Tools:         %s\n", p.Tools)
	}
	if p.Responsible != "" {
		fmt.Printf("Responsible:   %s\n", p.Responsible)
	}
	if p.Documentation != "" {
		fmt.Printf("Documentation: %s\n", p.Documentation)
	}
	if !p.CreatedAt.IsZero() {
		fmt.Printf("Created At:    %s\n", p.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	if !p.UpdatedAt.IsZero() {
		fmt.Printf("Updated At:    %s\n", p.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
}

func printAreaTable(a *model.Area) {
	fmt.Printf("ID:         %s\n", a.ID)
	fmt.Printf("Name:       %s\n", a.Name)
	fmt.Printf("Order:      %d\n", a.Order)
	if !a.CreatedAt.IsZero() {
		fmt.Printf("Created At: %s\n", a.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	if !a.UpdatedAt.IsZero() {
		fmt.Printf("Updated At: %s\n", a.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
}

func printAreaListTable(areas []*model.Area, total int) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tORDER\tNAME\tPROCESSES")
	for _, a := range areas {
		fmt.Fprintf(w, "%s\t%d\t%s\t%d\n", a.ID, a.Order, a.Name, len(a.Processes))
	}
	w.Flush()
	fmt.Printf("\n%d areas (%d total)\n", len(areas), total)
}

// printProcessTree renders a forest of process nodes with box-drawing
// connectors, one area-agnostic forest at a time.
func printProcessTree(roots []*model.ProcessNode) {
	for _, root := range roots {
		fmt.Printf("%s %s %s\n",
			ui.RenderAccent(root.ID),
			statusBadge(root.Status),
			root.Name,
		)
		printProcessBranch(root.Children, "")
	}
}

func printProcessBranch(nodes []*model.ProcessNode, prefix string) {
	for i, n := range nodes {
		isLast := i == len(nodes)-1

		connector := "├── "
		childPrefix := prefix + "│   "
		if isLast {
			connector = "└── "
			childPrefix = prefix + "    "
		}

		fmt.Printf("%s %s %s\n",
			ui.RenderMuted(prefix+connector)+ui.RenderAccent(n.ID),
			statusBadge(n.Status),
			n.Name,
		)

		if len(n.Children) > 0 {
			printProcessBranch(n.Children, childPrefix)
		}
	}
}

// printBreadcrumbPath prints a root-first ancestry path, one entry per level.
func printBreadcrumbPath(path []*model.Process) {
	for i, p := range path {
		indent := ""
		for j := 0; j < i; j++ {
			indent += "  "
		}
		marker := ""
		if i > 0 {
			marker = ui.RenderMuted("└─ ")
		}
		fmt.Printf("%s%s%s %s\n", indent, marker, ui.RenderAccent(p.ID), p.Name)
	}
}

func statusBadge(status model.ProcessStatus) string {
	if status == "" {
		return ui.RenderMuted("[-]")
	}
	return "[" + ui.RenderStatus(status.String()) + "]"
}
