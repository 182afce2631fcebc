package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/groblegark/procmap/internal/model"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:     "export [file]",
	Short:   "Export the full process map as JSONL (stdout by default)",
	GroupID: "system",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := io.Writer(os.Stdout)
		if len(args) == 1 {
			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("creating export file: %w", err)
			}
			defer f.Close()
			out = f
		}

		resp, err := pmClient.ListAreas(context.Background())
		if err != nil {
			return fmt.Errorf("listing areas: %w", err)
		}

		return writeExportJSONL(out, resp.Areas)
	},
}

// exportRecord wraps a single JSONL line with a type discriminator, matching
// the server's scheduled snapshot format.
type exportRecord struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

func writeExportJSONL(w io.Writer, areas []*model.Area) error {
	var processes []*model.Process
	flat := make([]*model.Area, 0, len(areas))
	for _, a := range areas {
		processes = append(processes, a.Processes...)
		copied := *a
		copied.Processes = nil
		flat = append(flat, &copied)
	}

	sort.Slice(flat, func(i, j int) bool { return flat[i].ID < flat[j].ID })
	sort.Slice(processes, func(i, j int) bool { return processes[i].ID < processes[j].ID })

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	header := struct {
		Version      string    `json:"version"`
		Type         string    `json:"type"`
		Timestamp    time.Time `json:"timestamp"`
		AreaCount    int       `json:"area_count"`
		ProcessCount int       `json:"process_count"`
	}{
		Version:      "1",
		Type:         "header",
		Timestamp:    time.Now().UTC(),
		AreaCount:    len(flat),
		ProcessCount: len(processes),
	}
	if err := enc.Encode(header); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for _, a := range flat {
		if err := enc.Encode(exportRecord{Type: "area", Data: a}); err != nil {
			return fmt.Errorf("encode area %s: %w", a.ID, err)
		}
	}
	for _, p := range processes {
		if err := enc.Encode(exportRecord{Type: "process", Data: p}); err != nil {
			return fmt.Errorf("encode process %s: %w", p.ID, err)
		}
	}
	return nil
}
