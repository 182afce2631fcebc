// Package snapshot exports the full process map as JSONL and ships it to
// configured destinations on a schedule.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/groblegark/procmap/internal/store"
)

// header is the first JSONL record written by ExportJSONL.
type header struct {
	Version      string    `json:"version"`
	Type         string    `json:"type"`
	Timestamp    time.Time `json:"timestamp"`
	AreaCount    int       `json:"area_count"`
	ProcessCount int       `json:"process_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// ExportJSONL writes all areas and processes from the store as JSONL to w.
// Both record kinds are sorted by ID so repeated exports of the same data
// produce identical output.
func ExportJSONL(ctx context.Context, s store.Store, w io.Writer) error {
	areas, err := s.ListAreas(ctx, false)
	if err != nil {
		return fmt.Errorf("list areas: %w", err)
	}
	sort.Slice(areas, func(i, j int) bool {
		return areas[i].ID < areas[j].ID
	})

	processes, err := s.ListProcesses(ctx)
	if err != nil {
		return fmt.Errorf("list processes: %w", err)
	}
	sort.Slice(processes, func(i, j int) bool {
		return processes[i].ID < processes[j].ID
	})

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:      "1",
		Type:         "header",
		Timestamp:    time.Now().UTC(),
		AreaCount:    len(areas),
		ProcessCount: len(processes),
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for _, a := range areas {
		if err := enc.Encode(record{Type: "area", Data: a}); err != nil {
			return fmt.Errorf("encode area %s: %w", a.ID, err)
		}
	}

	for _, p := range processes {
		if err := enc.Encode(record{Type: "process", Data: p}); err != nil {
			return fmt.Errorf("encode process %s: %w", p.ID, err)
		}
	}

	return nil
}
