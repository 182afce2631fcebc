package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/groblegark/procmap/internal/events"
	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:     "watch [topic]",
	Short:   "Stream change events from the server",
	GroupID: "views",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic := "procmap.>"
		if len(args) == 1 {
			topic = args[0]
		}

		natsURL := os.Getenv("PROCMAP_NATS_URL")
		if natsURL == "" {
			natsURL = activeProfileNATSURL()
		}
		if natsURL == "" {
			return fmt.Errorf("no NATS URL configured (set PROCMAP_NATS_URL or a profile nats_url)")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		sub, err := events.NewNATSSubscriber(natsURL,
			nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
				log.Printf("nats: disconnected: %v", err)
			}),
			nats.ReconnectHandler(func(_ *nats.Conn) {
				log.Printf("nats: reconnected")
			}),
		)
		if err != nil {
			return fmt.Errorf("connecting to NATS: %w", err)
		}
		defer sub.Close()

		ch, cancel, err := sub.Subscribe(topic)
		if err != nil {
			return fmt.Errorf("subscribing to events: %w", err)
		}
		defer cancel()

		fmt.Fprintf(os.Stderr, "Watching %s (Ctrl-C to stop)\n", topic)

		for {
			select {
			case <-ctx.Done():
				return nil
			case data, ok := <-ch:
				if !ok {
					return nil
				}
				printEvent(data)
			}
		}
	},
}

// printEvent prints one received event. In JSON mode the raw payload is
// emitted as a single line; otherwise it is prefixed with a timestamp.
func printEvent(data []byte) {
	if jsonOutput {
		fmt.Println(string(data))
		return
	}

	ts := time.Now().Format("15:04:05")
	var compact map[string]any
	if err := json.Unmarshal(data, &compact); err != nil {
		fmt.Printf("[%s] %s\n", ts, string(data))
		return
	}
	line, _ := json.Marshal(compact)
	fmt.Printf("[%s] %s\n", ts, string(line))
}
