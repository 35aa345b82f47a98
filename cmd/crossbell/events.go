package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var eventsSince uint64

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Print the ledger event log as JSON lines",
	RunE: func(cmd *cobra.Command, args []string) error {
		events, err := ledger.Events(eventsSince)
		if err != nil {
			return err
		}
		for _, ev := range events {
			out, err := json.Marshal(ev)
			if err != nil {
				return fmt.Errorf("marshaling event %d: %w", ev.Seq, err)
			}
			fmt.Println(string(out))
		}
		return nil
	},
}

func init() {
	eventsCmd.Flags().Uint64Var(&eventsSince, "since", 0, "only print events with a sequence greater than this")
}
