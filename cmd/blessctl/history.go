package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

type historyEntry struct {
	ID        string    `json:"id"`
	BlessedAt time.Time `json:"blessed_at"`
	EndsAt    time.Time `json:"ends_at"`
}

func runHistory(cmd *cobra.Command, _ []string) error {
	name, err := resolveProfile()
	if err != nil {
		return err
	}
	db, err := openStore(name)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	blessings, err := db.ListBlessings(limit)
	if err != nil {
		return fmt.Errorf("list blessings: %w", err)
	}

	entries := make([]historyEntry, 0, len(blessings))
	for _, b := range blessings {
		entries = append(entries, historyEntry{
			ID:        b.ID,
			BlessedAt: time.UnixMilli(b.BlessedAt),
			EndsAt:    time.UnixMilli(b.EndsAt),
		})
	}

	w := cmd.OutOrStdout()
	if jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No blessings yet.")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tBLESSED AT\tENDS AT")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.ID,
			e.BlessedAt.Format(time.DateTime), e.EndsAt.Format(time.DateTime))
	}
	return tw.Flush()
}
