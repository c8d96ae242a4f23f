package main

import (
	"context"
	"fmt"

	"github.com/serebryakov7/dlt-parser/common"
	"github.com/serebryakov7/dlt-parser/internal/dltsupervisor"
	"github.com/serebryakov7/dlt-parser/pkg/dltstore"
	"github.com/spf13/cobra"
)

var statsDBPath string

var statsCmd = &cobra.Command{
	Use:   "stats <file>",
	Short: "Parse a DLT file and report per-ECU record/corruption counts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := parseOptions()
		if err != nil {
			return err
		}

		records, err := dltsupervisor.ParseFile(context.Background(), args[0], opts)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", args[0], err)
		}

		view := make([]common.Record, len(records))
		for i, r := range records {
			view[i] = r
		}
		summary := common.Summarize(args[0], view)

		var store *dltstore.Store
		if statsDBPath != "" {
			store, err = dltstore.Open(statsDBPath)
			if err != nil {
				return fmt.Errorf("opening dedup store: %w", err)
			}
			defer store.Close()
		}

		for ecu, s := range summary.ECUs {
			fmt.Printf("%s: %d records, %d corrupted\n", ecu, s.Total, s.Corrupted)
			if store == nil {
				continue
			}
			for i, r := range records {
				if r.Ecu() != ecu || !r.IsCorrupted() {
					continue
				}
				// i is the record's position in this run's output, not a
				// byte offset - dltrecord.Record does not carry one.
				isNew, err := store.Seen(ecu, r.CorruptionCause(), uint64(i))
				if err != nil {
					return fmt.Errorf("recording corruption signature: %w", err)
				}
				if isNew {
					fmt.Printf("  new corruption signature: %s\n", r.CorruptionCause())
				}
			}
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsDBPath, "db", "", "bbolt dedup store path (disabled if empty)")
}
