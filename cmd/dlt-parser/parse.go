package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/serebryakov7/dlt-parser/internal/dltrecord"
	"github.com/serebryakov7/dlt-parser/internal/dltsupervisor"
	"github.com/spf13/cobra"
)

var jsonOutput bool

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a DLT file once and print its records",
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

		if jsonOutput {
			return printJSON(records)
		}
		printRecords(records)
		return nil
	},
}

func init() {
	parseCmd.Flags().BoolVar(&jsonOutput, "json", false, "print records as newline-delimited JSON")
}

func printRecords(records []*dltrecord.Record) {
	for _, r := range records {
		if r.IsCorrupted() {
			fmt.Printf("<corrupted: %s>\n", r.CorruptionCause())
			continue
		}
		fmt.Printf("%s %s.%s [%d] %s\n", r.Ecu(), r.Apid(), r.Ctid(), r.Type(), r.Message())
	}
}

type recordView struct {
	Corrupted bool   `json:"corrupted"`
	Cause     string `json:"cause,omitempty"`
	ECU       string `json:"ecu,omitempty"`
	Apid      string `json:"apid,omitempty"`
	Ctid      string `json:"ctid,omitempty"`
	Type      int8   `json:"type"`
	SubType   int8   `json:"sub_type"`
	Timestamp uint64 `json:"timestamp_us,omitempty"`
	Message   string `json:"message"`
}

func printJSON(records []*dltrecord.Record) error {
	enc := json.NewEncoder(os.Stdout)
	for _, r := range records {
		view := recordView{
			Corrupted: r.IsCorrupted(),
			Cause:     r.CorruptionCause(),
			ECU:       r.Ecu(),
			Apid:      r.Apid(),
			Ctid:      r.Ctid(),
			Type:      r.Type(),
			SubType:   r.SubType(),
			Timestamp: r.Timestamp(),
			Message:   r.Message(),
		}
		if err := enc.Encode(view); err != nil {
			return err
		}
	}
	return nil
}
