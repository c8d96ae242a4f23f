// Package main implements the dlt-parser CLI: parse, watch, and stats
// subcommands built on cobra, with global flags bound through viper.
// Replaces the teacher's flag-based main.go / cmd/agent-j1587/main.go
// wiring style.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	workersFlag  int
	readerFlag   string
	logLevelFlag string

	log = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "dlt-parser",
	Short: "Parse and inspect DLT (Diagnostic Log and Trace) binary log files",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(viper.GetString("log-level"))
		if err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		log.SetLevel(level)
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().IntVar(&workersFlag, "workers", 0,
		"number of parsing chunks (0 = number of CPUs)")
	rootCmd.PersistentFlags().StringVar(&readerFlag, "reader", "preload",
		"byte source: preload or mmap")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "info",
		"log level: debug, info, warn, error")

	_ = viper.BindPFlag("workers", rootCmd.PersistentFlags().Lookup("workers"))
	_ = viper.BindPFlag("reader", rootCmd.PersistentFlags().Lookup("reader"))
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.SetEnvPrefix("DLT_PARSER")
	viper.AutomaticEnv()

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(statsCmd)
}

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
