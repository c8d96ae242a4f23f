package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/serebryakov7/dlt-parser/common"
	"github.com/serebryakov7/dlt-parser/internal/dltsupervisor"
	"github.com/serebryakov7/dlt-parser/pkg/dltmqtt"
	"github.com/spf13/cobra"
)

var (
	watchMqttBroker   string
	watchMqttTopic    string
	watchPollInterval time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Periodically re-parse *.dlt files in a directory and publish summaries over MQTT",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := parseOptions()
		if err != nil {
			return err
		}
		dir := args[0]

		var (
			mu      sync.Mutex
			current *common.Summary
		)
		refresh := func() {
			entries, err := filepath.Glob(filepath.Join(dir, "*.dlt"))
			if err != nil {
				log.WithError(err).Error("globbing watch directory")
				return
			}
			merged := common.NewSummary(dir)
			for _, path := range entries {
				records, err := dltsupervisor.ParseFile(context.Background(), path, opts)
				if err != nil {
					log.WithError(err).WithField("file", path).Warn("parsing file")
					continue
				}
				view := make([]common.Record, len(records))
				for i, r := range records {
					view[i] = r
				}
				for ecu, s := range common.Summarize(path, view).ECUs {
					dst, ok := merged.ECUs[ecu]
					if !ok {
						dst = &common.ECUSummary{ECU: ecu, ByType: make(map[int8]int)}
						merged.ECUs[ecu] = dst
					}
					dst.Total += s.Total
					dst.Corrupted += s.Corrupted
					for t, n := range s.ByType {
						dst.ByType[t] += n
					}
				}
			}
			mu.Lock()
			current = merged
			mu.Unlock()
		}

		publisher := dltmqtt.New(dltmqtt.Config{
			Broker:         watchMqttBroker,
			Topic:          watchMqttTopic,
			UpdateInterval: watchPollInterval,
		}, func() *common.Summary {
			mu.Lock()
			defer mu.Unlock()
			return current
		}, log.WithField("component", "dltmqtt"))

		if err := publisher.Connect(); err != nil {
			return fmt.Errorf("connecting to mqtt broker: %w", err)
		}
		defer publisher.Disconnect()

		refresh()
		publisher.StartPublishing()
		defer publisher.StopPublishing()

		ticker := time.NewTicker(watchPollInterval)
		defer ticker.Stop()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

		log.WithField("dir", dir).Info("watching for dlt files")
		for {
			select {
			case <-ticker.C:
				refresh()
			case <-sigChan:
				log.Info("shutting down")
				return nil
			}
		}
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchMqttBroker, "mqtt-broker", dltmqtt.DefaultBroker, "MQTT broker URL")
	watchCmd.Flags().StringVar(&watchMqttTopic, "mqtt-topic", dltmqtt.DefaultTopic, "MQTT topic for parse-run summaries")
	watchCmd.Flags().DurationVar(&watchPollInterval, "interval", dltmqtt.DefaultUpdateInterval, "directory re-scan and publish interval")
}
