package main

import (
	"fmt"

	"github.com/serebryakov7/dlt-parser/internal/dltsupervisor"
	"github.com/spf13/viper"
)

// parseOptions builds dltsupervisor.Options from the bound global flags.
func parseOptions() (dltsupervisor.Options, error) {
	var reader dltsupervisor.ReaderKind
	switch viper.GetString("reader") {
	case "preload", "":
		reader = dltsupervisor.ReaderPreload
	case "mmap":
		reader = dltsupervisor.ReaderMapped
	default:
		return dltsupervisor.Options{}, fmt.Errorf("unknown --reader %q (want preload or mmap)", viper.GetString("reader"))
	}

	return dltsupervisor.Options{
		Workers: viper.GetInt("workers"),
		Reader:  reader,
		Log:     log,
	}, nil
}
