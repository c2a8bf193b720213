package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/milbus/go-1553/m1553"
	"github.com/milbus/go-1553/manchester"
)

var (
	// Shared bus flags
	busName      string
	encodingName string
)

var rootCmd = &cobra.Command{
	Use:   "bus1553",
	Short: "MIL-STD-1553B bus word codec and replay tool",
	Long: `bus1553 - encode, decode, and replay MIL-STD-1553B bus traffic.

Words are 20-bit frames carried as Manchester-coded byte payloads (5 bytes
per word). The encode and decode commands work on single exchanges given as
hex; the replay command runs a recorded capture through the parser and the
Bus Controller state machine and reports per-terminal statistics.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&busName, "bus", "A", "Bus channel (A or B)")
	rootCmd.PersistentFlags().StringVar(&encodingName, "encoding", "thomas", "Manchester convention (thomas or ieee)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func selectedBus() (m1553.Bus, error) {
	switch busName {
	case "A", "a":
		return m1553.BusA, nil
	case "B", "b":
		return m1553.BusB, nil
	default:
		return m1553.BusA, fmt.Errorf("unknown bus %q, want A or B", busName)
	}
}

func selectedEncoding() (manchester.Encoding, error) {
	switch encodingName {
	case "thomas":
		return manchester.Thomas, nil
	case "ieee":
		return manchester.IEEE, nil
	default:
		return manchester.Thomas, fmt.Errorf("unknown encoding %q, want thomas or ieee", encodingName)
	}
}
