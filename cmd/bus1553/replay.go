package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/milbus/go-1553/capture"
	"github.com/milbus/go-1553/config"
	"github.com/milbus/go-1553/controller"
	"github.com/milbus/go-1553/logger"
	"github.com/milbus/go-1553/parser"
)

var (
	replayProfile  string
	replayStatsOut string
)

var replayCmd = &cobra.Command{
	Use:   "replay <capture file>",
	Short: "Replay a capture through the Bus Controller and report statistics",
	Long: `Replay a recorded capture against a bus profile.

Each record is parsed and fed to the Bus Controller state machine as if the
traffic were live; the per-terminal statistics table is printed when the
capture is exhausted. Records for the other bus channel, corrupt records,
and records addressing terminals outside the profile roster are skipped and
counted.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&replayProfile, "profile", "", "Bus profile YAML file (required)")
	replayCmd.Flags().StringVar(&replayStatsOut, "stats-out", "", "Write the statistics report as CBOR to this file")
	_ = replayCmd.MarkFlagRequired("profile")
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	profile, err := config.Load(replayProfile)
	if err != nil {
		return err
	}

	bus := profile.Bus.BusChannel()
	p := parser.NewParser(bus, parser.WithEncoding(profile.Bus.CodecEncoding()))

	bc, err := controller.NewBusController(bus, profile.Bus.ControllerOptions()...)
	if err != nil {
		return err
	}
	if err := bc.RegisterRTs(profile.Bus.Terminals); err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open capture: %w", err)
	}
	defer f.Close()

	log := logger.GetLogger().With("bus", bus.String())
	reader := capture.NewReader(f)

	var replayed, skipped int
	var lastSeen time.Time
	for {
		rec, err := reader.ReadTransaction()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Warn("skipping unreadable record", "error", err)
			skipped++

			continue
		}

		if rec.RecordBus() != bus {
			skipped++

			continue
		}

		txn, err := p.ParseTransaction(rec.Command, rec.Response, rec.Timestamp())
		if err != nil {
			log.Warn("skipping corrupt exchange", "error", err)
			skipped++

			continue
		}

		if err := bc.RecordTransaction(txn, txn.Timestamp); err != nil {
			log.Warn("skipping exchange for unrostered terminal",
				"address", txn.Command.Address.String(), "error", err)
			skipped++

			continue
		}

		replayed++
		lastSeen = txn.Timestamp
	}

	printReport(cmd.OutOrStdout(), bc, lastSeen, replayed, skipped)

	if replayStatsOut != "" {
		if err := writeStatsReport(bc, lastSeen); err != nil {
			return err
		}
	}

	return nil
}

func printReport(out io.Writer, bc *controller.BusController, now time.Time, replayed, skipped int) {
	m := bc.Metrics()
	fmt.Fprintf(out, "%s: %d exchanges replayed, %d skipped\n", bc.Bus(), replayed, skipped)
	fmt.Fprintf(out, "transactions=%d success=%d error=%d timeout=%d\n\n",
		m.TransactionCount.Load(), m.SuccessCount.Load(), m.ErrorCount.Load(), m.TimeoutCount.Load())

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TERMINAL\tSTATE\tSUCCESS\tERROR\tRATE\tRESPONDING")
	for _, stats := range bc.AllStats(now) {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.2f\t%t\n",
			stats.Address, stats.State, stats.SuccessCount, stats.ErrorCount,
			stats.ErrorRate, stats.Responding)
	}
	_ = w.Flush()
}

func writeStatsReport(bc *controller.BusController, now time.Time) error {
	all := bc.AllStats(now)
	recs := make([]capture.StatsRecord, 0, len(all))
	for _, stats := range all {
		recs = append(recs, capture.NewStatsRecord(stats))
	}

	data, err := capture.MarshalStats(recs)
	if err != nil {
		return err
	}

	if err := os.WriteFile(replayStatsOut, data, 0o644); err != nil {
		return fmt.Errorf("failed to write stats report: %w", err)
	}

	return nil
}
