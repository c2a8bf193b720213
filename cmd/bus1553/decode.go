package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/milbus/go-1553/m1553"
	"github.com/milbus/go-1553/message"
)

var decodeType string

var decodeCmd = &cobra.Command{
	Use:   "decode <hex payload>",
	Short: "Decode a Manchester-coded hex payload",
	Long: `Decode a coded byte payload back into words.

With --type command the payload is a command word optionally followed by its
data words; with --type status a single status word; with --type data a run
of data words.`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

func init() {
	decodeCmd.Flags().StringVar(&decodeType, "type", "command", "Payload type (command, status, or data)")
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	p, err := newParser()
	if err != nil {
		return err
	}

	payload, err := hex.DecodeString(args[0])
	if err != nil {
		return fmt.Errorf("invalid hex payload: %w", err)
	}

	out := cmd.OutOrStdout()

	switch decodeType {
	case "command":
		word, err := p.ParseWord(payload, m1553.CommandWord)
		if err != nil {
			return err
		}
		command, err := message.CommandFromWord(word)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, command)

		data, err := p.ParseWords(payload[m1553.EncodedWordSize:], m1553.DataWord)
		if err != nil {
			return err
		}
		for i, w := range data {
			fmt.Fprintf(out, "  data[%d] = 0x%04X\n", i, w.DataBits())
		}

	case "status":
		word, err := p.ParseWord(payload, m1553.StatusWord)
		if err != nil {
			return err
		}
		sw, err := message.StatusFromWord(word)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, sw)

	case "data":
		words, err := p.ParseWords(payload, m1553.DataWord)
		if err != nil {
			return err
		}
		for i, w := range words {
			fmt.Fprintf(out, "data[%d] = 0x%04X\n", i, w.DataBits())
		}

	default:
		return fmt.Errorf("unknown payload type %q, want command, status, or data", decodeType)
	}

	return nil
}
