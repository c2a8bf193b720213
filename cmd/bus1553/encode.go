package main

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/milbus/go-1553/message"
	"github.com/milbus/go-1553/parser"
)

var (
	encodeRT       uint8
	encodeSub      uint8
	encodeCount    uint8
	encodeTransmit bool

	encodeErrorCode    uint8
	encodeBusy         bool
	encodeSubsystem    bool
	encodeBroadcast    bool
	encodeMessageError bool
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode words to Manchester-coded hex",
}

var encodeCommandCmd = &cobra.Command{
	Use:   "command [data words...]",
	Short: "Encode a command word, optionally followed by its data words",
	Long: `Encode a command word to its coded byte payload.

Data word values (hex or decimal) may follow as arguments; their number must
match --count. The payload is printed as hex, 5 coded bytes per word.`,
	RunE: runEncodeCommand,
}

var encodeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Encode a status word",
	RunE:  runEncodeStatus,
}

var encodeDataCmd = &cobra.Command{
	Use:   "data <words...>",
	Short: "Encode data words",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runEncodeData,
}

func init() {
	encodeCommandCmd.Flags().Uint8Var(&encodeRT, "rt", 0, "Remote Terminal address")
	encodeCommandCmd.Flags().Uint8Var(&encodeSub, "sub", 1, "Sub-address")
	encodeCommandCmd.Flags().Uint8Var(&encodeCount, "count", 0, "Declared data word count")
	encodeCommandCmd.Flags().BoolVar(&encodeTransmit, "transmit", false, "Transmit direction (default receive)")

	encodeStatusCmd.Flags().Uint8Var(&encodeRT, "rt", 0, "Remote Terminal address")
	encodeStatusCmd.Flags().Uint8Var(&encodeErrorCode, "error", 0, "Error code (0-127)")
	encodeStatusCmd.Flags().BoolVar(&encodeBusy, "busy", false, "Set the busy flag")
	encodeStatusCmd.Flags().BoolVar(&encodeSubsystem, "subsystem", false, "Set the subsystem flag")
	encodeStatusCmd.Flags().BoolVar(&encodeBroadcast, "broadcast", false, "Set the broadcast flag")
	encodeStatusCmd.Flags().BoolVar(&encodeMessageError, "message-error", false, "Set the message error flag")

	encodeCmd.AddCommand(encodeCommandCmd)
	encodeCmd.AddCommand(encodeStatusCmd)
	encodeCmd.AddCommand(encodeDataCmd)
	rootCmd.AddCommand(encodeCmd)
}

func newParser() (*parser.Parser, error) {
	bus, err := selectedBus()
	if err != nil {
		return nil, err
	}
	encoding, err := selectedEncoding()
	if err != nil {
		return nil, err
	}

	return parser.NewParser(bus, parser.WithEncoding(encoding)), nil
}

func runEncodeCommand(cmd *cobra.Command, args []string) error {
	p, err := newParser()
	if err != nil {
		return err
	}

	dir := message.Receive
	if encodeTransmit {
		dir = message.Transmit
	}

	command, err := message.NewCommand(encodeRT, dir, encodeSub, encodeCount)
	if err != nil {
		return err
	}

	payload := p.EncodeCommand(command)

	if len(args) > 0 {
		values, err := parseDataValues(args)
		if err != nil {
			return err
		}
		if len(values) != int(encodeCount) {
			return fmt.Errorf("%d data words do not match --count %d", len(values), encodeCount)
		}
		payload = append(payload, p.EncodeDataWords(values)...)
	}

	fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(payload))

	return nil
}

func runEncodeStatus(cmd *cobra.Command, args []string) error {
	p, err := newParser()
	if err != nil {
		return err
	}

	flags := message.StatusFlags{
		Busy:         encodeBusy,
		Subsystem:    encodeSubsystem,
		Broadcast:    encodeBroadcast,
		MessageError: encodeMessageError,
	}

	sw, err := message.NewStatusWord(encodeRT, flags, encodeErrorCode)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(p.EncodeStatus(sw)))

	return nil
}

func runEncodeData(cmd *cobra.Command, args []string) error {
	p, err := newParser()
	if err != nil {
		return err
	}

	values, err := parseDataValues(args)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(p.EncodeDataWords(values)))

	return nil
}

func parseDataValues(args []string) ([]uint16, error) {
	values := make([]uint16, 0, len(args))
	for _, arg := range args {
		v, err := strconv.ParseUint(arg, 0, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid data word %q: %w", arg, err)
		}
		values = append(values, uint16(v))
	}

	return values, nil
}
