package m1553

// Fixed protocol facts per MIL-STD-1553B. These are not tunables.
const (
	// ClockFrequencyHz is the bus clock frequency: 1 MHz.
	ClockFrequencyHz = 1_000_000

	// WordLengthBits is the total length of one word on the bus.
	WordLengthBits = 20

	// WordDataBits is the width of the data field within a word.
	WordDataBits = 16

	// MaxRemoteTerminals is the maximum number of Remote Terminals on one bus.
	MaxRemoteTerminals = 30

	// ManchesterBitsPerWord is the number of line-coded bits per word
	// (2 coded bits per logical bit).
	ManchesterBitsPerWord = 40

	// EncodedWordSize is the number of bytes holding one Manchester-coded word.
	EncodedWordSize = ManchesterBitsPerWord / 8

	// MaxDataRateBitsPerSec is the maximum data-word rate: 1 Mbit/s.
	MaxDataRateBitsPerSec = 1_000_000
)
