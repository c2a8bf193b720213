package m1553

// Bus identifies one of the two redundant physical channels.
//
// The bus a word or transaction belongs to is never inferred from bit
// content; it is always supplied by the surrounding context (the parser and
// controller instances are bound to one bus at construction).
type Bus uint8

const (
	// BusA is the primary channel.
	BusA Bus = iota
	// BusB is the redundant channel.
	BusB
)

// Bit returns the single-bit representation of the bus (A=0, B=1).
func (b Bus) Bit() uint8 {
	if b == BusB {
		return 1
	}

	return 0
}

// String returns the human-readable name of the bus.
func (b Bus) String() string {
	switch b {
	case BusA:
		return "Bus A"
	case BusB:
		return "Bus B"
	default:
		return "unknown"
	}
}
