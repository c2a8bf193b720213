package m1553

import "fmt"

// Address range limits.
const (
	// MinAddress is the lowest terminal address.
	MinAddress uint8 = 0

	// MaxAddress is the highest terminal address. Address 31 is valid but
	// reserved for broadcast.
	MaxAddress uint8 = 31

	// BroadcastAddress is the reserved broadcast address.
	BroadcastAddress uint8 = 31
)

// Address is a validated device address in the range [0, 31].
//
// Address 31 is valid and means broadcast; callers distinguish broadcast by
// context (IsBroadcast), construction does not reject it. Addresses 0–29 are
// assignable to Remote Terminals.
type Address uint8

// NewAddress creates an Address, validating it is within [0, 31].
//
// Returns ErrInvalidAddress for values above MaxAddress.
func NewAddress(addr uint8) (Address, error) {
	if addr > MaxAddress {
		return 0, fmt.Errorf("%w: address %d out of range [0, %d]", ErrInvalidAddress, addr, MaxAddress)
	}

	return Address(addr), nil
}

// Broadcast returns the broadcast address (31).
func Broadcast() Address {
	return Address(BroadcastAddress)
}

// Value returns the raw address value.
func (a Address) Value() uint8 {
	return uint8(a)
}

// IsBroadcast reports whether this is the broadcast address.
func (a Address) IsBroadcast() bool {
	return uint8(a) == BroadcastAddress
}

// IsRemoteTerminal reports whether this address can be assigned to a Remote
// Terminal. The bus supports up to MaxRemoteTerminals terminals, addresses
// 0–29; address 30 is unassigned and 31 is broadcast.
func (a Address) IsRemoteTerminal() bool {
	return uint8(a) < MaxRemoteTerminals
}

// String returns "RT-n" for terminal addresses and "BC (broadcast)" for the
// broadcast address.
func (a Address) String() string {
	if a.IsBroadcast() {
		return "BC (broadcast)"
	}

	return fmt.Sprintf("RT-%d", uint8(a))
}
