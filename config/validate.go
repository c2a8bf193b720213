package config

import (
	"errors"
	"fmt"

	"github.com/milbus/go-1553/m1553"
)

// ErrInvalidProfile indicates a profile that fails validation.
var ErrInvalidProfile = errors.New("invalid bus profile")

// Validate checks profile correctness.
// It performs declarative validation only and never mutates the profile.
func Validate(p *Profile) error {
	if p == nil {
		return fmt.Errorf("%w: nil profile", ErrInvalidProfile)
	}

	bus := &p.Bus

	switch bus.Channel {
	case "A", "B":
	default:
		return fmt.Errorf("%w: channel %q, want \"A\" or \"B\"", ErrInvalidProfile, bus.Channel)
	}

	switch bus.Encoding {
	case "", "thomas", "ieee":
	default:
		return fmt.Errorf("%w: encoding %q, want \"thomas\" or \"ieee\"", ErrInvalidProfile, bus.Encoding)
	}

	if bus.UnresponsiveThreshold < 0 {
		return fmt.Errorf("%w: unresponsive_threshold %d must not be negative",
			ErrInvalidProfile, bus.UnresponsiveThreshold)
	}
	if bus.ResponseTimeoutUs < 0 {
		return fmt.Errorf("%w: response_timeout_us %d must not be negative",
			ErrInvalidProfile, bus.ResponseTimeoutUs)
	}

	seen := make(map[uint8]bool, len(bus.Terminals))
	for _, addr := range bus.Terminals {
		address, err := m1553.NewAddress(addr)
		if err != nil || !address.IsRemoteTerminal() {
			return fmt.Errorf("%w: terminal address %d is not assignable [0, %d)",
				ErrInvalidProfile, addr, m1553.MaxRemoteTerminals)
		}
		if seen[addr] {
			return fmt.Errorf("%w: duplicate terminal address %d", ErrInvalidProfile, addr)
		}
		seen[addr] = true
	}

	return nil
}
