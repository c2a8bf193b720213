// Package config loads YAML bus profiles.
//
// A profile describes one monitored bus: the channel, the codec convention,
// the Remote Terminal roster, and the controller thresholds. Profiles are
// declarative; Load and Validate never mutate them.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/milbus/go-1553/controller"
	"github.com/milbus/go-1553/m1553"
	"github.com/milbus/go-1553/manchester"
)

type Profile struct {
	Bus BusConfig `yaml:"bus"`
}

type BusConfig struct {
	// Channel selects the physical channel, "A" or "B".
	Channel string `yaml:"channel"`
	// Encoding selects the codec convention, "thomas" (default) or "ieee".
	Encoding string `yaml:"encoding"`
	// Terminals lists the Remote Terminal addresses expected on the bus.
	Terminals []uint8 `yaml:"terminals"`
	// UnresponsiveThreshold overrides the consecutive-error threshold.
	// Zero means the controller default.
	UnresponsiveThreshold int `yaml:"unresponsive_threshold"`
	// ResponseTimeoutUs overrides the response window, in microseconds.
	// Zero means the controller default.
	ResponseTimeoutUs int `yaml:"response_timeout_us"`
}

// Load reads and parses a profile file. The profile is validated before it
// is returned.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	return Parse(data)
}

// Parse parses and validates a profile document.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}

	if err := Validate(&p); err != nil {
		return nil, err
	}

	return &p, nil
}

// BusChannel returns the configured channel.
// Call only on a validated profile.
func (c *BusConfig) BusChannel() m1553.Bus {
	if c.Channel == "B" {
		return m1553.BusB
	}

	return m1553.BusA
}

// CodecEncoding returns the configured codec convention.
// Call only on a validated profile.
func (c *BusConfig) CodecEncoding() manchester.Encoding {
	if c.Encoding == "ieee" {
		return manchester.IEEE
	}

	return manchester.Thomas
}

// ControllerOptions translates the profile's overrides into controller
// options.
func (c *BusConfig) ControllerOptions() []controller.Option {
	opts := make([]controller.Option, 0, 2)
	if c.UnresponsiveThreshold > 0 {
		opts = append(opts, controller.WithUnresponsiveThreshold(c.UnresponsiveThreshold))
	}
	if c.ResponseTimeoutUs > 0 {
		opts = append(opts, controller.WithResponseTimeout(time.Duration(c.ResponseTimeoutUs)*time.Microsecond))
	}

	return opts
}
