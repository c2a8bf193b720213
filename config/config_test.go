package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milbus/go-1553/controller"
	"github.com/milbus/go-1553/m1553"
	"github.com/milbus/go-1553/manchester"
)

const sampleProfile = `
bus:
  channel: B
  encoding: ieee
  terminals: [1, 2, 7, 29]
  unresponsive_threshold: 5
  response_timeout_us: 20
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleProfile), 0o644))

	p, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, m1553.BusB, p.Bus.BusChannel())
	assert.Equal(t, manchester.IEEE, p.Bus.CodecEncoding())
	assert.Equal(t, []uint8{1, 2, 7, 29}, p.Bus.Terminals)
	assert.Equal(t, 5, p.Bus.UnresponsiveThreshold)
	assert.Equal(t, 20, p.Bus.ResponseTimeoutUs)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestParse_Defaults(t *testing.T) {
	p, err := Parse([]byte("bus:\n  channel: A\n"))
	require.NoError(t, err)

	assert.Equal(t, m1553.BusA, p.Bus.BusChannel())
	assert.Equal(t, manchester.Thomas, p.Bus.CodecEncoding())
	assert.Empty(t, p.Bus.ControllerOptions())
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"bad channel", "bus:\n  channel: C\n"},
		{"missing channel", "bus: {}\n"},
		{"bad encoding", "bus:\n  channel: A\n  encoding: nrz\n"},
		{"broadcast terminal", "bus:\n  channel: A\n  terminals: [31]\n"},
		{"unassigned terminal", "bus:\n  channel: A\n  terminals: [30]\n"},
		{"duplicate terminal", "bus:\n  channel: A\n  terminals: [4, 4]\n"},
		{"negative threshold", "bus:\n  channel: A\n  unresponsive_threshold: -1\n"},
		{"negative timeout", "bus:\n  channel: A\n  response_timeout_us: -5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.ErrorIs(t, err, ErrInvalidProfile)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("bus: ["))
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInvalidProfile)
}

func TestControllerOptions(t *testing.T) {
	p, err := Parse([]byte(sampleProfile))
	require.NoError(t, err)

	bc, err := controller.NewBusController(p.Bus.BusChannel(), p.Bus.ControllerOptions()...)
	require.NoError(t, err)
	require.NoError(t, bc.RegisterRTs(p.Bus.Terminals))
	assert.Equal(t, 4, bc.RTCount())

	// Threshold override of 5 applies: four errors stay short of the run.
	now := time.Unix(0, 0)
	for i := 0; i < 4; i++ {
		require.NoError(t, bc.RecordRTError(7, now))
	}
	rt, ok := bc.GetRT(7)
	require.True(t, ok)
	assert.Equal(t, controller.StateUnknown, rt.State())

	require.NoError(t, bc.RecordRTError(7, now))
	assert.Equal(t, controller.StateUnresponsive, rt.State())
}
