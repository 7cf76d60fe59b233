// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectedErr error
		check       func(*require.Assertions, Config)
	}{
		{
			name:  "defaults",
			input: "",
			check: func(require *require.Assertions, c Config) {
				require.Equal(DefaultRPCAddress, c.RPCAddress)
				require.Equal(logging.Info, c.GetLogLevel())
				require.Equal(filepath.Join(DefaultDataDir, "logs"), c.GetLogDir())
				require.False(c.TraceConfig.Enabled)
				require.Positive(c.AuthVerificationCores)
			},
		},
		{
			name:  "overrides",
			input: `{"logLevel":"debug","rpcAddress":"0.0.0.0:1234","inMemory":true,"dataDir":"","authVerificationCores":3}`,
			check: func(require *require.Assertions, c Config) {
				require.Equal(logging.Debug, c.GetLogLevel())
				require.Equal("0.0.0.0:1234", c.RPCAddress)
				require.True(c.InMemory)
				require.Equal(3, c.AuthVerificationCores)
			},
		},
		{
			name:        "bad level",
			input:       `{"logLevel":"loud"}`,
			expectedErr: ErrInvalidConfig,
		},
		{
			name:        "missing data dir",
			input:       `{"dataDir":""}`,
			expectedErr: ErrInvalidConfig,
		},
		{
			name:        "zero cores",
			input:       `{"authVerificationCores":0}`,
			expectedErr: ErrInvalidConfig,
		},
		{
			name:        "malformed",
			input:       `{"logLevel":`,
			expectedErr: ErrInvalidConfig,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			c, err := New([]byte(tt.input))
			require.ErrorIs(err, tt.expectedErr)
			if tt.check != nil {
				tt.check(require, c)
			}
		})
	}
}

func TestLoadYAML(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := `
logLevel: warn
logDir: /tmp/mint-logs
rpcAddress: 127.0.0.1:7777
corsOrigins:
  - https://example.org
pebble:
  sync: true
traceConfig:
  enabled: true
  traceSampleRate: 0.5
`
	require.NoError(os.WriteFile(path, []byte(doc), 0o600))

	c, err := Load(path)
	require.NoError(err)
	require.Equal(logging.Warn, c.GetLogLevel())
	require.Equal("/tmp/mint-logs", c.GetLogDir())
	require.Equal("127.0.0.1:7777", c.RPCAddress)
	require.Equal([]string{"https://example.org"}, c.CORSOrigins)
	require.True(c.Pebble.Sync)
	require.True(c.TraceConfig.Enabled)
	require.InDelta(0.5, c.TraceConfig.TraceSampleRate, 0)
	// untouched fields keep their defaults
	require.Equal(logging.Info, c.GetDisplayLevel())
}

func TestLoadJSON(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(os.WriteFile(path, []byte(`{"inMemory":true}`), 0o600))

	c, err := Load(path)
	require.NoError(err)
	require.True(c.InMemory)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(err, os.ErrNotExist)
}
