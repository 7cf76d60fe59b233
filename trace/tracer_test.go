// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package trace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
	}{
		{
			name:   "disabled",
			config: &Config{AppName: "mintvm"},
		},
		{
			name: "zipkin",
			config: &Config{
				Enabled:         true,
				TraceSampleRate: 0,
				AppName:         "mintvm",
				Agent:           "mintvm-cli",
				Version:         "v0.0.1",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			tracer, err := New(tt.config)
			require.NoError(err)

			_, span := tracer.Start(context.Background(), "TestNew")
			span.End()
			require.NoError(tracer.Close())
		})
	}
}
