// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitSubDirectory(t *testing.T) {
	require := require.New(t)
	root := t.TempDir()

	p, err := InitSubDirectory(root, "statedb")
	require.NoError(err)
	require.Equal(filepath.Join(root, "statedb"), p)

	info, err := os.Stat(p)
	require.NoError(err)
	require.True(info.IsDir())

	// Calling again on an existing directory is a no-op
	_, err = InitSubDirectory(root, "statedb")
	require.NoError(err)
}

func TestToID(t *testing.T) {
	require := require.New(t)
	require.Equal(ToID([]byte("tx")), ToID([]byte("tx")))
	require.NotEqual(ToID([]byte("tx1")), ToID([]byte("tx2")))
}
