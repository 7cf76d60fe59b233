// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nftmint/mintvm/codec"
)

func TestParseOptionalUint64(t *testing.T) {
	tests := []struct {
		input       string
		expected    *uint64
		expectedErr error
	}{
		{input: "", expectedErr: ErrInputEmpty},
		{input: "none"},
		{input: " NONE "},
		{input: "0", expected: new(uint64)},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require := require.New(t)
			v, err := ParseOptionalUint64(tt.input)
			require.ErrorIs(err, tt.expectedErr)
			require.Equal(tt.expected, v)
		})
	}

	v, err := ParseOptionalUint64("42")
	require.NoError(t, err)
	require.Equal(t, uint64(42), *v)

	_, err = ParseOptionalUint64("-1")
	require.Error(t, err) //nolint:forbidigo
}

func TestValidators(t *testing.T) {
	require := require.New(t)

	require.ErrorIs(checkString("", 4, false), ErrInputEmpty)
	require.NoError(checkString("", 4, true))
	require.ErrorIs(checkString(strings.Repeat("a", 5), 4, true), ErrInputTooLarge)

	require.ErrorIs(checkYesNo(""), ErrInputEmpty)
	require.ErrorIs(checkYesNo("maybe"), ErrInvalidChoice)
	require.NoError(checkYesNo("Y"))

	v, err := parseUint32("7")
	require.NoError(err)
	require.Equal(uint32(7), v)
	_, err = parseUint32("4294967296")
	require.Error(err) //nolint:forbidigo

	_, err = ParseAddress(" ")
	require.ErrorIs(err, ErrInputEmpty)
	addr := codec.CreateAddress(0, [32]byte{1})
	parsed, err := ParseAddress(addr.String())
	require.NoError(err)
	require.Equal(addr, parsed)
}
