// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package prompt reads validated values from the terminal.
package prompt

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/nftmint/mintvm/access"
	"github.com/nftmint/mintvm/codec"
	"github.com/nftmint/mintvm/utils"
)

// Uncapped is accepted wherever an optional supply cap is prompted.
const Uncapped = "none"

var (
	ErrInputEmpty    = errors.New("input is empty")
	ErrInputTooLarge = errors.New("input is too large")
	ErrInvalidChoice = errors.New("invalid choice")
)

func run(label string, validate func(string) error) (string, error) {
	p := promptui.Prompt{
		Label:    label,
		Validate: validate,
	}
	raw, err := p.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

func Address(label string) (codec.Address, error) {
	raw, err := run(label, func(input string) error {
		_, err := ParseAddress(input)
		return err
	})
	if err != nil {
		return codec.EmptyAddress, err
	}
	return ParseAddress(raw)
}

func ParseAddress(input string) (codec.Address, error) {
	input = strings.TrimSpace(input)
	if len(input) == 0 {
		return codec.EmptyAddress, ErrInputEmpty
	}
	return codec.ParseAddress(input)
}

// String accepts up to [maxLen] bytes. Empty input is allowed only when
// [allowEmpty] is set.
func String(label string, maxLen int, allowEmpty bool) (string, error) {
	return run(label, func(input string) error {
		return checkString(input, maxLen, allowEmpty)
	})
}

func checkString(input string, maxLen int, allowEmpty bool) error {
	input = strings.TrimSpace(input)
	if len(input) == 0 && !allowEmpty {
		return ErrInputEmpty
	}
	if len(input) > maxLen {
		return fmt.Errorf("%w: %d > %d", ErrInputTooLarge, len(input), maxLen)
	}
	return nil
}

func TokenID(label string) (codec.TokenID, error) {
	raw, err := run(label, func(input string) error {
		_, err := codec.ParseTokenID(strings.TrimSpace(input))
		return err
	})
	if err != nil {
		return 0, err
	}
	return codec.ParseTokenID(raw)
}

// OptionalUint64 reads a number or [Uncapped].
func OptionalUint64(label string) (*uint64, error) {
	raw, err := run(fmt.Sprintf("%s (number or %q)", label, Uncapped), func(input string) error {
		_, err := ParseOptionalUint64(input)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ParseOptionalUint64(raw)
}

func ParseOptionalUint64(input string) (*uint64, error) {
	input = strings.TrimSpace(input)
	switch {
	case len(input) == 0:
		return nil, ErrInputEmpty
	case strings.EqualFold(input, Uncapped):
		return nil, nil
	}
	v, err := strconv.ParseUint(input, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func Uint32(label string) (uint32, error) {
	raw, err := run(label, func(input string) error {
		_, err := parseUint32(input)
		return err
	})
	if err != nil {
		return 0, err
	}
	return parseUint32(raw)
}

func parseUint32(input string) (uint32, error) {
	input = strings.TrimSpace(input)
	if len(input) == 0 {
		return 0, ErrInputEmpty
	}
	v, err := strconv.ParseUint(input, 10, 32)
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint32 {
		return 0, ErrInputTooLarge
	}
	return uint32(v), nil
}

// Role reads a role id. Only [access.AdminRole] is currently enforced.
func Role(label string) (access.Role, error) {
	v, err := Uint32(fmt.Sprintf("%s (%d = admin)", label, access.AdminRole))
	return access.Role(v), err
}

func Continue() (bool, error) {
	raw, err := run("continue (y/n)", checkYesNo)
	if err != nil {
		return false, err
	}
	if strings.ToLower(raw) == "n" {
		utils.Outf("{{red}}exiting...{{/}}\n")
		return false, nil
	}
	return true, nil
}

func checkYesNo(input string) error {
	if len(input) == 0 {
		return ErrInputEmpty
	}
	lower := strings.ToLower(strings.TrimSpace(input))
	if lower == "y" || lower == "n" {
		return nil
	}
	return ErrInvalidChoice
}
