// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/nftmint/mintvm/auth"
	"github.com/nftmint/mintvm/utils"
)

var ErrKeyExists = errors.New("key file already exists")

var keyType string

var keyCmd = &cobra.Command{
	Use: "key",
	RunE: func(*cobra.Command, []string) error {
		return ErrMissingSubcommand
	},
}

var genKeyCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generates a private key and writes it to --key",
	RunE: func(*cobra.Command, []string) error {
		if _, err := os.Stat(privateKeyFile); err == nil {
			return ErrKeyExists
		}
		factory, err := auth.GetPrivateKeyFactory(keyType)
		if err != nil {
			return err
		}
		pk, err := factory.GeneratePrivateKey()
		if err != nil {
			return err
		}
		if err := pk.Save(privateKeyFile); err != nil {
			return err
		}
		utils.Outf(
			"{{green}}created %s key:{{/}} %s {{yellow}}address:{{/}} %s\n",
			keyType,
			privateKeyFile,
			pk.Address,
		)
		return nil
	},
}

var addressKeyCmd = &cobra.Command{
	Use:   "address",
	Short: "Prints the address of --key",
	RunE: func(*cobra.Command, []string) error {
		pk, err := auth.LoadPrivateKey(privateKeyFile)
		if err != nil {
			return err
		}
		utils.Outf("{{yellow}}address:{{/}} %s\n", pk.Address)
		return nil
	},
}
