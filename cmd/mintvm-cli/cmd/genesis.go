// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nftmint/mintvm/auth"
	"github.com/nftmint/mintvm/cli/prompt"
	"github.com/nftmint/mintvm/codec"
	"github.com/nftmint/mintvm/genesis"
	"github.com/nftmint/mintvm/utils"
)

const fsModeWrite = 0o600

var (
	genesisFile    string
	genesisAdmin   string
	genesisName    string
	genesisSymbol  string
	genesisBaseURI string
	genesisMax     string
	genesisLimit   uint32
)

var genesisCmd = &cobra.Command{
	Use: "genesis",
	RunE: func(*cobra.Command, []string) error {
		return ErrMissingSubcommand
	},
}

func initGenesisFlags() {
	flags := genGenesisCmd.Flags()
	flags.StringVar(&genesisFile, "genesis-file", "genesis.json", "genesis file path")
	flags.StringVar(&genesisAdmin, "admin", "", "admin address (defaults to the address of --key)")
	flags.StringVar(&genesisName, "name", "mintvm", "collection name")
	flags.StringVar(&genesisSymbol, "symbol", "MINT", "collection symbol")
	flags.StringVar(&genesisBaseURI, "base-uri", "", "base URI of token metadata")
	flags.StringVar(&genesisMax, "max-supply", prompt.Uncapped, "supply cap")
	flags.Uint32Var(&genesisLimit, "limit-per-account", 0, "tokens per account (0 is unlimited)")
}

var genGenesisCmd = &cobra.Command{
	Use:   "generate",
	Short: "Creates a new genesis file",
	RunE: func(*cobra.Command, []string) error {
		admin, err := genesisAdminAddress()
		if err != nil {
			return err
		}
		maxSupply, err := prompt.ParseOptionalUint64(genesisMax)
		if err != nil {
			return err
		}
		g := genesis.Default(admin)
		g.Name = genesisName
		g.Symbol = genesisSymbol
		g.BaseURI = genesisBaseURI
		g.MaxSupply = maxSupply
		g.LimitPerAccount = genesisLimit
		if err := g.Verify(); err != nil {
			return err
		}
		b, err := g.Bytes()
		if err != nil {
			return err
		}
		if err := os.WriteFile(genesisFile, b, fsModeWrite); err != nil {
			return err
		}
		utils.Outf("{{green}}created genesis:{{/}} %s {{yellow}}admin:{{/}} %s\n", genesisFile, admin)
		return nil
	},
}

func genesisAdminAddress() (codec.Address, error) {
	if len(genesisAdmin) > 0 {
		return codec.ParseAddress(genesisAdmin)
	}
	pk, err := auth.LoadPrivateKey(privateKeyFile)
	if err != nil {
		return codec.EmptyAddress, err
	}
	return pk.Address, nil
}
