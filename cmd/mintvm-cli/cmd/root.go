// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"time"

	"github.com/spf13/cobra"
)

const (
	requestTimeout  = 30 * time.Second
	defaultKeyFile  = "mintvm.key"
	defaultEndpoint = "http://127.0.0.1:9650"
)

var (
	endpoint       string
	privateKeyFile string
	assumeYes      bool

	rootCmd = &cobra.Command{
		Use:          "mintvm-cli",
		Short:        "MintVM CLI",
		SuggestFor:   []string{"mintvm-cli", "mintcli"},
		SilenceUsage: true,
	}
)

func init() {
	cobra.EnablePrefixMatching = true
	rootCmd.AddCommand(
		keyCmd,
		genesisCmd,
		serveCmd,

		mintCmd,
		changeMetadataCmd,
		setMaxSupplyCmd,
		setLimitCmd,
		roleCmd,

		infoCmd,
		tokenURICmd,
		ownerCmd,
		balanceCmd,
		txCmd,

		importCmd,
	)
	rootCmd.PersistentFlags().StringVar(
		&endpoint,
		"endpoint",
		defaultEndpoint,
		"node endpoint",
	)
	rootCmd.PersistentFlags().StringVar(
		&privateKeyFile,
		"key",
		defaultKeyFile,
		"private key file",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&assumeYes,
		"yes",
		"y",
		false,
		"skip confirmations",
	)

	keyCmd.AddCommand(genKeyCmd, addressKeyCmd)
	genKeyCmd.Flags().StringVar(&keyType, "type", "ed25519", "key type (ed25519 or secp256r1)")

	genesisCmd.AddCommand(genGenesisCmd)
	initGenesisFlags()

	initActionFlags()
	roleCmd.AddCommand(grantRoleCmd, revokeRoleCmd, renounceRoleCmd)

	importCmd.AddCommand(importCSVCmd)
	importCSVCmd.Flags().IntVar(&importBatchSize, "batch-size", 64, "transactions per submission")

	initServeFlags()
}

func Execute() error {
	return rootCmd.Execute()
}
