// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nftmint/mintvm/cli/prompt"
	"github.com/nftmint/mintvm/rpc"
	"github.com/nftmint/mintvm/utils"
)

var label = color.New(color.FgYellow).SprintFunc()

func readContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Prints the collection and its supply configuration",
	RunE: func(*cobra.Command, []string) error {
		ctx, cancel := readContext()
		defer cancel()

		cli := rpc.NewJSONRPCClient(endpoint)
		collection, err := cli.Collection(ctx)
		if err != nil {
			return err
		}
		supply, err := cli.Supply(ctx)
		if err != nil {
			return err
		}
		maxSupply := prompt.Uncapped
		if supply.MaxSupply != nil {
			maxSupply = strconv.FormatUint(*supply.MaxSupply, 10)
		}
		limit := "unlimited"
		if supply.LimitPerAccount > 0 {
			limit = strconv.FormatUint(uint64(supply.LimitPerAccount), 10)
		}
		fmt.Printf("%s %s (%s)\n", label("collection:"), collection.Name, collection.Symbol)
		fmt.Printf("%s %s\n", label("base uri:"), collection.BaseURI)
		fmt.Printf("%s %s\n", label("max supply:"), maxSupply)
		fmt.Printf("%s %s\n", label("limit per account:"), limit)
		fmt.Printf("%s %d\n", label("last token id:"), supply.LastTokenID)
		fmt.Printf("%s %d\n", label("total supply:"), supply.TotalSupply)
		return nil
	},
}

func tokenArg(args []string) (uint64, error) {
	if len(args) != 1 {
		return 0, ErrInvalidArgs
	}
	return strconv.ParseUint(args[0], 10, 64)
}

var tokenURICmd = &cobra.Command{
	Use:   "token-uri [tokenID]",
	Short: "Prints the URI of a token",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		id, err := tokenArg(args)
		if err != nil {
			return err
		}
		ctx, cancel := readContext()
		defer cancel()
		uri, err := rpc.NewJSONRPCClient(endpoint).TokenURI(ctx, id)
		if err != nil {
			return err
		}
		utils.Outf("{{yellow}}uri:{{/}} %s\n", uri)
		return nil
	},
}

var ownerCmd = &cobra.Command{
	Use:   "owner [tokenID]",
	Short: "Prints the owner of a token",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		id, err := tokenArg(args)
		if err != nil {
			return err
		}
		ctx, cancel := readContext()
		defer cancel()
		owner, err := rpc.NewJSONRPCClient(endpoint).OwnerOf(ctx, id)
		if err != nil {
			return err
		}
		utils.Outf("{{yellow}}owner:{{/}} %s\n", owner)
		return nil
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Prints the number of tokens held by an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		addr, err := prompt.ParseAddress(args[0])
		if err != nil {
			return err
		}
		ctx, cancel := readContext()
		defer cancel()
		balance, err := rpc.NewJSONRPCClient(endpoint).BalanceOf(ctx, addr)
		if err != nil {
			return err
		}
		utils.Outf("{{yellow}}balance:{{/}} %d\n", balance)
		return nil
	},
}

var txCmd = &cobra.Command{
	Use:   "tx [txID]",
	Short: "Prints the receipt of a transaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		txID, err := ids.FromString(args[0])
		if err != nil {
			return err
		}
		ctx, cancel := readContext()
		defer cancel()
		receipt, err := rpc.NewJSONRPCClient(endpoint).Tx(ctx, txID)
		if err != nil {
			return err
		}
		switch {
		case !receipt.Found:
			utils.Outf("{{red}}%s not found{{/}}\n", txID)
		case receipt.Success:
			utils.Outf("{{green}}success{{/}} {{yellow}}output:{{/}} %x\n", receipt.Output)
		default:
			utils.Outf("{{red}}failed:{{/}} %s\n", receipt.Error)
		}
		return nil
	},
}
