// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nftmint/mintvm/access"
	"github.com/nftmint/mintvm/actions"
	"github.com/nftmint/mintvm/chain"
	"github.com/nftmint/mintvm/cli/prompt"
	"github.com/nftmint/mintvm/codec"
	"github.com/nftmint/mintvm/minting"
	"github.com/nftmint/mintvm/utils"
)

var (
	mintTo       string
	mintMetadata string
)

func initActionFlags() {
	mintCmd.Flags().StringVar(&mintTo, "to", "", "recipient address")
	mintCmd.Flags().StringVar(&mintMetadata, "metadata", "", "token metadata")
}

func send(action chain.Action) (*chain.Result, error) {
	h, err := NewSigningHandler()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	return h.Send(ctx, action)
}

var mintCmd = &cobra.Command{
	Use:   "mint",
	Short: "Mints the next token to an account",
	RunE: func(cmd *cobra.Command, _ []string) error {
		var (
			to  codec.Address
			err error
		)
		if len(mintTo) > 0 {
			to, err = prompt.ParseAddress(mintTo)
		} else {
			to, err = prompt.Address("recipient")
		}
		if err != nil {
			return err
		}
		metadata := mintMetadata
		if !cmd.Flags().Changed("metadata") {
			metadata, err = prompt.String("metadata", minting.MaxMetadataSize, true)
			if err != nil {
				return err
			}
		}
		result, err := send(&actions.Mint{To: to, Metadata: metadata})
		if err != nil || result == nil {
			return err
		}
		id, err := codec.TokenIDFromBytes(result.Output)
		if err != nil {
			return err
		}
		utils.Outf("{{green}}minted token:{{/}} %s\n", id)
		return nil
	},
}

var changeMetadataCmd = &cobra.Command{
	Use:   "change-metadata [tokenID] [metadata]",
	Short: "Replaces the metadata of a minted token",
	Args:  cobra.RangeArgs(0, 2),
	RunE: func(_ *cobra.Command, args []string) error {
		var (
			id  codec.TokenID
			err error
		)
		if len(args) > 0 {
			id, err = codec.ParseTokenID(args[0])
		} else {
			id, err = prompt.TokenID("tokenID")
		}
		if err != nil {
			return err
		}
		var metadata string
		if len(args) > 1 {
			metadata = args[1]
		} else {
			metadata, err = prompt.String("metadata", minting.MaxMetadataSize, true)
			if err != nil {
				return err
			}
		}
		_, err = send(&actions.ChangeMetadata{TokenID: id, Metadata: metadata})
		return err
	},
}

var setMaxSupplyCmd = &cobra.Command{
	Use:   "set-max-supply [value|none]",
	Short: "Sets or removes the supply cap",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		var (
			v   *uint64
			err error
		)
		if len(args) > 0 {
			v, err = prompt.ParseOptionalUint64(args[0])
		} else {
			v, err = prompt.OptionalUint64("max supply")
		}
		if err != nil {
			return err
		}
		_, err = send(&actions.SetMaxSupply{MaxSupply: v})
		return err
	},
}

var setLimitCmd = &cobra.Command{
	Use:   "set-limit [value]",
	Short: "Sets the number of tokens an account may hold (0 is unlimited)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		var (
			limit uint32
			err   error
		)
		if len(args) > 0 {
			var v uint64
			v, err = strconv.ParseUint(args[0], 10, 32)
			limit = uint32(v)
		} else {
			limit, err = prompt.Uint32("limit per account")
		}
		if err != nil {
			return err
		}
		_, err = send(&actions.SetLimitPerAccount{Limit: limit})
		return err
	},
}

var roleCmd = &cobra.Command{
	Use: "role",
	RunE: func(*cobra.Command, []string) error {
		return ErrMissingSubcommand
	},
}

func roleArgs(args []string) (access.Role, codec.Address, error) {
	if len(args) == 1 {
		addr, err := prompt.ParseAddress(args[0])
		return access.AdminRole, addr, err
	}
	role, err := prompt.Role("role")
	if err != nil {
		return 0, codec.EmptyAddress, err
	}
	addr, err := prompt.Address("account")
	return role, addr, err
}

var grantRoleCmd = &cobra.Command{
	Use:   "grant [address]",
	Short: "Grants a role (admin when an address is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		role, addr, err := roleArgs(args)
		if err != nil {
			return err
		}
		_, err = send(actions.NewGrantRole(role, addr))
		return err
	},
}

var revokeRoleCmd = &cobra.Command{
	Use:   "revoke [address]",
	Short: "Revokes a role (admin when an address is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		role, addr, err := roleArgs(args)
		if err != nil {
			return err
		}
		_, err = send(actions.NewRevokeRole(role, addr))
		return err
	},
}

var renounceRoleCmd = &cobra.Command{
	Use:   "renounce [address]",
	Short: "Gives up a role held by the signer",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		role, addr, err := roleArgs(args)
		if err != nil {
			return err
		}
		_, err = send(actions.NewRenounceRole(role, addr))
		return err
	},
}
