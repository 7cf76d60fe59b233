// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nftmint/mintvm/actions"
	"github.com/nftmint/mintvm/chain"
	"github.com/nftmint/mintvm/cli/prompt"
	"github.com/nftmint/mintvm/codec"
	"github.com/nftmint/mintvm/minting"
	"github.com/nftmint/mintvm/rpc"
	"github.com/nftmint/mintvm/utils"
)

var importBatchSize int

// mintRow is one line of a mint list: address,tokenId,tokenUri. The token
// id is informational; ids are assigned in mint order.
type mintRow struct {
	line     int
	to       codec.Address
	tokenID  *codec.TokenID
	metadata string
}

var errMissingColumn = errors.New("missing column")

func parseMintCSV(r io.Reader) ([]mintRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	header, err := reader.Read()
	if err != nil {
		return nil, err
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	addrCol, ok := columns["address"]
	if !ok {
		return nil, fmt.Errorf("%w: address", errMissingColumn)
	}
	uriCol, ok := columns["tokenuri"]
	if !ok {
		return nil, fmt.Errorf("%w: tokenUri", errMissingColumn)
	}
	idCol, hasID := columns["tokenid"]

	var rows []mintRow
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		to, err := codec.ParseAddress(strings.TrimSpace(record[addrCol]))
		if err != nil {
			return nil, fmt.Errorf("%w %d: %w", ErrInvalidRow, line, err)
		}
		row := mintRow{
			line:     line,
			to:       to,
			metadata: strings.TrimSpace(record[uriCol]),
		}
		if len(row.metadata) == 0 || len(row.metadata) > minting.MaxMetadataSize {
			return nil, fmt.Errorf("%w %d: tokenUri must be 1-%d bytes", ErrInvalidRow, line, minting.MaxMetadataSize)
		}
		if hasID && len(strings.TrimSpace(record[idCol])) > 0 {
			id, err := codec.ParseTokenID(strings.TrimSpace(record[idCol]))
			if err != nil {
				return nil, fmt.Errorf("%w %d: %w", ErrInvalidRow, line, err)
			}
			row.tokenID = &id
		}
		rows = append(rows, row)
	}
}

var importCmd = &cobra.Command{
	Use: "import",
	RunE: func(*cobra.Command, []string) error {
		return ErrMissingSubcommand
	},
}

var importCSVCmd = &cobra.Command{
	Use:   "csv [file]",
	Short: "Mints one token per row of a CSV file (address,tokenId,tokenUri)",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		if importBatchSize <= 0 || importBatchSize > rpc.MaxSubmitTxs {
			return fmt.Errorf("%w: batch size must be 1-%d", ErrInvalidArgs, rpc.MaxSubmitTxs)
		}
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		rows, err := parseMintCSV(f)
		_ = f.Close()
		if err != nil {
			return err
		}

		h, err := NewSigningHandler()
		if err != nil {
			return err
		}
		ctx := context.Background()
		supply, err := h.cli.Supply(ctx)
		if err != nil {
			return err
		}
		utils.Outf("{{yellow}}rows:{{/}} %d {{yellow}}endpoint:{{/}} %s {{yellow}}next token:{{/}} %d\n", len(rows), endpoint, supply.LastTokenID+1)
		if !assumeYes {
			cont, err := prompt.Continue()
			if !cont || err != nil {
				return err
			}
		}

		var (
			succeeded int
			failed    []string
			next      = supply.LastTokenID + 1
		)
		for start := 0; start < len(rows); start += importBatchSize {
			batch := rows[start:min(start+importBatchSize, len(rows))]
			txs := make([]*chain.Transaction, len(batch))
			for i, row := range batch {
				txs[i], err = h.Sign(&actions.Mint{To: row.to, Metadata: row.metadata})
				if err != nil {
					return err
				}
			}
			reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
			results, err := h.cli.SubmitTx(reqCtx, txs...)
			cancel()
			if err != nil {
				return err
			}
			for i, result := range results {
				row := batch[i]
				if !result.Success {
					failed = append(failed, fmt.Sprintf("line %d (%s): %s", row.line, row.to, result.Error))
					continue
				}
				succeeded++
				if row.tokenID != nil && uint64(*row.tokenID) != next {
					utils.Outf("{{yellow}}line %d:{{/}} requested token %s but minted %d\n", row.line, row.tokenID, next)
				}
				next++
			}
		}

		fmt.Printf("%s %d/%d\n", color.GreenString("minted:"), succeeded, len(rows))
		for _, msg := range failed {
			fmt.Printf("%s %s\n", color.RedString("failed:"), msg)
		}
		if len(failed) > 0 {
			return fmt.Errorf("%w: %d rows", ErrTxFailed, len(failed))
		}
		return nil
	},
}
