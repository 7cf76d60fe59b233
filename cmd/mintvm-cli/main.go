// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// "mintvm-cli" runs a mintvm node and submits minting transactions to it.
package main

import (
	"os"

	"github.com/nftmint/mintvm/cmd/mintvm-cli/cmd"
	"github.com/nftmint/mintvm/utils"
)

func main() {
	if err := cmd.Execute(); err != nil {
		utils.Outf("{{red}}mintvm-cli exited with error:{{/}} %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}
