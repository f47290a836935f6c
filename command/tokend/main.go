// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Gala Games Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// tokend - the token chaincode process
//
// started by the peer as an external chaincode or as a plain
// chaincode binary depending on deployment
package main

import (
	"github.com/bitmark-inc/exitwithstatus"
	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"github.com/GalaChain/tokenchain/contract"
)

func main() {
	defer exitwithstatus.Handler()

	chaincode, err := contractapi.NewChaincode(&contract.TokenContract{})
	if err != nil {
		exitwithstatus.Message("tokend: cannot create chaincode: %s", err)
	}
	if err := chaincode.Start(); err != nil {
		exitwithstatus.Message("tokend: chaincode stopped: %s", err)
	}
}
