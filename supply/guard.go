// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Gala Games Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package supply

import (
	"github.com/shopspring/decimal"

	"github.com/GalaChain/tokenchain/fault"
	"github.com/GalaChain/tokenchain/record"
)

// EnsureQuantityCanBeMinted - capacity and supply guard, no I/O
//
// a cap of zero is uncapped; reaching a cap exactly is allowed.  The
// caller appends the ledger entry after this check passes; the
// substrate's conflict detection, not this function, is the final
// arbiter under concurrency
func EnsureQuantityCanBeMinted(class *record.TokenClass, quantity decimal.Decimal, knownMintCount decimal.Decimal, knownBurnCount decimal.Decimal) error {
	if quantity.Sign() <= 0 {
		return fault.ErrZeroQuantityRequested
	}
	if class.MaxCapacity.Sign() > 0 && knownMintCount.Add(quantity).Cmp(class.MaxCapacity) > 0 {
		return fault.Resourcef("mint capacity exceeded for %s: minted %s + requested %s > capacity %s",
			class.ClassKey(), knownMintCount, quantity, class.MaxCapacity)
	}
	if class.MaxSupply.Sign() > 0 && knownMintCount.Sub(knownBurnCount).Add(quantity).Cmp(class.MaxSupply) > 0 {
		return fault.Resourcef("total supply exceeded for %s: circulating %s + requested %s > max supply %s",
			class.ClassKey(), knownMintCount.Sub(knownBurnCount), quantity, class.MaxSupply)
	}
	return nil
}
