// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Gala Games Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package supply_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GalaChain/tokenchain/supply"
)

// lexicographic order of time keys must be reverse-chronological
func TestInverseTimeOrdering(t *testing.T) {
	earlier := supply.InverseTime(1_700_000_000_000, 0)
	later := supply.InverseTime(1_700_000_000_001, 0)

	assert.Len(t, earlier, 16)
	assert.Len(t, later, 16)
	assert.True(t, later < earlier, "later timestamps must sort first")
}

func TestInverseTimeOffset(t *testing.T) {
	at := supply.InverseTime(1_700_000_000_000, 0)
	shifted := supply.InverseTime(1_700_000_002_000, 2000)
	assert.Equal(t, at, shifted)

	// offsets never push the timestamp below zero
	floor := supply.InverseTime(500, 1000)
	assert.Equal(t, supply.InverseTime(0, 0), floor)
}

func TestInverseEpochBuckets(t *testing.T) {
	a := supply.InverseEpoch(1_700_000_000_000, 0)
	b := supply.InverseEpoch(1_700_000_000_001, 0)
	assert.Equal(t, a, b, "nearby timestamps share an epoch bucket")

	yearMs := int64(365 * 24 * 60 * 60 * 1000)
	c := supply.InverseEpoch(1_700_000_000_000+yearMs, 0)
	assert.NotEqual(t, a, c, "a year apart lands in different buckets")
}
