// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Gala Games Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package allowance_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GalaChain/tokenchain/allowance"
	"github.com/GalaChain/tokenchain/fault"
	"github.com/GalaChain/tokenchain/record"
	"github.com/GalaChain/tokenchain/state"
)

func dp(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func galaInstanceKey() record.TokenInstanceKey {
	return record.TokenInstanceKey{
		TokenClassKey: galaKey,
		Instance:      record.FungibleInstance(),
	}
}

func newAllowance(grantedTo string, action record.AllowanceType, quantity string, uses string, created int64) *record.TokenAllowance {
	return &record.TokenAllowance{
		GrantedTo:     grantedTo,
		Collection:    galaKey.Collection,
		Category:      galaKey.Category,
		Type:          galaKey.Type,
		AdditionalKey: galaKey.AdditionalKey,
		Instance:      record.FungibleInstance(),
		AllowanceType: action,
		GrantedBy:     alice,
		Created:       created,
		Uses:          d(uses),
		UsesSpent:     dp("0"),
		Quantity:      d(quantity),
		QuantitySpent: dp("0"),
	}
}

func claimsFor(t *testing.T, st *state.MemStore, owner string) []*record.TokenClaim {
	t.Helper()
	claims := []*record.TokenClaim{}
	err := state.IterateByPartialKey(st, record.TokenClaimIndexKey, []string{owner}, func(key string, data []byte) (bool, error) {
		c := &record.TokenClaim{}
		require.NoError(t, json.Unmarshal(data, c))
		claims = append(claims, c)
		return false, nil
	})
	require.NoError(t, err)
	return claims
}

func TestUseAllowancesDrainsInOrder(t *testing.T) {
	st := newTestStore(t)
	nowMs := st.TxTime().UnixMilli()

	first := newAllowance(bob, record.Transfer, "30", "10", nowMs-100)
	second := newAllowance(bob, record.Transfer, "30", "10", nowMs-50)

	require.NoError(t, allowance.UseAllowances(st, []*record.TokenAllowance{first, second}, d("40")))

	assert.True(t, first.QuantitySpent.Equal(d("30")), "got %s", first.QuantitySpent)
	assert.True(t, second.QuantitySpent.Equal(d("10")), "got %s", second.QuantitySpent)
	assert.True(t, first.UsesSpent.Equal(d("1")))
	assert.True(t, second.UsesSpent.Equal(d("1")))

	// first is drained and force-expired, second stays usable
	assert.Equal(t, nowMs, first.Expires)
	assert.Equal(t, int64(0), second.Expires)
	assert.False(t, first.IsUsable(nowMs))
	assert.True(t, second.IsUsable(nowMs))
	st.Commit()

	claims := claimsFor(t, st, bob)
	require.Len(t, claims, 2)
	assert.True(t, claims[0].ClaimSequence.Equal(d("1")))
}

func TestUseAllowancesExhaustsByUses(t *testing.T) {
	st := newTestStore(t)
	nowMs := st.TxTime().UnixMilli()

	a := newAllowance(bob, record.Transfer, "100", "1", nowMs-100)
	require.NoError(t, allowance.UseAllowances(st, []*record.TokenAllowance{a}, d("10")))

	// one use consumed the whole use budget
	assert.Equal(t, nowMs, a.Expires)
	assert.False(t, a.IsUsable(nowMs))
	assert.True(t, a.QuantitySpent.Equal(d("10")))
}

func TestUseAllowancesInsufficient(t *testing.T) {
	st := newTestStore(t)
	nowMs := st.TxTime().UnixMilli()

	a := newAllowance(bob, record.Transfer, "5", "10", nowMs-100)
	err := allowance.UseAllowances(st, []*record.TokenAllowance{a}, d("10"))
	assert.True(t, fault.IsErrProcess(err))
}

func TestUseAllowancesZeroQuantity(t *testing.T) {
	st := newTestStore(t)
	err := allowance.UseAllowances(st, nil, decimal.Zero)
	assert.Equal(t, fault.ErrQuantityMustBePositive, err)
}

// an unlimited allowance absorbs any remainder without mutation and
// without a claim receipt
func TestUseAllowancesUnlimited(t *testing.T) {
	st := newTestStore(t)
	nowMs := st.TxTime().UnixMilli()

	limited := newAllowance(bob, record.Transfer, "5", "10", nowMs-100)
	unlimited := newAllowance(bob, record.Transfer, "1", "1", nowMs-50)
	unlimited.UsesSpent = nil
	unlimited.QuantitySpent = nil

	require.NoError(t, allowance.UseAllowances(st, []*record.TokenAllowance{limited, unlimited}, d("1000")))

	assert.True(t, limited.QuantitySpent.Equal(d("5")))
	assert.Nil(t, unlimited.UsesSpent)
	assert.Nil(t, unlimited.QuantitySpent)
	st.Commit()

	claims := claimsFor(t, st, bob)
	assert.Len(t, claims, 1)
}

func TestCheckTotalsUsableOnly(t *testing.T) {
	st := newTestStore(t)
	nowMs := st.TxTime().UnixMilli()

	usable := newAllowance(bob, record.Transfer, "30", "10", nowMs-100)
	expired := newAllowance(bob, record.Transfer, "50", "10", nowMs-200)
	expired.Expires = nowMs - 10
	otherAction := newAllowance(bob, record.Lock, "70", "10", nowMs-300)

	candidates := []*record.TokenAllowance{usable, expired, otherAction}
	total, unlimited, err := allowance.Check(st, candidates, galaInstanceKey(), record.Transfer, bob)
	require.NoError(t, err)
	assert.False(t, unlimited)
	assert.True(t, total.Equal(d("30")), "got %s", total)
}

func TestCheckUnlimited(t *testing.T) {
	st := newTestStore(t)
	nowMs := st.TxTime().UnixMilli()

	a := newAllowance(bob, record.Transfer, "1", "1", nowMs-100)
	a.UsesSpent = nil
	a.QuantitySpent = nil

	_, unlimited, err := allowance.Check(st, []*record.TokenAllowance{a}, galaInstanceKey(), record.Transfer, bob)
	require.NoError(t, err)
	assert.True(t, unlimited)
}

// expired entries encountered during a check are swept from state
func TestCheckSweepsExpired(t *testing.T) {
	st := newTestStore(t)
	nowMs := st.TxTime().UnixMilli()

	expired := newAllowance(bob, record.Transfer, "50", "10", nowMs-200)
	expired.Expires = nowMs - 10
	require.NoError(t, state.PutObject(st, expired))
	st.Commit()

	fetched, err := allowance.Fetch(st, allowance.Query{GrantedTo: bob})
	require.NoError(t, err)
	require.Len(t, fetched, 1)

	_, _, err = allowance.Check(st, fetched, galaInstanceKey(), record.Transfer, bob)
	require.NoError(t, err)
	st.Commit()

	fetched, err = allowance.Fetch(st, allowance.Query{GrantedTo: bob})
	require.NoError(t, err)
	assert.Len(t, fetched, 0)
}

func TestVerifyAndUse(t *testing.T) {
	st := newTestStore(t)
	nowMs := st.TxTime().UnixMilli()

	a := newAllowance(bob, record.Transfer, "30", "10", nowMs-100)
	require.NoError(t, state.PutObject(st, a))
	st.Commit()

	key, err := a.Key()
	require.NoError(t, err)

	// nominating the same key twice must not double-count
	err = allowance.VerifyAndUse(st, allowance.VerifyUseParams{
		CallingUser:   bob,
		GrantedBy:     alice,
		Key:           galaInstanceKey(),
		Action:        record.Transfer,
		Quantity:      d("31"),
		AllowanceKeys: []string{key, key},
	})
	assert.True(t, fault.IsErrResource(err))

	err = allowance.VerifyAndUse(st, allowance.VerifyUseParams{
		CallingUser:   bob,
		GrantedBy:     alice,
		Key:           galaInstanceKey(),
		Action:        record.Transfer,
		Quantity:      d("20"),
		AllowanceKeys: []string{key},
	})
	require.NoError(t, err)
	st.Commit()

	fetched, err := allowance.Fetch(st, allowance.Query{GrantedTo: bob})
	require.NoError(t, err)
	require.Len(t, fetched, 1)
	assert.True(t, fetched[0].QuantitySpent.Equal(d("20")))
}

func TestVerifyAndUseWrongParties(t *testing.T) {
	st := newTestStore(t)
	nowMs := st.TxTime().UnixMilli()

	a := newAllowance(bob, record.Transfer, "30", "10", nowMs-100)
	require.NoError(t, state.PutObject(st, a))
	st.Commit()

	key, err := a.Key()
	require.NoError(t, err)

	err = allowance.VerifyAndUse(st, allowance.VerifyUseParams{
		CallingUser:   "client|mallory",
		GrantedBy:     alice,
		Key:           galaInstanceKey(),
		Action:        record.Transfer,
		Quantity:      d("1"),
		AllowanceKeys: []string{key},
	})
	assert.True(t, fault.IsErrAuthorization(err))
}

func TestVerifyAndUseWrongAction(t *testing.T) {
	st := newTestStore(t)
	nowMs := st.TxTime().UnixMilli()

	a := newAllowance(bob, record.Lock, "30", "10", nowMs-100)
	require.NoError(t, state.PutObject(st, a))
	st.Commit()

	key, err := a.Key()
	require.NoError(t, err)

	err = allowance.VerifyAndUse(st, allowance.VerifyUseParams{
		CallingUser:   bob,
		GrantedBy:     alice,
		Key:           galaInstanceKey(),
		Action:        record.Transfer,
		Quantity:      d("1"),
		AllowanceKeys: []string{key},
	})
	assert.True(t, fault.IsErrInvalid(err))
}

func TestVerifyAndUseExpiredAllowance(t *testing.T) {
	st := newTestStore(t)
	nowMs := st.TxTime().UnixMilli()

	a := newAllowance(bob, record.Transfer, "30", "10", nowMs-100)
	a.Expires = nowMs - 10
	require.NoError(t, state.PutObject(st, a))
	st.Commit()

	key, err := a.Key()
	require.NoError(t, err)

	err = allowance.VerifyAndUse(st, allowance.VerifyUseParams{
		CallingUser:   bob,
		GrantedBy:     alice,
		Key:           galaInstanceKey(),
		Action:        record.Transfer,
		Quantity:      d("1"),
		AllowanceKeys: []string{key},
	})
	assert.Equal(t, fault.ErrAllowanceExpired, err)
}

func TestVerifyAndUseMissingAllowance(t *testing.T) {
	st := newTestStore(t)

	a := newAllowance(bob, record.Transfer, "30", "10", 12345)
	key, err := a.Key()
	require.NoError(t, err)

	err = allowance.VerifyAndUse(st, allowance.VerifyUseParams{
		CallingUser:   bob,
		GrantedBy:     alice,
		Key:           galaInstanceKey(),
		Action:        record.Transfer,
		Quantity:      d("1"),
		AllowanceKeys: []string{key},
	})
	assert.Equal(t, fault.ErrNotFoundAllowance, err)
}

func TestRefresh(t *testing.T) {
	st := newTestStore(t)
	nowMs := st.TxTime().UnixMilli()

	a := newAllowance(bob, record.Transfer, "30", "1", nowMs-100)
	spent := d("1")
	a.UsesSpent = &spent
	a.Expires = nowMs - 10
	require.NoError(t, state.PutObject(st, a))
	st.Commit()

	key, err := a.Key()
	require.NoError(t, err)

	refreshed, err := allowance.Refresh(st, alice, []allowance.RefreshSpec{
		{AllowanceKey: key, Uses: d("5"), Expires: 0},
	})
	require.NoError(t, err)
	require.Len(t, refreshed, 1)

	// uses budget grew past the spent count, quantity tracking kept
	assert.True(t, refreshed[0].IsUsable(nowMs))
	assert.True(t, refreshed[0].UsesSpent.Equal(d("1")))
}

func TestRefreshGrantorOnly(t *testing.T) {
	st := newTestStore(t)
	nowMs := st.TxTime().UnixMilli()

	a := newAllowance(bob, record.Transfer, "30", "1", nowMs-100)
	require.NoError(t, state.PutObject(st, a))
	st.Commit()

	key, err := a.Key()
	require.NoError(t, err)

	_, err = allowance.Refresh(st, bob, []allowance.RefreshSpec{
		{AllowanceKey: key, Uses: d("5"), Expires: 0},
	})
	assert.True(t, fault.IsErrAuthorization(err))
}

func TestDelete(t *testing.T) {
	st := newTestStore(t)
	nowMs := st.TxTime().UnixMilli()

	a := newAllowance(bob, record.Transfer, "30", "10", nowMs-100)
	require.NoError(t, state.PutObject(st, a))
	st.Commit()

	count, err := allowance.Delete(st, bob, allowance.Query{GrantedTo: bob})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	st.Commit()

	fetched, err := allowance.Fetch(st, allowance.Query{GrantedTo: bob})
	require.NoError(t, err)
	assert.Len(t, fetched, 0)
}

func TestDeleteThirdParty(t *testing.T) {
	st := newTestStore(t)
	nowMs := st.TxTime().UnixMilli()

	a := newAllowance(bob, record.Transfer, "30", "10", nowMs-100)
	require.NoError(t, state.PutObject(st, a))
	st.Commit()

	_, err := allowance.Delete(st, "client|mallory", allowance.Query{GrantedTo: bob})
	assert.True(t, fault.IsErrAuthorization(err))
}

// a non-fungible allowance whose grantor sold the instance is dropped
// and swept
func TestCleanUsableOrphanedInstance(t *testing.T) {
	st := newTestStore(t)
	nowMs := st.TxTime().UnixMilli()

	a := newAllowance(bob, record.Transfer, "1", "1", nowMs-100)
	a.Instance = d("7")
	require.NoError(t, state.PutObject(st, a))
	st.Commit()

	// no balance for alice holding instance 7
	usable := allowance.CleanUsable(st, []*record.TokenAllowance{a}, nowMs)
	assert.Len(t, usable, 0)
}
