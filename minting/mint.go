// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Gala Games Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package minting

import (
	"github.com/shopspring/decimal"

	"github.com/GalaChain/tokenchain/allowance"
	"github.com/GalaChain/tokenchain/balance"
	"github.com/GalaChain/tokenchain/fault"
	"github.com/GalaChain/tokenchain/record"
	"github.com/GalaChain/tokenchain/state"
	"github.com/GalaChain/tokenchain/supply"
)

// MintParams - one mint of a single token class
type MintParams struct {
	CallingUser   string               `json:"-"`
	Token         record.TokenClassKey `json:"tokenClass"`
	Owner         string               `json:"owner,omitempty"`
	Quantity      decimal.Decimal      `json:"quantity"`
	AllowanceKeys []string             `json:"allowanceKeys,omitempty"`
}

// MintResult - what one mint produced
//
// Instances is populated for non-fungible classes only
type MintResult struct {
	Balance   *record.TokenBalance `json:"balance"`
	Instances []decimal.Decimal    `json:"instances,omitempty"`
}

// Mint - mint quantity of a token class to Owner, consuming the
// calling user's mint allowances
//
// the supply read uses a zero lookback offset, so concurrent mints
// within the same block can both observe the pre-block total; the
// capacity check is therefore advisory under contention and the
// batch path is the strict one
func Mint(st state.Store, p MintParams) (*MintResult, error) {
	if p.Quantity.Sign() <= 0 {
		return nil, fault.ErrQuantityMustBePositive
	}
	owner := p.Owner
	if owner == "" {
		owner = p.CallingUser
	}

	class, err := allowance.FetchClass(st, p.Token)
	if err != nil {
		return nil, err
	}
	if err := class.ValidatePrecision(p.Quantity); err != nil {
		return nil, err
	}

	knownMints, err := supply.FetchMintSupply(st, p.Token, 0)
	if err != nil {
		return nil, err
	}
	knownBurns, err := supply.FetchKnownBurnCount(st, p.Token, 0)
	if err != nil {
		return nil, err
	}
	if err := supply.EnsureQuantityCanBeMinted(class, p.Quantity, knownMints, knownBurns); err != nil {
		return nil, err
	}

	if err := consumeMintAllowances(st, p, class); err != nil {
		return nil, err
	}

	if _, err := supply.WriteMintRequest(st, p.Token, owner, p.Quantity, knownMints, 0); err != nil {
		return nil, err
	}

	result, err := creditRecipient(st, class, owner, p.Quantity, knownMints)
	if err != nil {
		return nil, err
	}

	// legacy bookkeeping retained for pre-ledger readers
	class.TotalSupply = class.TotalSupply.Add(p.Quantity)
	if err := state.PutObject(st, class); err != nil {
		return nil, err
	}
	return result, nil
}

// the caller either nominates specific allowance keys or falls back
// to a scan over every mint allowance granted to them for the class
func consumeMintAllowances(st state.Store, p MintParams, class *record.TokenClass) error {
	instanceKey := record.TokenInstanceKey{
		TokenClassKey: p.Token,
		Instance:      record.FungibleInstance(),
	}

	if len(p.AllowanceKeys) > 0 {
		return useNominatedMintAllowances(st, p, class, instanceKey)
	}

	mint := record.Mint
	instance := record.FungibleInstance()
	candidates, err := allowance.Fetch(st, allowance.Query{
		GrantedTo:     p.CallingUser,
		Collection:    p.Token.Collection,
		Category:      p.Token.Category,
		Type:          p.Token.Type,
		AdditionalKey: p.Token.AdditionalKey,
		Instance:      &instance,
		AllowanceType: &mint,
	})
	if err != nil {
		return err
	}

	total, unlimited, err := allowance.Check(st, candidates, instanceKey, record.Mint, p.CallingUser)
	if err != nil {
		return err
	}
	if !unlimited && total.Cmp(p.Quantity) < 0 {
		return fault.Resourcef("mint allowances of %s hold %s, %s required", p.CallingUser, total, p.Quantity)
	}
	return allowance.UseAllowances(st, candidates, p.Quantity)
}

// nominated keys skip the scan; the grantor of each must still be a
// current authority of the class
func useNominatedMintAllowances(st state.Store, p MintParams, class *record.TokenClass, instanceKey record.TokenInstanceKey) error {
	nowMs := st.TxTime().UnixMilli()
	nominated := make([]*record.TokenAllowance, 0, len(p.AllowanceKeys))
	available := decimal.Zero
	unlimited := false

	seen := make(map[string]struct{}, len(p.AllowanceKeys))
	for _, key := range p.AllowanceKeys {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		a := &record.TokenAllowance{}
		if err := state.GetObject(st, key, a); err != nil {
			if fault.IsErrNotFound(err) {
				return fault.ErrNotFoundAllowance
			}
			return err
		}
		if a.GrantedTo != p.CallingUser {
			return fault.Authorizationf("allowance belongs to %s, not %s", a.GrantedTo, p.CallingUser)
		}
		if !class.HasAuthority(a.GrantedBy) {
			return fault.Authorizationf("allowance grantor %s is not an authority of %s", a.GrantedBy, p.Token)
		}
		if !a.Matches(instanceKey, record.Mint) {
			return fault.Invalidf("allowance for %s %s cannot mint %s", a.AllowanceType, a.InstanceKey(), p.Token)
		}
		nominated = append(nominated, a)
		if a.IsUnlimited() {
			unlimited = true
		} else if a.IsUsable(nowMs) {
			available = available.Add(a.UsableQuantity())
		}
	}

	if !unlimited && available.Cmp(p.Quantity) < 0 {
		return fault.Resourcef("nominated mint allowances hold %s, %s required", available, p.Quantity)
	}
	return allowance.UseAllowances(st, nominated, p.Quantity)
}

// fungible classes credit the quantity; non-fungible classes assign
// the next instance numbers after the known mint count and record one
// instance object per unit
func creditRecipient(st state.Store, class *record.TokenClass, owner string, quantity decimal.Decimal, knownMints decimal.Decimal) (*MintResult, error) {
	key := class.ClassKey()
	bal, err := balance.FetchOrCreate(st, owner, key)
	if err != nil {
		return nil, err
	}

	if !class.IsNonFungible {
		if err := bal.AddQuantity(quantity); err != nil {
			return nil, err
		}
		if err := state.PutObject(st, bal); err != nil {
			return nil, err
		}
		return &MintResult{Balance: bal}, nil
	}

	if !quantity.IsInteger() {
		return nil, fault.Invalidf("cannot mint %s non-fungible units of %s", quantity, key)
	}

	count := quantity.IntPart()
	instances := make([]decimal.Decimal, 0, count)
	one := decimal.NewFromInt(1)
	next := knownMints.Add(one)
	for i := int64(0); i < count; i++ {
		instance := &record.TokenInstance{
			Collection:    key.Collection,
			Category:      key.Category,
			Type:          key.Type,
			AdditionalKey: key.AdditionalKey,
			Instance:      next,
			IsNonFungible: true,
			Owner:         owner,
		}
		if err := state.PutObject(st, instance); err != nil {
			return nil, err
		}
		if err := bal.AddInstance(next); err != nil {
			return nil, err
		}
		instances = append(instances, next)
		next = next.Add(one)
	}
	if err := state.PutObject(st, bal); err != nil {
		return nil, err
	}
	return &MintResult{Balance: bal, Instances: instances}, nil
}
