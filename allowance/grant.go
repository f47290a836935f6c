// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Gala Games Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package allowance

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/GalaChain/tokenchain/balance"
	"github.com/GalaChain/tokenchain/fault"
	"github.com/GalaChain/tokenchain/record"
	"github.com/GalaChain/tokenchain/state"
	"github.com/GalaChain/tokenchain/supply"
)

// GrantQuantity - one grantee and the quantity granted to them
type GrantQuantity struct {
	User     string          `json:"user"`
	Quantity decimal.Decimal `json:"quantity"`
}

// GrantParams - parameters of a single grant call
//
// TokenInstance may be a partial key, in which case the grant fans
// out over every balance of the calling user matching the prefix
type GrantParams struct {
	CallingUser   string                       `json:"-"`
	TokenInstance record.TokenInstanceQueryKey `json:"tokenInstance"`
	AllowanceType record.AllowanceType         `json:"allowanceType"`
	Quantities    []GrantQuantity              `json:"quantities"`
	Uses          decimal.Decimal              `json:"uses"`
	Expires       int64                        `json:"expires"`
}

func (p GrantParams) validate() error {
	if len(p.Quantities) == 0 {
		return fault.Invalidf("grant names no recipients")
	}
	if p.Uses.Sign() <= 0 {
		return fault.ErrUsesMustBePositive
	}
	seen := make(map[string]struct{}, len(p.Quantities))
	for _, gq := range p.Quantities {
		if gq.User == "" {
			return fault.Invalidf("grant recipient is empty")
		}
		if gq.Quantity.Sign() <= 0 {
			return fault.ErrQuantityMustBePositive
		}
		if _, ok := seen[gq.User]; ok {
			return fault.Conflictf("duplicate grant recipient: %s", gq.User)
		}
		seen[gq.User] = struct{}{}
	}
	return nil
}

// Grant - create allowances for each recipient against the calling
// user's tokens
//
// a complete token instance key targets exactly that instance; a
// partial key fans out over every matching balance the caller holds,
// granting where possible and reporting per-target failures in one
// aggregated error alongside the successful grants; lock grants skip
// instances every recipient already holds a usable lock for
func Grant(st state.Store, p GrantParams) ([]*record.TokenAllowance, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	if p.TokenInstance.IsComplete() {
		key, err := p.TokenInstance.ToInstanceKey()
		if err != nil {
			return nil, err
		}
		class, err := FetchClass(st, key.TokenClassKey)
		if err != nil {
			return nil, err
		}
		return grantToInstance(st, p, class, key)
	}

	// mint allowances attach to the class itself, a prefix cannot
	// name one
	if p.AllowanceType == record.Mint {
		return nil, fault.Invalidf("mint allowances require a fully specified token instance")
	}

	balances, err := balance.FetchAll(st, p.CallingUser, p.TokenInstance)
	if err != nil {
		return nil, err
	}

	granted := []*record.TokenAllowance{}
	failures := []string{}
	attempts := 0
	covered := 0
	nowMs := st.TxTime().UnixMilli()

	for _, bal := range balances {
		class, err := FetchClass(st, bal.ClassKey())
		if err != nil {
			attempts++
			failures = append(failures, bal.ClassKey().String()+": "+err.Error())
			continue
		}
		for _, key := range balanceTargets(class, bal, p.TokenInstance.Instance) {
			if p.AllowanceType == record.Lock {
				skip, err := lockCovered(st, p, key, nowMs)
				if err != nil {
					attempts++
					failures = append(failures, key.String()+": "+err.Error())
					continue
				}
				if skip {
					covered++
					continue
				}
			}
			attempts++
			as, err := grantToInstance(st, p, class, key)
			if err != nil {
				failures = append(failures, key.String()+": "+err.Error())
				continue
			}
			granted = append(granted, as...)
		}
	}

	if attempts == 0 && covered == 0 {
		return nil, fault.ErrNotFoundBalance
	}
	if len(failures) > 0 {
		return granted, fault.Processf("allowance grant failed for %d of %d targets: %s",
			len(failures), attempts, strings.Join(failures, "; "))
	}
	return granted, nil
}

// the concrete instance keys one balance contributes to a fan-out
func balanceTargets(class *record.TokenClass, bal *record.TokenBalance, instance *decimal.Decimal) []record.TokenInstanceKey {
	if !class.IsNonFungible {
		return []record.TokenInstanceKey{{
			TokenClassKey: bal.ClassKey(),
			Instance:      record.FungibleInstance(),
		}}
	}
	keys := make([]record.TokenInstanceKey, 0, len(bal.InstanceIDs))
	for _, id := range bal.InstanceIDs {
		if instance != nil && !instance.Equal(id) {
			continue
		}
		keys = append(keys, record.TokenInstanceKey{
			TokenClassKey: bal.ClassKey(),
			Instance:      id,
		})
	}
	return keys
}

func grantToInstance(st state.Store, p GrantParams, class *record.TokenClass, key record.TokenInstanceKey) ([]*record.TokenAllowance, error) {

	totalQuantity := decimal.Zero
	for _, gq := range p.Quantities {
		if err := class.ValidatePrecision(gq.Quantity); err != nil {
			return nil, err
		}
		totalQuantity = totalQuantity.Add(gq.Quantity)
	}

	nowMs := st.TxTime().UnixMilli()

	if p.AllowanceType == record.Mint {
		if err := grantMintBacking(st, p, class, key, totalQuantity); err != nil {
			return nil, err
		}
	} else {
		if err := checkGrantorBacking(st, p, class, key, totalQuantity); err != nil {
			return nil, err
		}
		if p.AllowanceType == record.Lock {
			if err := rejectDuplicateLocks(st, p, key, nowMs); err != nil {
				return nil, err
			}
		}
	}

	granted := make([]*record.TokenAllowance, 0, len(p.Quantities))
	for _, gq := range p.Quantities {
		usesSpent := decimal.Zero
		quantitySpent := decimal.Zero
		a := &record.TokenAllowance{
			GrantedTo:     gq.User,
			Collection:    key.Collection,
			Category:      key.Category,
			Type:          key.Type,
			AdditionalKey: key.AdditionalKey,
			Instance:      key.Instance,
			AllowanceType: p.AllowanceType,
			GrantedBy:     p.CallingUser,
			Created:       nowMs,
			Uses:          p.Uses,
			UsesSpent:     &usesSpent,
			Expires:       p.Expires,
			Quantity:      gq.Quantity,
			QuantitySpent: &quantitySpent,
		}
		if err := state.PutObject(st, a); err != nil {
			return nil, err
		}
		granted = append(granted, a)
	}
	return granted, nil
}

// mint allowances are capacity-checked against the running-total
// ledger and recorded there; every entry written by one call shares
// the batch-start baseline
func grantMintBacking(st state.Store, p GrantParams, class *record.TokenClass, key record.TokenInstanceKey, totalQuantity decimal.Decimal) error {
	if !class.HasAuthority(p.CallingUser) {
		return fault.Authorizationf("%s is not an authority of %s", p.CallingUser, key.TokenClassKey)
	}

	knownAllowances, err := supply.FetchMintAllowanceSupply(st, key.TokenClassKey, -1)
	if err != nil {
		return err
	}
	knownBurns, err := supply.FetchKnownBurnCount(st, key.TokenClassKey, -1)
	if err != nil {
		return err
	}
	if err := supply.EnsureQuantityCanBeMinted(class, totalQuantity, knownAllowances, knownBurns); err != nil {
		return err
	}

	for i, gq := range p.Quantities {
		_, err := supply.WriteMintAllowanceRequest(st, key.TokenClassKey, gq.User, gq.Quantity, knownAllowances, i)
		if err != nil {
			return err
		}
	}

	// legacy bookkeeping retained for pre-ledger readers
	class.TotalMintAllowance = class.TotalMintAllowance.Add(totalQuantity)
	return state.PutObject(st, class)
}

// every other allowance type is backed by the grantor's own holdings
func checkGrantorBacking(st state.Store, p GrantParams, class *record.TokenClass, key record.TokenInstanceKey, totalQuantity decimal.Decimal) error {
	bal, err := balance.Fetch(st, p.CallingUser, key.TokenClassKey)
	if err != nil {
		if fault.IsErrNotFound(err) {
			return fault.Authorizationf("%s holds no balance of %s", p.CallingUser, key.TokenClassKey)
		}
		return err
	}

	if class.IsNonFungible && !key.Instance.IsZero() {
		if !bal.ContainsInstance(key.Instance) {
			return fault.Authorizationf("%s does not hold instance %s of %s", p.CallingUser, key.Instance, key.TokenClassKey)
		}
		return nil
	}

	if bal.SpendableQuantity().Cmp(totalQuantity) < 0 {
		return fault.Resourcef("spendable balance %s of %s cannot back an allowance of %s",
			bal.SpendableQuantity(), key.TokenClassKey, totalQuantity)
	}
	return nil
}

// a fan-out target is covered when every requested recipient already
// holds a usable lock on the instance from this grantor
func lockCovered(st state.Store, p GrantParams, key record.TokenInstanceKey, nowMs int64) (bool, error) {
	for _, gq := range p.Quantities {
		existing, err := Fetch(st, ForInstance(gq.User, key, record.Lock, p.CallingUser))
		if err != nil {
			return false, err
		}
		usable := false
		for _, a := range existing {
			if a.IsUsable(nowMs) {
				usable = true
				break
			}
		}
		if !usable {
			return false, nil
		}
	}
	return true, nil
}

// at most one usable lock allowance per grantee, instance and grantor
func rejectDuplicateLocks(st state.Store, p GrantParams, key record.TokenInstanceKey, nowMs int64) error {
	for _, gq := range p.Quantities {
		existing, err := Fetch(st, ForInstance(gq.User, key, record.Lock, p.CallingUser))
		if err != nil {
			return err
		}
		for _, a := range existing {
			if a.IsUsable(nowMs) {
				return fault.Conflictf("usable lock allowance already granted to %s for %s", gq.User, key)
			}
		}
	}
	return nil
}

// FetchClass - the token class a key names
func FetchClass(st state.Store, key record.TokenClassKey) (*record.TokenClass, error) {
	class := &record.TokenClass{
		Collection:    key.Collection,
		Category:      key.Category,
		Type:          key.Type,
		AdditionalKey: key.AdditionalKey,
	}
	if err := state.GetObjectOf(st, class); err != nil {
		if fault.IsErrNotFound(err) {
			return nil, fault.ErrNotFoundTokenClass
		}
		return nil, err
	}
	return class, nil
}
