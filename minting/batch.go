// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Gala Games Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package minting

import (
	"github.com/shopspring/decimal"

	"github.com/GalaChain/tokenchain/allowance"
	"github.com/GalaChain/tokenchain/fault"
	"github.com/GalaChain/tokenchain/record"
	"github.com/GalaChain/tokenchain/state"
	"github.com/GalaChain/tokenchain/supply"
)

// BatchMintParams - many mints settled in one transaction
type BatchMintParams struct {
	CallingUser string          `json:"-"`
	Operations  []MintOperation `json:"operations"`
}

// MintOperation - one recipient and quantity within a batch
type MintOperation struct {
	Token    record.TokenClassKey `json:"tokenClass"`
	Owner    string               `json:"owner"`
	Quantity decimal.Decimal      `json:"quantity"`
}

// BatchMintResult - per-operation outcomes in input order
//
// a nil result marks an operation that failed; the matching Errors
// entry carries the reason, empty on success. failures never surface
// as a call error because that would unwind the sibling successes
// when the transaction settles
type BatchMintResult struct {
	Results []*MintResult `json:"results"`
	Errors  []string      `json:"errors,omitempty"`
}

// per-class running state shared by every operation in the batch
//
// allowances are fetched once per acting user and the mutated
// in-memory records are reused, so sibling operations drain the same
// allowance without re-reading its committed copy
type classBatch struct {
	class      *record.TokenClass
	baseline   decimal.Decimal
	knownBurns decimal.Decimal
	minted     decimal.Decimal
	sequence   int
	allowances map[string][]*record.TokenAllowance
}

// BatchMint - settle many mints in one transaction
//
// the supply ledger is read once per token class with the default
// lookback, and every entry written for that class shares the
// batch-start baseline; capacity checks run against the in-memory
// running total, so an over-capacity operation fails without blocking
// the rest, and successes persist even when siblings fail
func BatchMint(st state.Store, p BatchMintParams) (*BatchMintResult, error) {
	if len(p.Operations) == 0 {
		return nil, fault.Invalidf("batch mint names no operations")
	}

	batches := make(map[string]*classBatch)
	results := make([]*MintResult, len(p.Operations))
	errors := make([]string, len(p.Operations))
	failed := 0

	for i, op := range p.Operations {
		result, err := batchMintOne(st, p.CallingUser, op, batches)
		if err != nil {
			errors[i] = op.Token.String() + ": " + err.Error()
			failed++
			continue
		}
		results[i] = result
	}

	// legacy bookkeeping, one write per touched class
	for _, cb := range batches {
		if cb.minted.Sign() > 0 {
			cb.class.TotalSupply = cb.class.TotalSupply.Add(cb.minted)
			if err := state.PutObject(st, cb.class); err != nil {
				return nil, err
			}
		}
	}

	if failed > 0 {
		return &BatchMintResult{Results: results, Errors: errors}, nil
	}
	return &BatchMintResult{Results: results}, nil
}

func batchMintOne(st state.Store, callingUser string, op MintOperation, batches map[string]*classBatch) (*MintResult, error) {
	if op.Quantity.Sign() <= 0 {
		return nil, fault.ErrQuantityMustBePositive
	}
	owner := op.Owner
	if owner == "" {
		owner = callingUser
	}

	cb, err := batchFor(st, op.Token, batches)
	if err != nil {
		return nil, err
	}
	if err := cb.class.ValidatePrecision(op.Quantity); err != nil {
		return nil, err
	}

	// check against the batch running total, not the stored one
	if err := supply.EnsureQuantityCanBeMinted(cb.class, op.Quantity, cb.baseline.Add(cb.minted), cb.knownBurns); err != nil {
		return nil, err
	}

	candidates, err := cb.allowancesFor(st, callingUser, op.Token)
	if err != nil {
		return nil, err
	}
	instanceKey := record.TokenInstanceKey{
		TokenClassKey: op.Token,
		Instance:      record.FungibleInstance(),
	}
	total, unlimited, err := allowance.Check(st, candidates, instanceKey, record.Mint, callingUser)
	if err != nil {
		return nil, err
	}
	if !unlimited && total.Cmp(op.Quantity) < 0 {
		return nil, fault.Resourcef("mint allowances of %s hold %s, %s required", callingUser, total, op.Quantity)
	}
	if err := allowance.UseAllowances(st, candidates, op.Quantity); err != nil {
		return nil, err
	}

	if _, err := supply.WriteMintRequest(st, op.Token, owner, op.Quantity, cb.baseline, cb.sequence); err != nil {
		return nil, err
	}
	cb.sequence++

	result, err := creditRecipient(st, cb.class, owner, op.Quantity, cb.baseline.Add(cb.minted))
	if err != nil {
		return nil, err
	}
	cb.minted = cb.minted.Add(op.Quantity)
	return result, nil
}

func batchFor(st state.Store, key record.TokenClassKey, batches map[string]*classBatch) (*classBatch, error) {
	if cb, ok := batches[key.String()]; ok {
		return cb, nil
	}

	class, err := allowance.FetchClass(st, key)
	if err != nil {
		return nil, err
	}
	baseline, err := supply.FetchMintSupply(st, key, -1)
	if err != nil {
		return nil, err
	}
	knownBurns, err := supply.FetchKnownBurnCount(st, key, -1)
	if err != nil {
		return nil, err
	}

	cb := &classBatch{
		class:      class,
		baseline:   baseline,
		knownBurns: knownBurns,
		minted:     decimal.Zero,
		allowances: make(map[string][]*record.TokenAllowance),
	}
	batches[key.String()] = cb
	return cb, nil
}

func (cb *classBatch) allowancesFor(st state.Store, callingUser string, key record.TokenClassKey) ([]*record.TokenAllowance, error) {
	if as, ok := cb.allowances[callingUser]; ok {
		return as, nil
	}

	mint := record.Mint
	instance := record.FungibleInstance()
	as, err := allowance.Fetch(st, allowance.Query{
		GrantedTo:     callingUser,
		Collection:    key.Collection,
		Category:      key.Category,
		Type:          key.Type,
		AdditionalKey: key.AdditionalKey,
		Instance:      &instance,
		AllowanceType: &mint,
	})
	if err != nil {
		return nil, err
	}
	cb.allowances[callingUser] = as
	return as, nil
}
