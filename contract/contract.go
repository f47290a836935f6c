// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Gala Games Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package contract - the chaincode surface of the token engine
//
// every method takes its parameters as one JSON document, resolves
// the calling user from the client identity, wraps the stub in a
// fabricstate store and delegates to the engine packages
package contract

import (
	"encoding/json"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/shopspring/decimal"

	"github.com/GalaChain/tokenchain/allowance"
	"github.com/GalaChain/tokenchain/balance"
	"github.com/GalaChain/tokenchain/fabricstate"
	"github.com/GalaChain/tokenchain/fault"
	"github.com/GalaChain/tokenchain/minting"
	"github.com/GalaChain/tokenchain/record"
	"github.com/GalaChain/tokenchain/state"
	"github.com/GalaChain/tokenchain/supply"
)

// TokenContract - allowances, minting, burning and supply queries
type TokenContract struct {
	contractapi.Contract
}

func setup(ctx contractapi.TransactionContextInterface) (state.Store, string, error) {
	st, err := fabricstate.New(ctx.GetStub())
	if err != nil {
		return nil, "", err
	}
	callingUser, err := ctx.GetClientIdentity().GetID()
	if err != nil {
		return nil, "", fault.Authorizationf("cannot resolve client identity: %s", err)
	}
	return st, callingUser, nil
}

func decodeParams(params string, v interface{}) error {
	if err := json.Unmarshal([]byte(params), v); err != nil {
		return fault.Invalidf("cannot parse parameters: %s", err)
	}
	return nil
}

// CreateTokenClass - register a new token class with the calling user
// as its first authority
func (c *TokenContract) CreateTokenClass(ctx contractapi.TransactionContextInterface, params string) (*record.TokenClass, error) {
	st, callingUser, err := setup(ctx)
	if err != nil {
		return nil, err
	}

	class := &record.TokenClass{}
	if err := decodeParams(params, class); err != nil {
		return nil, err
	}
	if len(class.Authorities) == 0 {
		class.Authorities = []string{callingUser}
	}
	if err := class.Validate(); err != nil {
		return nil, err
	}

	existing := &record.TokenClass{
		Collection:    class.Collection,
		Category:      class.Category,
		Type:          class.Type,
		AdditionalKey: class.AdditionalKey,
	}
	err = state.GetObjectOf(st, existing)
	switch {
	case err == nil:
		return nil, fault.Existsf("token class %s already exists", class.ClassKey())
	case fault.IsErrNotFound(err):
		// expected
	default:
		return nil, err
	}

	if err := state.PutObject(st, class); err != nil {
		return nil, err
	}
	return class, nil
}

// FetchTokenClass - one token class by key
func (c *TokenContract) FetchTokenClass(ctx contractapi.TransactionContextInterface, params string) (*record.TokenClass, error) {
	st, _, err := setup(ctx)
	if err != nil {
		return nil, err
	}

	key := record.TokenClassKey{}
	if err := decodeParams(params, &key); err != nil {
		return nil, err
	}
	return allowance.FetchClass(st, key)
}

// GrantAllowance - grant allowances against the calling user's tokens
func (c *TokenContract) GrantAllowance(ctx contractapi.TransactionContextInterface, params string) ([]*record.TokenAllowance, error) {
	st, callingUser, err := setup(ctx)
	if err != nil {
		return nil, err
	}

	p := allowance.GrantParams{}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	p.CallingUser = callingUser
	return allowance.Grant(st, p)
}

// FetchAllowances - allowances matching a partial key query
func (c *TokenContract) FetchAllowances(ctx contractapi.TransactionContextInterface, params string) ([]*record.TokenAllowance, error) {
	st, _, err := setup(ctx)
	if err != nil {
		return nil, err
	}

	q := allowance.Query{}
	if err := decodeParams(params, &q); err != nil {
		return nil, err
	}
	return allowance.Fetch(st, q)
}

// FetchAllowancesPage - one page of allowances and the next bookmark
type FetchAllowancesPage struct {
	Allowances []*record.TokenAllowance `json:"allowances"`
	Bookmark   string                   `json:"bookmark,omitempty"`
}

type fetchAllowancesPagedParams struct {
	allowance.Query
	PageSize int32  `json:"pageSize"`
	Bookmark string `json:"bookmark,omitempty"`
}

// FetchAllowancesPaged - paginated variant of FetchAllowances
func (c *TokenContract) FetchAllowancesPaged(ctx contractapi.TransactionContextInterface, params string) (*FetchAllowancesPage, error) {
	st, _, err := setup(ctx)
	if err != nil {
		return nil, err
	}

	p := fetchAllowancesPagedParams{}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	allowances, bookmark, err := allowance.FetchPaged(st, p.Query, p.PageSize, p.Bookmark)
	if err != nil {
		return nil, err
	}
	return &FetchAllowancesPage{Allowances: allowances, Bookmark: bookmark}, nil
}

type refreshAllowancesParams struct {
	Refreshes []allowance.RefreshSpec `json:"refreshes"`
}

// RefreshAllowances - reset uses and expiry on allowances the calling
// user granted
func (c *TokenContract) RefreshAllowances(ctx contractapi.TransactionContextInterface, params string) ([]*record.TokenAllowance, error) {
	st, callingUser, err := setup(ctx)
	if err != nil {
		return nil, err
	}

	p := refreshAllowancesParams{}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return allowance.Refresh(st, callingUser, p.Refreshes)
}

// DeleteAllowances - remove allowances the calling user is a party to
func (c *TokenContract) DeleteAllowances(ctx contractapi.TransactionContextInterface, params string) (int, error) {
	st, callingUser, err := setup(ctx)
	if err != nil {
		return 0, err
	}

	q := allowance.Query{}
	if err := decodeParams(params, &q); err != nil {
		return 0, err
	}
	return allowance.Delete(st, callingUser, q)
}

// MintToken - mint to an owner, consuming the calling user's mint
// allowances
func (c *TokenContract) MintToken(ctx contractapi.TransactionContextInterface, params string) (*minting.MintResult, error) {
	st, callingUser, err := setup(ctx)
	if err != nil {
		return nil, err
	}

	p := minting.MintParams{}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	p.CallingUser = callingUser
	return minting.Mint(st, p)
}

// BatchMintToken - settle many mints in one transaction
func (c *TokenContract) BatchMintToken(ctx contractapi.TransactionContextInterface, params string) (*minting.BatchMintResult, error) {
	st, callingUser, err := setup(ctx)
	if err != nil {
		return nil, err
	}

	p := minting.BatchMintParams{}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	p.CallingUser = callingUser
	return minting.BatchMint(st, p)
}

// BurnTokens - destroy tokens held by the calling user or, with a
// burn allowance, by another owner
func (c *TokenContract) BurnTokens(ctx contractapi.TransactionContextInterface, params string) ([]*record.TokenBurn, error) {
	st, callingUser, err := setup(ctx)
	if err != nil {
		return nil, err
	}

	p := minting.BurnParams{}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	p.CallingUser = callingUser
	return minting.Burn(st, p)
}

// FetchBurns - burn receipts matching a partial key query
func (c *TokenContract) FetchBurns(ctx contractapi.TransactionContextInterface, params string) ([]*record.TokenBurn, error) {
	st, _, err := setup(ctx)
	if err != nil {
		return nil, err
	}

	q := minting.BurnQuery{}
	if err := decodeParams(params, &q); err != nil {
		return nil, err
	}
	return minting.FetchBurns(st, q)
}

type fetchBalancesParams struct {
	Owner string                       `json:"owner,omitempty"`
	Token record.TokenInstanceQueryKey `json:"token"`
}

// FetchBalances - balances of an owner matching a class key prefix
//
// omitting the owner queries the calling user's own balances
func (c *TokenContract) FetchBalances(ctx contractapi.TransactionContextInterface, params string) ([]*record.TokenBalance, error) {
	st, callingUser, err := setup(ctx)
	if err != nil {
		return nil, err
	}

	p := fetchBalancesParams{}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	owner := p.Owner
	if owner == "" {
		owner = callingUser
	}
	return balance.FetchAll(st, owner, p.Token)
}

// OffsetMs left out selects the default lookback; only an explicit
// zero opts into the conflict-prone real-time scan
type supplyParams struct {
	Token    record.TokenClassKey `json:"token"`
	OffsetMs *int64               `json:"offsetMs"`
}

// SupplyResult - one running-total ledger aggregate
type SupplyResult struct {
	Token record.TokenClassKey `json:"token"`
	Total string               `json:"total"`
}

// FetchMintSupply - total minted quantity of a token class
func (c *TokenContract) FetchMintSupply(ctx contractapi.TransactionContextInterface, params string) (*SupplyResult, error) {
	return c.fetchSupply(ctx, params, supply.FetchMintSupply)
}

// FetchMintAllowanceSupply - total granted mint allowance quantity
func (c *TokenContract) FetchMintAllowanceSupply(ctx contractapi.TransactionContextInterface, params string) (*SupplyResult, error) {
	return c.fetchSupply(ctx, params, supply.FetchMintAllowanceSupply)
}

// FetchBurnCount - total burned quantity of a token class
func (c *TokenContract) FetchBurnCount(ctx contractapi.TransactionContextInterface, params string) (*SupplyResult, error) {
	return c.fetchSupply(ctx, params, supply.FetchKnownBurnCount)
}

func (c *TokenContract) fetchSupply(ctx contractapi.TransactionContextInterface, params string, fetch func(state.Store, record.TokenClassKey, int64) (decimal.Decimal, error)) (*SupplyResult, error) {
	st, _, err := setup(ctx)
	if err != nil {
		return nil, err
	}

	p := supplyParams{}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	offsetMs := int64(-1)
	if p.OffsetMs != nil {
		offsetMs = *p.OffsetMs
	}
	total, err := fetch(st, p.Token, offsetMs)
	if err != nil {
		return nil, err
	}
	return &SupplyResult{Token: p.Token, Total: total.String()}, nil
}
