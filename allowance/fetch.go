// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Gala Games Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package allowance

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/GalaChain/tokenchain/fault"
	"github.com/GalaChain/tokenchain/record"
	"github.com/GalaChain/tokenchain/state"
)

// Query - partial key over stored allowances
//
// fields bind left to right in key order; the first unset field ends
// the prefix and every later field must also be unset
type Query struct {
	GrantedTo     string                `json:"grantedTo"`
	Collection    string                `json:"collection,omitempty"`
	Category      string                `json:"category,omitempty"`
	Type          string                `json:"type,omitempty"`
	AdditionalKey string                `json:"additionalKey,omitempty"`
	Instance      *decimal.Decimal      `json:"instance,omitempty"`
	AllowanceType *record.AllowanceType `json:"allowanceType,omitempty"`
	GrantedBy     string                `json:"grantedBy,omitempty"`
}

// ForInstance - query pinned to one instance, action and grantor
func ForInstance(grantedTo string, key record.TokenInstanceKey, action record.AllowanceType, grantedBy string) Query {
	instance := key.Instance
	return Query{
		GrantedTo:     grantedTo,
		Collection:    key.Collection,
		Category:      key.Category,
		Type:          key.Type,
		AdditionalKey: key.AdditionalKey,
		Instance:      &instance,
		AllowanceType: &action,
		GrantedBy:     grantedBy,
	}
}

// assemble the longest contiguous key prefix the query pins down
func (q Query) prefixParts() ([]string, error) {
	if q.GrantedTo == "" {
		return nil, fault.Invalidf("allowance query requires grantedTo")
	}

	fields := []struct {
		name  string
		set   bool
		value string
	}{
		{"collection", q.Collection != "", q.Collection},
		{"category", q.Category != "", q.Category},
		{"type", q.Type != "", q.Type},
		{"additionalKey", q.AdditionalKey != "", q.AdditionalKey},
		{"instance", q.Instance != nil, decimalPart(q.Instance)},
		{"allowanceType", q.AllowanceType != nil, actionPart(q.AllowanceType)},
		{"grantedBy", q.GrantedBy != "", q.GrantedBy},
	}

	parts := []string{q.GrantedTo}
	done := false
	for _, f := range fields {
		if !f.set {
			done = true
			continue
		}
		if done {
			return nil, fault.Invalidf("allowance query has a gap before: %s", f.name)
		}
		parts = append(parts, f.value)
	}
	return parts, nil
}

func decimalPart(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func actionPart(a *record.AllowanceType) string {
	if a == nil {
		return ""
	}
	return a.KeyPart()
}

// Fetch - all stored allowances matching the query prefix
//
// scans committed state only and applies no usability filtering
func Fetch(st state.Store, q Query) ([]*record.TokenAllowance, error) {
	parts, err := q.prefixParts()
	if err != nil {
		return nil, err
	}

	allowances := []*record.TokenAllowance{}
	err = state.IterateByPartialKey(st, record.TokenAllowanceIndexKey, parts, func(key string, data []byte) (bool, error) {
		a := &record.TokenAllowance{}
		if err := json.Unmarshal(data, a); err != nil {
			return true, fault.Processf("corrupt allowance at key %q: %s", key, err)
		}
		allowances = append(allowances, a)
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return allowances, nil
}

// FetchPaged - one page of matching allowances and the next bookmark
func FetchPaged(st state.Store, q Query, pageSize int32, bookmark string) ([]*record.TokenAllowance, string, error) {
	parts, err := q.prefixParts()
	if err != nil {
		return nil, "", err
	}

	allowances := []*record.TokenAllowance{}
	next, err := state.IterateByPartialKeyPaged(st, record.TokenAllowanceIndexKey, parts, pageSize, bookmark, func(key string, data []byte) error {
		a := &record.TokenAllowance{}
		if err := json.Unmarshal(data, a); err != nil {
			return fault.Processf("corrupt allowance at key %q: %s", key, err)
		}
		allowances = append(allowances, a)
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return allowances, next, nil
}
