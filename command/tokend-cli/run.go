// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Gala Games Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli"

	"github.com/GalaChain/tokenchain/allowance"
	"github.com/GalaChain/tokenchain/balance"
	"github.com/GalaChain/tokenchain/minting"
	"github.com/GalaChain/tokenchain/record"
	"github.com/GalaChain/tokenchain/state"
	"github.com/GalaChain/tokenchain/supply"
)

func runClasses(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()
	tx := db.Begin()
	defer tx.Abort()

	classes := []*record.TokenClass{}
	err = state.IterateByPartialKey(tx, record.TokenClassIndexKey, nil, func(key string, data []byte) (bool, error) {
		class := &record.TokenClass{}
		if err := json.Unmarshal(data, class); err != nil {
			return true, err
		}
		classes = append(classes, class)
		return false, nil
	})
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, classes)
}

func runBalances(c *cli.Context) error {
	owner := c.String("owner")
	if owner == "" {
		return fmt.Errorf("owner is required")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()
	tx := db.Begin()
	defer tx.Abort()

	balances, err := balance.FetchAll(tx, owner, record.TokenInstanceQueryKey{})
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, balances)
}

func runAllowances(c *cli.Context) error {
	grantedTo := c.String("granted-to")
	if grantedTo == "" {
		return fmt.Errorf("granted-to is required")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()
	tx := db.Begin()
	defer tx.Abort()

	allowances, err := allowance.Fetch(tx, allowance.Query{GrantedTo: grantedTo})
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, allowances)
}

func runBurns(c *cli.Context) error {
	burnedBy := c.String("burned-by")
	if burnedBy == "" {
		return fmt.Errorf("burned-by is required")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()
	tx := db.Begin()
	defer tx.Abort()

	burns, err := minting.FetchBurns(tx, minting.BurnQuery{BurnedBy: burnedBy})
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, burns)
}

func runSupply(c *cli.Context) error {
	key := record.TokenClassKey{
		Collection:    c.String("collection"),
		Category:      c.String("category"),
		Type:          c.String("type"),
		AdditionalKey: c.String("additional-key"),
	}
	if err := key.Validate(); err != nil {
		return err
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()
	tx := db.Begin()
	defer tx.Abort()

	minted, err := supply.FetchMintSupply(tx, key, 0)
	if err != nil {
		return err
	}
	granted, err := supply.FetchMintAllowanceSupply(tx, key, 0)
	if err != nil {
		return err
	}
	burned, err := supply.FetchKnownBurnCount(tx, key, 0)
	if err != nil {
		return err
	}

	return printJSON(c.App.Writer, map[string]string{
		"token":              key.String(),
		"mintSupply":         minted.String(),
		"mintAllowanceTotal": granted.String(),
		"burnCount":          burned.String(),
	})
}

func runDump(c *cli.Context) error {
	indexKey := c.String("index")
	if indexKey == "" {
		return fmt.Errorf("index is required")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()
	tx := db.Begin()
	defer tx.Abort()

	type rawRecord struct {
		Key   string          `json:"key"`
		Value json.RawMessage `json:"value"`
	}
	records := []rawRecord{}
	err = state.IterateByPartialKey(tx, indexKey, nil, func(key string, data []byte) (bool, error) {
		records = append(records, rawRecord{Key: printableKey(key), Value: json.RawMessage(data)})
		return false, nil
	})
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, records)
}

// composite keys contain NUL separators
func printableKey(key string) string {
	out := make([]rune, 0, len(key))
	for _, r := range key {
		if r == 0 {
			out = append(out, '/')
		} else {
			out = append(out, r)
		}
	}
	return string(out)
}
