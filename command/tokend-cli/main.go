// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Gala Games Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// tokend-cli - inspect a local token state database
//
// operates on the LevelDB substrate written by a local tokend, for
// development and offline audit of classes, balances, allowances,
// burns and ledger totals
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/GalaChain/tokenchain/storage"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	defer exitwithstatus.Handler()

	app := cli.NewApp()
	app.Name = "tokend-cli"
	app.Usage = "inspect a local token state database"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "database, d",
			Value: "tokens.leveldb",
			Usage: "*token state database `DIRECTORY`",
		},
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "classes",
			Usage:     "list token classes",
			ArgsUsage: "\n   (* = required)",
			Action:    runClasses,
		},
		{
			Name:      "balances",
			Usage:     "list balances of an owner",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*owner `USER`",
				},
			},
			Action: runBalances,
		},
		{
			Name:      "allowances",
			Usage:     "list allowances granted to a user",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "granted-to, g",
					Value: "",
					Usage: "*grantee `USER`",
				},
			},
			Action: runAllowances,
		},
		{
			Name:      "burns",
			Usage:     "list burn receipts of a holder",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "burned-by, b",
					Value: "",
					Usage: "*holder `USER`",
				},
			},
			Action: runBurns,
		},
		{
			Name:      "supply",
			Usage:     "running-total ledger aggregates for one token class",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "collection, c",
					Value: "",
					Usage: "*token `COLLECTION`",
				},
				cli.StringFlag{
					Name:  "category, g",
					Value: "",
					Usage: "*token `CATEGORY`",
				},
				cli.StringFlag{
					Name:  "type, t",
					Value: "",
					Usage: "*token `TYPE`",
				},
				cli.StringFlag{
					Name:  "additional-key, k",
					Value: "none",
					Usage: " token `ADDITIONAL-KEY`",
				},
			},
			Action: runSupply,
		},
		{
			Name:      "dump",
			Usage:     "raw records under an index key",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "index, i",
					Value: "",
					Usage: "*record namespace `INDEX` e.g. TCN, TBL, TAL",
				},
			},
			Action: runDump,
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		exitwithstatus.Message("tokend-cli: error: %s", err)
	}
}

// open the database named by the global flag, logging beside it
func openDatabase(c *cli.Context) (*storage.Database, error) {
	path := c.GlobalString("database")
	if path == "" {
		return nil, fmt.Errorf("database is required")
	}

	level := "critical"
	if c.GlobalBool("verbose") {
		level = "info"
	}
	logging := logger.Configuration{
		Directory: filepath.Dir(path),
		File:      "tokend-cli.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: level,
		},
	}
	if err := logger.Initialise(logging); err != nil {
		return nil, fmt.Errorf("logger setup failed: %s", err)
	}

	return storage.Open(path)
}

func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
