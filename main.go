// SPDX-License-Identifier: ISC
// Copyright (c) 2017-2020 tomtau
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/tomtau/corda/chain"
	"github.com/tomtau/corda/configuration"
	"github.com/tomtau/corda/fault"
	"github.com/tomtau/corda/storage"
	"github.com/tomtau/corda/version"
)

type globalFlags struct {
	verbose bool
	config  string
	network string
}

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	globals := globalFlags{}

	app := cli.NewApp()
	app.Name = "corda"
	app.Usage = "build, tear off, verify and store ledger transactions"
	app.Version = version.Version
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:        "verbose, v",
			Usage:       " verbose result",
			Destination: &globals.verbose,
		},
		cli.StringFlag{
			Name:        "config, c",
			Value:       "",
			Usage:       " configuration file (needed by store and fetch)",
			Destination: &globals.config,
		},
		cli.StringFlag{
			Name:        "network, n",
			Value:       chain.Testing,
			Usage:       " connect to which ledger network [live|testing|local]",
			Destination: &globals.network,
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "generate",
			Usage:     "generate an account key pair, not stored anywhere",
			ArgsUsage: "\n   (* = required)",
			Action: func(c *cli.Context) error {
				runGenerate(c, &globals)
				return nil
			},
		},
		{
			Name:      "build",
			Usage:     "build a wire transaction from a JSON description",
			ArgsUsage: "file-name\n   (JSON transaction description, \"-\" for stdin)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "salt, s",
					Value: "",
					Usage: " hex privacy salt [random]",
				},
			},
			Action: func(c *cli.Context) error {
				runBuild(c, &globals)
				return nil
			},
		},
		{
			Name:      "show",
			Usage:     "decode a packed wire transaction to JSON",
			ArgsUsage: "hex-transaction",
			Action: func(c *cli.Context) error {
				runShow(c, &globals)
				return nil
			},
		},
		{
			Name:      "filter",
			Usage:     "tear off a wire transaction keeping only selected groups",
			ArgsUsage: "hex-transaction",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "groups, g",
					Value: "",
					Usage: "*comma separated group names, e.g. inputs,commands",
				},
			},
			Action: func(c *cli.Context) error {
				runFilter(c, &globals)
				return nil
			},
		},
		{
			Name:      "verify",
			Usage:     "verify a packed filtered transaction against its id",
			ArgsUsage: "hex-filtered-transaction",
			Action: func(c *cli.Context) error {
				runVerify(c, &globals)
				return nil
			},
		},
		{
			Name:      "store",
			Usage:     "store a packed wire transaction in the database",
			ArgsUsage: "hex-transaction",
			Action: func(c *cli.Context) error {
				runStore(c, &globals)
				return nil
			},
		},
		{
			Name:      "fetch",
			Usage:     "fetch a stored transaction by its id",
			ArgsUsage: "hex-transaction-id",
			Action: func(c *cli.Context) error {
				runFetch(c, &globals)
				return nil
			},
		},
		{
			Name:      "list",
			Usage:     "list the ids of all stored transactions",
			Action: func(c *cli.Context) error {
				runList(c, &globals)
				return nil
			},
		},
		{
			Name:      "store-attachment",
			Usage:     "store an attachment file, content addressed by digest",
			ArgsUsage: "file-name",
			Action: func(c *cli.Context) error {
				runStoreAttachment(c, &globals)
				return nil
			},
		},
		{
			Name:      "fetch-attachment",
			Usage:     "fetch attachment content by digest",
			ArgsUsage: "hex-digest",
			Action: func(c *cli.Context) error {
				runFetchAttachment(c, &globals)
				return nil
			},
		},
	}

	if err := app.Run(os.Args); nil != err {
		exitwithstatus.Message("%s: %s", app.Name, err)
	}
}

// open the configured database for the store and fetch commands
//
// returns a cleanup function that must be deferred
func initialiseStorage(globals *globalFlags) func() {
	if "" == globals.config {
		exitwithstatus.Message("configuration file is required, use: --config FILE")
	}

	cfg, err := configuration.GetConfiguration(globals.config)
	if nil != err {
		exitwithstatus.Message("configuration error: %s", err)
	}

	if err := logger.Initialise(cfg.Logging); nil != err {
		exitwithstatus.Message("logger setup failed: %s", err)
	}

	// set up the fault panic log now that logging is available
	fault.Initialise()

	if err := storage.Initialise(cfg.Database.Name, storage.ReadWrite); nil != err {
		exitwithstatus.Message("storage setup failed: %s", err)
	}

	return func() {
		storage.Finalise()
		fault.Finalise()
		logger.Finalise()
	}
}
