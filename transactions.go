// SPDX-License-Identifier: ISC
// Copyright (c) 2017-2020 tomtau
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/urfave/cli"
	"golang.org/x/crypto/ed25519"

	"github.com/tomtau/corda/account"
	"github.com/tomtau/corda/chain"
	"github.com/tomtau/corda/merkle"
	"github.com/tomtau/corda/transaction"
	"github.com/tomtau/corda/transactionrecord"
)

// JSON description of a transaction to build
type transactionDescription struct {
	Inputs      []*transactionrecord.StateRef    `json:"inputs"`
	Outputs     []*transactionrecord.OutputState `json:"outputs"`
	Commands    []*transactionrecord.Command     `json:"commands"`
	Attachments []*transactionrecord.Attachment  `json:"attachments"`
	Notary      *transactionrecord.Notary        `json:"notary"`
	TimeWindow  *transactionrecord.TimeWindow    `json:"timeWindow"`
}

// JSON display of a wire transaction
type transactionDisplay struct {
	TxId        merkle.Digest                    `json:"txId"`
	Salt        transaction.PrivacySalt          `json:"privacySalt"`
	Inputs      []*transactionrecord.StateRef    `json:"inputs"`
	Outputs     []*transactionrecord.OutputState `json:"outputs"`
	Commands    []*transactionrecord.Command     `json:"commands"`
	Attachments []*transactionrecord.Attachment  `json:"attachments"`
	Notary      *transactionrecord.Notary        `json:"notary"`
	TimeWindow  *transactionrecord.TimeWindow    `json:"timeWindow"`
	Signers     []*account.Account               `json:"requiredSigners"`
	Packed      transactionrecord.Packed         `json:"packed,omitempty"`
}

func runGenerate(c *cli.Context, globals *globalFlags) {

	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		exitwithstatus.Message("error generating key pair: %s", err)
	}

	acc := &account.Account{
		AccountInterface: &account.ED25519Account{
			Test:      chain.IsTesting(globals.network),
			PublicKey: publicKey,
		},
	}

	printJson("", struct {
		Account    *account.Account `json:"account"`
		PublicKey  string           `json:"publicKey"`
		PrivateKey string           `json:"privateKey"`
	}{
		Account:    acc,
		PublicKey:  hex.EncodeToString(publicKey),
		PrivateKey: hex.EncodeToString(privateKey),
	})
}

func runBuild(c *cli.Context, globals *globalFlags) {

	fileName := c.Args().First()
	if "" == fileName {
		exitwithstatus.Message("missing transaction description file")
	}

	var data []byte
	var err error
	if "-" == fileName {
		data, err = ioutil.ReadAll(os.Stdin)
	} else {
		data, err = ioutil.ReadFile(fileName)
	}
	if nil != err {
		exitwithstatus.Message("error reading: %q  error: %s", fileName, err)
	}

	description := transactionDescription{}
	if err := json.Unmarshal(data, &description); nil != err {
		exitwithstatus.Message("error parsing: %q  error: %s", fileName, err)
	}

	salt, err := saltFromFlag(c.String("salt"))
	if nil != err {
		exitwithstatus.Message("salt error: %s", err)
	}

	groups, err := transaction.NewComponentGroups(
		description.Inputs,
		description.Outputs,
		description.Commands,
		description.Attachments,
		description.Notary,
		description.TimeWindow,
	)
	if nil != err {
		exitwithstatus.Message("component error: %s", err)
	}

	wtx, err := transaction.NewWireTransaction(groups, salt)
	if nil != err {
		exitwithstatus.Message("transaction error: %s", err)
	}

	printTransaction(wtx, true)
}

func runShow(c *cli.Context, globals *globalFlags) {

	wtx := decodeWireTransaction(c.Args().First())
	printTransaction(wtx, globals.verbose)
}

func runFilter(c *cli.Context, globals *globalFlags) {

	wtx := decodeWireTransaction(c.Args().First())

	chosen, unknownChosen, err := parseGroupNames(c.String("groups"))
	if nil != err {
		exitwithstatus.Message("groups error: %s", err)
	}

	predicate := func(component interface{}) bool {
		switch component.(type) {
		case *transactionrecord.StateRef:
			return chosen[transaction.InputsGroup]
		case *transactionrecord.OutputState:
			return chosen[transaction.OutputsGroup]
		case *transactionrecord.Command:
			return chosen[transaction.CommandsGroup]
		case *transactionrecord.Attachment:
			return chosen[transaction.AttachmentsGroup]
		case *transactionrecord.Notary:
			return chosen[transaction.NotaryGroup]
		case *transactionrecord.TimeWindow:
			return chosen[transaction.TimeWindowGroup]
		case transaction.OpaqueComponent:
			return unknownChosen
		default:
			return false
		}
	}

	ftx, err := transaction.NewFilteredTransaction(wtx, predicate)
	if nil != err {
		exitwithstatus.Message("filter error: %s", err)
	}

	packed, err := ftx.Pack()
	if nil != err {
		exitwithstatus.Message("pack error: %s", err)
	}

	revealed := make(map[string]int)
	for _, group := range ftx.Groups {
		if len(group.Components) > 0 {
			revealed[group.GroupIndex.String()] = len(group.Components)
		}
	}

	printJson("", struct {
		TxId     merkle.Digest            `json:"txId"`
		Revealed map[string]int           `json:"revealed"`
		Packed   transactionrecord.Packed `json:"packed"`
	}{
		TxId:     ftx.TxId,
		Revealed: revealed,
		Packed:   packed,
	})
}

func runVerify(c *cli.Context, globals *globalFlags) {

	arg := c.Args().First()
	if "" == arg {
		exitwithstatus.Message("missing hex filtered transaction")
	}
	packed := transactionrecord.Packed{}
	if err := packed.UnmarshalText([]byte(arg)); nil != err {
		exitwithstatus.Message("hex decode error: %s", err)
	}

	ftx, _, err := transaction.UnpackFilteredTransaction(packed)
	if nil != err {
		exitwithstatus.Message("unpack error: %s", err)
	}

	ok, err := ftx.Verify()
	if nil != err {
		exitwithstatus.Message("verify error: %s", err)
	}

	printJson("", struct {
		TxId     merkle.Digest `json:"txId"`
		Verified bool          `json:"verified"`
	}{
		TxId:     ftx.TxId,
		Verified: ok,
	})

	if !ok {
		exitwithstatus.Exit(1)
	}
}

// internal routines
// -----------------

// use the hex salt when given, otherwise create a random one
func saltFromFlag(hexSalt string) (transaction.PrivacySalt, error) {
	if "" == hexSalt {
		return transaction.NewPrivacySalt()
	}
	salt := transaction.PrivacySalt{}
	err := salt.UnmarshalText([]byte(hexSalt))
	return salt, err
}

func decodeWireTransaction(arg string) *transaction.WireTransaction {
	if "" == arg {
		exitwithstatus.Message("missing hex transaction")
	}
	packed := transactionrecord.Packed{}
	if err := packed.UnmarshalText([]byte(arg)); nil != err {
		exitwithstatus.Message("hex decode error: %s", err)
	}
	wtx, _, err := transaction.UnpackWireTransaction(packed)
	if nil != err {
		exitwithstatus.Message("unpack error: %s", err)
	}
	return wtx
}

// split a comma separated list of group names into the known group
// set plus a flag covering all unknown trailing groups
func parseGroupNames(names string) (map[transaction.GroupType]bool, bool, error) {
	chosen := make(map[transaction.GroupType]bool)
	unknownChosen := false

	if "" == strings.TrimSpace(names) {
		return nil, false, fmt.Errorf("at least one group name is required")
	}

	for _, name := range strings.Split(names, ",") {
		group := transaction.GroupLimit
		_, err := fmt.Sscan(strings.TrimSpace(name), &group)
		if nil != err {
			return nil, false, fmt.Errorf("unknown group name: %q", name)
		}
		if group.IsValid() {
			chosen[group] = true
		} else {
			unknownChosen = true
		}
	}
	return chosen, unknownChosen, nil
}

func printTransaction(wtx *transaction.WireTransaction, withPacked bool) {

	display := transactionDisplay{
		TxId:        wtx.TxId(),
		Salt:        wtx.Salt(),
		Inputs:      wtx.Inputs(),
		Outputs:     wtx.Outputs(),
		Commands:    wtx.Commands(),
		Attachments: wtx.Attachments(),
		Notary:      wtx.Notary(),
		TimeWindow:  wtx.TimeWindow(),
		Signers:     wtx.RequiredSigners(),
	}

	if withPacked {
		packed, err := wtx.Pack()
		if nil != err {
			exitwithstatus.Message("pack error: %s", err)
		}
		display.Packed = packed
	}

	printJson("", display)
}
