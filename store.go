// SPDX-License-Identifier: ISC
// Copyright (c) 2017-2020 tomtau
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"io/ioutil"
	"os"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/urfave/cli"

	"github.com/tomtau/corda/merkle"
	"github.com/tomtau/corda/storage"
)

func runStore(c *cli.Context, globals *globalFlags) {

	wtx := decodeWireTransaction(c.Args().First())

	cleanup := initialiseStorage(globals)
	defer cleanup()

	// every referenced attachment must already be stored
	if err := storage.VerifyAttachments(storage.Pool.Attachments, wtx); nil != err {
		exitwithstatus.Message("attachment error: %s", err)
	}

	txId, err := storage.StoreTransaction(wtx)
	if nil != err {
		exitwithstatus.Message("store error: %s", err)
	}

	printJson("", struct {
		TxId merkle.Digest `json:"txId"`
	}{
		TxId: txId,
	})
}

func runFetch(c *cli.Context, globals *globalFlags) {

	txId := decodeDigest(c.Args().First())

	cleanup := initialiseStorage(globals)
	defer cleanup()

	wtx, err := storage.FetchTransaction(txId)
	if nil != err {
		exitwithstatus.Message("fetch error: %s", err)
	}

	printTransaction(wtx, globals.verbose)
}

func runList(c *cli.Context, globals *globalFlags) {

	cleanup := initialiseStorage(globals)
	defer cleanup()

	ids := []string{}
	err := storage.Pool.Transactions.NewFetchCursor().Map(
		func(key []byte, value []byte) error {
			ids = append(ids, hex.EncodeToString(key))
			return nil
		})
	if nil != err {
		exitwithstatus.Message("list error: %s", err)
	}

	printJson("", struct {
		Transactions []string `json:"transactions"`
	}{
		Transactions: ids,
	})
}

func runStoreAttachment(c *cli.Context, globals *globalFlags) {

	fileName := c.Args().First()
	if "" == fileName {
		exitwithstatus.Message("missing attachment file")
	}
	data, err := ioutil.ReadFile(fileName)
	if nil != err {
		exitwithstatus.Message("error reading: %q  error: %s", fileName, err)
	}

	cleanup := initialiseStorage(globals)
	defer cleanup()

	digest := storage.StoreAttachment(data)

	printJson("", struct {
		Id   merkle.Digest `json:"id"`
		Size int           `json:"size"`
	}{
		Id:   digest,
		Size: len(data),
	})
}

func runFetchAttachment(c *cli.Context, globals *globalFlags) {

	digest := decodeDigest(c.Args().First())

	cleanup := initialiseStorage(globals)
	defer cleanup()

	data, err := storage.FetchAttachment(digest)
	if nil != err {
		exitwithstatus.Message("fetch error: %s", err)
	}

	os.Stdout.Write(data)
}

func decodeDigest(arg string) merkle.Digest {
	if "" == arg {
		exitwithstatus.Message("missing hex digest")
	}
	digest := merkle.Digest{}
	if err := digest.UnmarshalText([]byte(arg)); nil != err {
		exitwithstatus.Message("hex decode error: %s", err)
	}
	return digest
}
