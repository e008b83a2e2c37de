// SPDX-License-Identifier: ISC
// Copyright (c) 2017-2020 tomtau
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/tomtau/corda/fault"
	"github.com/tomtau/corda/merkle"
	"github.com/tomtau/corda/transaction"
)

// StoreTransaction - store a packed wire transaction under its id
func StoreTransaction(wtx *transaction.WireTransaction) (merkle.Digest, error) {
	packed, err := wtx.Pack()
	if nil != err {
		return merkle.Digest{}, err
	}
	txId := wtx.TxId()
	Pool.Transactions.Put(txId[:], packed)
	return txId, nil
}

// FetchTransaction - load and unpack a stored transaction
func FetchTransaction(txId merkle.Digest) (*transaction.WireTransaction, error) {
	packed := Pool.Transactions.Get(txId[:])
	if nil == packed {
		return nil, fault.ErrTransactionNotFound
	}
	return unpackStored(packed)
}

func unpackStored(packed []byte) (*transaction.WireTransaction, error) {
	wtx, _, err := transaction.UnpackWireTransaction(packed)
	if nil != err {
		return nil, err
	}
	return wtx, nil
}

// StoreAttachment - store attachment content addressed by its digest
func StoreAttachment(data []byte) merkle.Digest {
	digest := merkle.NewDigest(data)
	Pool.Attachments.Put(digest[:], data)
	return digest
}

// FetchAttachment - load attachment content by digest
func FetchAttachment(digest merkle.Digest) ([]byte, error) {
	data := Pool.Attachments.Get(digest[:])
	if nil == data {
		return nil, fault.ErrAttachmentNotFound
	}
	return data, nil
}

// VerifyAttachments - check every referenced attachment is present
//
// the pool is passed as a Handle so validation can run against a mock
// or an alternate store
func VerifyAttachments(pool Handle, wtx *transaction.WireTransaction) error {
	for _, item := range wtx.Attachments() {
		if !pool.Has(item.Id[:]) {
			return fault.ErrAttachmentNotFound
		}
	}
	return nil
}
