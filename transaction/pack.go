// SPDX-License-Identifier: ISC
// Copyright (c) 2017-2020 tomtau
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"github.com/tomtau/corda/merkle"
	"github.com/tomtau/corda/transactionrecord"
	"github.com/tomtau/corda/util"
)

// wire form versions and limits
const (
	wireTransactionVersion     = 1
	filteredTransactionVersion = 2
	maximumGroupCount          = 256
	maximumComponentCount      = 8192
	maximumComponentLength     = 16384
)

// Pack - serialise a wire transaction
//
// layout: version, raw salt, group count then per group the ordinal,
// the component count and the length prefixed components
func (wtx *WireTransaction) Pack() (transactionrecord.Packed, error) {
	message := util.ToVarint64(wireTransactionVersion)
	message = append(message, wtx.salt[:]...)
	message = appendUint64(message, uint64(len(wtx.groups)))
	for _, group := range wtx.groups {
		message = appendUint64(message, uint64(group.GroupIndex))
		message = appendUint64(message, uint64(len(group.Components)))
		for _, component := range group.Components {
			message = appendBytes(message, component)
		}
	}
	return transactionrecord.Packed(message), nil
}

// Pack - serialise a filtered transaction
//
// layout: version, transaction id, group count then per group the
// ordinal, components, nonces and optional proof; the top level proof
// comes last
func (ftx *FilteredTransaction) Pack() (transactionrecord.Packed, error) {
	message := util.ToVarint64(filteredTransactionVersion)
	message = append(message, ftx.TxId[:]...)
	message = appendUint64(message, uint64(len(ftx.Groups)))
	for _, group := range ftx.Groups {
		message = appendUint64(message, uint64(group.GroupIndex))

		message = appendUint64(message, uint64(len(group.Components)))
		for _, component := range group.Components {
			message = appendBytes(message, component)
		}

		message = appendUint64(message, uint64(len(group.Nonces)))
		for _, nonce := range group.Nonces {
			message = append(message, nonce[:]...)
		}

		var err error
		message, err = appendProof(message, group.Proof)
		if nil != err {
			return nil, err
		}
	}

	message, err := appendProof(message, ftx.Proof)
	if nil != err {
		return nil, err
	}
	return transactionrecord.Packed(message), nil
}

// internal pack routines
// ----------------------

func appendUint64(buffer []byte, value uint64) []byte {
	return append(buffer, util.ToVarint64(value)...)
}

func appendBytes(buffer []byte, data []byte) []byte {
	buffer = append(buffer, util.ToVarint64(uint64(len(data)))...)
	buffer = append(buffer, data...)
	return buffer
}

// a missing proof packs as a zero flag, a present one as a one flag
// followed by the packed tree
func appendProof(buffer []byte, proof *merkle.PartialTree) ([]byte, error) {
	if nil == proof {
		return appendUint64(buffer, 0), nil
	}
	packed, err := proof.Pack()
	if nil != err {
		return nil, err
	}
	buffer = appendUint64(buffer, 1)
	return append(buffer, packed...), nil
}
