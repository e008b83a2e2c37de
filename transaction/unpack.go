// SPDX-License-Identifier: ISC
// Copyright (c) 2017-2020 tomtau
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"github.com/tomtau/corda/fault"
	"github.com/tomtau/corda/merkle"
	"github.com/tomtau/corda/transactionrecord"
	"github.com/tomtau/corda/util"
)

// UnpackWireTransaction - decode and re-validate a wire transaction
//
// the whole buffer must be consumed; the result passes the same
// validation as a freshly constructed transaction
func UnpackWireTransaction(record transactionrecord.Packed) (wtx *WireTransaction, n int, e error) {

	defer func() {
		if r := recover(); nil != r {
			wtx = nil
			n = 0
			e = fault.ErrNotWireTransactionPack
		}
	}()

	version, n := util.FromVarint64(record)
	if 0 == n || wireTransactionVersion != version {
		return nil, 0, fault.ErrNotWireTransactionPack
	}

	salt, err := PrivacySaltFromBytes(record[n : n+SaltLength])
	if nil != err {
		return nil, 0, err
	}
	n += SaltLength

	groupCount, groupCountLength := util.ClippedVarint64(record[n:], int(GroupLimit), maximumGroupCount)
	if 0 == groupCountLength {
		return nil, 0, fault.ErrNotWireTransactionPack
	}
	n += groupCountLength

	groups := make([]ComponentGroup, groupCount)
	for g := 0; g < groupCount; g += 1 {
		ordinal, ordinalLength := util.ClippedVarint64(record[n:], 0, maximumGroupCount)
		if 0 == ordinalLength {
			return nil, 0, fault.ErrNotWireTransactionPack
		}
		n += ordinalLength
		groups[g].GroupIndex = GroupType(ordinal)

		components, componentsLength, err := unpackComponents(record[n:])
		if nil != err {
			return nil, 0, err
		}
		n += componentsLength
		groups[g].Components = components
	}

	if len(record) != n {
		return nil, 0, fault.ErrNotWireTransactionPack
	}

	wtx, err = NewWireTransaction(groups, salt)
	if nil != err {
		return nil, 0, err
	}
	return wtx, n, nil
}

// UnpackFilteredTransaction - decode a filtered transaction
//
// the whole buffer must be consumed; contents stay untrusted until
// Verify succeeds
func UnpackFilteredTransaction(record transactionrecord.Packed) (ftx *FilteredTransaction, n int, e error) {

	defer func() {
		if r := recover(); nil != r {
			ftx = nil
			n = 0
			e = fault.ErrNotFilteredTransactionPack
		}
	}()

	version, n := util.FromVarint64(record)
	if 0 == n || filteredTransactionVersion != version {
		return nil, 0, fault.ErrNotFilteredTransactionPack
	}

	result := &FilteredTransaction{}

	err := merkle.DigestFromBytes(&result.TxId, record[n:n+merkle.DigestLength])
	if nil != err {
		return nil, 0, err
	}
	n += merkle.DigestLength

	groupCount, groupCountLength := util.ClippedVarint64(record[n:], int(GroupLimit), maximumGroupCount)
	if 0 == groupCountLength {
		return nil, 0, fault.ErrNotFilteredTransactionPack
	}
	n += groupCountLength

	result.Groups = make([]FilteredComponentGroup, groupCount)
	for g := 0; g < groupCount; g += 1 {
		ordinal, ordinalLength := util.ClippedVarint64(record[n:], 0, maximumGroupCount)
		if 0 == ordinalLength {
			return nil, 0, fault.ErrNotFilteredTransactionPack
		}
		n += ordinalLength
		result.Groups[g].GroupIndex = GroupType(ordinal)

		components, componentsLength, err := unpackComponents(record[n:])
		if nil != err {
			return nil, 0, err
		}
		n += componentsLength
		result.Groups[g].Components = components

		nonceCount, nonceCountLength := util.ClippedVarint64(record[n:], 0, maximumComponentCount)
		if 0 == nonceCountLength {
			return nil, 0, fault.ErrNotFilteredTransactionPack
		}
		n += nonceCountLength
		if nonceCount > 0 {
			result.Groups[g].Nonces = make([]merkle.Digest, nonceCount)
			for i := 0; i < nonceCount; i += 1 {
				err := merkle.DigestFromBytes(&result.Groups[g].Nonces[i], record[n:n+merkle.DigestLength])
				if nil != err {
					return nil, 0, err
				}
				n += merkle.DigestLength
			}
		}

		proof, proofLength, err := unpackProof(record[n:])
		if nil != err {
			return nil, 0, err
		}
		n += proofLength
		result.Groups[g].Proof = proof
	}

	proof, proofLength, err := unpackProof(record[n:])
	if nil != err {
		return nil, 0, err
	}
	n += proofLength
	result.Proof = proof

	if len(record) != n {
		return nil, 0, fault.ErrNotFilteredTransactionPack
	}
	return result, n, nil
}

// internal unpack routines
// ------------------------

// length prefixed component list: count then count blobs
func unpackComponents(buffer []byte) ([]transactionrecord.Packed, int, error) {
	componentCount, n := util.ClippedVarint64(buffer, 0, maximumComponentCount)
	if 0 == n {
		return nil, 0, fault.ErrNotComponentPack
	}
	if 0 == componentCount {
		return nil, n, nil
	}

	components := make([]transactionrecord.Packed, componentCount)
	for i := 0; i < componentCount; i += 1 {
		componentLength, componentOffset := util.ClippedVarint64(buffer[n:], 0, maximumComponentLength)
		if 0 == componentOffset {
			return nil, 0, fault.ErrNotComponentPack
		}
		n += componentOffset
		component := make([]byte, componentLength)
		copy(component, buffer[n:n+componentLength])
		n += componentLength
		components[i] = transactionrecord.Packed(component)
	}
	return components, n, nil
}

// optional proof: zero flag for absent, one flag then a packed tree
func unpackProof(buffer []byte) (*merkle.PartialTree, int, error) {
	flag, n := util.ClippedVarint64(buffer, 0, 1)
	if 0 == n {
		return nil, 0, fault.ErrNotPartialTreePack
	}
	if 0 == flag {
		return nil, n, nil
	}
	proof, proofLength, err := merkle.UnpackPartialTree(buffer[n:])
	if nil != err {
		return nil, 0, err
	}
	return proof, n + proofLength, nil
}
