// SPDX-License-Identifier: ISC
// Copyright (c) 2017-2020 tomtau
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"github.com/tomtau/corda/account"
	"github.com/tomtau/corda/fault"
	"github.com/tomtau/corda/merkle"
	"github.com/tomtau/corda/util"
)

// Unpack - turn a byte slice into a record
//
// must cast result to the correct type
//
// e.g.
//
//	command, ok := result.(*transactionrecord.Command)
//
// or:
//
//	switch r := result.(type) {
//	case *transactionrecord.StateRef:
func (record Packed) Unpack() (t Record, n int, e error) {

	defer func() {
		if r := recover(); nil != r {
			e = fault.ErrNotComponentPack
		}
	}()

	recordType, n := util.ClippedVarint64(record, 1, 8192)

unpack_switch:
	switch TagType(recordType) {

	case StateRefTag:
		var txId merkle.Digest
		err := merkle.DigestFromBytes(&txId, record[n:n+merkle.DigestLength])
		if nil != err {
			return nil, 0, err
		}
		n += merkle.DigestLength

		index, indexLength := util.ClippedVarint64(record[n:], 0, 8192)
		if 0 == indexLength {
			break unpack_switch
		}
		n += indexLength

		r := &StateRef{
			TxId:  txId,
			Index: uint64(index),
		}
		return r, n, nil

	case OutputStateTag:
		contractLength, contractOffset := util.ClippedVarint64(record[n:], minContractNameLength, maxContractNameLength)
		if 0 == contractOffset {
			break unpack_switch
		}
		n += contractOffset
		contract := string(record[n : n+contractLength])
		n += contractLength

		ownerLength, ownerOffset := util.ClippedVarint64(record[n:], 1, 8192)
		if 0 == ownerOffset {
			break unpack_switch
		}
		n += ownerOffset
		owner, err := account.AccountFromBytes(record[n : n+ownerLength])
		if nil != err {
			return nil, 0, err
		}
		n += ownerLength

		payloadLength, payloadOffset := util.ClippedVarint64(record[n:], 0, maxPayloadLength)
		if 0 == payloadOffset {
			break unpack_switch
		}
		n += payloadOffset
		payload := make([]byte, payloadLength)
		copy(payload, record[n:n+payloadLength])
		n += payloadLength

		r := &OutputState{
			Contract: contract,
			Owner:    owner,
			Payload:  payload,
		}
		return r, n, nil

	case CommandTag:
		dataLength, dataOffset := util.ClippedVarint64(record[n:], 0, maxCommandDataLength)
		if 0 == dataOffset {
			break unpack_switch
		}
		n += dataOffset
		data := make([]byte, dataLength)
		copy(data, record[n:n+dataLength])
		n += dataLength

		signerCount, signerCountLength := util.ClippedVarint64(record[n:], 1, maxSignerCount)
		if 0 == signerCountLength {
			break unpack_switch
		}
		n += signerCountLength

		signers := make([]*account.Account, signerCount)
		for i := 0; i < signerCount; i += 1 {
			signerLength, signerOffset := util.ClippedVarint64(record[n:], 1, 8192)
			if 0 == signerOffset {
				break unpack_switch
			}
			n += signerOffset
			signer, err := account.AccountFromBytes(record[n : n+signerLength])
			if nil != err {
				return nil, 0, err
			}
			n += signerLength
			signers[i] = signer
		}

		r := &Command{
			Data:    data,
			Signers: signers,
		}
		return r, n, nil

	case AttachmentTag:
		var id merkle.Digest
		err := merkle.DigestFromBytes(&id, record[n:n+merkle.DigestLength])
		if nil != err {
			return nil, 0, err
		}
		n += merkle.DigestLength

		r := &Attachment{
			Id: id,
		}
		return r, n, nil

	case NotaryTag:
		partyLength, partyOffset := util.ClippedVarint64(record[n:], 1, 8192)
		if 0 == partyOffset {
			break unpack_switch
		}
		n += partyOffset
		party, err := account.AccountFromBytes(record[n : n+partyLength])
		if nil != err {
			return nil, 0, err
		}
		n += partyLength

		r := &Notary{
			Party: party,
		}
		return r, n, nil

	case TimeWindowTag:
		fromValue, fromLength := util.FromVarint64(record[n:])
		if 0 == fromLength {
			break unpack_switch
		}
		n += fromLength

		untilValue, untilLength := util.FromVarint64(record[n:])
		if 0 == untilLength {
			break unpack_switch
		}
		n += untilLength

		r := &TimeWindow{
			From:  int64(fromValue),
			Until: int64(untilValue),
		}
		if r.From > r.Until {
			return nil, 0, fault.ErrInvalidTimeWindow
		}
		if !r.HasFrom() && !r.HasUntil() {
			return nil, 0, fault.ErrInvalidTimeWindow
		}
		return r, n, nil
	}
	return nil, 0, fault.ErrNotComponentPack
}
