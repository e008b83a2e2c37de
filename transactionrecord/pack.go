// SPDX-License-Identifier: ISC
// Copyright (c) 2017-2020 tomtau
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"unicode/utf8"

	"github.com/tomtau/corda/account"
	"github.com/tomtau/corda/fault"
	"github.com/tomtau/corda/util"
)

// Pack - pack a StateRef
//
// layout: Varint64(tag) followed by the fields in struct order
func (stateRef *StateRef) Pack() (Packed, error) {
	message := util.ToVarint64(uint64(StateRefTag))
	message = append(message, stateRef.TxId[:]...)
	message = appendUint64(message, stateRef.Index)
	return message, nil
}

// Pack - pack an OutputState
func (output *OutputState) Pack() (Packed, error) {
	contractLength := utf8.RuneCountInString(output.Contract)
	if contractLength < minContractNameLength {
		return nil, fault.ErrContractNameTooShort
	}
	if contractLength > maxContractNameLength {
		return nil, fault.ErrContractNameTooLong
	}
	if nil == output.Owner || nil == output.Owner.AccountInterface {
		return nil, fault.ErrInvalidOwnerOrParty
	}
	if len(output.Payload) > maxPayloadLength {
		return nil, fault.ErrPayloadTooLong
	}

	message := util.ToVarint64(uint64(OutputStateTag))
	message = appendString(message, output.Contract)
	message = appendAccount(message, output.Owner)
	message = appendBytes(message, output.Payload)
	return message, nil
}

// Pack - pack a Command
func (command *Command) Pack() (Packed, error) {
	if len(command.Data) > maxCommandDataLength {
		return nil, fault.ErrCommandDataTooLong
	}
	signerCount := len(command.Signers)
	if signerCount < 1 {
		return nil, fault.ErrSignerRequired
	}
	if signerCount > maxSignerCount {
		return nil, fault.ErrTooManySigners
	}
	for _, signer := range command.Signers {
		if nil == signer || nil == signer.AccountInterface {
			return nil, fault.ErrInvalidOwnerOrParty
		}
	}

	message := util.ToVarint64(uint64(CommandTag))
	message = appendBytes(message, command.Data)
	message = appendUint64(message, uint64(signerCount))
	for _, signer := range command.Signers {
		message = appendAccount(message, signer)
	}
	return message, nil
}

// Pack - pack an Attachment
func (attachment *Attachment) Pack() (Packed, error) {
	message := util.ToVarint64(uint64(AttachmentTag))
	message = append(message, attachment.Id[:]...)
	return message, nil
}

// Pack - pack a Notary
func (notary *Notary) Pack() (Packed, error) {
	if nil == notary.Party || nil == notary.Party.AccountInterface {
		return nil, fault.ErrInvalidOwnerOrParty
	}

	message := util.ToVarint64(uint64(NotaryTag))
	message = appendAccount(message, notary.Party)
	return message, nil
}

// Pack - pack a TimeWindow
//
// bounds are stored as the unsigned bit pattern of the int64 values
func (timeWindow *TimeWindow) Pack() (Packed, error) {
	if timeWindow.From > timeWindow.Until {
		return nil, fault.ErrInvalidTimeWindow
	}
	if !timeWindow.HasFrom() && !timeWindow.HasUntil() {
		return nil, fault.ErrInvalidTimeWindow
	}

	message := util.ToVarint64(uint64(TimeWindowTag))
	message = appendUint64(message, uint64(timeWindow.From))
	message = appendUint64(message, uint64(timeWindow.Until))
	return message, nil
}

// internal pack routines
// ----------------------

func appendString(buffer []byte, s string) []byte {
	stringLength := util.ToVarint64(uint64(len(s)))
	buffer = append(buffer, stringLength...)
	return append(buffer, s...)
}

func appendAccount(buffer []byte, acc *account.Account) []byte {
	data := acc.Bytes()
	dataLength := util.ToVarint64(uint64(len(data)))
	buffer = append(buffer, dataLength...)
	buffer = append(buffer, data...)
	return buffer
}

func appendBytes(buffer []byte, data []byte) []byte {
	dataLength := util.ToVarint64(uint64(len(data)))
	buffer = append(buffer, dataLength...)
	buffer = append(buffer, data...)
	return buffer
}

func appendUint64(buffer []byte, value uint64) []byte {
	valueBytes := util.ToVarint64(value)
	buffer = append(buffer, valueBytes...)
	return buffer
}
