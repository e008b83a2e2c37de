// SPDX-License-Identifier: ISC
// Copyright (c) 2017-2020 tomtau
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transactionrecord - typed components of a transaction
//
// every component carried inside a transaction component group is the
// packed form of one of the records defined here; the wire form is a
// tag Varint64 followed by the record fields in struct order
package transactionrecord

import (
	"encoding/hex"

	"github.com/tomtau/corda/account"
	"github.com/tomtau/corda/merkle"
	"github.com/tomtau/corda/util"
)

// TagType - type code of a packed record
type TagType uint64

// enumerate the possible component record types
// this is encoded a Varint64 at start of "Packed"
const (
	// null marks beginning of list - not a valid record type
	NullTag = TagType(iota)

	// valid record types
	// the tag of a record is its component group ordinal plus one
	StateRefTag    = TagType(iota)
	OutputStateTag = TagType(iota)
	CommandTag     = TagType(iota)
	AttachmentTag  = TagType(iota)
	NotaryTag      = TagType(iota)
	TimeWindowTag  = TagType(iota)

	// this item must be last
	InvalidTag = TagType(iota)
)

// currently supported field size limits
const (
	minContractNameLength = 1
	maxContractNameLength = 256
	maxPayloadLength      = 8192
	maxCommandDataLength  = 2048
	maxSignerCount        = 64
)

// Packed - byte sequence of a single packed component record
type Packed []byte

// Record - generic component record interface
type Record interface {
	Pack() (Packed, error)
}

// StateRef - reference to one output state of an earlier transaction
type StateRef struct {
	TxId  merkle.Digest `json:"txId"`         // transaction that produced the state
	Index uint64        `json:"index,string"` // position in that transaction's outputs
}

// OutputState - a new output state produced by a transaction
type OutputState struct {
	Contract string           `json:"contract"` // governing contract identifier
	Owner    *account.Account `json:"owner"`    // account that owns the state
	Payload  []byte           `json:"payload"`  // opaque contract state data
}

// Command - an instruction naming the accounts that must sign
type Command struct {
	Data    []byte             `json:"data"`    // opaque command payload
	Signers []*account.Account `json:"signers"` // accounts whose signatures are required
}

// Attachment - digest of a data file available to contract logic
type Attachment struct {
	Id merkle.Digest `json:"id"` // digest of the attachment content
}

// Notary - the notary that must sign to finalise the transaction
type Notary struct {
	Party *account.Account `json:"party"` // notary account
}

// TimeWindow - validity period for notarisation
//
// times are unix nanoseconds; a half open window stores
// math.MinInt64 or math.MaxInt64 for the missing bound
type TimeWindow struct {
	From  int64 `json:"from,string"`  // window start (inclusive)
	Until int64 `json:"until,string"` // window end (exclusive)
}

// Type - decode the record type from the beginning of a packed record
func (record Packed) Type() TagType {
	recordType, _ := util.FromVarint64(record)
	return TagType(recordType)
}

// RecordName - name of a component record as a string
func RecordName(record interface{}) (string, bool) {
	switch record.(type) {
	case *StateRef, StateRef:
		return "StateRef", true

	case *OutputState, OutputState:
		return "OutputState", true

	case *Command, Command:
		return "Command", true

	case *Attachment, Attachment:
		return "Attachment", true

	case *Notary, Notary:
		return "Notary", true

	case *TimeWindow, TimeWindow:
		return "TimeWindow", true

	default:
		return "*unknown*", false
	}
}

// MakeLink - digest of a packed record, used to reference it
func (record Packed) MakeLink() merkle.Digest {
	return merkle.NewDigest(record)
}

// MarshalText - convert a packed structure to its hex text form
func (record Packed) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(record))
	buffer := make([]byte, size)
	hex.Encode(buffer, record)
	return buffer, nil
}

// UnmarshalText - convert a hex text form to its packed structure
func (record *Packed) UnmarshalText(s []byte) error {
	size := hex.DecodedLen(len(s))
	buffer := make([]byte, size)
	_, err := hex.Decode(buffer, s)
	if nil != err {
		return err
	}
	*record = buffer
	return nil
}
