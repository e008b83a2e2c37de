// SPDX-License-Identifier: ISC
// Copyright (c) 2017-2020 tomtau
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord_test

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"golang.org/x/crypto/ed25519"

	"github.com/tomtau/corda/account"
	"github.com/tomtau/corda/fault"
	"github.com/tomtau/corda/merkle"
	"github.com/tomtau/corda/transactionrecord"
)

// deterministic account from a single byte repeated as the seed
func makeAccount(seedByte byte, test bool) *account.Account {
	seed := bytes.Repeat([]byte{seedByte}, ed25519.SeedSize)
	private := ed25519.NewKeyFromSeed(seed)
	public := private.Public().(ed25519.PublicKey)
	return &account.Account{
		AccountInterface: &account.ED25519Account{
			Test:      test,
			PublicKey: []byte(public),
		},
	}
}

// test the packing/unpacking of a state reference
func TestPackStateRef(t *testing.T) {

	var txId merkle.Digest
	for i := 0; i < len(txId); i += 1 {
		txId[i] = byte(i)
	}

	r := &transactionrecord.StateRef{
		TxId:  txId,
		Index: 3,
	}

	expected := []byte{
		0x01, // state ref tag
		0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07,
		0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f,
		0x10, 0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17,
		0x18, 0x19, 0x1a, 0x1b, 0x1c, 0x1d, 0x1e, 0x1f,
		0x03, // output index
	}

	packed, err := r.Pack()
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}
	if !bytes.Equal(packed, expected) {
		t.Errorf("pack: %x  expected: %x", packed, expected)
	}

	// check the record type
	if transactionrecord.StateRefTag != packed.Type() {
		t.Errorf("record type: %d  expected: %d", packed.Type(), transactionrecord.StateRefTag)
	}

	// check unpacking recovers the same record
	unpacked, n, err := packed.Unpack()
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	if len(packed) != n {
		t.Errorf("unpack consumed: %d  expected: %d", n, len(packed))
	}
	stateRef, ok := unpacked.(*transactionrecord.StateRef)
	if !ok {
		t.Fatalf("unpack returned: %+v  expected a *StateRef", unpacked)
	}
	if !reflect.DeepEqual(r, stateRef) {
		t.Errorf("unpack: %+v  expected: %+v", stateRef, r)
	}

	// trailing data must be left unconsumed
	extended := append(append(transactionrecord.Packed{}, packed...), 0xff)
	_, n, err = extended.Unpack()
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	if len(packed) != n {
		t.Errorf("unpack consumed: %d  expected: %d", n, len(packed))
	}

	// any truncation must fail
	for i := 0; i < len(packed); i += 1 {
		_, _, err := packed[:i].Unpack()
		if nil == err {
			t.Errorf("unpack of %d byte prefix did not fail", i)
		}
	}
}

// test the packing/unpacking of an output state
func TestPackOutputState(t *testing.T) {

	owner := makeAccount(0x11, true)

	r := &transactionrecord.OutputState{
		Contract: "com.example.token.Issue",
		Owner:    owner,
		Payload:  []byte(`{"amount":100}`),
	}

	packed, err := r.Pack()
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}
	if transactionrecord.OutputStateTag != packed.Type() {
		t.Errorf("record type: %d  expected: %d", packed.Type(), transactionrecord.OutputStateTag)
	}

	unpacked, n, err := packed.Unpack()
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	if len(packed) != n {
		t.Errorf("unpack consumed: %d  expected: %d", n, len(packed))
	}
	output, ok := unpacked.(*transactionrecord.OutputState)
	if !ok {
		t.Fatalf("unpack returned: %+v  expected an *OutputState", unpacked)
	}
	if !reflect.DeepEqual(r, output) {
		t.Errorf("unpack: %+v  expected: %+v", output, r)
	}
}

// test that invalid output states are rejected
func TestPackOutputStateErrors(t *testing.T) {

	owner := makeAccount(0x11, true)

	valid := transactionrecord.OutputState{
		Contract: "com.example.token.Issue",
		Owner:    owner,
		Payload:  []byte{0x01},
	}

	r := valid
	r.Contract = ""
	if _, err := r.Pack(); fault.ErrContractNameTooShort != err {
		t.Errorf("pack error: %v  expected: %v", err, fault.ErrContractNameTooShort)
	}

	r = valid
	r.Contract = strings.Repeat("x", 257)
	if _, err := r.Pack(); fault.ErrContractNameTooLong != err {
		t.Errorf("pack error: %v  expected: %v", err, fault.ErrContractNameTooLong)
	}

	r = valid
	r.Owner = nil
	if _, err := r.Pack(); fault.ErrInvalidOwnerOrParty != err {
		t.Errorf("pack error: %v  expected: %v", err, fault.ErrInvalidOwnerOrParty)
	}

	r = valid
	r.Payload = bytes.Repeat([]byte{0x41}, 8193)
	if _, err := r.Pack(); fault.ErrPayloadTooLong != err {
		t.Errorf("pack error: %v  expected: %v", err, fault.ErrPayloadTooLong)
	}
}

// test the packing/unpacking of a command
func TestPackCommand(t *testing.T) {

	alpha := makeAccount(0x21, true)
	beta := makeAccount(0x22, true)

	r := &transactionrecord.Command{
		Data:    []byte("issue"),
		Signers: []*account.Account{alpha, beta},
	}

	packed, err := r.Pack()
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}
	if transactionrecord.CommandTag != packed.Type() {
		t.Errorf("record type: %d  expected: %d", packed.Type(), transactionrecord.CommandTag)
	}

	unpacked, n, err := packed.Unpack()
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	if len(packed) != n {
		t.Errorf("unpack consumed: %d  expected: %d", n, len(packed))
	}
	command, ok := unpacked.(*transactionrecord.Command)
	if !ok {
		t.Fatalf("unpack returned: %+v  expected a *Command", unpacked)
	}
	if !reflect.DeepEqual(r, command) {
		t.Errorf("unpack: %+v  expected: %+v", command, r)
	}
}

// test that invalid commands are rejected
func TestPackCommandErrors(t *testing.T) {

	owner := makeAccount(0x21, true)

	r := transactionrecord.Command{
		Data:    []byte("issue"),
		Signers: nil,
	}
	if _, err := r.Pack(); fault.ErrSignerRequired != err {
		t.Errorf("pack error: %v  expected: %v", err, fault.ErrSignerRequired)
	}

	signers := make([]*account.Account, 65)
	for i := 0; i < len(signers); i += 1 {
		signers[i] = owner
	}
	r.Signers = signers
	if _, err := r.Pack(); fault.ErrTooManySigners != err {
		t.Errorf("pack error: %v  expected: %v", err, fault.ErrTooManySigners)
	}

	r.Signers = []*account.Account{owner, nil}
	if _, err := r.Pack(); fault.ErrInvalidOwnerOrParty != err {
		t.Errorf("pack error: %v  expected: %v", err, fault.ErrInvalidOwnerOrParty)
	}

	r.Signers = []*account.Account{owner}
	r.Data = bytes.Repeat([]byte{0x41}, 2049)
	if _, err := r.Pack(); fault.ErrCommandDataTooLong != err {
		t.Errorf("pack error: %v  expected: %v", err, fault.ErrCommandDataTooLong)
	}
}

// test the packing/unpacking of an attachment reference
func TestPackAttachment(t *testing.T) {

	var id merkle.Digest
	for i := 0; i < len(id); i += 1 {
		id[i] = byte(0xff - i)
	}

	r := &transactionrecord.Attachment{
		Id: id,
	}

	expected := append([]byte{0x05}, id[:]...)

	packed, err := r.Pack()
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}
	if !bytes.Equal(packed, expected) {
		t.Errorf("pack: %x  expected: %x", packed, expected)
	}
	if transactionrecord.AttachmentTag != packed.Type() {
		t.Errorf("record type: %d  expected: %d", packed.Type(), transactionrecord.AttachmentTag)
	}

	unpacked, n, err := packed.Unpack()
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	if len(packed) != n {
		t.Errorf("unpack consumed: %d  expected: %d", n, len(packed))
	}
	attachment, ok := unpacked.(*transactionrecord.Attachment)
	if !ok {
		t.Fatalf("unpack returned: %+v  expected an *Attachment", unpacked)
	}
	if !reflect.DeepEqual(r, attachment) {
		t.Errorf("unpack: %+v  expected: %+v", attachment, r)
	}
}

// test the packing/unpacking of a notary record
func TestPackNotary(t *testing.T) {

	party := makeAccount(0x31, true)

	r := &transactionrecord.Notary{
		Party: party,
	}

	packed, err := r.Pack()
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}
	if transactionrecord.NotaryTag != packed.Type() {
		t.Errorf("record type: %d  expected: %d", packed.Type(), transactionrecord.NotaryTag)
	}

	unpacked, n, err := packed.Unpack()
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	if len(packed) != n {
		t.Errorf("unpack consumed: %d  expected: %d", n, len(packed))
	}
	notary, ok := unpacked.(*transactionrecord.Notary)
	if !ok {
		t.Fatalf("unpack returned: %+v  expected a *Notary", unpacked)
	}
	if !reflect.DeepEqual(r, notary) {
		t.Errorf("unpack: %+v  expected: %+v", notary, r)
	}

	r.Party = nil
	if _, err := r.Pack(); fault.ErrInvalidOwnerOrParty != err {
		t.Errorf("pack error: %v  expected: %v", err, fault.ErrInvalidOwnerOrParty)
	}
}

// test that garbage buffers are rejected
func TestUnpackGarbage(t *testing.T) {

	garbage := []transactionrecord.Packed{
		{},
		{0x00},
		{0x63},
		{0x07, 0x01, 0x02},
		{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
	}

	for i, buffer := range garbage {
		_, _, err := buffer.Unpack()
		if fault.ErrNotComponentPack != err {
			t.Errorf("%d: unpack error: %v  expected: %v", i, err, fault.ErrNotComponentPack)
		}
	}
}

// test the record name lookup
func TestRecordName(t *testing.T) {

	items := []struct {
		record interface{}
		name   string
		ok     bool
	}{
		{&transactionrecord.StateRef{}, "StateRef", true},
		{transactionrecord.StateRef{}, "StateRef", true},
		{&transactionrecord.OutputState{}, "OutputState", true},
		{&transactionrecord.Command{}, "Command", true},
		{&transactionrecord.Attachment{}, "Attachment", true},
		{&transactionrecord.Notary{}, "Notary", true},
		{&transactionrecord.TimeWindow{}, "TimeWindow", true},
		{struct{}{}, "*unknown*", false},
	}

	for i, item := range items {
		name, ok := transactionrecord.RecordName(item.record)
		if item.name != name || item.ok != ok {
			t.Errorf("%d: record name: %q %v  expected: %q %v", i, name, ok, item.name, item.ok)
		}
	}
}
