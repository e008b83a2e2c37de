// SPDX-License-Identifier: ISC
// Copyright (c) 2017-2020 tomtau
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction_test

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/tomtau/corda/account"
	"github.com/tomtau/corda/fault"
	"github.com/tomtau/corda/transaction"
	"github.com/tomtau/corda/transactionrecord"
)

func onlyOutputs(component interface{}) bool {
	_, ok := component.(*transactionrecord.OutputState)
	return ok
}

func everything(component interface{}) bool {
	return true
}

func makeFiltered(t *testing.T, predicate transaction.ComponentPredicate) *transaction.FilteredTransaction {
	ftx, err := transaction.NewFilteredTransaction(makeTestTransaction(t), predicate)
	if nil != err {
		t.Fatalf("filter error: %s", err)
	}
	return ftx
}

// test a tear off that reveals only the outputs
func TestFilteredTransactionRevealOutputs(t *testing.T) {

	wtx := makeTestTransaction(t)
	ftx, err := transaction.NewFilteredTransaction(wtx, onlyOutputs)
	if nil != err {
		t.Fatalf("filter error: %s", err)
	}

	if wtx.TxId() != ftx.TxId {
		t.Errorf("id: %s  expected: %s", ftx.TxId, wtx.TxId())
	}

	ok, err := ftx.Verify()
	if nil != err {
		t.Fatalf("verify error: %s", err)
	}
	if !ok {
		t.Fatal("verify rejected a fresh tear off")
	}

	outputs, err := ftx.Outputs()
	if nil != err {
		t.Fatalf("outputs error: %s", err)
	}
	if 2 != len(outputs) {
		t.Fatalf("outputs: %d  expected: 2", len(outputs))
	}
	if "com.example.token.Move" != outputs[0].Contract {
		t.Errorf("contract: %q", outputs[0].Contract)
	}

	// everything else stays hidden
	inputs, err := ftx.Inputs()
	if nil != err {
		t.Fatalf("inputs error: %s", err)
	}
	if 0 != len(inputs) {
		t.Errorf("inputs: %d  expected: 0", len(inputs))
	}
	notary, err := ftx.Notary()
	if nil != err {
		t.Fatalf("notary error: %s", err)
	}
	if nil != notary {
		t.Error("notary leaked through the filter")
	}
	window, err := ftx.TimeWindow()
	if nil != err {
		t.Fatalf("time window error: %s", err)
	}
	if nil != window {
		t.Error("time window leaked through the filter")
	}

	indices, err := ftx.Groups[transaction.OutputsGroup].Indices()
	if nil != err {
		t.Fatalf("indices error: %s", err)
	}
	if !reflect.DeepEqual([]int{0, 1}, indices) {
		t.Errorf("indices: %v  expected: [0 1]", indices)
	}

	// hidden groups carry no proof
	if nil != ftx.Groups[transaction.NotaryGroup].Proof {
		t.Error("hidden group carries a proof")
	}
}

// test a tear off that reveals a single component of a group
func TestFilteredTransactionRevealOne(t *testing.T) {

	ftx := makeFiltered(t, func(component interface{}) bool {
		output, ok := component.(*transactionrecord.OutputState)
		return ok && bytes.Contains(output.Payload, []byte("100"))
	})

	ok, err := ftx.Verify()
	if nil != err {
		t.Fatalf("verify error: %s", err)
	}
	if !ok {
		t.Fatal("verify rejected a fresh tear off")
	}

	outputs, err := ftx.Outputs()
	if nil != err {
		t.Fatalf("outputs error: %s", err)
	}
	if 1 != len(outputs) {
		t.Fatalf("outputs: %d  expected: 1", len(outputs))
	}

	indices, err := ftx.Groups[transaction.OutputsGroup].Indices()
	if nil != err {
		t.Fatalf("indices error: %s", err)
	}
	if !reflect.DeepEqual([]int{0}, indices) {
		t.Errorf("indices: %v  expected: [0]", indices)
	}
}

// test a tear off that reveals every component
func TestFilteredTransactionRevealAll(t *testing.T) {

	ftx := makeFiltered(t, everything)

	ok, err := ftx.Verify()
	if nil != err {
		t.Fatalf("verify error: %s", err)
	}
	if !ok {
		t.Fatal("verify rejected a fresh tear off")
	}

	inputs, err := ftx.Inputs()
	if nil != err {
		t.Fatalf("inputs error: %s", err)
	}
	if 1 != len(inputs) {
		t.Errorf("inputs: %d  expected: 1", len(inputs))
	}
	commands, err := ftx.Commands()
	if nil != err {
		t.Fatalf("commands error: %s", err)
	}
	if 1 != len(commands) {
		t.Errorf("commands: %d  expected: 1", len(commands))
	}
	attachments, err := ftx.Attachments()
	if nil != err {
		t.Fatalf("attachments error: %s", err)
	}
	if 1 != len(attachments) {
		t.Errorf("attachments: %d  expected: 1", len(attachments))
	}
	notary, err := ftx.Notary()
	if nil != err {
		t.Fatalf("notary error: %s", err)
	}
	if nil == notary {
		t.Error("notary is missing")
	}
	window, err := ftx.TimeWindow()
	if nil != err {
		t.Fatalf("time window error: %s", err)
	}
	if nil == window {
		t.Error("time window is missing")
	}

	// leaf zero is the salt hash and must never be revealed
	indices, err := ftx.Proof.LeafIndices()
	if nil != err {
		t.Fatalf("indices error: %s", err)
	}
	if !reflect.DeepEqual([]int{1, 2, 3, 4, 5, 6}, indices) {
		t.Errorf("top indices: %v  expected: [1 2 3 4 5 6]", indices)
	}
}

// test that any tampering flips verification to false
func TestFilteredTransactionTamper(t *testing.T) {

	// flip one component byte
	ftx := makeFiltered(t, onlyOutputs)
	ftx.Groups[transaction.OutputsGroup].Components[0][3] ^= 0x01
	ok, err := ftx.Verify()
	if nil != err {
		t.Fatalf("verify error: %s", err)
	}
	if ok {
		t.Error("verify accepted a tampered component")
	}

	// flip one nonce byte
	ftx = makeFiltered(t, onlyOutputs)
	ftx.Groups[transaction.OutputsGroup].Nonces[0][0] ^= 0x01
	ok, err = ftx.Verify()
	if nil != err {
		t.Fatalf("verify error: %s", err)
	}
	if ok {
		t.Error("verify accepted a tampered nonce")
	}

	// flip one id byte
	ftx = makeFiltered(t, onlyOutputs)
	ftx.TxId[0] ^= 0x01
	ok, err = ftx.Verify()
	if nil != err {
		t.Fatalf("verify error: %s", err)
	}
	if ok {
		t.Error("verify accepted a tampered id")
	}
}

// test the reveal nothing case
func TestFilteredTransactionRevealNothing(t *testing.T) {

	ftx := makeFiltered(t, func(component interface{}) bool {
		return false
	})

	if nil != ftx.Proof {
		t.Error("empty tear off carries a top proof")
	}
	for _, group := range ftx.Groups {
		if nil != group.Proof || 0 != len(group.Components) {
			t.Errorf("group %s is not empty", group.GroupIndex)
		}
	}

	_, err := ftx.Verify()
	if fault.ErrNoComponentsRevealed != err {
		t.Errorf("verify error: %v  expected: %v", err, fault.ErrNoComponentsRevealed)
	}

	_, err = ftx.AllComponents(everything)
	if fault.ErrNoComponentsRevealed != err {
		t.Errorf("check error: %v  expected: %v", err, fault.ErrNoComponentsRevealed)
	}

	indices, err := ftx.Groups[transaction.OutputsGroup].Indices()
	if nil != err || nil != indices {
		t.Errorf("indices: %v error: %v  expected nil, nil", indices, err)
	}
}

// test that structural damage is an error, not a false result
func TestFilteredTransactionStructuralDamage(t *testing.T) {

	// nonce list truncated
	ftx := makeFiltered(t, onlyOutputs)
	ftx.Groups[transaction.OutputsGroup].Nonces = ftx.Groups[transaction.OutputsGroup].Nonces[:1]
	_, err := ftx.Verify()
	if fault.ErrFilteredGroupDamaged != err {
		t.Errorf("verify error: %v  expected: %v", err, fault.ErrFilteredGroupDamaged)
	}

	// group proof removed
	ftx = makeFiltered(t, onlyOutputs)
	ftx.Groups[transaction.OutputsGroup].Proof = nil
	_, err = ftx.Verify()
	if fault.ErrFilteredGroupDamaged != err {
		t.Errorf("verify error: %v  expected: %v", err, fault.ErrFilteredGroupDamaged)
	}

	// phantom proof on an empty group
	ftx = makeFiltered(t, onlyOutputs)
	ftx.Groups[transaction.InputsGroup].Proof = ftx.Groups[transaction.OutputsGroup].Proof
	_, err = ftx.Verify()
	if fault.ErrFilteredGroupDamaged != err {
		t.Errorf("verify error: %v  expected: %v", err, fault.ErrFilteredGroupDamaged)
	}

	// top proof removed
	ftx = makeFiltered(t, onlyOutputs)
	ftx.Proof = nil
	_, err = ftx.Verify()
	if fault.ErrPartialTreeDamaged != err {
		t.Errorf("verify error: %v  expected: %v", err, fault.ErrPartialTreeDamaged)
	}

	// group ordinals disturbed
	ftx = makeFiltered(t, onlyOutputs)
	ftx.Groups[transaction.InputsGroup].GroupIndex = transaction.AttachmentsGroup
	_, err = ftx.Verify()
	if fault.ErrComponentGroupOutOfOrder != err {
		t.Errorf("verify error: %v  expected: %v", err, fault.ErrComponentGroupOutOfOrder)
	}

	// revealed content shifted into another group
	ftx = makeFiltered(t, onlyOutputs)
	ftx.Groups[transaction.CommandsGroup].Components = ftx.Groups[transaction.OutputsGroup].Components
	ftx.Groups[transaction.CommandsGroup].Nonces = ftx.Groups[transaction.OutputsGroup].Nonces
	ftx.Groups[transaction.CommandsGroup].Proof = ftx.Groups[transaction.OutputsGroup].Proof
	ftx.Groups[transaction.OutputsGroup] = transaction.FilteredComponentGroup{
		GroupIndex: transaction.OutputsGroup,
	}
	_, err = ftx.Verify()
	if fault.ErrFilteredGroupDamaged != err {
		t.Errorf("verify error: %v  expected: %v", err, fault.ErrFilteredGroupDamaged)
	}
}

// test the predicate sweep over visible components
func TestFilteredTransactionAllComponents(t *testing.T) {

	ftx := makeFiltered(t, everything)

	// every visible output uses the expected contract
	ok, err := ftx.AllComponents(func(component interface{}) bool {
		if output, isOutput := component.(*transactionrecord.OutputState); isOutput {
			return "com.example.token.Move" == output.Contract
		}
		return true
	})
	if nil != err {
		t.Fatalf("check error: %s", err)
	}
	if !ok {
		t.Error("contract sweep rejected a conforming transaction")
	}

	// a rejecting predicate yields false without error
	ok, err = ftx.AllComponents(func(component interface{}) bool {
		_, isCommand := component.(*transactionrecord.Command)
		return !isCommand
	})
	if nil != err {
		t.Fatalf("check error: %s", err)
	}
	if ok {
		t.Error("sweep accepted despite a rejected component")
	}

	// the sweep only sees what was revealed
	ftx = makeFiltered(t, onlyOutputs)
	ok, err = ftx.AllComponents(func(component interface{}) bool {
		_, isOutput := component.(*transactionrecord.OutputState)
		return isOutput
	})
	if nil != err {
		t.Fatalf("check error: %s", err)
	}
	if !ok {
		t.Error("sweep saw more than the revealed outputs")
	}
}

// test that unknown trailing groups survive the tear off
func TestFilteredTransactionUnknownGroup(t *testing.T) {

	issuer := makeAccount(0x01, true)
	outputs := []*transactionrecord.OutputState{
		{Contract: "com.example.token.Issue", Owner: issuer, Payload: []byte{0x01}},
	}
	commands := []*transactionrecord.Command{
		{Data: []byte("issue"), Signers: []*account.Account{issuer}},
	}
	groups, err := transaction.NewComponentGroups(nil, outputs, commands, nil, nil, nil)
	if nil != err {
		t.Fatalf("groups error: %s", err)
	}
	groups = append(groups, transaction.ComponentGroup{
		GroupIndex: transaction.GroupType(6),
		Components: []transactionrecord.Packed{{0xde, 0xad, 0xbe, 0xef}},
	})
	wtx, err := transaction.NewWireTransaction(groups, makeSalt(t, 0x77))
	if nil != err {
		t.Fatalf("transaction error: %s", err)
	}

	ftx, err := transaction.NewFilteredTransaction(wtx, func(component interface{}) bool {
		_, ok := component.(transaction.OpaqueComponent)
		return ok
	})
	if nil != err {
		t.Fatalf("filter error: %s", err)
	}

	if 7 != len(ftx.Groups) {
		t.Fatalf("groups: %d  expected: 7", len(ftx.Groups))
	}
	if 1 != len(ftx.Groups[6].Components) {
		t.Fatalf("unknown group components: %d  expected: 1", len(ftx.Groups[6].Components))
	}
	if !bytes.Equal([]byte{0xde, 0xad, 0xbe, 0xef}, ftx.Groups[6].Components[0]) {
		t.Error("unknown group component damaged")
	}

	ok, err := ftx.Verify()
	if nil != err {
		t.Fatalf("verify error: %s", err)
	}
	if !ok {
		t.Fatal("verify rejected a revealed unknown group")
	}

	// the typed views ignore the unknown group
	visible, err := ftx.Outputs()
	if nil != err {
		t.Fatalf("outputs error: %s", err)
	}
	if 0 != len(visible) {
		t.Errorf("outputs: %d  expected: 0", len(visible))
	}
}

// test the packed form round trip and its failure modes
func TestFilteredTransactionPack(t *testing.T) {

	ftx := makeFiltered(t, onlyOutputs)

	packed, err := ftx.Pack()
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}

	unpacked, n, err := transaction.UnpackFilteredTransaction(packed)
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	if len(packed) != n {
		t.Errorf("unpack consumed: %d  expected: %d", n, len(packed))
	}
	if !reflect.DeepEqual(ftx, unpacked) {
		t.Fatalf("round trip changed the tear off: %+v  expected: %+v", unpacked, ftx)
	}

	ok, err := unpacked.Verify()
	if nil != err {
		t.Fatalf("verify error: %s", err)
	}
	if !ok {
		t.Fatal("verify rejected a round tripped tear off")
	}

	// wrong version
	damaged := append(transactionrecord.Packed{}, packed...)
	damaged[0] = 0x07
	_, _, err = transaction.UnpackFilteredTransaction(damaged)
	if fault.ErrNotFilteredTransactionPack != err {
		t.Errorf("unpack error: %v  expected: %v", err, fault.ErrNotFilteredTransactionPack)
	}

	// trailing garbage
	damaged = append(append(transactionrecord.Packed{}, packed...), 0x00)
	_, _, err = transaction.UnpackFilteredTransaction(damaged)
	if fault.ErrNotFilteredTransactionPack != err {
		t.Errorf("unpack error: %v  expected: %v", err, fault.ErrNotFilteredTransactionPack)
	}

	// any truncation must fail
	for i := 0; i < len(packed); i += 1 {
		_, _, err := transaction.UnpackFilteredTransaction(packed[:i])
		if nil == err {
			t.Errorf("unpack of %d byte prefix did not fail", i)
		}
	}
}
