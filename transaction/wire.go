// SPDX-License-Identifier: ISC
// Copyright (c) 2017-2020 tomtau
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"bytes"
	"sync"

	"github.com/tomtau/corda/account"
	"github.com/tomtau/corda/fault"
	"github.com/tomtau/corda/merkle"
	"github.com/tomtau/corda/transactionrecord"
)

// WireTransaction - complete transaction with every component visible
//
// immutable after construction; the id and the group roots are
// computed on first use and never change
type WireTransaction struct {
	groups []ComponentGroup
	salt   PrivacySalt

	// typed views parsed during construction
	inputs      []*transactionrecord.StateRef
	outputs     []*transactionrecord.OutputState
	commands    []*transactionrecord.Command
	attachments []*transactionrecord.Attachment
	notary      *transactionrecord.Notary
	timeWindow  *transactionrecord.TimeWindow

	// memoised identity
	once       sync.Once
	txId       merkle.Digest
	groupRoots []merkle.Digest
}

// NewWireTransaction - validate and assemble a transaction
//
// the group list must hold every known ordinal in order with no gaps;
// extra trailing groups are carried opaquely
func NewWireTransaction(groups []ComponentGroup, salt PrivacySalt) (*WireTransaction, error) {

	if salt.IsZero() {
		return nil, fault.ErrInvalidPrivacySalt
	}

	if len(groups) < int(GroupLimit) {
		return nil, fault.ErrTooFewComponentGroups
	}
	for i, group := range groups {
		if GroupType(i) != group.GroupIndex {
			return nil, fault.ErrComponentGroupOutOfOrder
		}
	}

	wtx := &WireTransaction{
		groups: make([]ComponentGroup, len(groups)),
		salt:   salt,
	}
	for i, group := range groups {
		components := make([]transactionrecord.Packed, len(group.Components))
		copy(components, group.Components)
		wtx.groups[i] = ComponentGroup{
			GroupIndex: group.GroupIndex,
			Components: components,
		}
	}

	// every component of a known group must decode as that group's
	// record type
	for g := InputsGroup; g < GroupLimit; g += 1 {
		for i, component := range wtx.groups[g].Components {
			record, err := componentView(g, component)
			if nil != err {
				return nil, &ComponentError{
					Group: g,
					Index: i,
					Err:   err,
				}
			}
			switch r := record.(type) {
			case *transactionrecord.StateRef:
				wtx.inputs = append(wtx.inputs, r)
			case *transactionrecord.OutputState:
				wtx.outputs = append(wtx.outputs, r)
			case *transactionrecord.Command:
				wtx.commands = append(wtx.commands, r)
			case *transactionrecord.Attachment:
				wtx.attachments = append(wtx.attachments, r)
			case *transactionrecord.Notary:
				wtx.notary = r
			case *transactionrecord.TimeWindow:
				wtx.timeWindow = r
			}
		}
	}

	if len(wtx.groups[NotaryGroup].Components) > 1 {
		return nil, fault.ErrMultipleNotaries
	}
	if len(wtx.groups[TimeWindowGroup].Components) > 1 {
		return nil, fault.ErrMultipleTimeWindows
	}
	if 0 == len(wtx.inputs) && 0 == len(wtx.outputs) {
		return nil, fault.ErrNoInputsOrOutputs
	}
	if 0 == len(wtx.commands) {
		return nil, fault.ErrNoCommands
	}
	if nil != wtx.timeWindow && nil == wtx.notary {
		return nil, fault.ErrTimeWindowWithoutNotary
	}

	// every account inside one transaction must be on the same network
	accounts := []*account.Account{}
	for _, output := range wtx.outputs {
		accounts = append(accounts, output.Owner)
	}
	for _, command := range wtx.commands {
		accounts = append(accounts, command.Signers...)
	}
	if nil != wtx.notary {
		accounts = append(accounts, wtx.notary.Party)
	}
	for _, item := range accounts {
		if item.IsTesting() != accounts[0].IsTesting() {
			return nil, fault.ErrWrongNetworkForPublicKey
		}
	}

	return wtx, nil
}

// Groups - copy of the component group list
//
// component byte slices are shared with the transaction
func (wtx *WireTransaction) Groups() []ComponentGroup {
	groups := make([]ComponentGroup, len(wtx.groups))
	copy(groups, wtx.groups)
	return groups
}

// Salt - the privacy salt of the transaction
func (wtx *WireTransaction) Salt() PrivacySalt {
	return wtx.salt
}

// Inputs - states consumed by the transaction
func (wtx *WireTransaction) Inputs() []*transactionrecord.StateRef {
	return wtx.inputs
}

// Outputs - states produced by the transaction
func (wtx *WireTransaction) Outputs() []*transactionrecord.OutputState {
	return wtx.outputs
}

// Commands - instructions carried by the transaction
func (wtx *WireTransaction) Commands() []*transactionrecord.Command {
	return wtx.commands
}

// Attachments - attachment references carried by the transaction
func (wtx *WireTransaction) Attachments() []*transactionrecord.Attachment {
	return wtx.attachments
}

// Notary - the notary record, nil when absent
func (wtx *WireTransaction) Notary() *transactionrecord.Notary {
	return wtx.notary
}

// TimeWindow - the time window record, nil when absent
func (wtx *WireTransaction) TimeWindow() *transactionrecord.TimeWindow {
	return wtx.timeWindow
}

// TxId - the identifying digest of the transaction
//
// computed once, safe for concurrent use
func (wtx *WireTransaction) TxId() merkle.Digest {
	wtx.once.Do(wtx.computeId)
	return wtx.txId
}

// GroupRoot - merkle root of one component group
//
// empty and absent groups give the zero digest
func (wtx *WireTransaction) GroupRoot(group GroupType) merkle.Digest {
	wtx.once.Do(wtx.computeId)
	if group >= GroupType(len(wtx.groupRoots)) {
		return merkle.Digest{}
	}
	return wtx.groupRoots[group]
}

// ComponentNonce - derived nonce of one component position
func (wtx *WireTransaction) ComponentNonce(group GroupType, index int) merkle.Digest {
	return wtx.salt.Nonce(uint64(group), uint64(index))
}

// RequiredSigners - accounts whose signatures finalise the transaction
//
// the union of all command signers in first seen order, with the
// notary appended when the transaction consumes states or carries a
// time window
func (wtx *WireTransaction) RequiredSigners() []*account.Account {
	seen := make(map[string]struct{})
	signers := []*account.Account{}

	add := func(item *account.Account) {
		key := string(item.Bytes())
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		signers = append(signers, item)
	}

	for _, command := range wtx.commands {
		for _, signer := range command.Signers {
			add(signer)
		}
	}
	if nil != wtx.notary && (len(wtx.inputs) > 0 || nil != wtx.timeWindow) {
		add(wtx.notary.Party)
	}
	return signers
}

// Equal - true when salt and all components match
func (wtx *WireTransaction) Equal(other *WireTransaction) bool {
	if wtx == other {
		return true
	}
	if nil == wtx || nil == other {
		return false
	}
	if wtx.salt != other.salt || len(wtx.groups) != len(other.groups) {
		return false
	}
	for i, group := range wtx.groups {
		otherGroup := other.groups[i]
		if group.GroupIndex != otherGroup.GroupIndex {
			return false
		}
		if len(group.Components) != len(otherGroup.Components) {
			return false
		}
		for j, component := range group.Components {
			if !bytes.Equal(component, otherGroup.Components[j]) {
				return false
			}
		}
	}
	return true
}

func (wtx *WireTransaction) computeId() {
	groupRoots := make([]merkle.Digest, len(wtx.groups))
	for i, group := range wtx.groups {
		groupRoots[i] = merkle.Root(group.leafHashes(wtx.salt))
	}
	wtx.groupRoots = groupRoots
	wtx.txId = merkle.Root(topLeaves(wtx.salt, groupRoots))
}

// topLeaves - salt hash followed by the group roots
//
// the trailing run of zero roots is excluded so that appending an
// empty trailing group never changes the id while appending a non
// empty one always does; interior empty groups keep their zero leaf
func topLeaves(salt PrivacySalt, groupRoots []merkle.Digest) []merkle.Digest {
	end := len(groupRoots)
	for end > 0 && groupRoots[end-1].IsEmpty() {
		end -= 1
	}
	leaves := make([]merkle.Digest, 0, end+1)
	leaves = append(leaves, salt.Hash())
	leaves = append(leaves, groupRoots[:end]...)
	return leaves
}
