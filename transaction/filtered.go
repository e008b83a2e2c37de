// SPDX-License-Identifier: ISC
// Copyright (c) 2017-2020 tomtau
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"github.com/tomtau/corda/fault"
	"github.com/tomtau/corda/merkle"
	"github.com/tomtau/corda/transactionrecord"
)

// OpaqueComponent - raw component bytes from an unknown group
type OpaqueComponent []byte

// ComponentPredicate - decides which components a filtered
// transaction reveals
//
// known group components appear as their transactionrecord pointer
// types, unknown group components as OpaqueComponent
type ComponentPredicate func(component interface{}) bool

// FilteredComponentGroup - revealed slice of one component group
//
// Components[i] pairs with Nonces[i]; the proof locates the revealed
// leaves inside the group tree
type FilteredComponentGroup struct {
	GroupIndex GroupType                  `json:"groupIndex"`
	Components []transactionrecord.Packed `json:"components"`
	Nonces     []merkle.Digest            `json:"nonces"`
	Proof      *merkle.PartialTree        `json:"proof"`
}

// FilteredTransaction - partial tear off of a wire transaction
//
// carries only the revealed components, their nonces and the merkle
// proofs needed to tie them to the transaction id; the privacy salt
// never appears
type FilteredTransaction struct {
	TxId   merkle.Digest            `json:"txId"`
	Groups []FilteredComponentGroup `json:"groups"`
	Proof  *merkle.PartialTree      `json:"proof"`
}

// Indices - original component positions of the revealed components
func (group *FilteredComponentGroup) Indices() ([]int, error) {
	if nil == group.Proof {
		return nil, nil
	}
	return group.Proof.LeafIndices()
}

// NewFilteredTransaction - tear off the components the predicate accepts
//
// a predicate rejecting everything still yields a structure, but one
// that can never verify
func NewFilteredTransaction(wtx *WireTransaction, predicate ComponentPredicate) (*FilteredTransaction, error) {

	ftx := &FilteredTransaction{
		TxId:   wtx.TxId(),
		Groups: make([]FilteredComponentGroup, len(wtx.groups)),
	}

	topLeafList := topLeaves(wtx.salt, wtx.groupRoots)
	topIncluded := make([]bool, len(topLeafList))
	revealed := false

	for g, group := range wtx.groups {
		filtered := FilteredComponentGroup{
			GroupIndex: group.GroupIndex,
		}

		count := len(group.Components)
		if 0 == count {
			ftx.Groups[g] = filtered
			continue
		}

		included := make([]bool, count)
		any := false
		for i, component := range group.Components {
			view, err := componentView(group.GroupIndex, component)
			if nil != err {
				return nil, &ComponentError{
					Group: group.GroupIndex,
					Index: i,
					Err:   err,
				}
			}
			if predicate(view) {
				included[i] = true
				any = true
				filtered.Components = append(filtered.Components, component)
				filtered.Nonces = append(filtered.Nonces, wtx.salt.Nonce(uint64(group.GroupIndex), uint64(i)))
			}
		}

		if any {
			proof, err := merkle.NewPartialTree(group.leafHashes(wtx.salt), included)
			if nil != err {
				return nil, err
			}
			filtered.Proof = proof
			topIncluded[1+g] = true
			revealed = true
		}
		ftx.Groups[g] = filtered
	}

	if revealed {
		proof, err := merkle.NewPartialTree(topLeafList, topIncluded)
		if nil != err {
			return nil, err
		}
		ftx.Proof = proof
	}

	return ftx, nil
}

// Verify - check the revealed components against the transaction id
//
// returns an error for structural damage and for the reveal nothing
// case; returns false with no error when everything is well formed
// but the recomputed root does not match the id
func (ftx *FilteredTransaction) Verify() (bool, error) {

	revealed := 0
	for _, group := range ftx.Groups {
		revealed += len(group.Components)
	}
	if 0 == revealed {
		return false, fault.ErrNoComponentsRevealed
	}

	if nil == ftx.Proof {
		return false, fault.ErrPartialTreeDamaged
	}

	// group entries must stay in dense ordinal order
	for i, group := range ftx.Groups {
		if GroupType(i) != group.GroupIndex {
			return false, fault.ErrComponentGroupOutOfOrder
		}
	}

	// recompute the root of every revealed group; leaf 1+g of the top
	// tree carries the root of group g
	expectedIndices := []int{}
	includedRoots := []merkle.Digest{}

	for _, group := range ftx.Groups {
		count := len(group.Components)
		if count != len(group.Nonces) {
			return false, fault.ErrFilteredGroupDamaged
		}
		if 0 == count {
			if nil != group.Proof {
				return false, fault.ErrFilteredGroupDamaged
			}
			continue
		}
		if nil == group.Proof {
			return false, fault.ErrFilteredGroupDamaged
		}

		leaves := make([]merkle.Digest, count)
		for i := 0; i < count; i += 1 {
			leaves[i] = LeafHash(group.Nonces[i], group.Components[i])
		}
		root, err := group.Proof.Root(leaves)
		if nil != err {
			return false, err
		}

		expectedIndices = append(expectedIndices, 1+int(group.GroupIndex))
		includedRoots = append(includedRoots, root)
	}

	// the top proof must reveal exactly the leaves of the revealed
	// groups, never the salt hash at leaf zero
	indices, err := ftx.Proof.LeafIndices()
	if nil != err {
		return false, err
	}
	if len(expectedIndices) != len(indices) {
		return false, fault.ErrFilteredGroupDamaged
	}
	for i, index := range indices {
		if expectedIndices[i] != index {
			return false, fault.ErrFilteredGroupDamaged
		}
	}

	root, err := ftx.Proof.Root(includedRoots)
	if nil != err {
		return false, err
	}
	if ftx.TxId != root {
		return false, nil
	}
	return true, nil
}

// AllComponents - run a predicate over every visible component
//
// true only when at least one component is visible and every visible
// component satisfies the predicate
func (ftx *FilteredTransaction) AllComponents(predicate ComponentPredicate) (bool, error) {
	checked := 0
	for _, group := range ftx.Groups {
		for i, component := range group.Components {
			view, err := componentView(group.GroupIndex, component)
			if nil != err {
				return false, &ComponentError{
					Group: group.GroupIndex,
					Index: i,
					Err:   err,
				}
			}
			checked += 1
			if !predicate(view) {
				return false, nil
			}
		}
	}
	if 0 == checked {
		return false, fault.ErrNoComponentsRevealed
	}
	return true, nil
}

// visible components of one group, nil when none
func (ftx *FilteredTransaction) groupComponents(group GroupType) []transactionrecord.Packed {
	for _, item := range ftx.Groups {
		if group == item.GroupIndex {
			return item.Components
		}
	}
	return nil
}

// Inputs - visible consumed state references
func (ftx *FilteredTransaction) Inputs() ([]*transactionrecord.StateRef, error) {
	inputs := []*transactionrecord.StateRef{}
	for _, component := range ftx.groupComponents(InputsGroup) {
		record, err := componentView(InputsGroup, component)
		if nil != err {
			return nil, err
		}
		inputs = append(inputs, record.(*transactionrecord.StateRef))
	}
	return inputs, nil
}

// Outputs - visible produced states
func (ftx *FilteredTransaction) Outputs() ([]*transactionrecord.OutputState, error) {
	outputs := []*transactionrecord.OutputState{}
	for _, component := range ftx.groupComponents(OutputsGroup) {
		record, err := componentView(OutputsGroup, component)
		if nil != err {
			return nil, err
		}
		outputs = append(outputs, record.(*transactionrecord.OutputState))
	}
	return outputs, nil
}

// Commands - visible commands
func (ftx *FilteredTransaction) Commands() ([]*transactionrecord.Command, error) {
	commands := []*transactionrecord.Command{}
	for _, component := range ftx.groupComponents(CommandsGroup) {
		record, err := componentView(CommandsGroup, component)
		if nil != err {
			return nil, err
		}
		commands = append(commands, record.(*transactionrecord.Command))
	}
	return commands, nil
}

// Attachments - visible attachment references
func (ftx *FilteredTransaction) Attachments() ([]*transactionrecord.Attachment, error) {
	attachments := []*transactionrecord.Attachment{}
	for _, component := range ftx.groupComponents(AttachmentsGroup) {
		record, err := componentView(AttachmentsGroup, component)
		if nil != err {
			return nil, err
		}
		attachments = append(attachments, record.(*transactionrecord.Attachment))
	}
	return attachments, nil
}

// Notary - the visible notary record, nil when hidden or absent
func (ftx *FilteredTransaction) Notary() (*transactionrecord.Notary, error) {
	components := ftx.groupComponents(NotaryGroup)
	if 0 == len(components) {
		return nil, nil
	}
	record, err := componentView(NotaryGroup, components[0])
	if nil != err {
		return nil, err
	}
	return record.(*transactionrecord.Notary), nil
}

// TimeWindow - the visible time window record, nil when hidden or absent
func (ftx *FilteredTransaction) TimeWindow() (*transactionrecord.TimeWindow, error) {
	components := ftx.groupComponents(TimeWindowGroup)
	if 0 == len(components) {
		return nil, nil
	}
	record, err := componentView(TimeWindowGroup, components[0])
	if nil != err {
		return nil, err
	}
	return record.(*transactionrecord.TimeWindow), nil
}
