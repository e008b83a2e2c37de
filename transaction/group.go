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

// ComponentGroup - one ordered list of opaque packed components
//
// component order inside a group is significant and preserved
type ComponentGroup struct {
	GroupIndex GroupType                  `json:"groupIndex"`
	Components []transactionrecord.Packed `json:"components"`
}

// leafHashes - nonce shielded leaf digests of the group components
func (group ComponentGroup) leafHashes(salt PrivacySalt) []merkle.Digest {
	if 0 == len(group.Components) {
		return nil
	}
	leaves := make([]merkle.Digest, len(group.Components))
	for i, component := range group.Components {
		nonce := salt.Nonce(uint64(group.GroupIndex), uint64(i))
		leaves[i] = LeafHash(nonce, component)
	}
	return leaves
}

// componentView - typed record of a known group component or the
// opaque bytes of an unknown group component
func componentView(group GroupType, component transactionrecord.Packed) (interface{}, error) {
	if !group.IsValid() {
		return OpaqueComponent(component), nil
	}
	if group.recordTag() != component.Type() {
		return nil, fault.ErrWrongComponentType
	}
	record, n, err := component.Unpack()
	if nil != err {
		return nil, err
	}
	if len(component) != n {
		return nil, fault.ErrNotComponentPack
	}
	return record, nil
}

// NewComponentGroups - assemble the six known groups from typed records
//
// records are packed in place; a nil notary or time window leaves the
// corresponding group empty
func NewComponentGroups(
	inputs []*transactionrecord.StateRef,
	outputs []*transactionrecord.OutputState,
	commands []*transactionrecord.Command,
	attachments []*transactionrecord.Attachment,
	notary *transactionrecord.Notary,
	timeWindow *transactionrecord.TimeWindow,
) ([]ComponentGroup, error) {

	groups := make([]ComponentGroup, GroupLimit)
	for i := range groups {
		groups[i].GroupIndex = GroupType(i)
	}

	for _, input := range inputs {
		packed, err := input.Pack()
		if nil != err {
			return nil, err
		}
		groups[InputsGroup].Components = append(groups[InputsGroup].Components, packed)
	}
	for _, output := range outputs {
		packed, err := output.Pack()
		if nil != err {
			return nil, err
		}
		groups[OutputsGroup].Components = append(groups[OutputsGroup].Components, packed)
	}
	for _, command := range commands {
		packed, err := command.Pack()
		if nil != err {
			return nil, err
		}
		groups[CommandsGroup].Components = append(groups[CommandsGroup].Components, packed)
	}
	for _, attachment := range attachments {
		packed, err := attachment.Pack()
		if nil != err {
			return nil, err
		}
		groups[AttachmentsGroup].Components = append(groups[AttachmentsGroup].Components, packed)
	}
	if nil != notary {
		packed, err := notary.Pack()
		if nil != err {
			return nil, err
		}
		groups[NotaryGroup].Components = append(groups[NotaryGroup].Components, packed)
	}
	if nil != timeWindow {
		packed, err := timeWindow.Pack()
		if nil != err {
			return nil, err
		}
		groups[TimeWindowGroup].Components = append(groups[TimeWindowGroup].Components, packed)
	}

	return groups, nil
}
