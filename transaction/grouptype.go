// SPDX-License-Identifier: ISC
// Copyright (c) 2017-2020 tomtau
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tomtau/corda/fault"
	"github.com/tomtau/corda/transactionrecord"
)

// GroupType - component group ordinal enumeration
type GroupType uint64

// possible component group values
const (
	InputsGroup      GroupType = iota // this must be the first value
	OutputsGroup     GroupType = iota
	CommandsGroup    GroupType = iota
	AttachmentsGroup GroupType = iota
	NotaryGroup      GroupType = iota
	TimeWindowGroup  GroupType = iota
	GroupLimit       GroupType = iota // one greater than the last known ordinal
)

// internal conversion
func toString(group GroupType) string {
	switch group {
	case InputsGroup:
		return "inputs"
	case OutputsGroup:
		return "outputs"
	case CommandsGroup:
		return "commands"
	case AttachmentsGroup:
		return "attachments"
	case NotaryGroup:
		return "notary"
	case TimeWindowGroup:
		return "time-window"
	default:
		return "group-" + strconv.FormatUint(uint64(group), 10)
	}
}

// convert a string to a group ordinal
func fromString(in string) (GroupType, error) {
	switch s := strings.ToLower(in); s {
	case "inputs":
		return InputsGroup, nil
	case "outputs":
		return OutputsGroup, nil
	case "commands":
		return CommandsGroup, nil
	case "attachments":
		return AttachmentsGroup, nil
	case "notary":
		return NotaryGroup, nil
	case "time-window":
		return TimeWindowGroup, nil
	default:
		if strings.HasPrefix(s, "group-") {
			value, err := strconv.ParseUint(s[6:], 10, 64)
			if nil != err {
				return GroupLimit, fault.ErrInvalidGroupType
			}
			return GroupType(value), nil
		}
		return GroupLimit, fault.ErrInvalidGroupType
	}
}

// convert a group ordinal to its display name
//
// unknown ordinals stay printable since extended transactions carry
// trailing groups this code has no name for
func (group GroupType) String() string {
	return toString(group)
}

// convert group ordinal and name, for debugging
func (group GroupType) GoString() string {
	return fmt.Sprintf("<GroupType#%d:%q>", uint64(group), group.String())
}

// convert a group name string
func (group *GroupType) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, func(c rune) bool {
		if c >= '0' && c <= '9' {
			return true
		}
		if c >= 'A' && c <= 'Z' {
			return true
		}
		if c >= 'a' && c <= 'z' {
			return true
		}
		return '-' == c
	})
	if nil != err {
		return err
	}
	parsed, err := fromString(string(token))
	if nil != err {
		return err
	}

	*group = parsed
	return nil
}

// IsValid - true for the known group ordinals
func (group GroupType) IsValid() bool {
	return group < GroupLimit
}

// the record tag a component of a known group must carry
func (group GroupType) recordTag() transactionrecord.TagType {
	return transactionrecord.TagType(uint64(group) + 1)
}
