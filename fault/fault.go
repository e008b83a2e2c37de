// SPDX-License-Identifier: ISC
// Copyright (c) 2017-2020 tomtau
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised         = ProcessError("already initialised")
	ErrAttachmentNotFound         = NotFoundError("attachment not found")
	ErrCannotDecodeAccount        = RecordError("cannot decode account")
	ErrChecksumMismatch           = ProcessError("checksum mismatch")
	ErrCommandDataTooLong         = LengthError("command data is too long")
	ErrComponentGroupOutOfOrder   = InvalidError("component group ordinal out of order")
	ErrComponentIndexOutOfRange   = LengthError("component index out of range")
	ErrContractNameTooLong        = LengthError("contract name is too long")
	ErrContractNameTooShort       = LengthError("contract name is too short")
	ErrFilteredGroupDamaged       = RecordError("filtered component group is damaged")
	ErrIncludedLeafCountMismatch  = LengthError("included leaf count mismatch")
	ErrInvalidChain               = InvalidError("chain is not supported")
	ErrInvalidCursor              = InvalidError("cursor is invalid")
	ErrInvalidDigestLength        = LengthError("digest length is invalid")
	ErrInvalidGroupType           = InvalidError("group type is invalid")
	ErrInvalidKeyLength           = InvalidError("key length is invalid")
	ErrInvalidKeyType             = InvalidError("invalid key type")
	ErrInvalidLoggerChannel       = InvalidError("invalid logger channel")
	ErrInvalidOwnerOrParty        = InvalidError("invalid owner or party")
	ErrInvalidPrivacySalt         = InvalidError("privacy salt is invalid")
	ErrInvalidSignature           = InvalidError("invalid signature")
	ErrInvalidStructPointer       = InvalidError("invalid struct pointer")
	ErrInvalidTimeWindow          = InvalidError("time window is invalid")
	ErrMultipleNotaries           = InvalidError("transaction has more than one notary")
	ErrMultipleTimeWindows        = InvalidError("transaction has more than one time window")
	ErrNoCommands                 = InvalidError("transaction has no commands")
	ErrNoComponentsRevealed       = InvalidError("filtered transaction reveals no components")
	ErrNoIncludedLeaves           = InvalidError("partial tree needs at least one included leaf")
	ErrNoInputsOrOutputs          = InvalidError("transaction has no inputs and no outputs")
	ErrNotComponentPack           = RecordError("not component pack")
	ErrNotFilteredTransactionPack = RecordError("not filtered transaction pack")
	ErrNotFoundConfigFile         = NotFoundError("config file is not found")
	ErrNotInitialised             = ProcessError("not initialised")
	ErrNotPartialTreePack         = RecordError("not partial tree pack")
	ErrNotPublicKey               = InvalidError("not a public key")
	ErrNotWireTransactionPack     = RecordError("not wire transaction pack")
	ErrPartialTreeDamaged         = RecordError("partial tree structure is damaged")
	ErrPayloadTooLong             = LengthError("payload is too long")
	ErrSignerRequired             = InvalidError("command needs at least one signer")
	ErrTimeWindowWithoutNotary    = InvalidError("time window requires a notary")
	ErrTooFewComponentGroups      = LengthError("too few component groups")
	ErrTooManySigners             = LengthError("too many signers")
	ErrTransactionNotFound        = NotFoundError("transaction not found")
	ErrWrongComponentType         = InvalidError("component type does not match its group")
	ErrWrongNetworkForPublicKey   = InvalidError("wrong network for public key")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool   { _, ok := e.(RecordError); return ok }
