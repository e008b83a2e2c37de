// SPDX-License-Identifier: ISC
// Copyright (c) 2017-2020 tomtau
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"

	"github.com/tomtau/corda/fault"
	"github.com/tomtau/corda/merkle"
)

// SaltLength - number of bytes in a privacy salt
const SaltLength = 32

// PrivacySalt - random per transaction salt feeding nonce derivation
//
// the all zero value is invalid everywhere
type PrivacySalt [SaltLength]byte

// NewPrivacySalt - create a fresh random salt
func NewPrivacySalt() (PrivacySalt, error) {
	var salt PrivacySalt
	for {
		_, err := rand.Read(salt[:])
		if nil != err {
			return salt, err
		}
		if !salt.IsZero() {
			return salt, nil
		}
	}
}

// PrivacySaltFromBytes - convert a byte slice to a salt
func PrivacySaltFromBytes(buffer []byte) (PrivacySalt, error) {
	var salt PrivacySalt
	if SaltLength != len(buffer) {
		return salt, fault.ErrInvalidPrivacySalt
	}
	copy(salt[:], buffer)
	if salt.IsZero() {
		return salt, fault.ErrInvalidPrivacySalt
	}
	return salt, nil
}

// IsZero - true for the invalid all zero salt
func (salt PrivacySalt) IsZero() bool {
	return PrivacySalt{} == salt
}

// Hash - digest of the salt, leaf zero of the top level tree
func (salt PrivacySalt) Hash() merkle.Digest {
	return merkle.NewDigest(salt[:])
}

// Nonce - derive the privacy nonce for one component position
//
// depends only on the salt, the group ordinal and the component index
// so it is recomputable without the component content
func (salt PrivacySalt) Nonce(group uint64, index uint64) merkle.Digest {
	buffer := make([]byte, SaltLength+16)
	copy(buffer, salt[:])
	binary.LittleEndian.PutUint64(buffer[SaltLength:], group)
	binary.LittleEndian.PutUint64(buffer[SaltLength+8:], index)
	return merkle.NewDigest(buffer)
}

// LeafHash - digest of one component under its nonce
func LeafHash(nonce merkle.Digest, component []byte) merkle.Digest {
	buffer := make([]byte, 0, merkle.DigestLength+len(component))
	buffer = append(buffer, nonce[:]...)
	buffer = append(buffer, component...)
	return merkle.NewDigest(buffer)
}

// String - hex string of the salt
func (salt PrivacySalt) String() string {
	return hex.EncodeToString(salt[:])
}

// MarshalText - convert a salt to hex text
func (salt PrivacySalt) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(SaltLength))
	hex.Encode(buffer, salt[:])
	return buffer, nil
}

// UnmarshalText - convert hex text to a salt
func (salt *PrivacySalt) UnmarshalText(s []byte) error {
	if hex.EncodedLen(SaltLength) != len(s) {
		return fault.ErrInvalidPrivacySalt
	}
	buffer := make([]byte, SaltLength)
	_, err := hex.Decode(buffer, s)
	if nil != err {
		return err
	}
	decoded, err := PrivacySaltFromBytes(buffer)
	if nil != err {
		return err
	}
	*salt = decoded
	return nil
}
