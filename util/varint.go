// SPDX-License-Identifier: ISC
// Copyright (c) 2017-2020 tomtau
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

// Varint64MaximumBytes - maximum possible number of bytes in a Varint64
const Varint64MaximumBytes = 9

// ToVarint64 - encode a 64 bit unsigned integer as a Varint64
//
// seven bits per byte, least significant group first, the high bit
// set on every byte that has a successor; the ninth byte, when
// present, carries the top eight bits verbatim so an encoding never
// exceeds nine bytes
func ToVarint64(value uint64) []byte {
	buffer := make([]byte, 0, Varint64MaximumBytes)
	for i := 1; i < Varint64MaximumBytes; i += 1 {
		if value < 0x80 {
			return append(buffer, byte(value))
		}
		buffer = append(buffer, byte(value&0x7f|0x80))
		value >>= 7
	}
	return append(buffer, byte(value))
}

// FromVarint64 - decode a Varint64 from the start of a buffer
//
// returns the value and the number of bytes consumed,
// or 0, 0 if the buffer is truncated mid-encoding
func FromVarint64(buffer []byte) (uint64, int) {
	value := uint64(0)
	for i, b := range buffer {
		if Varint64MaximumBytes-1 == i {
			return value | uint64(b)<<56, i + 1
		}
		value |= uint64(b&0x7f) << uint(7*i)
		if b < 0x80 {
			return value, i + 1
		}
	}
	return 0, 0
}

// ClippedVarint64 - decode a Varint64 restricted to minimum..maximum
//
// any truncated encoding or out of range value yields 0, 0
func ClippedVarint64(buffer []byte, minimum int, maximum int) (int, int) {
	if minimum < 0 || maximum <= minimum {
		return 0, 0
	}
	value, count := FromVarint64(buffer)
	if 0 == count || value > uint64(maximum) || int(value) < minimum {
		return 0, 0
	}
	return int(value), count
}
