// SPDX-License-Identifier: ISC
// Copyright (c) 2017-2020 tomtau
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

// names of all ledger networks
const (
	Live    = "live"
	Testing = "testing"
	Local   = "local"
)

// Valid - validate a network name
func Valid(name string) bool {
	switch name {
	case Live, Testing, Local:
		return true
	default:
		return false
	}
}

// IsTesting - true for networks whose accounts carry the test flag
func IsTesting(name string) bool {
	switch name {
	case Testing, Local:
		return true
	default:
		return false
	}
}
