// SPDX-License-Identifier: ISC
// Copyright (c) 2017-2020 tomtau
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain_test

import (
	"testing"

	"github.com/tomtau/corda/chain"
)

func TestValid(t *testing.T) {
	testItems := []struct {
		name    string
		valid   bool
		testing bool
	}{
		{chain.Live, true, false},
		{chain.Testing, true, true},
		{chain.Local, true, true},
		{"", false, false},
		{"liv", false, false},
		{"LIVE", false, false},
		{"livex", false, false},
	}

	for i, item := range testItems {
		if chain.Valid(item.name) != item.valid {
			t.Errorf("%d: valid(%q) = %v  expected: %v", i, item.name, !item.valid, item.valid)
		}
		if chain.IsTesting(item.name) != item.testing {
			t.Errorf("%d: isTesting(%q) = %v  expected: %v", i, item.name, !item.testing, item.testing)
		}
	}
}
