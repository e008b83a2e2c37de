// SPDX-License-Identifier: ISC
// Copyright (c) 2017-2020 tomtau
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transaction - grouped commitment layer
//
// a transaction is an ordered list of component groups committed to
// by a two level merkle structure: one tree per group over nonce
// shielded component digests and a top level tree over the salt hash
// followed by the group roots
//
// the wire transaction carries every component; the filtered
// transaction tears off a verifiable subset without revealing the
// privacy salt or the hidden components
//
// component content is opaque at this layer; the known group ordinals
// additionally decode as transactionrecord types and unknown trailing
// ordinals pass through untyped so old verifiers stay compatible with
// extended transactions
package transaction
