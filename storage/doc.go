// SPDX-License-Identifier: ISC
// Copyright (c) 2017-2020 tomtau
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// maintain the on-disk data store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of pools.
// Each pool is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available pools.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++     = concatenation of byte data
// 3. txId   = transaction merkle root as 32 byte SHA3-256
// 4. digest = content digest as 32 byte SHA3-256(data)
//
// Transactions:
//
//   T ++ txId    - verified transactions
//                  data: packed wire transaction
//
// Attachments:
//
//   A ++ digest  - attachment content addressed by its digest
//                  data: attachment bytes
package storage
