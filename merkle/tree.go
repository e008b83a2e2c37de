// SPDX-License-Identifier: ISC
// Copyright (c) 2017-2020 tomtau
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

// Tree - build a full merkle tree from a slice of leaf digests
//
// the result is a flat slice holding every level: the leaves first,
// each reduced level following, the root as the final element; a
// level with an odd number of nodes pairs its last node with itself
//
// an empty leaf slice yields nil
func Tree(leaves []Digest) []Digest {
	if 0 == len(leaves) {
		return nil
	}

	// length of initial level plus all reduced levels
	treeLength := len(leaves)
	for n := len(leaves); n > 1; n = (n + 1) / 2 {
		treeLength += (n + 1) / 2
	}

	tree := make([]Digest, treeLength)
	copy(tree, leaves)

	n := len(leaves)
	j := 0
	for workLength := len(leaves); workLength > 1; workLength = (workLength + 1) / 2 {
		for i := 0; i < workLength; i += 2 {
			k := j + 1
			if i+1 == workLength {
				k = j // compensate for odd number
			}
			tree[n] = NewDigestPair(tree[j], tree[k])
			n += 1
			j = k + 1
		}
	}
	return tree
}

// Root - merkle root of a slice of leaf digests
//
// no leaves yields the zero digest and a single
// leaf is its own root
func Root(leaves []Digest) Digest {
	tree := Tree(leaves)
	if nil == tree {
		return Digest{}
	}
	return tree[len(tree)-1]
}
