// SPDX-License-Identifier: ISC
// Copyright (c) 2017-2020 tomtau
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"github.com/tomtau/corda/fault"
	"github.com/tomtau/corda/util"
)

// upper limit on leaves when unpacking an untrusted proof
const maximumLeaves = 65536

// PartialTree - proof that selected leaves belong to a merkle tree
//
// a depth-first walk from the root records one flag bit per visited
// node: set when the subtree holds an included leaf.  A node with the
// flag clear contributes its digest to Hashes and is not descended.
// An included leaf contributes nothing: the verifier supplies its
// digest to Root.  The walk pairs an odd node with itself exactly as
// Tree does, so the duplicated node is visited only once.
type PartialTree struct {
	LeafCount int      `json:"leafCount"` // leaves in the original tree
	BitCount  int      `json:"bitCount"`  // flag bits used
	Flags     []byte   `json:"flags"`     // traversal bits, LSB first
	Hashes    []Digest `json:"hashes"`    // digests of pruned subtrees
}

// NewPartialTree - build a proof for the leaves marked as included
//
// leaves and included run in parallel and at least one
// leaf must be included
func NewPartialTree(leaves []Digest, included []bool) (*PartialTree, error) {
	if len(leaves) != len(included) {
		return nil, fault.ErrIncludedLeafCountMismatch
	}
	anyIncluded := false
	for _, ok := range included {
		if ok {
			anyIncluded = true
			break
		}
	}
	if !anyIncluded {
		return nil, fault.ErrNoIncludedLeaves
	}

	tree := &PartialTree{LeafCount: len(leaves)}
	tree.build(tree.rootHeight(), 0, Tree(leaves), included)
	return tree, nil
}

// Root - recompute the root from the proof and the included leaf digests
//
// included digests are consumed in ascending original leaf order; a
// damaged proof yields an error, never a panic
func (tree *PartialTree) Root(included []Digest) (Digest, error) {
	if err := tree.check(); nil != err {
		return Digest{}, err
	}

	r := &replay{tree: tree, included: included}
	root, err := r.visit(tree.rootHeight(), 0)
	if nil != err {
		return Digest{}, err
	}
	if r.bitsUsed != tree.BitCount || r.hashesUsed != len(tree.Hashes) {
		return Digest{}, fault.ErrPartialTreeDamaged
	}
	if r.leavesUsed != len(included) {
		return Digest{}, fault.ErrIncludedLeafCountMismatch
	}
	return root, nil
}

// LeafIndices - original indices of the included leaves, ascending
func (tree *PartialTree) LeafIndices() ([]int, error) {
	if err := tree.check(); nil != err {
		return nil, err
	}

	r := &replay{tree: tree}
	indices := make([]int, 0, 16)
	err := r.scan(tree.rootHeight(), 0, &indices)
	if nil != err {
		return nil, err
	}
	if r.bitsUsed != tree.BitCount || r.hashesUsed != len(tree.Hashes) {
		return nil, fault.ErrPartialTreeDamaged
	}
	return indices, nil
}

// Pack - binary form: leaf count, bit count, flag bytes, hash count, digests
func (tree *PartialTree) Pack() ([]byte, error) {
	if err := tree.check(); nil != err {
		return nil, err
	}

	buffer := util.ToVarint64(uint64(tree.LeafCount))
	buffer = append(buffer, util.ToVarint64(uint64(tree.BitCount))...)
	buffer = append(buffer, tree.Flags...)
	buffer = append(buffer, util.ToVarint64(uint64(len(tree.Hashes)))...)
	for _, digest := range tree.Hashes {
		buffer = append(buffer, digest[:]...)
	}
	return buffer, nil
}

// UnpackPartialTree - decode a packed proof from the start of a buffer
//
// returns the proof and the number of bytes consumed
func UnpackPartialTree(buffer []byte) (*PartialTree, int, error) {
	leafCount, n := util.ClippedVarint64(buffer, 1, maximumLeaves)
	if 0 == n {
		return nil, 0, fault.ErrNotPartialTreePack
	}

	bitCount, c := util.ClippedVarint64(buffer[n:], 1, 3*leafCount)
	if 0 == c {
		return nil, 0, fault.ErrNotPartialTreePack
	}
	n += c

	flagCount := (bitCount + 7) / 8
	if len(buffer) < n+flagCount {
		return nil, 0, fault.ErrNotPartialTreePack
	}
	flags := make([]byte, flagCount)
	copy(flags, buffer[n:n+flagCount])
	n += flagCount

	hashCount, c := util.ClippedVarint64(buffer[n:], 0, 3*leafCount)
	if 0 == c {
		return nil, 0, fault.ErrNotPartialTreePack
	}
	n += c

	if len(buffer) < n+hashCount*DigestLength {
		return nil, 0, fault.ErrNotPartialTreePack
	}
	var hashes []Digest
	if hashCount > 0 {
		hashes = make([]Digest, hashCount)
		for i := 0; i < hashCount; i += 1 {
			copy(hashes[i][:], buffer[n:n+DigestLength])
			n += DigestLength
		}
	}

	tree := &PartialTree{
		LeafCount: leafCount,
		BitCount:  bitCount,
		Flags:     flags,
		Hashes:    hashes,
	}
	if err := tree.check(); nil != err {
		return nil, 0, err
	}
	return tree, n, nil
}

// record one node of the depth-first walk
func (tree *PartialTree) build(height int, pos int, full []Digest, included []bool) {
	first := pos << uint(height)
	last := first + 1<<uint(height)
	if last > tree.LeafCount {
		last = tree.LeafCount
	}
	match := false
	for i := first; i < last; i += 1 {
		if included[i] {
			match = true
			break
		}
	}
	tree.appendFlag(match)

	if !match {
		tree.Hashes = append(tree.Hashes, full[tree.levelOffset(height)+pos])
		return
	}
	if 0 == height {
		return
	}
	tree.build(height-1, 2*pos, full, included)
	if 2*pos+1 < tree.levelWidth(height-1) {
		tree.build(height-1, 2*pos+1, full, included)
	}
}

func (tree *PartialTree) appendFlag(bit bool) {
	if 0 == tree.BitCount%8 {
		tree.Flags = append(tree.Flags, 0)
	}
	if bit {
		tree.Flags[tree.BitCount/8] |= 1 << uint(tree.BitCount%8)
	}
	tree.BitCount += 1
}

// structural sanity of the counts and the padding bits
func (tree *PartialTree) check() error {
	if tree.LeafCount < 1 || tree.BitCount < 1 {
		return fault.ErrPartialTreeDamaged
	}
	if len(tree.Flags) != (tree.BitCount+7)/8 {
		return fault.ErrPartialTreeDamaged
	}
	if bits := uint(tree.BitCount % 8); 0 != bits {
		if 0 != tree.Flags[len(tree.Flags)-1]>>bits {
			return fault.ErrPartialTreeDamaged
		}
	}
	return nil
}

// height of the root above the leaf level
func (tree *PartialTree) rootHeight() int {
	height := 0
	for width := tree.LeafCount; width > 1; width = (width + 1) / 2 {
		height += 1
	}
	return height
}

// number of nodes in the level at a given height
func (tree *PartialTree) levelWidth(height int) int {
	width := tree.LeafCount
	for i := 0; i < height; i += 1 {
		width = (width + 1) / 2
	}
	return width
}

// offset of a level inside the flat tree built by Tree
func (tree *PartialTree) levelOffset(height int) int {
	offset := 0
	width := tree.LeafCount
	for i := 0; i < height; i += 1 {
		offset += width
		width = (width + 1) / 2
	}
	return offset
}

// cursor over the stored flags and hashes during reconstruction
type replay struct {
	tree       *PartialTree
	included   []Digest
	bitsUsed   int
	hashesUsed int
	leavesUsed int
}

// rebuild the digest of one node
func (r *replay) visit(height int, pos int) (Digest, error) {
	match, err := r.nextFlag()
	if nil != err {
		return Digest{}, err
	}
	if !match {
		return r.nextHash()
	}
	if 0 == height {
		return r.nextLeaf()
	}

	left, err := r.visit(height-1, 2*pos)
	if nil != err {
		return Digest{}, err
	}
	right := left
	if 2*pos+1 < r.tree.levelWidth(height-1) {
		right, err = r.visit(height-1, 2*pos+1)
		if nil != err {
			return Digest{}, err
		}
	}
	return NewDigestPair(left, right), nil
}

// walk the flags only, collecting included leaf positions
func (r *replay) scan(height int, pos int, indices *[]int) error {
	match, err := r.nextFlag()
	if nil != err {
		return err
	}
	if !match {
		r.hashesUsed += 1
		return nil
	}
	if 0 == height {
		*indices = append(*indices, pos)
		r.leavesUsed += 1
		return nil
	}

	err = r.scan(height-1, 2*pos, indices)
	if nil != err {
		return err
	}
	if 2*pos+1 < r.tree.levelWidth(height-1) {
		return r.scan(height-1, 2*pos+1, indices)
	}
	return nil
}

func (r *replay) nextFlag() (bool, error) {
	if r.bitsUsed >= r.tree.BitCount {
		return false, fault.ErrPartialTreeDamaged
	}
	bit := r.tree.Flags[r.bitsUsed/8] & (1 << uint(r.bitsUsed%8))
	r.bitsUsed += 1
	return 0 != bit, nil
}

func (r *replay) nextHash() (Digest, error) {
	if r.hashesUsed >= len(r.tree.Hashes) {
		return Digest{}, fault.ErrPartialTreeDamaged
	}
	digest := r.tree.Hashes[r.hashesUsed]
	r.hashesUsed += 1
	return digest, nil
}

func (r *replay) nextLeaf() (Digest, error) {
	if r.leavesUsed >= len(r.included) {
		return Digest{}, fault.ErrIncludedLeafCountMismatch
	}
	digest := r.included[r.leavesUsed]
	r.leavesUsed += 1
	return digest, nil
}
