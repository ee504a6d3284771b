// Copyright 2024 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package bitset_test

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grailbio/hbitset/bitset"
)

func fromSlice[W bitset.Word](indices []uint32) *bitset.BitSet[W] {
	s := bitset.New[W]()
	for _, i := range indices {
		s.Add(i)
	}
	return s
}

func sortedKeys(m map[uint32]struct{}) []uint32 {
	// An empty model yields nil, as collect does for an empty View.
	if len(m) == 0 {
		return nil
	}
	out := make([]uint32, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func TestLazyAnd(t *testing.T) {
	a := fromSlice[uint32]([]uint32{1, 2, 3, 1000})
	b := fromSlice[uint32]([]uint32{2, 3, 4, 1000, 2000})
	got := collect[uint32](bitset.And[uint32](a, b))
	assert.Equal(t, []uint32{2, 3, 1000}, got)
}

func TestLazyOr(t *testing.T) {
	a := fromSlice[uint32]([]uint32{1, 1000})
	b := fromSlice[uint32]([]uint32{2, 1000, 2000})
	got := collect[uint32](bitset.Or[uint32](a, b))
	assert.Equal(t, []uint32{1, 2, 1000, 2000}, got)
}

func TestLazyXor(t *testing.T) {
	a := fromSlice[uint32]([]uint32{1, 2, 1000})
	b := fromSlice[uint32]([]uint32{2, 3, 1000, 2000})
	got := collect[uint32](bitset.Xor[uint32](a, b))
	assert.Equal(t, []uint32{1, 3, 2000}, got)
}

func TestLazyAndNot(t *testing.T) {
	a := fromSlice[uint32]([]uint32{1, 2, 3, 1000})
	b := fromSlice[uint32]([]uint32{2, 1000})
	got := collect[uint32](bitset.And[uint32](a, bitset.Not[uint32](b)))
	assert.Equal(t, []uint32{1, 3}, got)
}

// TestInPlaceOpsAgainstModel exercises Or/And/Xor in place, cross
// checking the resulting membership against a map[uint32]struct{}
// reference model driven by the same operations, for many random
// operand pairs.
func TestInPlaceOpsAgainstModel(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const universe = 1 << 16

	randomSet := func(n int) ([]uint32, map[uint32]struct{}) {
		model := map[uint32]struct{}{}
		var indices []uint32
		for i := 0; i < n; i++ {
			idx := uint32(rng.Intn(universe))
			if _, dup := model[idx]; dup {
				continue
			}
			model[idx] = struct{}{}
			indices = append(indices, idx)
		}
		return indices, model
	}

	for trial := 0; trial < 50; trial++ {
		aIdx, aModel := randomSet(200)
		bIdx, bModel := randomSet(200)

		a := fromSlice[uint32](aIdx)
		b := fromSlice[uint32](bIdx)

		switch trial % 3 {
		case 0:
			a.Or(b)
			for k := range bModel {
				aModel[k] = struct{}{}
			}
		case 1:
			a.And(b)
			for k := range aModel {
				if _, inB := bModel[k]; !inB {
					delete(aModel, k)
				}
			}
		case 2:
			a.Xor(b)
			for k := range bModel {
				if _, inA := aModel[k]; inA {
					delete(aModel, k)
				} else {
					aModel[k] = struct{}{}
				}
			}
		}

		got := collect[uint32](a)
		assert.Equal(t, sortedKeys(aModel), got, "trial %d (op %d) diverged from model", trial, trial%3)
	}
}

func TestAllView(t *testing.T) {
	a := fromSlice[uint32]([]uint32{5, 9})
	assert.True(t, bitset.All[uint32]().Contains(123456))
	got := collect[uint32](bitset.And[uint32](a, bitset.All[uint32]()))
	assert.Equal(t, []uint32{5, 9}, got)
}
