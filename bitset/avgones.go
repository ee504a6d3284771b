// Copyright 2024 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package bitset

// This file implements the "average set bit" primitive: given
// a non-zero word, find the bit position that splits its set bits as
// evenly as possible into a low half and a high half. Producer.Split
// uses it, at the top remaining layer, to divide work between the two
// halves of a Cursor without ever materializing the member list.
//
// The approach is a binary search over bit positions: at each step,
// count (with OnesCount) the set bits below the midpoint of the
// still-candidate range and decide whether the median lies below or
// above it, halving the candidate range per step. It runs in
// O(log |W|) popcounts and branches on the data at every step; it
// does not build a SWAR (SIMD-within-a-register) popcount pyramid.

// medianSetBit32 returns a bit position p in [0,32) such that the
// number of set bits of w below p is as close as possible to half of
// OnesCount32(w), for non-zero w.
func medianSetBit32(w uint32) uint32 {
	target := bitsOnesCount32(w) / 2
	if target == 0 {
		return 0
	}
	var lo, hi uint32 = 0, 32
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		lowMask := uint32(1)<<mid - 1
		if bitsOnesCount32(w&lowMask) >= target {
			hi = mid
		} else {
			lo = mid
		}
	}
	return hi
}

// medianSetBit64 is medianSetBit32's 64-bit counterpart.
func medianSetBit64(w uint64) uint32 {
	target := bitsOnesCount64(w) / 2
	if target == 0 {
		return 0
	}
	var lo, hi uint32 = 0, 64
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		lowMask := uint64(1)<<mid - 1
		if bitsOnesCount64(w&lowMask) >= target {
			hi = mid
		} else {
			lo = mid
		}
	}
	return hi
}

// medianSetBit dispatches to the width-appropriate binary search and
// returns the bit position that splits w's set bits as evenly as
// possible. w must be non-zero.
func medianSetBit[W Word](w W) uint32 {
	switch v := any(w).(type) {
	case uint32:
		return medianSetBit32(v)
	case uint64:
		return medianSetBit64(v)
	default:
		panic("bitset: unsupported word width")
	}
}

func bitsOnesCount32(w uint32) uint32 { return OnesCount[uint32](w) }
func bitsOnesCount64(w uint64) uint32 { return OnesCount[uint64](w) }
