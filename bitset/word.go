// Copyright 2024 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package bitset provides a hierarchical bit set tuned for the access
// pattern of entity-component systems: very sparse membership,
// frequent full-set iteration, and virtual (non-materializing)
// algebra between sets. It is similar in spirit to
// github.com/grailbio/base/bitset, but that package's single flat
// []uintptr is replaced by four summary layers so that both iteration
// and set algebra skip empty regions in O(1) per word rather than
// O(n) per bit.
package bitset

import "math/bits"

// Word is the storage unit of a layer: either a 32- or a 64-bit
// unsigned machine word. A BitSet is generic over Word the way the
// source library is monomorphized over its word width; every set
// that participates in a single algebraic expression must share the
// same Word type.
type Word interface {
	~uint32 | ~uint64
}

// width returns 32 or 64: the number of bits in W. Go generics have
// no notion of a per-type compile-time constant, so unlike
// grailbio-base/bitset's BitsPerWord this is a small runtime type
// switch, evaluated on every call (including from Row, Mask and
// Cursor.handleLevel's LogBits call).
func width[W Word]() uint32 {
	switch any(W(0)).(type) {
	case uint32:
		return 32
	case uint64:
		return 64
	default:
		panic("bitset: unsupported word width")
	}
}

// Bits returns |W|, the number of bits in a Word.
func Bits[W Word]() uint32 { return width[W]() }

// LogBits returns B = log2(|W|): 5 for a 32-bit word, 6 for a 64-bit
// word.
func LogBits[W Word]() uint32 {
	if width[W]() == 32 {
		return 5
	}
	return 6
}

// Zero is the zero Word.
func Zero[W Word]() W { return W(0) }

// One is the Word with only its lowest bit set.
func One[W Word]() W { return W(1) }

// Max is the all-ones Word.
func Max[W Word]() W { return ^W(0) }

// Ceiling is the highest Index representable by a BitSet[W]: |W|^4-1
// (1,048,575 for a 32-bit word, 16,777,215 for a 64-bit word).
func Ceiling[W Word]() uint32 {
	b := uint64(width[W]())
	return uint32(b*b*b*b - 1)
}

// TrailingZeros returns the number of trailing zero bits of w. Its
// value is |W| when w is zero, but this package never
// calls it on a zero word: every call site guards with a non-zero
// check first.
func TrailingZeros[W Word](w W) uint32 {
	switch v := any(w).(type) {
	case uint32:
		return uint32(bits.TrailingZeros32(v))
	case uint64:
		return uint32(bits.TrailingZeros64(v))
	default:
		panic("bitset: unsupported word width")
	}
}

// OnesCount returns the number of set bits in w.
func OnesCount[W Word](w W) uint32 {
	switch v := any(w).(type) {
	case uint32:
		return uint32(bits.OnesCount32(v))
	case uint64:
		return uint32(bits.OnesCount64(v))
	default:
		panic("bitset: unsupported word width")
	}
}

// Row returns the bit position within a layer word that index i
// occupies at shift s: (i>>s) & (|W|-1).
func Row[W Word](i uint32, shift uint32) uint32 {
	return (i >> shift) & (width[W]() - 1)
}

// Offset returns the word index at layer (s/B - 1) that index i's bit
// falls into at shift s: i / |W|^(s/B), which is simply i>>s since
// |W| is a power of two.
func Offset(i uint32, shift uint32) uint32 {
	return i >> shift
}

// Mask returns the single-bit word isolating index i's bit at shift
// s: 1 << Row[W](i, s).
func Mask[W Word](i uint32, shift uint32) W {
	return One[W]() << Row[W](i, shift)
}
