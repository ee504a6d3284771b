// Copyright 2024 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package bitset

import (
	"fmt"
	"strings"

	"github.com/grailbio/hbitset/hberrors"
	"github.com/grailbio/hbitset/hblog"
)

// BitSet is a hierarchical, growable index set over 32-bit unsigned
// indices. It owns its storage exclusively: mutation requires
// exclusive access, but a *BitSet may be shared for read-only use
// (View, Cursor, Producer) across goroutines so long as no mutation
// is concurrent with those reads, mirroring the single-owner
// discipline of github.com/grailbio/base/bitset.
//
// The zero value is an empty set, with no layer storage allocated,
// ready to use.
type BitSet[W Word] struct {
	layer0 []W
	layer1 []W
	layer2 []W
	layer3 W
}

// New returns an empty BitSet.
func New[W Word]() *BitSet[W] {
	return &BitSet[W]{}
}

// WithCapacity returns an empty BitSet pre-grown to hold any index up
// to and including max without further allocation.
func WithCapacity[W Word](max uint32) *BitSet[W] {
	s := New[W]()
	s.reserve(max)
	return s
}

func layerRangeError(level int) error {
	return hberrors.Layer(level)
}

// reserve grows all three dynamic layers so that index i's word at
// every layer is addressable, without setting any bit.
func (s *BitSet[W]) reserve(i uint32) {
	b := LogBits[W]()
	p0 := Offset(i, b)
	p1 := Offset(i, 2*b)
	p2 := Offset(i, 3*b)
	s.growLayer0(p0)
	s.growLayer1(p1)
	s.growLayer2(p2)
}

func (s *BitSet[W]) growLayer0(idx uint32) {
	if idx < uint32(len(s.layer0)) {
		return
	}
	hblog.Debugf("growing layer0 from %d to %d words", len(s.layer0), idx+1)
	grown := make([]W, idx+1)
	copy(grown, s.layer0)
	s.layer0 = grown
}

func (s *BitSet[W]) growLayer1(idx uint32) {
	if idx < uint32(len(s.layer1)) {
		return
	}
	hblog.Debugf("growing layer1 from %d to %d words", len(s.layer1), idx+1)
	grown := make([]W, idx+1)
	copy(grown, s.layer1)
	s.layer1 = grown
}

func (s *BitSet[W]) growLayer2(idx uint32) {
	if idx < uint32(len(s.layer2)) {
		return
	}
	hblog.Debugf("growing layer2 from %d to %d words", len(s.layer2), idx+1)
	grown := make([]W, idx+1)
	copy(grown, s.layer2)
	s.layer2 = grown
}

// layerMut returns a pointer to the word at (level, idx), growing
// that layer's storage (zero-filled) if necessary. level must be in
// {0,1,2,3}; level 3 ignores idx and returns &s.layer3.
func (s *BitSet[W]) layerMut(level int, idx uint32) *W {
	switch level {
	case 0:
		s.growLayer0(idx)
		return &s.layer0[idx]
	case 1:
		s.growLayer1(idx)
		return &s.layer1[idx]
	case 2:
		s.growLayer2(idx)
		return &s.layer2[idx]
	case 3:
		return &s.layer3
	default:
		panic(layerRangeError(level))
	}
}

// Add inserts index i, returning true if it was already present.
// Add panics if i exceeds Ceiling[W]().
func (s *BitSet[W]) Add(i uint32) bool {
	ceiling := Ceiling[W]()
	if i > ceiling {
		hblog.Debugf("add %d exceeds ceiling %d", i, ceiling)
		panic(hberrors.Ceiling(i, ceiling))
	}
	b := LogBits[W]()
	p0 := Offset(i, b)
	s.growLayer0(p0)
	m0 := Mask[W](i, 0)
	if s.layer0[p0]&m0 != 0 {
		return true
	}
	wasZero := s.layer0[p0] == 0
	s.layer0[p0] |= m0
	if wasZero {
		s.addSlow(i)
	}
	return false
}

// addSlow propagates a newly-nonzero Layer-0 word up through Layers
// 1, 2, and 3. It is only ever invoked from Add, immediately after
// the Layer-0 word transitions from zero to nonzero.
func (s *BitSet[W]) addSlow(i uint32) {
	b := LogBits[W]()
	p1 := Offset(i, 2*b)
	s.growLayer1(p1)
	s.layer1[p1] |= Mask[W](i, b)

	p2 := Offset(i, 3*b)
	s.growLayer2(p2)
	s.layer2[p2] |= Mask[W](i, 2*b)

	s.layer3 |= Mask[W](i, 3*b)
}

// Remove deletes index i, returning true if it was present.
func (s *BitSet[W]) Remove(i uint32) bool {
	b := LogBits[W]()
	p0 := Offset(i, b)
	if p0 >= uint32(len(s.layer0)) {
		return false
	}
	m0 := Mask[W](i, 0)
	if s.layer0[p0]&m0 == 0 {
		return false
	}
	s.layer0[p0] &^= m0
	if s.layer0[p0] != 0 {
		return true
	}

	p1 := Offset(i, 2*b)
	if p1 < uint32(len(s.layer1)) {
		s.layer1[p1] &^= Mask[W](i, b)
		if s.layer1[p1] != 0 {
			return true
		}
	}

	p2 := Offset(i, 3*b)
	if p2 < uint32(len(s.layer2)) {
		s.layer2[p2] &^= Mask[W](i, 2*b)
		if s.layer2[p2] != 0 {
			return true
		}
	}

	s.layer3 &^= Mask[W](i, 3*b)
	return true
}

// Contains reports whether index i is a member.
func (s *BitSet[W]) Contains(i uint32) bool {
	p0 := Offset(i, LogBits[W]())
	if p0 >= uint32(len(s.layer0)) {
		return false
	}
	return s.layer0[p0]&Mask[W](i, 0) != 0
}

// Clear empties the set: all three dynamic layers are truncated to
// length zero (retaining their backing arrays for reuse) and Layer 3
// is zeroed.
func (s *BitSet[W]) Clear() {
	s.layer0 = s.layer0[:0]
	s.layer1 = s.layer1[:0]
	s.layer2 = s.layer2[:0]
	s.layer3 = 0
}

// Capacity returns the highest index this BitSet can ever represent,
// Ceiling[W](). It does not reflect how much of that range is
// currently backed by allocated storage; storage grows lazily and
// never shrinks (see Add).
func (s *BitSet[W]) Capacity() uint32 {
	return Ceiling[W]()
}

// Layer0 implements View, reading Layer-0 word idx.
func (s *BitSet[W]) Layer0(idx uint32) W {
	if idx >= uint32(len(s.layer0)) {
		return 0
	}
	return s.layer0[idx]
}

// Layer1 implements View, reading Layer-1 word idx.
func (s *BitSet[W]) Layer1(idx uint32) W {
	if idx >= uint32(len(s.layer1)) {
		return 0
	}
	return s.layer1[idx]
}

// Layer2 implements View, reading Layer-2 word idx.
func (s *BitSet[W]) Layer2(idx uint32) W {
	if idx >= uint32(len(s.layer2)) {
		return 0
	}
	return s.layer2[idx]
}

// Layer3 implements View, returning the single Layer-3 word.
func (s *BitSet[W]) Layer3() W {
	return s.layer3
}

// RawLayer0 exposes Layer 0's backing storage as a read-only slice.
// Layer-0 bit i is set iff index i is a member.
func (s *BitSet[W]) RawLayer0() []W { return s.layer0 }

// RawLayer1 exposes Layer 1's backing storage as a read-only slice.
// Bit k of Layer-1 word j summarizes indices [(j*|W|+k)*|W|,
// (j*|W|+k+1)*|W|): it is set iff Layer-0 word j*|W|+k is non-zero.
func (s *BitSet[W]) RawLayer1() []W { return s.layer1 }

// RawLayer2 exposes Layer 2's backing storage as a read-only slice.
// Bit k of Layer-2 word j summarizes indices
// [(j*|W|+k)*|W|^2, (j*|W|+k+1)*|W|^2).
func (s *BitSet[W]) RawLayer2() []W { return s.layer2 }

// Equal reports whether s and other are word-for-word identical
// across all four layers, including vector lengths: two sets that
// cover the same indices but differ in how far a dynamic layer has
// grown are not Equal. Implementations must not
// canonicalize layer length on comparison.
func (s *BitSet[W]) Equal(other *BitSet[W]) bool {
	if s.layer3 != other.layer3 {
		return false
	}
	if len(s.layer0) != len(other.layer0) || len(s.layer1) != len(other.layer1) || len(s.layer2) != len(other.layer2) {
		return false
	}
	for i, w := range s.layer0 {
		if w != other.layer0[i] {
			return false
		}
	}
	for i, w := range s.layer1 {
		if w != other.layer1[i] {
			return false
		}
	}
	for i, w := range s.layer2 {
		if w != other.layer2[i] {
			return false
		}
	}
	return true
}

// String renders a short, human-readable summary of the set's
// storage footprint, in the manner of github.com/grailbio/base/errors'
// *Error chains: meant for logs and debuggers, not for parsing.
func (s *BitSet[W]) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "BitSet[%d-bit](layer0=%d layer1=%d layer2=%d layer3=%#x)",
		Bits[W](), len(s.layer0), len(s.layer1), len(s.layer2), s.layer3)
	return b.String()
}
