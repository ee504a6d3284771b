// Copyright 2024 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

//go:build parallel

package bitset

// This file is built only under the "parallel" tag, mirroring the
// teacher's own architecture-gated bitset_amd64.go: the splittable
// producer is an opt-in extra over the sequential Cursor, not
// something every caller pays for.

// Producer is a splittable source of member indices, the driver for
// work-balanced parallel enumeration. Its state is exactly a Cursor's
// (four mask words, three prefixes) plus a splittable-levels
// parameter; Split divides the remaining work in two by bisecting the
// highest layer that still has at least two branches, descending
// through single-branch layers first when necessary, so that a
// cluster concentrated under one Layer-3 bit can still be split down
// to Layer 1 rather than stalling at a single producer.
type Producer[W Word] struct {
	view   View[W]
	mask   [4]W
	prefix [3]uint32
	levels int // splittable-levels parameter k, in {1,2,3}
}

// NewProducer returns a Producer claiming every member of v, with the
// default splittable-levels parameter (k=3: layers 3, 2, and 1 are
// all eligible split points).
func NewProducer[W Word](v View[W]) *Producer[W] {
	p := &Producer[W]{view: v, levels: 3}
	p.mask[3] = v.Layer3()
	return p
}

// SetSplittableLevels overrides k, the number of the topmost layers
// (counting down from Layer 3) Split is willing to divide. k is
// clamped to [1,3]. A smaller k trades split granularity for cheaper
// splits; it never changes what a Producer eventually emits, only how
// finely Split can divide the work of emitting it.
func (p *Producer[W]) SetSplittableLevels(k int) {
	switch {
	case k < 1:
		k = 1
	case k > 3:
		k = 3
	}
	p.levels = k
}

// Len reports the branch count of the topmost layer with remaining
// work, not a count of member indices. It does not bound how many
// times Split can still succeed: a Len of 1 can still split, since
// Split descends through single-branch layers.
func (p *Producer[W]) Len() int {
	for level := 3; level >= 0; level-- {
		if p.mask[level] != 0 {
			return int(OnesCount(p.mask[level]))
		}
	}
	return 0
}

// Split attempts to divide p's remaining claim in two, trying layers
// 3, 2, ..., 3-k+1 in that order (k = p.levels) and returning as soon
// as one yields a division. At each attempted layer: if its mask is
// empty, the next (lower) layer is tried; if its mask holds exactly
// one branch, Split descends into that branch (loading the child
// layer's mask and prefix from the View, exactly as Cursor.handleLevel
// would on a CONTINUE) and retries at the child layer; if its mask
// holds two or more branches, the average-ones bit trick (C8)
// bisects it, p keeps the low half, and a new Producer holding the
// high half is returned. Split reports false when no attempted layer
// ever holds two or more branches; p then still claims the same
// indices, though any single-branch descent it made is kept in its
// mask and prefix state.
func (p *Producer[W]) Split() (*Producer[W], bool) {
	b := LogBits[W]()
	bottom := 4 - p.levels // lowest layer index Split is willing to try
	for level := 3; level >= bottom; level-- {
		m := p.mask[level]
		if m == 0 {
			continue
		}
		first := TrailingZeros(m)
		if OnesCount(m) < 2 {
			// Exactly one branch at this layer: nothing to bisect here,
			// so descend into it and try the next layer down.
			p.mask[level] = 0
			var idx uint32
			if level < 3 {
				idx = p.prefix[level] | first
			} else {
				idx = first
			}
			child := level - 1
			if child < 0 {
				return nil, false
			}
			p.mask[child] = layerAt(p.view, child, idx)
			p.prefix[child] = idx << b
			continue
		}

		a := medianSetBit(m)
		lowMask := m & (One[W]()<<a - 1)
		highMask := m &^ lowMask
		if lowMask == 0 || highMask == 0 {
			// medianSetBit guarantees both halves are non-empty for a
			// mask with >=2 bits; this guard only protects against a
			// pathological future change to that contract.
			continue
		}

		other := &Producer[W]{view: p.view, levels: p.levels}
		other.mask[level] = highMask
		for l := level; l < 3; l++ {
			other.prefix[l] = p.prefix[l]
		}
		p.mask[level] = lowMask
		return other, true
	}
	return nil, false
}

// Fold drives p to exhaustion, calling step once per remaining member
// index in ascending order and threading acc through. It is the
// sequential leaf of a fork-join reduction: once a caller decides a
// Producer is small enough not to Split further, Fold consumes it by
// handing its mask/prefix state to a Cursor over the same View.
func Fold[W Word, A any](p *Producer[W], acc A, step func(A, uint32) A) A {
	cur := &Cursor[W]{view: p.view, mask: p.mask, prefix: p.prefix}
	for {
		idx, ok := cur.Next()
		if !ok {
			return acc
		}
		acc = step(acc, idx)
	}
}
