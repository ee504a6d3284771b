// Copyright 2024 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package forkjoin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grailbio/hbitset/forkjoin"
)

// intRange is a minimal Splitter over [start, end): it exists purely
// to exercise Reduce without depending on bitset.Producer, which is
// only built under the "parallel" tag.
type intRange struct{ start, end int }

func (r *intRange) Split() (*intRange, bool) {
	if r.end-r.start < 2 {
		return nil, false
	}
	mid := r.start + (r.end-r.start)/2
	right := &intRange{mid, r.end}
	r.end = mid
	return right, true
}

func sumLeaf(r *intRange) int {
	sum := 0
	for i := r.start; i < r.end; i++ {
		sum += i
	}
	return sum
}

func TestReduceSumsFullRange(t *testing.T) {
	root := &intRange{0, 1000}
	got := forkjoin.Reduce[*intRange, int](
		root,
		func(r *intRange) bool { return r.end-r.start <= 8 },
		sumLeaf,
		func(left, right int) int { return left + right },
		4,
	)
	want := 0
	for i := 0; i < 1000; i++ {
		want += i
	}
	assert.Equal(t, want, got)
}

func TestReduceSingleThreaded(t *testing.T) {
	root := &intRange{0, 50}
	got := forkjoin.Reduce[*intRange, int](
		root,
		func(r *intRange) bool { return r.end-r.start <= 1 },
		sumLeaf,
		func(left, right int) int { return left + right },
		1,
	)
	want := 0
	for i := 0; i < 50; i++ {
		want += i
	}
	assert.Equal(t, want, got)
}

func TestReduceEmptyRangeIsLeaf(t *testing.T) {
	root := &intRange{5, 5}
	got := forkjoin.Reduce[*intRange, int](
		root,
		func(r *intRange) bool { return true },
		sumLeaf,
		func(left, right int) int { return left + right },
		2,
	)
	assert.Equal(t, 0, got)
}
