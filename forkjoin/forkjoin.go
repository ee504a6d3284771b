// Copyright 2024 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package forkjoin drives a recursively-splittable producer (such as
// a bitset.Producer) across a bounded pool of goroutines. Where
// github.com/grailbio/base/traverse shards a known-length range up
// front and lets idle workers steal the next shard index, forkjoin is
// for sources whose split points are data-dependent and only known by
// asking the source itself to divide in two -- so the recursion tree,
// not a shard counter, is the thing bounded concurrency walks.
package forkjoin

import "sync"

// Splitter is anything that can divide its remaining work in two.
// Split reports false, leaving the receiver unchanged, when no
// further division is possible or profitable; the caller then treats
// the receiver as a leaf.
type Splitter[P any] interface {
	Split() (P, bool)
}

// Reduce walks root's split tree, level by level, running a Split
// while leaf(p) is false, then applies fold to the resulting leaves
// and combine to merge results back up the tree. Up to maxConcurrent
// goroutines run leaves and pending splits concurrently; maxConcurrent
// <= 1 runs everything on the calling goroutine.
//
// combine is only ever called on results from two siblings that split
// from a common ancestor, in split order (the result of the half
// Split kept, then the half Split handed off), so combine need not be
// commutative so long as it is associative in that order -- the same
// contract a View's Or/And/Xor rely on when folding a Producer's
// output into a *bitset.BitSet.
func Reduce[P Splitter[P], A any](
	root P,
	leaf func(P) bool,
	fold func(P) A,
	combine func(left, right A) A,
	maxConcurrent int,
) A {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	// The calling goroutine is one of the maxConcurrent; the semaphore
	// bounds only the extra goroutines spawned for handed-off halves.
	sem := make(chan struct{}, maxConcurrent-1)
	return reduce(root, leaf, fold, combine, sem)
}

func reduce[P Splitter[P], A any](
	p P,
	leaf func(P) bool,
	fold func(P) A,
	combine func(left, right A) A,
	sem chan struct{},
) A {
	if leaf(p) {
		return fold(p)
	}
	right, ok := p.Split()
	if !ok {
		return fold(p)
	}

	select {
	case sem <- struct{}{}:
	default:
		// No free slot: run both halves in line, left before right,
		// preserving combine's ordering contract.
		left := reduce(p, leaf, fold, combine, sem)
		rightResult := reduce(right, leaf, fold, combine, sem)
		return combine(left, rightResult)
	}

	var (
		wg          sync.WaitGroup
		rightResult A
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() { <-sem }()
		rightResult = reduce(right, leaf, fold, combine, sem)
	}()

	left := reduce(p, leaf, fold, combine, sem)
	wg.Wait()
	return combine(left, rightResult)
}
