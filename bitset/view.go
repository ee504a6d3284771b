// Copyright 2024 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package bitset

// View is the read-only capability shared by a concrete BitSet, its
// borrows, and every algebraic wrapper in this package. It is the
// only thing Cursor, Producer, and the wrapper constructors depend
// on, so a caller can iterate or compose any of them interchangeably.
//
// A View is copyable by reference semantics: copying a View value
// (e.g. passing it to NewCursor) does not copy the underlying
// storage. Iterating a View consumes the Cursor built from it, not
// the View itself, so the same View can back any number of
// independent cursors.
type View[W Word] interface {
	// Layer0 returns the Layer-0 word at word offset idx, or the zero
	// word if idx is out of range.
	Layer0(idx uint32) W
	// Layer1 returns the Layer-1 word at word offset idx, or the zero
	// word if idx is out of range.
	Layer1(idx uint32) W
	// Layer2 returns the Layer-2 word at word offset idx, or the zero
	// word if idx is out of range.
	Layer2(idx uint32) W
	// Layer3 returns the single Layer-3 word.
	Layer3() W
	// Contains reports whether index i is a member.
	Contains(i uint32) bool
}

// layerAt reads View v's layer at the given level (0-3) and offset,
// panicking on an invalid level. It is the one place
// the four View accessors are unified for code that is itself generic
// over level, such as Cursor.handleLevel.
func layerAt[W Word](v View[W], level int, idx uint32) W {
	switch level {
	case 0:
		return v.Layer0(idx)
	case 1:
		return v.Layer1(idx)
	case 2:
		return v.Layer2(idx)
	case 3:
		return v.Layer3()
	default:
		panic(layerRangeError(level))
	}
}
