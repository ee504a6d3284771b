// Copyright 2024 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package hblog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grailbio/hbitset/hblog"
)

func TestLevelGating(t *testing.T) {
	defer hblog.SetLevel(hblog.Off)

	hblog.SetLevel(hblog.Off)
	assert.False(t, hblog.At(hblog.Debug))
	assert.False(t, hblog.At(hblog.Info))

	hblog.SetLevel(hblog.Info)
	assert.True(t, hblog.At(hblog.Info))
	assert.False(t, hblog.At(hblog.Debug))

	hblog.SetLevel(hblog.Debug)
	assert.True(t, hblog.At(hblog.Debug))
	assert.True(t, hblog.At(hblog.Info))
}

func TestDebugfDoesNotPanicWhenOff(t *testing.T) {
	hblog.SetLevel(hblog.Off)
	assert.NotPanics(t, func() { hblog.Debugf("unseen %d", 1) })
}
