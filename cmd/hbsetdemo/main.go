// Copyright 2024 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/grailbio/hbitset/bitset"
	"github.com/grailbio/hbitset/hblog"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("hbsetdemo: ")

	n := flag.Int("n", 1_000_000, "size of the simulated entity population")
	density := flag.Float64("density", 0.001, "fraction of entities assigned a component")
	debug := flag.Bool("debug", false, "enable hbitset debug logging")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `usage: hbsetdemo [-n N] [-density F]

hbsetdemo builds two sparse component sets over a simulated entity
population and reports how many entities carry both, either, or
only the first (positions without velocities), without ever
materializing a dense bitmap.
`)
		os.Exit(2)
	}
	flag.Parse()
	if *debug {
		hblog.SetLevel(hblog.Debug)
	}

	if *n <= 0 || *n > int(bitset.Ceiling[uint64]()) {
		log.Fatalf("n must be in (0, %d]", bitset.Ceiling[uint64]())
	}

	positions := bitset.WithCapacity[uint64](uint32(*n))
	velocities := bitset.WithCapacity[uint64](uint32(*n))
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < *n; i++ {
		if rng.Float64() < *density {
			positions.Add(uint32(i))
		}
		if rng.Float64() < *density {
			velocities.Add(uint32(i))
		}
	}

	both := bitset.And[uint64](positions, velocities)
	either := bitset.Or[uint64](positions, velocities)
	onlyPositions := bitset.And[uint64](positions, bitset.Not[uint64](velocities))

	fmt.Printf("positions:       %s\n", positions)
	fmt.Printf("velocities:      %s\n", velocities)
	fmt.Printf("moving entities: %d\n", count[uint64](both))
	fmt.Printf("has either:      %d\n", count[uint64](either))
	fmt.Printf("stationary only: %d\n", count[uint64](onlyPositions))
}

func count[W bitset.Word](v bitset.View[W]) int {
	n := 0
	cur := bitset.NewCursor[W](v)
	for {
		if _, ok := cur.Next(); !ok {
			return n
		}
		n++
	}
}
