// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command bfjit runs a program against a fresh tape, compiling each loop
// to native code as it closes.
package main

import (
	"flag"
	"log"
	"os"

	"bfjit/driver"
	"bfjit/encoder"
	"bfjit/tape"
	"bfjit/verify"
)

func main() {
	log.SetPrefix("bfjit: ")
	log.SetFlags(0)

	verbose := flag.Bool("v", false, "enable/disable verbose mode")
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(0)
	}

	encoder.SetDebugMode(*verbose)
	verify.SetDebugMode(*verbose)

	run(flag.Arg(0))
}

func run(fname string) {
	f, err := os.Open(fname)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	t := tape.New(tape.DefaultSize)
	enc := encoder.New(t.BaseAddr(), int(os.Stdin.Fd()), int(os.Stdout.Fd()))
	d := driver.New(t, enc, int(os.Stdin.Fd()), int(os.Stdout.Fd()))

	if err := d.Run(f); err != nil {
		log.Fatalf("could not run %s: %v", fname, err)
	}
}
