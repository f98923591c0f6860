// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux && amd64

package encoder

import "unsafe"

// executeRegion is the system's one unsafe boundary (spec.md §9): it
// invokes an already-mapped PROT_READ|PROT_EXEC region as a parameterless
// function returning a uint64, per the materialized loop's
// prologue/epilogue calling convention (spec.md §4.2).
//
// Precondition: mem is non-empty, currently mapped PROT_READ|PROT_EXEC,
// and its contents begin with the prologue built by amd64.go's
// prologue(), so that invoking it respects this platform's calling
// convention and leaves the result in the integer return register.
//
// The cast below relies on the fact that a Go func value is, under this
// architecture's ABI, a pointer to a struct whose first word is the
// function's entry address — constructing that struct by hand and
// reinterpreting its address as a func value is what lets a slice of raw
// machine code be called like any other Go function.
func executeRegion(mem []byte) uint64 {
	entry := &struct{ code uintptr }{code: uintptr(unsafe.Pointer(&mem[0]))}
	fn := *(*func() uint64)(unsafe.Pointer(&entry))
	return fn()
}
