// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package encoder turns the eight-command language into a growing x86-64
// instruction stream, and materializes and runs the most recently closed
// loop as native code. It is the "encode" half of the hybrid
// execute-while-compiling core; package driver owns the "execute" half.
package encoder

import "encoding/binary"

// loader is the Loader role from spec.md §4.2: given a fully-formed
// prologue/body/epilogue triple, it allocates, populates, executes, and
// releases one executable memory region per call. Its lifetime never
// spans more than a single MaterializeLastLoop call (spec.md §5).
// defaultLoader (loader_linux_amd64.go) is the only production
// implementation; tests substitute a mock to exercise error paths without
// mapping real executable memory.
type loader interface {
	Run(prologue, body, epilogue []byte) (uint64, error)
}

// Encoder owns the append-only encoded buffer, the open-loop offset
// stack, and the last-cycle marker described in spec.md §3. It borrows an
// immutable tape-base address and the two I/O descriptors at
// construction; it never mutates the tape itself, and never sees the
// head position except when asked to materialize a loop.
type Encoder struct {
	buf       []byte
	openLoops []int // offsets just past each unmatched '['s placeholder displacement
	lastCycle int   // offset where the most recently closed loop's compare instruction begins

	tapeBase uintptr
	fdIn     int32
	fdOut    int32

	loader loader
}

// New constructs an Encoder targeting a tape whose cells start at
// tapeBase, with fdIn/fdOut baked into emitted I/O instructions as
// immediates (spec.md §4.1: "changing them later is not supported").
func New(tapeBase uintptr, fdIn, fdOut int) *Encoder {
	return &Encoder{
		tapeBase: tapeBase,
		fdIn:     int32(fdIn),
		fdOut:    int32(fdOut),
		loader:   defaultLoader{},
	}
}

// Len returns the current size of the encoded buffer. It is monotonically
// non-decreasing over the Encoder's lifetime (spec.md §8 invariant 4).
func (e *Encoder) Len() int {
	return len(e.buf)
}

// OpenLoopDepth returns how many '[' are currently unmatched. Used by
// package verify and by tests to check spec.md §8 invariant 2.
func (e *Encoder) OpenLoopDepth() int {
	return len(e.openLoops)
}

// Right emits `>`.
func (e *Encoder) Right() { e.emit(incP) }

// Left emits `<`.
func (e *Encoder) Left() { e.emit(decP) }

// Inc emits `+`.
func (e *Encoder) Inc() { e.emit(incCell) }

// Dec emits `-`.
func (e *Encoder) Dec() { e.emit(decCell) }

// Print emits `.`.
func (e *Encoder) Print() { e.emit(emitPrint(e.fdOut)) }

// Read emits `,`.
func (e *Encoder) Read() { e.emit(emitRead(e.fdIn)) }

// LoopOpen emits `[`: a zero-compare followed by a conditional forward
// jump whose displacement is a zeroed placeholder, and records the
// placeholder's location on the open-loop stack.
func (e *Encoder) LoopOpen() {
	e.emit(cmpZero)
	e.emit(jumpIfZeroOpcode)
	e.emit([]byte{0, 0, 0, 0})
	e.openLoops = append(e.openLoops, len(e.buf))
}

// LoopClose emits `]`: the backward unconditional jump, back-patches the
// matching `[`'s forward displacement, and advances the last-cycle
// marker to the start of this loop's compare instruction.
//
// Callers (package driver) must never invoke LoopClose without a prior
// unmatched LoopOpen; that precondition is the driver's `balance`
// bookkeeping to enforce (spec.md §7 Malformed), not this package's.
func (e *Encoder) LoopClose() {
	top := e.openLoops[len(e.openLoops)-1]
	e.openLoops = e.openLoops[:len(e.openLoops)-1]

	forward := int32(len(e.buf) - top)
	e.emit(jumpOpcode)
	// The jmp must land back on the loop's compare instruction, 9 bytes
	// before top (3-byte cmp + 6-byte je), not on top itself: its
	// displacement is relative to the address of the *next* instruction,
	// which is forward+5 bytes past top, so the jump back to top-9 is
	// -(forward + 5 + 9).
	e.emit(imm32(-(forward + 14)))

	binary.LittleEndian.PutUint32(e.buf[top-4:top], uint32(forward+5))

	// top is just past the 6-byte `je rel32` (2-byte opcode + the 4-byte
	// placeholder just patched), which itself follows the 3-byte compare.
	e.lastCycle = top - 9
}

func (e *Encoder) emit(b []byte) {
	e.buf = append(e.buf, b...)
}

// MaterializeLastLoop builds the region spanning the last-cycle marker to
// the buffer's current end, runs it as native code with the tape pointer
// initialized to tapeBase+head, and returns the head position the native
// code left it at.
func (e *Encoder) MaterializeLastLoop(head uint64) (uint64, error) {
	body := e.buf[e.lastCycle:]
	if PrintDebugInfo {
		logger.Printf("materializing loop at offset %d, %d bytes, head=%d\n%s", e.lastCycle, len(body), head, Dump(body))
	}
	ret, err := e.loader.Run(prologue(uint64(e.tapeBase)+head), body, epilogue)
	// ret is the absolute address the tape pointer held on exit, even on
	// UnmapFailed (the call already happened); translate it back to a
	// tape-relative offset regardless of err, matching spec.md §4.2 step 8.
	return ret - uint64(e.tapeBase), err
}
