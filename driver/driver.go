// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package driver consumes a command stream and drives both halves of the
// hybrid execute-while-compiling core: it keeps the Tape and head
// consistent by direct interpretation (including skipping dead loops),
// and forwards every command to an Encoder, triggering native execution
// whenever a live loop closes.
package driver

import (
	"fmt"
	"io"
	"syscall"

	"bfjit/encoder"
	"bfjit/scanner"
	"bfjit/tape"
	"bfjit/verify"
)

// Driver is the top-level state machine described in spec.md §3 ("Driver
// state") and §4.4.
type Driver struct {
	tape  *tape.Tape
	enc   *encoder.Encoder
	fdIn  int
	fdOut int

	balance   int
	skipLevel int
}

// New builds a Driver over t, emitting native code through enc. Both must
// already agree on the same tape base address and descriptors: callers
// construct enc with t.BaseAddr() and these same fdIn/fdOut (see
// cmd/bfjit for the wiring), since the native code emitted by enc
// performs its own I/O on the same descriptors independently of Driver's
// direct interpretation.
func New(t *tape.Tape, enc *encoder.Encoder, fdIn, fdOut int) *Driver {
	return &Driver{tape: t, enc: enc, fdIn: fdIn, fdOut: fdOut}
}

// write transfers exactly the byte under the head to fdOut, or the
// underlying OS error on failure.
func (d *Driver) write() error {
	_, err := syscall.Write(d.fdOut, d.tape.Slice())
	return err
}

// read issues a single read of up to one byte into the cell under the
// head, per spec.md §6: "the system issues a single one-byte read and
// does not loop on short reads". A short read (including EOF) leaves the
// cell unchanged — see spec.md §9's open question on this behavior,
// resolved in DESIGN.md by following original_source/ literally.
func (d *Driver) read() error {
	_, err := syscall.Read(d.fdIn, d.tape.Slice())
	if err == io.EOF {
		return nil
	}
	return err
}

func (d *Driver) skipping() bool {
	return d.skipLevel != 0
}

// Run consumes r one command at a time until EOF and returns nil on a
// well-formed program. A malformed program yields a verify.Malformed
// value (returned as is); I/O and encoder failures are returned wrapped
// with the offset of the command that triggered them.
func (d *Driver) Run(r io.Reader) error {
	s := scanner.New(r)
	offset := 0
	for {
		cmd, err := s.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("driver: reading command stream: %w", err)
		}

		if err := d.apply(cmd, offset); err != nil {
			return err
		}
		offset++

		if verify.PrintDebugInfo {
			if err := verify.CheckInvariants(d.balance, d.skipLevel, d.enc.OpenLoopDepth()); err != nil {
				return fmt.Errorf("driver: invariant violated at offset %d: %w", offset-1, err)
			}
		}
	}

	if d.balance != 0 {
		return verify.UnclosedOpen(d.balance)
	}
	return nil
}

func (d *Driver) apply(cmd byte, offset int) error {
	switch cmd {
	case '+':
		if !d.skipping() {
			d.tape.Inc()
		}
		d.enc.Inc()
	case '-':
		if !d.skipping() {
			d.tape.Dec()
		}
		d.enc.Dec()
	case '<':
		if !d.skipping() {
			d.tape.Head--
		}
		d.enc.Left()
	case '>':
		if !d.skipping() {
			d.tape.Head++
		}
		d.enc.Right()
	case '.':
		if !d.skipping() {
			if err := d.write(); err != nil {
				return fmt.Errorf("driver: writing output at offset %d: %w", offset, err)
			}
		}
		d.enc.Print()
	case ',':
		if !d.skipping() {
			if err := d.read(); err != nil {
				return fmt.Errorf("driver: reading input at offset %d: %w", offset, err)
			}
		}
		d.enc.Read()
	case '[':
		d.balance++
		if !d.skipping() && d.tape.At() == 0 {
			d.skipLevel = d.balance
		}
		d.enc.LoopOpen()
	case ']':
		if d.balance == 0 {
			return verify.UnmatchedClose(offset)
		}
		d.enc.LoopClose()
		d.balance--
		if d.balance < d.skipLevel {
			d.skipLevel = 0
		}
		if !d.skipping() && d.tape.At() != 0 {
			newHead, err := d.enc.MaterializeLastLoop(d.tape.Head)
			d.tape.Head = newHead
			if err != nil {
				return fmt.Errorf("driver: materializing loop closed at offset %d: %w", offset, err)
			}
		}
	}
	return nil
}
