// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package verify holds the structural checks that correspond to
// spec.md §8's testable invariants: balance/skip-level bookkeeping, and
// the "malformed program" error taxonomy from spec.md §7. It is consulted
// as a debug assertion inline in package driver (CheckInvariants) and
// directly by this package's tests.
package verify

import "fmt"

// Malformed is returned when the command stream is not a well-formed
// program: a ']' with no matching '[' (Offset identifies it, seen
// immediately "on sight"), or an unclosed '[' still open at end of
// stream (Offset is -1, Balance > 0 identifies how many).
type Malformed struct {
	Offset  int // byte offset of the offending command, or -1 at end of stream
	Balance int // the driver's balance count when the problem was detected
	Reason  string
}

func (e Malformed) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("malformed program: unmatched ']' at offset %d: %s", e.Offset, e.Reason)
	}
	return fmt.Sprintf("malformed program: %s (balance=%d at end of stream)", e.Reason, e.Balance)
}

// UnmatchedClose builds the Malformed error for a ']' encountered while
// balance is already zero.
func UnmatchedClose(offset int) error {
	return Malformed{Offset: offset, Balance: -1, Reason: "']' with no matching '['"}
}

// UnclosedOpen builds the Malformed error for a non-zero balance at end
// of stream.
func UnclosedOpen(balance int) error {
	return Malformed{Offset: -1, Balance: balance, Reason: "unclosed '['"}
}

// CheckInvariants asserts spec.md §8 invariants 1 and 2:
// 0 <= skipLevel <= balance, and openLoopDepth == balance. It is intended
// to be called after every processed command, gated behind PrintDebugInfo
// so it costs nothing in normal operation.
func CheckInvariants(balance, skipLevel, openLoopDepth int) error {
	if PrintDebugInfo {
		logger.Printf("balance=%d skip_level=%d open_loops=%d", balance, skipLevel, openLoopDepth)
	}
	if balance < 0 {
		return fmt.Errorf("verify: balance went negative (%d) without being caught as Malformed", balance)
	}
	if skipLevel < 0 || skipLevel > balance {
		return fmt.Errorf("verify: skip_level=%d out of range [0, balance=%d]", skipLevel, balance)
	}
	if openLoopDepth != balance {
		return fmt.Errorf("verify: open-loop stack depth=%d != balance=%d", openLoopDepth, balance)
	}
	return nil
}

// BackPatchDistance asserts spec.md §8 invariant 3: the displacement
// patched into a '['s conditional jump must equal the number of bytes
// between the instruction following that conditional jump (afterJump) and
// the instruction following the matching backward jump (afterClose).
func BackPatchDistance(patched int32, afterJump, afterClose int) error {
	want := int32(afterClose - afterJump)
	if patched != want {
		return fmt.Errorf("verify: patched displacement %d != expected %d", patched, want)
	}
	return nil
}
