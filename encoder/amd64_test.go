// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encoder

import "testing"

func TestFixedSizes(t *testing.T) {
	// spec.md §6: "3 bytes for compare, 6 bytes for conditional jump
	// including displacement, 5 bytes for unconditional jump including
	// displacement" — these sizes are load-bearing for the back-patch
	// arithmetic in encoder.go.
	if len(cmpZero) != 3 {
		t.Fatalf("len(cmpZero) = %d, want 3", len(cmpZero))
	}
	if len(jumpIfZeroOpcode)+4 != 6 {
		t.Fatalf("conditional jump size = %d, want 6", len(jumpIfZeroOpcode)+4)
	}
	if len(jumpOpcode)+4 != 5 {
		t.Fatalf("unconditional jump size = %d, want 5", len(jumpOpcode)+4)
	}
}

func TestPrologueEpilogueSizes(t *testing.T) {
	p := prologue(0xdeadbeef)
	if len(p) != 14 {
		t.Fatalf("len(prologue(...)) = %d, want 14", len(p))
	}
	if len(epilogue) != 5 {
		t.Fatalf("len(epilogue) = %d, want 5", len(epilogue))
	}
}

func TestPrologueEncodesAddress(t *testing.T) {
	const addr = uint64(0x1122334455)
	p := prologue(addr)
	tail := p[len(p)-8:]
	got := uint64(0)
	for i := 7; i >= 0; i-- {
		got = got<<8 | uint64(tail[i])
	}
	if got != addr {
		t.Fatalf("encoded address = %#x, want %#x", got, addr)
	}
}

func TestIOSyscallNumbers(t *testing.T) {
	print := emitPrint(1)
	read := emitRead(0)
	if len(print) != len(read) {
		t.Fatalf("print/read emitted different lengths: %d vs %d", len(print), len(read))
	}
	// Disassembled: mov rsi, rbx; mov rdi, fd; mov rdx, 1; mov rax, sysno; syscall.
	if got := Disassemble(print)[3].Text; got != "mov rax, 1" {
		t.Fatalf("print syscall number: got %q, want %q", got, "mov rax, 1")
	}
	if got := Disassemble(read)[3].Text; got != "mov rax, 0" {
		t.Fatalf("read syscall number: got %q, want %q", got, "mov rax, 0")
	}
}
