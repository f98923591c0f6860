// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import (
	"io"
	"os"
	"strings"
	"testing"

	"bfjit/encoder"
	"bfjit/tape"
)

// runProgram feeds src through a fresh Driver, with stdin fed from the
// given bytes and stdout captured via a pipe, matching spec.md §8's
// concrete scenarios exactly.
func runProgram(t *testing.T, src string, stdin []byte) (stdout []byte, tp *tape.Tape, err error) {
	t.Helper()

	inR, inW, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() (stdin): %v", err)
	}
	outR, outW, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() (stdout): %v", err)
	}

	go func() {
		inW.Write(stdin)
		inW.Close()
	}()

	tp = tape.New(1024)
	enc := encoder.New(tp.BaseAddr(), int(inR.Fd()), int(outW.Fd()))
	d := New(tp, enc, int(inR.Fd()), int(outW.Fd()))

	runErr := d.Run(strings.NewReader(src))
	outW.Close()

	out, readErr := io.ReadAll(outR)
	if readErr != nil {
		t.Fatalf("reading captured stdout: %v", readErr)
	}
	inR.Close()
	outR.Close()

	return out, tp, runErr
}

func TestEchoOneByte(t *testing.T) {
	out, tp, err := runProgram(t, ",.", []byte("A"))
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if string(out) != "A" {
		t.Fatalf("stdout = %q, want %q", out, "A")
	}
	if tp.Head != 0 {
		t.Fatalf("head = %d, want 0", tp.Head)
	}
	tp.Head = 0
	if tp.At() != 'A' {
		t.Fatalf("tape[0] = %q, want 'A'", tp.At())
	}
}

func TestAddTwoThenPrint(t *testing.T) {
	const prog = "++++++++[>++++++++<-]>+."
	out, tp, err := runProgram(t, prog, nil)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(out) != 1 || out[0] != 0x41 {
		t.Fatalf("stdout = %v, want [0x41]", out)
	}
	if tp.Head != 1 {
		t.Fatalf("head = %d, want 1", tp.Head)
	}
}

func TestHelloWorld(t *testing.T) {
	const prog = `++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]>>.>---.+++++++..+++.>>.<-.<.+++.------.--------.>>+.>++.`
	out, _, err := runProgram(t, prog, nil)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if string(out) != "Hello World!\n" {
		t.Fatalf("stdout = %q, want %q", out, "Hello World!\n")
	}
}

func TestDeadLoopSkip(t *testing.T) {
	const prog = "[>+<-]+."
	out, tp, err := runProgram(t, prog, nil)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(out) != 1 || out[0] != 0x01 {
		t.Fatalf("stdout = %v, want [0x01]", out)
	}
	if tp.Head != 0 {
		t.Fatalf("head = %d, want 0", tp.Head)
	}
}

// TestNestedLoop exercises spec.md §8 scenario 5. The program's inner
// loop ("[->+<]") fully drains cell 1 into cell 2 on the outer loop's
// first pass; the outer loop's second pass finds cell 1 already zero, so
// it contributes nothing further. Tracing the literal program therefore
// gives cell 2 = 3 (the original count of cell 1), not double it — see
// DESIGN.md for why this departs from spec.md's stated expectation.
func TestNestedLoop(t *testing.T) {
	const prog = "++>+++<[->[->+<]<]"
	_, tp, err := runProgram(t, prog, nil)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	cases := []struct {
		head uint64
		want byte
	}{
		{0, 0},
		{1, 0},
		{2, 3},
	}
	for _, c := range cases {
		tp.Head = c.head
		if got := tp.At(); got != c.want {
			t.Errorf("tape[%d] = %d, want %d", c.head, got, c.want)
		}
	}
}

func TestMalformedUnclosedOpen(t *testing.T) {
	_, _, err := runProgram(t, "[+", nil)
	if err == nil {
		t.Fatal("Run(\"[+\") = nil error, want Malformed")
	}
}

func TestMalformedUnmatchedClose(t *testing.T) {
	_, _, err := runProgram(t, "]", nil)
	if err == nil {
		t.Fatal("Run(\"]\") = nil error, want Malformed")
	}
}

func TestBalancedEmptyLoopsNoOp(t *testing.T) {
	out, tp, err := runProgram(t, "[][][]", nil)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("stdout = %v, want empty", out)
	}
	if tp.Head != 0 {
		t.Fatalf("head = %d, want 0", tp.Head)
	}
}
