// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encoder

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Instr is one decoded instruction from an encoded buffer, used only for
// debug output (MaterializeLastLoop's logging under the -v CLI flag). Offset is relative
// to the start of the slice passed to Disassemble, not to the Encoder's
// whole buffer.
type Instr struct {
	Offset int
	Text   string
}

// Disassemble walks buf, recognizing the fixed instruction shapes this
// package emits, and returns one Instr per recognized instruction. It
// never errors: an unrecognized byte is reported as a single "??" Instr
// so a partial or truncated buffer still produces useful output.
func Disassemble(buf []byte) []Instr {
	var out []Instr
	i := 0
	for i < len(buf) {
		start := i
		text, n := decodeOne(buf[i:])
		out = append(out, Instr{Offset: start, Text: text})
		i += n
	}
	return out
}

func decodeOne(b []byte) (string, int) {
	switch {
	case hasPrefix(b, incP):
		return "inc rbx", len(incP)
	case hasPrefix(b, decP):
		return "dec rbx", len(decP)
	case hasPrefix(b, incCell):
		return "inc byte [rbx]", len(incCell)
	case hasPrefix(b, decCell):
		return "dec byte [rbx]", len(decCell)
	case hasPrefix(b, cmpZero):
		return "cmp byte [rbx], 0", len(cmpZero)
	case hasPrefix(b, jumpIfZeroOpcode) && len(b) >= 6:
		rel := int32(binary.LittleEndian.Uint32(b[2:6]))
		return fmt.Sprintf("je %+d", rel), 6
	case hasPrefix(b, jumpOpcode) && len(b) >= 5:
		rel := int32(binary.LittleEndian.Uint32(b[1:5]))
		return fmt.Sprintf("jmp %+d", rel), 5
	case hasPrefix(b, movRSIFromRBX):
		return "mov rsi, rbx", len(movRSIFromRBX)
	case hasPrefix(b, movRDIImm32) && len(b) >= 7:
		imm := int32(binary.LittleEndian.Uint32(b[3:7]))
		return fmt.Sprintf("mov rdi, %d", imm), 7
	case hasPrefix(b, movRDXImm32One):
		return "mov rdx, 1", len(movRDXImm32One)
	case hasPrefix(b, movRAXImm32) && len(b) >= 7:
		imm := int32(binary.LittleEndian.Uint32(b[3:7]))
		return fmt.Sprintf("mov rax, %d", imm), 7
	case hasPrefix(b, syscallInsn):
		return "syscall", len(syscallInsn)
	default:
		return fmt.Sprintf("?? %02x", b[0]), 1
	}
}

func hasPrefix(b, prefix []byte) bool {
	if len(b) < len(prefix) {
		return false
	}
	for i := range prefix {
		if b[i] != prefix[i] {
			return false
		}
	}
	return true
}

// Dump renders Disassemble's output as one instruction per line, prefixed
// with its byte offset, for -v diagnostics.
func Dump(buf []byte) string {
	var sb strings.Builder
	for _, instr := range Disassemble(buf) {
		fmt.Fprintf(&sb, "%04x  %s\n", instr.Offset, instr.Text)
	}
	return sb.String()
}
