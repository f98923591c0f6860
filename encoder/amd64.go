// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encoder

import "encoding/binary"

// Fixed byte encodings for the x86-64 target. P (the tape-pointer
// register) is RBX, a callee-saved general-purpose register, so it
// survives the syscalls emitted by print/read across the prologue and
// epilogue below. Sizes here are load-bearing: LoopClose (in encoder.go)
// assumes cmpZero is 3 bytes and jumpIfZero is 6 bytes including its
// rel32, matching spec.md §6.

var (
	// incP is `inc rbx`.
	incP = []byte{0x48, 0xFF, 0xC3}
	// decP is `dec rbx`.
	decP = []byte{0x48, 0xFF, 0xCB}
	// incCell is `inc byte ptr [rbx]`.
	incCell = []byte{0xFE, 0x03}
	// decCell is `dec byte ptr [rbx]`.
	decCell = []byte{0xFE, 0x0B}
	// cmpZero is `cmp byte ptr [rbx], 0` — 3 bytes.
	cmpZero = []byte{0x80, 0x3B, 0x00}
	// jumpIfZeroOpcode is the `je rel32` opcode, preceding a 4-byte
	// placeholder displacement (6 bytes total with the placeholder).
	jumpIfZeroOpcode = []byte{0x0F, 0x84}
	// jumpOpcode is the `jmp rel32` opcode, preceding a 4-byte
	// displacement (5 bytes total with the displacement).
	jumpOpcode = []byte{0xE9}
	// syscallInsn traps into the kernel.
	syscallInsn = []byte{0x0F, 0x05}
)

const (
	sysRead  = 0 // Linux amd64 sys_read
	sysWrite = 1 // Linux amd64 sys_write
)

// movRSIFromRBX is `mov rsi, rbx`.
var movRSIFromRBX = []byte{0x48, 0x89, 0xDE}

// movRDIImm32 is `mov rdi, <imm32>` (sign-extended to 64 bits); the
// immediate is appended by the caller.
var movRDIImm32 = []byte{0x48, 0xC7, 0xC7}

// movRDXImm32One is `mov rdx, 1` (the transfer length, always one byte).
var movRDXImm32One = []byte{0x48, 0xC7, 0xC2, 0x01, 0x00, 0x00, 0x00}

// movRAXImm32 is `mov rax, <imm32>` (the syscall number); the immediate
// is appended by the caller.
var movRAXImm32 = []byte{0x48, 0xC7, 0xC0}

// prologuePrefix is `push rbp; mov rbp, rsp; movabs rbx, <imm64>`. The
// 8-byte immediate (tape_base + head) is appended separately at
// materialization time, since it is only known then.
var prologuePrefix = []byte{0x55, 0x48, 0x89, 0xE5, 0x48, 0xBB}

// epilogue is `mov rax, rbx; pop rbp; ret`.
var epilogue = []byte{0x48, 0x89, 0xD8, 0x5D, 0xC3}

func emitPrint(fd int32) []byte {
	return emitIO(fd, sysWrite)
}

func emitRead(fd int32) []byte {
	return emitIO(fd, sysRead)
}

func emitIO(fd int32, sysno int32) []byte {
	var buf []byte
	buf = append(buf, movRSIFromRBX...)
	buf = append(buf, movRDIImm32...)
	buf = append(buf, imm32(fd)...)
	buf = append(buf, movRDXImm32One...)
	buf = append(buf, movRAXImm32...)
	buf = append(buf, imm32(sysno)...)
	buf = append(buf, syscallInsn...)
	return buf
}

func imm32(v int32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(v))
	return b
}

func prologue(tapeCellAddr uint64) []byte {
	buf := make([]byte, 0, len(prologuePrefix)+8)
	buf = append(buf, prologuePrefix...)
	addr := make([]byte, 8)
	binary.LittleEndian.PutUint64(addr, tapeCellAddr)
	return append(buf, addr...)
}
