// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encoder

import (
	"errors"
	"testing"
)

type fakeLoader struct {
	ret uint64
	err error
}

func (f fakeLoader) Run(prologue, body, epilogue []byte) (uint64, error) {
	return f.ret, f.err
}

func TestMaterializeTranslatesToTapeOffset(t *testing.T) {
	const tapeBase = uintptr(0x7f0000000000)
	e := &Encoder{tapeBase: tapeBase, loader: fakeLoader{ret: uint64(tapeBase) + 42}}
	e.LoopOpen()
	e.Inc()
	e.LoopClose()

	head, err := e.MaterializeLastLoop(0)
	if err != nil {
		t.Fatalf("MaterializeLastLoop() error: %v", err)
	}
	if head != 42 {
		t.Fatalf("head = %d, want 42", head)
	}
}

func TestMaterializePropagatesAllocFailed(t *testing.T) {
	e := &Encoder{tapeBase: 0x1000, loader: fakeLoader{err: AllocFailed{Err: errors.New("boom")}}}
	e.LoopOpen()
	e.LoopClose()

	_, err := e.MaterializeLastLoop(0)
	var af AllocFailed
	if !errors.As(err, &af) {
		t.Fatalf("MaterializeLastLoop() error = %v, want AllocFailed", err)
	}
}

func TestMaterializeReportsUnmapFailedPostHoc(t *testing.T) {
	const tapeBase = uintptr(0x2000)
	e := &Encoder{tapeBase: tapeBase, loader: fakeLoader{
		ret: uint64(tapeBase) + 7,
		err: UnmapFailed{Err: errors.New("busy")},
	}}
	e.LoopOpen()
	e.LoopClose()

	head, err := e.MaterializeLastLoop(0)
	var uf UnmapFailed
	if !errors.As(err, &uf) {
		t.Fatalf("MaterializeLastLoop() error = %v, want UnmapFailed", err)
	}
	if head != 7 {
		t.Fatalf("head = %d, want 7 (must still be reported despite UnmapFailed)", head)
	}
}
