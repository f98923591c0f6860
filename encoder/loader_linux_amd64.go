// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux && amd64

package encoder

import "golang.org/x/sys/unix"

// defaultLoader implements loader on top of golang.org/x/sys/unix's mmap,
// mprotect, and munmap wrappers.
type defaultLoader struct{}

func (defaultLoader) Run(prologue, body, epilogue []byte) (uint64, error) {
	size := len(prologue) + len(body) + len(epilogue)

	region, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return 0, AllocFailed{Err: err}
	}

	n := copy(region, prologue)
	n += copy(region[n:], body)
	copy(region[n:], epilogue)

	if err := unix.Mprotect(region, unix.PROT_READ|unix.PROT_EXEC); err != nil {
		if uerr := unix.Munmap(region); uerr != nil {
			return 0, DoubleFault{ProtectErr: err, UnmapErr: uerr}
		}
		return 0, ProtectFailed{Err: err}
	}

	ret := executeRegion(region)

	if uerr := unix.Munmap(region); uerr != nil {
		return ret, UnmapFailed{Err: uerr}
	}
	return ret, nil
}
