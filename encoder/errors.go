// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encoder

import "fmt"

// AllocFailed is returned when the Loader could not obtain executable
// memory for a loop body.
type AllocFailed struct {
	Err error
}

func (e AllocFailed) Error() string {
	return fmt.Sprintf("encoder: could not allocate executable memory: %v", e.Err)
}

// ProtectFailed is returned when the Loader could not mark an allocated
// region executable. The region was successfully released before this
// error was returned.
type ProtectFailed struct {
	Err error
}

func (e ProtectFailed) Error() string {
	return fmt.Sprintf("encoder: could not mark memory executable: %v", e.Err)
}

// UnmapFailed is returned when the Loader could not release an executable
// region after it had already been invoked. The native call's return
// value (and therefore the new head position) is still valid; this error
// is reported after the fact.
type UnmapFailed struct {
	Err error
}

func (e UnmapFailed) Error() string {
	return fmt.Sprintf("encoder: could not release executable memory: %v", e.Err)
}

// DoubleFault is returned when marking a region executable failed, and
// the subsequent attempt to release that same region also failed.
type DoubleFault struct {
	ProtectErr error
	UnmapErr   error
}

func (e DoubleFault) Error() string {
	return fmt.Sprintf("encoder: could not mark memory executable (%v), and could not release it either (%v)", e.ProtectErr, e.UnmapErr)
}
