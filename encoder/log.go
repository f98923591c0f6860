// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encoder

import (
	"io/ioutil"
	"log"
	"os"
)

// PrintDebugInfo gates whether Encoder logs materialized loop bodies. It is off by default; cmd/bfjit's -v flag sets it.
var PrintDebugInfo = false

var logger *log.Logger

func init() {
	w := ioutil.Discard
	if PrintDebugInfo {
		w = os.Stderr
	}
	logger = log.New(w, "encoder: ", log.Lshortfile)
}

// SetDebugMode toggles PrintDebugInfo and reconfigures the package logger
// to match, so callers don't need to set the logger up before the
// package's init has already run.
func SetDebugMode(v bool) {
	PrintDebugInfo = v
	w := ioutil.Discard
	if v {
		w = os.Stderr
	}
	logger.SetOutput(w)
}
