// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package verify

import (
	"io/ioutil"
	"log"
	"os"
)

// PrintDebugInfo gates whether CheckInvariants is consulted at all by
// package driver, and whether it logs what it checked.
var PrintDebugInfo = false

var logger *log.Logger

func init() {
	w := ioutil.Discard
	if PrintDebugInfo {
		w = os.Stderr
	}
	logger = log.New(w, "verify: ", log.Lshortfile)
}

// SetDebugMode toggles PrintDebugInfo and reconfigures the package logger
// to match.
func SetDebugMode(v bool) {
	PrintDebugInfo = v
	w := ioutil.Discard
	if v {
		w = os.Stderr
	}
	logger.SetOutput(w)
}
