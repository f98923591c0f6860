// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scanner turns a byte stream into a stream of the eight
// recognized commands, silently discarding everything else (comments, in
// this language's terms).
package scanner

import (
	"bufio"
	"io"
)

// Commands is the set of bytes the driver dispatches on. Anything else
// read from the source is ignored.
const Commands = "+-<>.,[]"

// Scanner reads commands one at a time from an underlying io.Reader,
// tracking line/column for diagnostics the way a conventional lexer does,
// even though this language has no multi-byte tokens to assemble.
type Scanner struct {
	r    *bufio.Reader
	Line int
	Col  int
}

// New wraps r for command-at-a-time scanning.
func New(r io.Reader) *Scanner {
	return &Scanner{r: bufio.NewReader(r), Line: 1, Col: 1}
}

// Next returns the next recognized command byte. It returns io.EOF once
// the underlying reader is exhausted. Bytes that are not one of Commands
// are skipped over transparently; Next never returns them.
func (s *Scanner) Next() (byte, error) {
	for {
		b, err := s.r.ReadByte()
		if err != nil {
			return 0, err
		}

		if b == '\n' {
			s.Line++
			s.Col = 1
		} else {
			s.Col++
		}

		if isCommand(b) {
			return b, nil
		}
	}
}

func isCommand(b byte) bool {
	for i := 0; i < len(Commands); i++ {
		if Commands[i] == b {
			return true
		}
	}
	return false
}
