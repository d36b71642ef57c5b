// Copyright 2023 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package mdregen

import (
	"strings"
	"unicode/utf8"
)

// A Cursor is a forward-only position within a source document.
// Its position never decreases.
// Operations at the end of input report a negative or empty result
// instead of panicking.
type Cursor struct {
	src string
	pos int
}

// NewCursor returns a cursor positioned at the beginning of src.
func NewCursor(src string) *Cursor {
	return &Cursor{src: src}
}

// Pos returns the byte offset of the cursor from the beginning of the source.
func (c *Cursor) Pos() int {
	return c.pos
}

// Rest returns the unconsumed portion of the source.
func (c *Cursor) Rest() string {
	return c.src[c.pos:]
}

// AtEnd reports whether the entire source has been consumed.
func (c *Cursor) AtEnd() bool {
	return c.pos >= len(c.src)
}

// Peek returns the next byte without consuming it
// or 0 if the cursor is at the end of input.
func (c *Cursor) Peek() byte {
	if c.AtEnd() {
		return 0
	}
	return c.src[c.pos]
}

// PeekMatches reports whether the unconsumed source starts with lit.
func (c *Cursor) PeekMatches(lit string) bool {
	return strings.HasPrefix(c.src[c.pos:], lit)
}

// ConsumeIf advances past lit if the unconsumed source starts with it
// and reports whether it did so.
func (c *Cursor) ConsumeIf(lit string) bool {
	if !c.PeekMatches(lit) {
		return false
	}
	c.pos += len(lit)
	return true
}

// Advance advances the cursor by n bytes.
// It panics if n is negative or past the end of the source.
func (c *Cursor) Advance(n int) {
	newPos := c.pos + n
	if n < 0 || newPos > len(c.src) {
		panic("index out of bounds")
	}
	c.pos = newPos
}

// AdvanceRune consumes one UTF-8 encoded character and returns it as a string.
// It returns the empty string at the end of input.
func (c *Cursor) AdvanceRune() string {
	if c.AtEnd() {
		return ""
	}
	_, n := utf8.DecodeRuneInString(c.src[c.pos:])
	s := c.src[c.pos : c.pos+n]
	c.pos += n
	return s
}

// TakeWhileExcluding consumes characters up to (but not including)
// the first byte in set, a line ending, or the end of input,
// and returns the consumed text.
// set must consist of ASCII characters.
func (c *Cursor) TakeWhileExcluding(set string) string {
	start := c.pos
	for c.pos < len(c.src) {
		b := c.src[c.pos]
		if b == '\n' || b == '\r' || strings.IndexByte(set, b) >= 0 {
			break
		}
		c.pos++
	}
	return c.src[start:c.pos]
}

// CountLeading returns the number of consecutive b bytes
// at the cursor's position without consuming them.
func (c *Cursor) CountLeading(b byte) int {
	n := 0
	for c.pos+n < len(c.src) && c.src[c.pos+n] == b {
		n++
	}
	return n
}

// AtLineEnd reports whether the cursor is positioned
// at a line ending or the end of input.
func (c *Cursor) AtLineEnd() bool {
	b := c.Peek()
	return c.AtEnd() || b == '\n' || b == '\r'
}

// ConsumeLineEnd consumes a single "\n", "\r\n", or "\r"
// and reports whether one was present.
func (c *Cursor) ConsumeLineEnd() bool {
	return c.ConsumeIf("\r\n") || c.ConsumeIf("\n") || c.ConsumeIf("\r")
}

// SkipLine consumes the remainder of the current line,
// including its line ending.
func (c *Cursor) SkipLine() {
	for !c.AtLineEnd() {
		c.pos++
	}
	c.ConsumeLineEnd()
}

// isBlankLine reports whether the rest of the current line
// consists only of spaces and tabs.
func (c *Cursor) isBlankLine() bool {
	for i := c.pos; i < len(c.src); i++ {
		switch c.src[i] {
		case ' ', '\t':
		case '\n', '\r':
			return true
		default:
			return false
		}
	}
	return true
}
