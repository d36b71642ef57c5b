// Copyright 2024 Ross Light
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

// Package format writes a parsed document back out as Markdown
// that parses to an equivalent document.
package format

import (
	"io"
	"strconv"
	"strings"

	"zombiezen.com/go/mdregen"
)

// Format writes the given document as Markdown to the given writer.
// Blocks are separated by blank lines
// and nested list items are indented by two spaces per level.
// Text is written as stored in the document,
// so escaped angle brackets remain entities.
func Format(w io.Writer, doc *mdregen.Document) error {
	ww := &errWriter{w: w}
	for _, b := range doc.Content {
		if ww.hasWritten {
			ww.WriteString("\n")
		}
		writeBlock(ww, b)
	}
	return ww.err
}

func writeBlock(w *errWriter, block mdregen.Block) {
	switch b := block.(type) {
	case *mdregen.Paragraph:
		writeSpans(w, b.Spans)
		w.WriteString("\n")
	case *mdregen.Header:
		w.WriteString(strings.Repeat("#", b.Level))
		w.WriteString(" ")
		writeSpans(w, b.Spans)
		w.WriteString("\n")
	case *mdregen.Blockquote:
		w.WriteString("> ")
		writeSpans(w, b.Spans)
		w.WriteString("\n")
	case *mdregen.List:
		mdregen.Walk(b, &mdregen.WalkOptions{
			Pre: func(c *mdregen.ListCursor) bool {
				w.WriteString(strings.Repeat("  ", c.Depth()))
				if c.List().Ordered {
					w.WriteString(strconv.Itoa(c.Index() + 1))
					w.WriteString(". ")
				} else {
					w.WriteString("- ")
				}
				writeSpans(w, c.Item().Spans)
				w.WriteString("\n")
				return true
			},
		})
	case *mdregen.Table:
		columns := 1
		if len(b.Head) > 0 && len(b.Head[0]) > 0 {
			columns = len(b.Head[0])
		}
		for _, row := range b.Head {
			writeRow(w, row)
		}
		w.WriteString("|")
		w.WriteString(strings.Repeat("---|", columns))
		w.WriteString("\n")
		for _, row := range b.Body {
			writeRow(w, row)
		}
	case *mdregen.MathBlock:
		w.WriteString("$$")
		w.WriteString(b.Math)
		w.WriteString("$$\n")
	case *mdregen.CodeBlock:
		w.WriteString("```")
		w.WriteString(b.Lang)
		w.WriteString("\n")
		w.WriteString(b.Code)
		w.WriteString("```\n")
	case *mdregen.LinkCard:
		w.WriteString("?[](")
		w.WriteString(b.URL)
		w.WriteString(")\n")
	}
}

func writeRow(w *errWriter, row []string) {
	w.WriteString("|")
	for _, cell := range row {
		w.WriteString(cell)
		w.WriteString("|")
	}
	w.WriteString("\n")
}

func writeSpans(w *errWriter, spans []mdregen.Span) {
	for _, s := range spans {
		switch s := s.(type) {
		case mdregen.Text:
			w.WriteString(s.Text)
		case mdregen.Link:
			w.WriteString("[")
			w.WriteString(s.Text)
			w.WriteString("](")
			w.WriteString(s.URL)
			w.WriteString(")")
		case mdregen.Emphasis:
			writeDelimited(w, "_", "*", s.Text)
		case mdregen.Strong:
			writeDelimited(w, "**", "__", s.Text)
		case mdregen.Math:
			writeDelimited(w, "$", "$", s.Math)
		case mdregen.Code:
			writeDelimited(w, "`", "`", s.Code)
		case mdregen.Image:
			w.WriteString("![](")
			w.WriteString(s.URL)
			w.WriteString(")")
		}
	}
}

// writeDelimited writes text between a pair of markers,
// switching to alt if text contains the preferred marker.
func writeDelimited(w *errWriter, marker, alt, text string) {
	if strings.Contains(text, marker) {
		marker = alt
	}
	w.WriteString(marker)
	w.WriteString(text)
	w.WriteString(marker)
}

type errWriter struct {
	w          io.Writer
	hasWritten bool
	err        error
}

func (w *errWriter) Write(p []byte) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	n, w.err = w.w.Write(p)
	w.hasWritten = w.hasWritten || n > 0
	return n, w.err
}

func (w *errWriter) WriteString(s string) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	n, w.err = io.WriteString(w.w, s)
	w.hasWritten = w.hasWritten || n > 0
	return n, w.err
}
