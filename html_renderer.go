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
	"fmt"
	"io"

	"golang.org/x/net/html/atom"
)

// An HTMLRenderer writes a [Document] into the slots of a [Template].
//
// Generated lines are indented with spaces
// starting at the column of the slot they replace,
// and every generated line ends with a newline.
// Span and cell text is written as stored in the document:
// the parser has already escaped angle brackets.
type HTMLRenderer struct {
	// If KeepEmptyTOC is true, a document without table of contents entries
	// still produces an empty <nav id="toc"> container
	// so that the slot survives regeneration.
	// Otherwise, the container is omitted.
	KeepEmptyTOC bool
}

// RenderHTML writes doc into tmpl using the default options for [HTMLRenderer].
// It will return the first error encountered, if any.
func RenderHTML(w io.Writer, doc *Document, tmpl Template) error {
	return new(HTMLRenderer).Render(w, doc, tmpl)
}

// Render writes the elements of tmpl in order,
// copying literals and replacing slots with HTML generated from doc.
// It will return the first error encountered, if any.
func (r *HTMLRenderer) Render(w io.Writer, doc *Document, tmpl Template) error {
	var buf []byte
	for _, elem := range tmpl {
		buf = r.AppendElement(buf[:0], doc, elem)
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("render html: %w", err)
		}
	}
	return nil
}

// AppendElement appends the rendered form of a single template element to dst
// and returns the resulting byte slice.
func (r *HTMLRenderer) AppendElement(dst []byte, doc *Document, elem TemplateElement) []byte {
	state := &renderState{
		HTMLRenderer: r,
		dst:          dst,
	}
	switch elem := elem.(type) {
	case Literal:
		state.dst = append(state.dst, elem.Text...)
	case TitleSlot:
		state.indent(elem.Indent)
		state.openTag(atom.Title)
		state.dst = append(state.dst, doc.Title...)
		state.closeTag(atom.Title)
		state.newline()
	case TOCSlot:
		state.toc(elem.Indent, &doc.TOC)
	case ContentSlot:
		state.indent(elem.Indent)
		state.openTagAttr(atom.Div)
		state.attr("id", "content")
		state.dst = append(state.dst, '>')
		state.newline()
		for _, b := range doc.Content {
			state.block(elem.Indent+2, b)
		}
		state.indent(elem.Indent)
		state.closeTag(atom.Div)
		state.newline()
	}
	return state.dst
}

// AppendBlock appends the rendered HTML of a block to dst
// with its outermost lines indented by indent spaces
// and returns the resulting byte slice.
func (r *HTMLRenderer) AppendBlock(dst []byte, indent int, block Block) []byte {
	state := &renderState{
		HTMLRenderer: r,
		dst:          dst,
	}
	state.block(indent, block)
	return state.dst
}

type renderState struct {
	*HTMLRenderer
	dst []byte
}

func (r *renderState) indent(n int) {
	for i := 0; i < n; i++ {
		r.dst = append(r.dst, ' ')
	}
}

func (r *renderState) newline() {
	r.dst = append(r.dst, '\n')
}

func (r *renderState) openTagAttr(name atom.Atom) {
	r.dst = append(r.dst, '<')
	r.dst = append(r.dst, name.String()...)
}

func (r *renderState) attr(key, value string) {
	r.dst = append(r.dst, ' ')
	r.dst = append(r.dst, key...)
	r.dst = append(r.dst, `="`...)
	r.dst = append(r.dst, value...)
	r.dst = append(r.dst, '"')
}

func (r *renderState) openTag(name atom.Atom) {
	r.openTagAttr(name)
	r.dst = append(r.dst, '>')
}

func (r *renderState) closeTag(name atom.Atom) {
	r.dst = append(r.dst, "</"...)
	r.dst = append(r.dst, name.String()...)
	r.dst = append(r.dst, '>')
}

// line writes a single line consisting of an element containing spans.
func (r *renderState) line(indent int, name atom.Atom, spans []Span) {
	r.indent(indent)
	r.openTag(name)
	r.spans(spans)
	r.closeTag(name)
	r.newline()
}

func (r *renderState) toc(indent int, toc *List) {
	if len(toc.Items) == 0 && !r.KeepEmptyTOC {
		return
	}
	r.indent(indent)
	r.openTagAttr(atom.Nav)
	r.attr("id", "toc")
	r.dst = append(r.dst, '>')
	r.newline()
	r.list(indent+2, toc)
	r.indent(indent)
	r.closeTag(atom.Nav)
	r.newline()
}

func (r *renderState) block(indent int, block Block) {
	switch block := block.(type) {
	case *Paragraph:
		r.line(indent, atom.P, block.Spans)
	case *Header:
		tagName := headingAtom(block.Level)
		r.indent(indent)
		r.openTagAttr(tagName)
		r.attr("id", block.ID)
		r.dst = append(r.dst, '>')
		r.spans(block.Spans)
		r.closeTag(tagName)
		r.newline()
	case *Blockquote:
		r.line(indent, atom.Blockquote, block.Spans)
	case *List:
		r.list(indent, block)
	case *Table:
		r.table(indent, block)
	case *MathBlock:
		r.indent(indent)
		r.openTagAttr(atom.P)
		r.attr("class", "math")
		r.dst = append(r.dst, `>\[`...)
		r.dst = append(r.dst, block.Math...)
		r.dst = append(r.dst, `\]`...)
		r.closeTag(atom.P)
		r.newline()
	case *CodeBlock:
		lang := block.Lang
		if lang == "" {
			lang = "plaintext"
		}
		r.indent(indent)
		r.openTag(atom.Pre)
		r.openTagAttr(atom.Code)
		r.attr("class", "language-"+EscapeText(lang))
		r.dst = append(r.dst, '>')
		r.dst = appendEscaped(r.dst, block.Code)
		r.closeTag(atom.Code)
		r.closeTag(atom.Pre)
		r.newline()
	case *LinkCard:
		r.linkCard(indent, block)
	}
}

func headingAtom(level int) atom.Atom {
	switch level {
	case 1:
		return atom.H1
	case 2:
		return atom.H2
	case 3:
		return atom.H3
	case 4:
		return atom.H4
	case 5:
		return atom.H5
	default:
		return atom.H6
	}
}

func listAtom(l *List) atom.Atom {
	if l.Ordered {
		return atom.Ol
	}
	return atom.Ul
}

// list writes each item on its own lines,
// with item content two columns deeper than the <li> tags
// and sub-lists nested inside the item.
// Empty lists produce no output.
func (r *renderState) list(indent int, l *List) {
	if len(l.Items) == 0 {
		return
	}
	itemIndent := func(c *ListCursor) int {
		return indent + 2 + 4*c.Depth()
	}

	r.indent(indent)
	r.openTag(listAtom(l))
	r.newline()
	Walk(l, &WalkOptions{
		Pre: func(c *ListCursor) bool {
			n := itemIndent(c)
			r.indent(n)
			r.openTag(atom.Li)
			r.newline()
			r.indent(n + 2)
			r.spans(c.Item().Spans)
			r.newline()
			if sub := &c.Item().List; len(sub.Items) > 0 {
				r.indent(n + 2)
				r.openTag(listAtom(sub))
				r.newline()
			}
			return true
		},
		Post: func(c *ListCursor) bool {
			n := itemIndent(c)
			if sub := &c.Item().List; len(sub.Items) > 0 {
				r.indent(n + 2)
				r.closeTag(listAtom(sub))
				r.newline()
			}
			r.indent(n)
			r.closeTag(atom.Li)
			r.newline()
			return true
		},
	})
	r.indent(indent)
	r.closeTag(listAtom(l))
	r.newline()
}

func (r *renderState) table(indent int, t *Table) {
	r.indent(indent)
	r.openTag(atom.Table)
	r.newline()
	r.tableSection(indent+2, atom.Thead, atom.Th, t.Head)
	r.tableSection(indent+2, atom.Tbody, atom.Td, t.Body)
	r.indent(indent)
	r.closeTag(atom.Table)
	r.newline()
}

func (r *renderState) tableSection(indent int, section, cell atom.Atom, rows [][]string) {
	r.indent(indent)
	r.openTag(section)
	r.newline()
	for _, row := range rows {
		r.indent(indent + 2)
		r.openTag(atom.Tr)
		r.newline()
		for _, data := range row {
			r.indent(indent + 4)
			r.openTag(cell)
			r.dst = append(r.dst, data...)
			r.closeTag(cell)
			r.newline()
		}
		r.indent(indent + 2)
		r.closeTag(atom.Tr)
		r.newline()
	}
	r.indent(indent)
	r.closeTag(section)
	r.newline()
}

func (r *renderState) linkCard(indent int, card *LinkCard) {
	r.indent(indent)
	r.openTagAttr(atom.A)
	r.attr("class", "card")
	r.attr("href", card.URL)
	r.dst = append(r.dst, '>')
	r.newline()
	if card.Image != "" {
		r.indent(indent + 2)
		r.openTagAttr(atom.Img)
		r.attr("class", "card-image")
		r.attr("src", card.Image)
		r.dst = append(r.dst, '>')
		r.newline()
	}
	title := card.Title
	if title == "" {
		title = card.URL
	}
	r.cardField(indent+2, "card-title", title)
	if card.Description != "" {
		r.cardField(indent+2, "card-description", card.Description)
	}
	if card.SiteName != "" {
		r.cardField(indent+2, "card-site", card.SiteName)
	}
	r.indent(indent)
	r.closeTag(atom.A)
	r.newline()
}

func (r *renderState) cardField(indent int, class, text string) {
	r.indent(indent)
	r.openTagAttr(atom.Span)
	r.attr("class", class)
	r.dst = append(r.dst, '>')
	r.dst = append(r.dst, text...)
	r.closeTag(atom.Span)
	r.newline()
}

func (r *renderState) spans(spans []Span) {
	for _, s := range spans {
		switch s := s.(type) {
		case Text:
			r.dst = append(r.dst, s.Text...)
		case Link:
			r.openTagAttr(atom.A)
			r.attr("href", s.URL)
			r.dst = append(r.dst, '>')
			r.dst = append(r.dst, s.Text...)
			r.closeTag(atom.A)
		case Emphasis:
			r.openTag(atom.Em)
			r.dst = append(r.dst, s.Text...)
			r.closeTag(atom.Em)
		case Strong:
			r.openTag(atom.Strong)
			r.dst = append(r.dst, s.Text...)
			r.closeTag(atom.Strong)
		case Math:
			r.dst = append(r.dst, `\(`...)
			r.dst = append(r.dst, s.Math...)
			r.dst = append(r.dst, `\)`...)
		case Code:
			r.openTag(atom.Code)
			r.dst = append(r.dst, s.Code...)
			r.closeTag(atom.Code)
		case Image:
			r.openTagAttr(atom.Img)
			r.attr("src", s.URL)
			r.dst = append(r.dst, '>')
		}
	}
}
