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
)

const (
	linkCardPrefix = "?[]("
	mathFence      = "$$"
	codeFence      = "```"
)

// maxHeaderLevel is the deepest header level.
const maxHeaderLevel = 6

// parseBlock parses a single block at the start of a line.
// It returns nil for blank lines.
func (p *parseState) parseBlock() Block {
	c := p.c
	if c.isBlankLine() {
		c.SkipLine()
		return nil
	}

	if level := headerMarker(c.Rest()); level > 0 {
		c.Advance(level + len(" "))
		return p.parseHeader(level)
	}
	if c.ConsumeIf("> ") {
		return &Blockquote{Spans: p.parseSpans()}
	}
	if indent := c.CountLeading(' '); listMarkerEnd(c.Rest()[indent:]) >= 0 {
		l := p.parseList(0)
		return &l
	}
	if c.PeekMatches(linkCardPrefix) {
		if b := p.parseLinkCard(); b != nil {
			return b
		}
	}
	if c.ConsumeIf(mathFence) {
		return p.parseMathBlock()
	}
	if c.ConsumeIf(codeFence) {
		return p.parseCodeBlock()
	}
	if c.Peek() == '|' {
		return p.parseTable()
	}

	spans := p.parseSpans()
	if len(spans) == 0 {
		return nil
	}
	return &Paragraph{Spans: spans}
}

// headerMarker returns the level of the header marker
// at the beginning of line or 0 if there is none.
func headerMarker(line string) int {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n == 0 || n > maxHeaderLevel || n >= len(line) || line[n] != ' ' {
		return 0
	}
	return n
}

func (p *parseState) parseHeader(level int) *Header {
	spans := p.parseSpans()
	text := normalizeHeaderText(strings.TrimSpace(PlainText(spans)))
	h := &Header{
		Spans: spans,
		Level: level,
	}
	h.ID = p.registry.ID(text)
	if level == 1 {
		p.doc.Title = text
		return h
	}

	depth, clamped := p.toc.insert(level, []Span{Link{Text: text, URL: "#" + h.ID}})
	if clamped {
		tracer().Infof("header %q (level %d) has no parent at level %d; placed in contents at depth %d",
			text, level, level-1, depth)
	}
	return h
}

// listMarkerEnd returns the number of bytes in the list item marker
// at the beginning of line, including the following space,
// or -1 if line does not begin with a marker.
func listMarkerEnd(line string) int {
	end, _ := parseListMarker(line)
	return end
}

// parseListMarker parses a bullet ("-", "*", or "+")
// or an ordinal ("1.", "23.", ...) followed by a space.
func parseListMarker(line string) (end int, ordered bool) {
	if len(line) >= 2 && strings.IndexByte("-*+", line[0]) >= 0 && line[1] == ' ' {
		return 2, false
	}
	n := 0
	for n < len(line) && isASCIIDigit(line[n]) {
		n++
	}
	if n > 0 && strings.HasPrefix(line[n:], ". ") {
		return n + len(". "), true
	}
	return -1, false
}

// parseList parses consecutive list items
// whose indentation is at least minIndent.
// Items indented further than a preceding item become its sub-items.
// The list is ordered if its last item has an ordinal marker.
func (p *parseState) parseList(minIndent int) List {
	c := p.c
	var l List
	for !c.AtEnd() {
		indent := c.CountLeading(' ')
		if indent < minIndent {
			break
		}
		end, ordered := parseListMarker(c.Rest()[indent:])
		if end < 0 {
			break
		}
		c.Advance(indent + end)
		l.Ordered = ordered
		spans := p.parseSpans()
		l.Items = append(l.Items, ListItem{
			Spans: spans,
			List:  p.parseList(indent + 1),
		})
	}
	return l
}

// parseTable parses a head section terminated by a separator row,
// followed by body rows.
func (p *parseState) parseTable() *Table {
	t := new(Table)
	for {
		row, ok := p.parseTableRow()
		if !ok {
			return t
		}
		if row == nil {
			break
		}
		t.Head = append(t.Head, row)
	}
	for {
		row, ok := p.parseTableRow()
		if !ok || row == nil {
			return t
		}
		t.Body = append(t.Body, row)
	}
}

// parseTableRow parses a line starting with '|'.
// ok is false (and nothing is consumed) if the line does not start with '|'.
// A separator row made up only of '-', ':', and spaces
// is consumed and reported as a nil row.
// Text after the last '|' is discarded.
func (p *parseState) parseTableRow() (row []string, ok bool) {
	c := p.c
	if !c.ConsumeIf("|") {
		return nil, false
	}
	var cells []string
	isData := false
	for !c.AtLineEnd() {
		cell := c.TakeWhileExcluding("|")
		if !c.ConsumeIf("|") {
			break
		}
		if strings.Trim(cell, " \t-:") != "" {
			isData = true
		}
		cells = append(cells, EscapeText(strings.TrimSpace(cell)))
	}
	c.ConsumeLineEnd()
	if !isData {
		return nil, true
	}
	return cells, true
}

// parseMathBlock parses display math after its opening "$$".
func (p *parseState) parseMathBlock() *MathBlock {
	math, _ := p.scanBlockUntil(mathFence)
	return &MathBlock{Math: EscapeText(math)}
}

// parseCodeBlock parses a fenced code block after its opening fence.
func (p *parseState) parseCodeBlock() *CodeBlock {
	c := p.c
	lang := strings.TrimSpace(c.TakeWhileExcluding(""))
	c.ConsumeLineEnd()
	code, _ := p.scanBlockUntil(codeFence)
	return &CodeBlock{
		Lang: lang,
		Code: code,
	}
}

// scanBlockUntil consumes text up to and including the next occurrence of fence,
// across line boundaries.
// If fence does not occur, the rest of the source is consumed.
func (p *parseState) scanBlockUntil(fence string) (text string, ok bool) {
	c := p.c
	i := strings.Index(c.Rest(), fence)
	if i < 0 {
		text = c.Rest()
		c.Advance(len(text))
		return text, false
	}
	text = c.Rest()[:i]
	c.Advance(i + len(fence))
	return text, true
}

// parseLinkCard parses "?[](url)".
// Any text after the closing parenthesis on the same line
// is parsed as a paragraph following the card.
// It returns nil without consuming anything if the url is unterminated.
func (p *parseState) parseLinkCard() *LinkCard {
	c := p.c
	rest := c.Rest()[len(linkCardPrefix):]
	end := strings.IndexAny(rest, ")\r\n")
	if end < 0 || rest[end] != ')' {
		return nil
	}
	url := rest[:end]
	c.Advance(len(linkCardPrefix) + end + len(")"))

	card := &LinkCard{URL: EscapeText(url)}
	ogp := p.fetchOGP(url)
	if ogp != nil {
		card.Title = EscapeText(ogp.Title)
		card.Image = EscapeText(ogp.Image)
		card.Description = EscapeText(ogp.Description)
		card.SiteName = EscapeText(ogp.SiteName)
	}

	for c.ConsumeIf(" ") || c.ConsumeIf("\t") {
	}
	if c.AtLineEnd() {
		c.ConsumeLineEnd()
	} else {
		p.pending = append(p.pending, &Paragraph{Spans: p.parseSpans()})
	}
	return card
}

func isASCIIDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
