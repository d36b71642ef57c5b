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

// textStops is the set of bytes that end a run of plain text.
// '!' is handled separately since it only matters before "[](".
const textStops = "[*_$`"

const imagePrefix = "![]("

// parseSpans parses inline content up to the end of the current line
// and consumes the line ending.
func (p *parseState) parseSpans() []Span {
	var spans []Span
	for !p.c.AtEnd() {
		if p.c.ConsumeLineEnd() {
			break
		}
		spans = append(spans, p.parseSpan())
	}
	return spans
}

// parseSpan parses a single span at the cursor.
// It always consumes at least one byte.
func (p *parseState) parseSpan() Span {
	c := p.c
	switch {
	case c.PeekMatches(imagePrefix):
		return p.parseImage()
	case c.Peek() == '[':
		return p.parseLink()
	case c.ConsumeIf("**"):
		return p.parseDelimited("**", func(s string) Span { return Strong{Text: s} })
	case c.ConsumeIf("__"):
		return p.parseDelimited("__", func(s string) Span { return Strong{Text: s} })
	case c.ConsumeIf("*"):
		return p.parseDelimited("*", func(s string) Span { return Emphasis{Text: s} })
	case c.ConsumeIf("_"):
		return p.parseDelimited("_", func(s string) Span { return Emphasis{Text: s} })
	case c.ConsumeIf("$"):
		return p.parseDelimited("$", func(s string) Span { return Math{Math: s} })
	case c.ConsumeIf("`"):
		return p.parseDelimited("`", func(s string) Span { return Code{Code: s} })
	default:
		return Text{Text: EscapeText(p.parseText())}
	}
}

// parseText consumes a run of plain text.
func (p *parseState) parseText() string {
	c := p.c
	start := c.Pos()
	for {
		c.TakeWhileExcluding(textStops + "!")
		if c.Peek() != '!' || c.PeekMatches(imagePrefix) {
			break
		}
		c.Advance(1)
	}
	if c.Pos() == start {
		// Only reachable for bytes that parseSpan did not claim.
		return c.AdvanceRune()
	}
	return c.src[start:c.Pos()]
}

// scanUntil consumes text up to the next occurrence of closer
// on the current line.
// If closer is found, it is consumed and ok is true.
// Otherwise the cursor is left at the end of the line.
func (p *parseState) scanUntil(closer string) (text string, ok bool) {
	c := p.c
	start := c.Pos()
	for !c.AtLineEnd() {
		if c.PeekMatches(closer) {
			text = c.src[start:c.Pos()]
			c.Advance(len(closer))
			return text, true
		}
		c.Advance(1)
	}
	return c.src[start:c.Pos()], false
}

// parseDelimited parses the remainder of a span whose opening marker
// has already been consumed.
// An unterminated span becomes literal text starting with the marker.
func (p *parseState) parseDelimited(marker string, wrap func(string) Span) Span {
	text, ok := p.scanUntil(marker)
	if !ok {
		return Text{Text: EscapeText(marker + text)}
	}
	return wrap(EscapeText(text))
}

// parseLink parses "[text](url)".
// Links with empty text are titled from the fetched page.
func (p *parseState) parseLink() Span {
	p.c.Advance(len("["))
	text, ok := p.scanUntil("]")
	if !ok {
		return Text{Text: EscapeText("[" + text)}
	}
	if !p.c.ConsumeIf("(") {
		return Text{Text: EscapeText("[" + text + "]")}
	}
	url, ok := p.scanUntil(")")
	if !ok {
		return Text{Text: EscapeText("[" + text + "](" + url)}
	}
	if text == "" {
		text = p.fetchTitle(url)
	}
	return Link{
		Text: EscapeText(text),
		URL:  EscapeText(url),
	}
}

// parseImage parses "![](url)".
func (p *parseState) parseImage() Span {
	p.c.Advance(len(imagePrefix))
	url, ok := p.scanUntil(")")
	if !ok {
		return Text{Text: EscapeText(imagePrefix + url)}
	}
	return Image{URL: EscapeText(url)}
}
