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

import "strings"

// A Document is the parse tree of a single Markdown source.
type Document struct {
	// Title is the text of the last level-1 header in the source.
	Title string
	// TOC is the table of contents built from headers of level 2 and deeper.
	// Every list in the tree is ordered.
	TOC List
	// Content is the sequence of blocks in source order.
	Content []Block
}

// Block is a structural unit of a [Document].
// The set of implementations is closed:
// [*Header], [*Blockquote], [*List], [*Table], [*MathBlock],
// [*CodeBlock], [*LinkCard], and [*Paragraph].
type Block interface {
	Kind() BlockKind
	block()
}

// BlockKind is an enumeration of the types of [Block].
type BlockKind uint16

const (
	ParagraphKind BlockKind = 1 + iota
	HeaderKind
	BlockquoteKind
	ListKind
	TableKind
	MathBlockKind
	CodeBlockKind
	LinkCardKind
)

// A Header is a heading introduced by one to six '#' characters.
type Header struct {
	Spans []Span
	// Level is in the range [1, 6].
	Level int
	// ID is the unique anchor name of the header within its document.
	ID string
}

// A Blockquote is a single line introduced by "> ".
type Blockquote struct {
	Spans []Span
}

// A List is a bulleted or numbered list.
// The zero value is an empty unordered list.
type List struct {
	Ordered bool
	Items   []ListItem
}

// A ListItem is a single entry of a [List].
type ListItem struct {
	Spans []Span
	// List holds the item's sub-items. It may be empty.
	List List
}

// A Table is a pipe table.
// Cell text has already been escaped.
type Table struct {
	Head [][]string
	Body [][]string
}

// A MathBlock is display math delimited by "$$".
type MathBlock struct {
	Math string
}

// A CodeBlock is a fenced code block.
// Code is the verbatim text between the fences.
type CodeBlock struct {
	Lang string
	Code string
}

// A LinkCard is a preview of a linked page built from its Open Graph metadata.
// Empty fields are absent.
type LinkCard struct {
	Title       string
	Image       string
	URL         string
	Description string
	SiteName    string
}

// A Paragraph is a line of inline content.
type Paragraph struct {
	Spans []Span
}

func (*Header) Kind() BlockKind     { return HeaderKind }
func (*Blockquote) Kind() BlockKind { return BlockquoteKind }
func (*List) Kind() BlockKind       { return ListKind }
func (*Table) Kind() BlockKind      { return TableKind }
func (*MathBlock) Kind() BlockKind  { return MathBlockKind }
func (*CodeBlock) Kind() BlockKind  { return CodeBlockKind }
func (*LinkCard) Kind() BlockKind   { return LinkCardKind }
func (*Paragraph) Kind() BlockKind  { return ParagraphKind }

func (*Header) block()     {}
func (*Blockquote) block() {}
func (*List) block()       {}
func (*Table) block()      {}
func (*MathBlock) block()  {}
func (*CodeBlock) block()  {}
func (*LinkCard) block()   {}
func (*Paragraph) block()  {}

// Span is an inline formatting unit.
// Spans do not nest.
// The set of implementations is closed:
// [Link], [Emphasis], [Strong], [Math], [Code], [Image], and [Text].
type Span interface {
	Kind() SpanKind
	span()
}

// SpanKind is an enumeration of the types of [Span].
type SpanKind uint16

const (
	TextKind SpanKind = 1 + iota
	LinkKind
	EmphasisKind
	StrongKind
	MathKind
	CodeKind
	ImageKind
)

// Link is a hyperlink written as "[text](url)".
type Link struct {
	Text string
	URL  string
}

// Emphasis is text between single '*' or '_' characters.
type Emphasis struct {
	Text string
}

// Strong is text between "**" or "__".
type Strong struct {
	Text string
}

// Math is inline math between '$' characters.
type Math struct {
	Math string
}

// Code is a code span between backticks.
type Code struct {
	Code string
}

// Image is an image written as "![](url)".
type Image struct {
	URL string
}

// Text is literal text.
type Text struct {
	Text string
}

func (Link) Kind() SpanKind     { return LinkKind }
func (Emphasis) Kind() SpanKind { return EmphasisKind }
func (Strong) Kind() SpanKind   { return StrongKind }
func (Math) Kind() SpanKind     { return MathKind }
func (Code) Kind() SpanKind     { return CodeKind }
func (Image) Kind() SpanKind    { return ImageKind }
func (Text) Kind() SpanKind     { return TextKind }

func (Link) span()     {}
func (Emphasis) span() {}
func (Strong) span()   {}
func (Math) span()     {}
func (Code) span()     {}
func (Image) span()    {}
func (Text) span()     {}

// PlainText returns the concatenated text content of spans.
// Images contribute nothing.
func PlainText(spans []Span) string {
	sb := new(strings.Builder)
	for _, s := range spans {
		switch s := s.(type) {
		case Link:
			sb.WriteString(s.Text)
		case Emphasis:
			sb.WriteString(s.Text)
		case Strong:
			sb.WriteString(s.Text)
		case Math:
			sb.WriteString(s.Math)
		case Code:
			sb.WriteString(s.Code)
		case Text:
			sb.WriteString(s.Text)
		}
	}
	return sb.String()
}
