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

// Package normhtml normalizes rendered HTML
// so that fragments can be compared without regard to indentation.
package normhtml

import (
	"bytes"
	"regexp"
	"sort"
	"unicode"

	"go4.org/bytereplacer"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

var textEscaper = bytereplacer.New(
	"<", "&lt;",
	">", "&gt;",
)

// NormalizeHTML strips indentation and insignificant whitespace from HTML.
// Whitespace adjacent to block-level tags is removed,
// other runs of whitespace collapse to a single space
// (except inside <pre>),
// and attributes are sorted by name.
func NormalizeHTML(b []byte) []byte {
	type htmlAttribute struct {
		key   string
		value string
	}

	tok := html.NewTokenizerFragment(bytes.NewReader(b), "div")
	var output []byte
	last := html.StartTagToken
	var lastTag atom.Atom
	inPre := false
	for {
		tt := tok.Next()
		switch tt {
		case html.ErrorToken:
			return output
		case html.TextToken:
			data := tok.Text()
			if !inPre {
				data = whitespaceRE.ReplaceAll(data, []byte(" "))
				if isBlockTag(lastTag) {
					switch last {
					case html.StartTagToken:
						data = bytes.TrimLeftFunc(data, unicode.IsSpace)
					case html.EndTagToken:
						data = bytes.TrimSpace(data)
					}
				}
			}
			output = append(output, textEscaper.Replace(bytes.Clone(data))...)
		case html.EndTagToken:
			name, _ := tok.TagName()
			tag := atom.Lookup(name)
			if tag == atom.Pre {
				inPre = false
			} else if isBlockTag(tag) {
				output = bytes.TrimRightFunc(output, unicode.IsSpace)
			}
			output = append(output, "</"...)
			output = append(output, name...)
			output = append(output, ">"...)
			lastTag = tag
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := tok.TagName()
			tag := atom.Lookup(name)
			if tag == atom.Pre {
				inPre = true
			}
			if isBlockTag(tag) {
				output = bytes.TrimRightFunc(output, unicode.IsSpace)
			}
			output = append(output, "<"...)
			output = append(output, name...)
			var attrs []htmlAttribute
			for hasAttr {
				var k, v []byte
				k, v, hasAttr = tok.TagAttr()
				attrs = append(attrs, htmlAttribute{string(k), string(v)})
			}
			sort.Slice(attrs, func(i, j int) bool {
				return attrs[i].key < attrs[j].key
			})
			for _, attr := range attrs {
				output = append(output, " "...)
				output = append(output, attr.key...)
				if attr.value != "" {
					output = append(output, `="`...)
					output = append(output, attr.value...)
					output = append(output, `"`...)
				}
			}
			output = append(output, ">"...)
			lastTag = tag
		}

		last = tt
		if tt == html.SelfClosingTagToken {
			last = html.EndTagToken
		}
	}
}

// Equal reports whether two HTML fragments are the same after normalization.
func Equal(a, b []byte) bool {
	return bytes.Equal(NormalizeHTML(a), NormalizeHTML(b))
}

// isBlockTag reports whether tag is one of the block-level elements
// produced by the renderer or used in page layouts.
func isBlockTag(tag atom.Atom) bool {
	switch tag {
	case atom.Html, atom.Head, atom.Body, atom.Title, atom.Meta, atom.Link,
		atom.Nav, atom.Div, atom.Ul, atom.Ol, atom.Li,
		atom.Table, atom.Thead, atom.Tbody, atom.Tr, atom.Th, atom.Td,
		atom.P, atom.Pre, atom.Blockquote,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	default:
		return false
	}
}
