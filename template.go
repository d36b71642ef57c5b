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
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// A Template is an HTML page split into literal text and slots.
type Template []TemplateElement

// TemplateElement is an element of a [Template].
// The set of implementations is closed:
// [TitleSlot], [TOCSlot], [ContentSlot], and [Literal].
type TemplateElement interface {
	templateElement()
}

// TitleSlot is the position of the page's <title> line.
// Indent is the column at which the element started.
type TitleSlot struct {
	Indent int
}

// TOCSlot is the position of the <nav id="toc"> container.
type TOCSlot struct {
	Indent int
}

// ContentSlot is the position of the <div id="content"> container.
type ContentSlot struct {
	Indent int
}

// Literal is text copied to the output unchanged.
// It includes its line ending, if any.
type Literal struct {
	Text string
}

func (TitleSlot) templateElement()   {}
func (TOCSlot) templateElement()     {}
func (ContentSlot) templateElement() {}
func (Literal) templateElement()     {}

// Anchor patterns.
// Changing these changes which existing pages can be regenerated.
var (
	titleAnchor   = regexp.MustCompile(`<title>.*</title>`)
	tocAnchor     = regexp.MustCompile(`<nav id="toc">`)
	contentAnchor = regexp.MustCompile(`<div id="content">`)
)

// ExtractTemplate splits the HTML page read from r into a template.
//
// A line containing a <title> element becomes a [TitleSlot].
// A line opening the table of contents or content container
// becomes a [TOCSlot] or [ContentSlot],
// and every line up to and including the one that closes the container
// is discarded.
// Closing tags are matched by nesting depth,
// so nested elements of the same type do not end the container.
// All other lines become [Literal] elements.
func ExtractTemplate(r io.Reader) (Template, error) {
	br := bufio.NewReader(r)
	var tmpl Template
	for lineno := 1; ; lineno++ {
		line, err := br.ReadString('\n')
		if line != "" {
			switch {
			case titleAnchor.MatchString(line):
				loc := titleAnchor.FindStringIndex(line)
				tmpl = append(tmpl, TitleSlot{Indent: loc[0]})
				tracer().Debugf("template line %d: title slot at column %d", lineno, loc[0])
			case tocAnchor.MatchString(line):
				loc := tocAnchor.FindStringIndex(line)
				tmpl = append(tmpl, TOCSlot{Indent: loc[0]})
				n, skipErr := skipContainer(br, atom.Nav, line[loc[0]:])
				tracer().Debugf("template line %d: contents slot at column %d spanning %d lines", lineno, loc[0], n)
				lineno += n - 1
				err = skipErr
			case contentAnchor.MatchString(line):
				loc := contentAnchor.FindStringIndex(line)
				tmpl = append(tmpl, ContentSlot{Indent: loc[0]})
				n, skipErr := skipContainer(br, atom.Div, line[loc[0]:])
				tracer().Debugf("template line %d: content slot at column %d spanning %d lines", lineno, loc[0], n)
				lineno += n - 1
				err = skipErr
			default:
				tmpl = append(tmpl, Literal{Text: line})
			}
		}
		if err == io.EOF {
			return tmpl, nil
		}
		if err != nil {
			return tmpl, fmt.Errorf("extract template: %w", err)
		}
	}
}

// skipContainer consumes lines from br until the element opened in first
// has been closed.
// It returns the number of lines consumed, including first.
// If the input ends before the element is closed,
// the rest of the input is consumed.
func skipContainer(br *bufio.Reader, tag atom.Atom, first string) (n int, err error) {
	depth := tagDepth(0, tag, first)
	n = 1
	for depth > 0 {
		line, err := br.ReadString('\n')
		if line != "" {
			n++
			depth = tagDepth(depth, tag, line)
		}
		if err != nil {
			if err == io.EOF && depth > 0 {
				tracer().Infof("template: <%v> container not closed before end of file", tag)
			}
			return n, err
		}
	}
	return n, nil
}

// tagDepth returns depth adjusted for the start and end tags of type tag in s.
// It stops early if depth drops to zero.
func tagDepth(depth int, tag atom.Atom, s string) int {
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return depth
		case html.StartTagToken:
			if name, _ := z.TagName(); atom.Lookup(name) == tag {
				depth++
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); atom.Lookup(name) == tag {
				depth--
				if depth <= 0 {
					return depth
				}
			}
		}
	}
}

// ReadTemplateFile extracts the template from the HTML file at path.
// If the file does not exist, the returned error satisfies
// errors.Is(err, fs.ErrNotExist).
func ReadTemplateFile(path string) (Template, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	defer f.Close()
	tmpl, err := ExtractTemplate(f)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", path, errors.Unwrap(err))
	}
	return tmpl, nil
}
