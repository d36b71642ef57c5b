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

// Package mdregen converts a small Markdown dialect to HTML
// and regenerates the dynamic regions of an existing HTML page in place.
//
// A source is parsed into a [Document] with [Parse] or [Parser.Parse].
// An HTML page is split into a [Template] with [ExtractTemplate],
// and [HTMLRenderer.Render] writes the page back
// with its title, table of contents, and content slots replaced.
// Every byte of the page outside of those slots is preserved,
// so rendering a document against its own previous output is idempotent.
package mdregen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// tracer traces with key 'mdregen'.
func tracer() tracing.Trace {
	return tracing.Select("mdregen")
}

var errNoFetcher = errors.New("no fetcher configured")

// A Parser converts Markdown source into a [Document].
// The zero value parses without network lookups:
// links with empty text get empty text and link cards only carry their URL.
type Parser struct {
	// Fetcher is used to look up page titles and Open Graph metadata.
	// If nil, every lookup fails.
	Fetcher Fetcher
}

// Parse parses source with a zero [Parser].
func Parse(source []byte) *Document {
	return new(Parser).Parse(context.Background(), source)
}

// Parse parses source into a document.
// Parsing never fails:
// malformed inline markup is kept as literal text
// and failed lookups leave the affected fields empty.
// ctx is passed to the parser's Fetcher.
func (p *Parser) Parse(ctx context.Context, source []byte) *Document {
	if bytes.IndexByte(source, 0) >= 0 {
		// Contains one or more NUL bytes.
		// Replace with Unicode replacement character.
		source = bytes.ReplaceAll(source, []byte{0}, []byte("\ufffd"))
	}
	fetcher := p.Fetcher
	if fetcher == nil {
		fetcher = noFetcher{}
	}
	state := &parseState{
		ctx:     ctx,
		fetcher: fetcher,
		c:       NewCursor(strings.ToValidUTF8(string(source), "\ufffd")),
		doc:     new(Document),
	}
	for !state.c.AtEnd() {
		start := state.c.Pos()
		if b := state.parseBlock(); b != nil {
			state.doc.Content = append(state.doc.Content, b)
		}
		state.doc.Content = append(state.doc.Content, state.pending...)
		state.pending = state.pending[:0]
		if state.c.Pos() == start {
			// Guarantee progress: take one character as literal text.
			r := state.c.AdvanceRune()
			state.doc.Content = append(state.doc.Content, &Paragraph{
				Spans: []Span{Text{Text: EscapeText(r)}},
			})
		}
	}
	state.doc.TOC = state.toc.list()
	return state.doc
}

// ParseReader reads a UTF-8 source from r and parses it.
// A leading byte order mark is removed,
// and UTF-16 input with a byte order mark is converted to UTF-8.
func (p *Parser) ParseReader(ctx context.Context, r io.Reader) (*Document, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	source, err := io.ReadAll(decoded)
	if err != nil {
		return nil, fmt.Errorf("parse markdown: %w", err)
	}
	return p.Parse(ctx, source), nil
}

// parseState is the state of a single run of the parser.
type parseState struct {
	ctx      context.Context
	fetcher  Fetcher
	c        *Cursor
	doc      *Document
	registry HeaderRegistry
	toc      tocBuilder

	// pending holds blocks that follow the block being parsed
	// on the same line.
	pending []Block
}

// fetchTitle returns the title of the page at url
// or the empty string if the lookup fails.
func (p *parseState) fetchTitle(url string) string {
	title, err := p.fetcher.FetchTitle(p.ctx, url)
	if err != nil {
		if !errors.Is(err, errNoFetcher) {
			tracer().Errorf("fetch title of %s: %v", url, err)
		}
		return ""
	}
	return title
}

// fetchOGP returns the Open Graph metadata of the page at url
// or nil if the lookup fails.
func (p *parseState) fetchOGP(url string) *OGP {
	ogp, err := p.fetcher.FetchOGP(p.ctx, url)
	if err != nil {
		if !errors.Is(err, errNoFetcher) {
			tracer().Errorf("fetch metadata of %s: %v", url, err)
		}
		return nil
	}
	return ogp
}
