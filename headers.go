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
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// A HeaderRegistry counts occurrences of header text
// to produce unique anchor ids.
// The zero value is an empty registry.
type HeaderRegistry struct {
	counts map[string]int
}

// Insert records an occurrence of text and returns
// the number of times text had been inserted before.
func (r *HeaderRegistry) Insert(text string) int {
	if r.counts == nil {
		r.counts = make(map[string]int)
	}
	n := r.counts[text]
	r.counts[text] = n + 1
	return n
}

// ID returns the anchor id for the given header text,
// registering the occurrence.
// The first occurrence of text yields text itself;
// the k-th duplicate yields text followed by "-k".
func (r *HeaderRegistry) ID(text string) string {
	k := r.Insert(text)
	if k == 0 {
		return text
	}
	return text + "-" + strconv.Itoa(k)
}

// normalizeHeaderText returns the canonical form of a header's text.
// Canonically equivalent spellings share a registry entry.
func normalizeHeaderText(s string) string {
	return norm.NFC.String(s)
}

// tocBuilder accumulates table of contents entries.
// Entries are stored in a flat arena and addressed by index
// until the tree is materialized by list.
type tocBuilder struct {
	nodes []tocNode
	roots []int
}

type tocNode struct {
	spans    []Span
	children []int
}

// insert adds an entry for a header of the given level (2 or greater).
// The entry becomes a child of the last entry at each shallower level.
// If the chain of ancestors is shorter than level-2,
// the entry is placed at the deepest level available
// and insert returns the depth actually used along with clamped set to true.
func (b *tocBuilder) insert(level int, spans []Span) (depth int, clamped bool) {
	parent := -1
	children := b.roots
	for depth < level-2 && len(children) > 0 {
		parent = children[len(children)-1]
		children = b.nodes[parent].children
		depth++
	}

	idx := len(b.nodes)
	b.nodes = append(b.nodes, tocNode{spans: spans})
	if parent < 0 {
		b.roots = append(b.roots, idx)
	} else {
		b.nodes[parent].children = append(b.nodes[parent].children, idx)
	}
	return depth, depth < level-2
}

// list returns the accumulated entries as a tree of ordered lists.
func (b *tocBuilder) list() List {
	return b.subtree(b.roots)
}

func (b *tocBuilder) subtree(indices []int) List {
	l := List{Ordered: true}
	if len(indices) > 0 {
		l.Items = make([]ListItem, 0, len(indices))
	}
	for _, i := range indices {
		l.Items = append(l.Items, ListItem{
			Spans: b.nodes[i].spans,
			List:  b.subtree(b.nodes[i].children),
		})
	}
	return l
}
