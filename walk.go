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

package mdregen

// A ListCursor describes a [ListItem] encountered during [Walk].
type ListCursor struct {
	item  *ListItem
	list  *List
	index int
	depth int
}

// Item returns the current [ListItem].
func (c *ListCursor) Item() *ListItem {
	return c.item
}

// List returns the list that contains the current item.
func (c *ListCursor) List() *List {
	return c.list
}

// Index returns the position of the current item within [*ListCursor.List].
func (c *ListCursor) Index() int {
	return c.index
}

// Depth returns the nesting depth of the current item.
// Items of the root list have depth 0.
func (c *ListCursor) Depth() int {
	return c.depth
}

// WalkOptions is the set of parameters to [Walk].
type WalkOptions struct {
	// If Pre is not nil, it is called for each item before the item's sub-items are traversed (pre-order).
	// If Pre returns false, no sub-items are traversed, and Post is not called for that item.
	Pre func(c *ListCursor) bool
	// If Post is not nil, it is called for each item after the item's sub-items are traversed (post-order).
	// If Post returns false, traversal is terminated and Walk returns immediately.
	Post func(c *ListCursor) bool
}

// Walk traverses the items of a [List] recursively, in order,
// calling [WalkOptions.Pre] and [WalkOptions.Post].
func Walk(root *List, opts *WalkOptions) {
	type walkFrame struct {
		list  *List
		index int
		depth int
		post  bool
	}

	var stack []walkFrame
	pushItems := func(l *List, depth int) {
		for i := len(l.Items) - 1; i >= 0; i-- {
			stack = append(stack, walkFrame{list: l, index: i, depth: depth})
		}
	}
	pushItems(root, 0)
	cursor := new(ListCursor)
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cursor.list = curr.list
		cursor.index = curr.index
		cursor.depth = curr.depth
		cursor.item = &curr.list.Items[curr.index]
		if curr.post {
			if opts.Post != nil && !opts.Post(cursor) {
				break
			}
			continue
		}

		if opts.Pre != nil && !opts.Pre(cursor) {
			continue
		}
		curr.post = true
		stack = append(stack, curr)
		pushItems(&cursor.item.List, curr.depth+1)
	}
}
