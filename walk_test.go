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

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWalk(t *testing.T) {
	root := &List{
		Items: []ListItem{
			{
				Spans: textSpans("a"),
				List: List{Items: []ListItem{
					{Spans: textSpans("a1")},
					{Spans: textSpans("a2")},
				}},
			},
			{Spans: textSpans("b")},
		},
	}

	tests := []struct {
		name string
		pre  func(c *ListCursor) bool
		post func(c *ListCursor) bool
		want []string
	}{
		{
			name: "Full",
			want: []string{
				"pre a 0 0", "pre a1 1 0", "post a1", "pre a2 1 1", "post a2", "post a",
				"pre b 0 1", "post b",
			},
		},
		{
			name: "SkipChildren",
			pre: func(c *ListCursor) bool {
				return PlainText(c.Item().Spans) != "a"
			},
			want: []string{"pre a 0 0", "pre b 0 1", "post b"},
		},
		{
			name: "Stop",
			post: func(c *ListCursor) bool {
				return PlainText(c.Item().Spans) != "a1"
			},
			want: []string{"pre a 0 0", "pre a1 1 0", "post a1"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var got []string
			Walk(root, &WalkOptions{
				Pre: func(c *ListCursor) bool {
					got = append(got, fmt.Sprintf("pre %s %d %d", PlainText(c.Item().Spans), c.Depth(), c.Index()))
					if test.pre != nil {
						return test.pre(c)
					}
					return true
				},
				Post: func(c *ListCursor) bool {
					got = append(got, "post "+PlainText(c.Item().Spans))
					if test.post != nil {
						return test.post(c)
					}
					return true
				},
			})
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("events (-want +got):\n%s", diff)
			}
		})
	}
}
