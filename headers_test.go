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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestHeaderRegistry(t *testing.T) {
	var r HeaderRegistry
	inserts := []struct {
		text string
		want int
	}{
		{"Intro", 0},
		{"Intro", 1},
		{"Usage", 0},
		{"Intro", 2},
		{"intro", 0},
	}
	for _, test := range inserts {
		if got := r.Insert(test.text); got != test.want {
			t.Errorf("Insert(%q) = %d; want %d", test.text, got, test.want)
		}
	}
}

func TestHeaderRegistryID(t *testing.T) {
	var r HeaderRegistry
	var got []string
	for _, text := range []string{"Intro", "Intro", "Intro"} {
		got = append(got, r.ID(text))
	}
	want := []string{"Intro", "Intro-1", "Intro-2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ids (-want +got):\n%s", diff)
	}
}

func TestNormalizeHeaderText(t *testing.T) {
	// "e" followed by a combining acute accent.
	decomposed := "Cafe\u0301"
	if got, want := normalizeHeaderText(decomposed), "Caf\u00e9"; got != want {
		t.Errorf("normalizeHeaderText(%q) = %q; want %q", decomposed, got, want)
	}
}

func TestTOCBuilder(t *testing.T) {
	type insertion struct {
		level       int
		text        string
		wantDepth   int
		wantClamped bool
	}
	tests := []struct {
		name    string
		inserts []insertion
		want    List
	}{
		{
			name: "Empty",
			want: List{Ordered: true},
		},
		{
			name: "Nested",
			inserts: []insertion{
				{2, "A", 0, false},
				{3, "A1", 1, false},
				{4, "A1a", 2, false},
				{3, "A2", 1, false},
				{2, "B", 0, false},
			},
			want: List{
				Ordered: true,
				Items: []ListItem{
					tocItem("A", "A",
						tocItem("A1", "A1", tocItem("A1a", "A1a")),
						tocItem("A2", "A2"),
					),
					tocItem("B", "B"),
				},
			},
		},
		{
			name: "Clamped",
			inserts: []insertion{
				{4, "D", 0, true},
				{2, "A", 0, false},
				{6, "F", 1, true},
			},
			want: List{
				Ordered: true,
				Items: []ListItem{
					tocItem("D", "D"),
					tocItem("A", "A", tocItem("F", "F")),
				},
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b := new(tocBuilder)
			for _, ins := range test.inserts {
				depth, clamped := b.insert(ins.level, []Span{Link{Text: ins.text, URL: "#" + ins.text}})
				if depth != ins.wantDepth || clamped != ins.wantClamped {
					t.Errorf("insert(%d, %q) = %d, %t; want %d, %t",
						ins.level, ins.text, depth, clamped, ins.wantDepth, ins.wantClamped)
				}
			}
			if diff := cmp.Diff(test.want, b.list(), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("list() (-want +got):\n%s", diff)
			}
		})
	}
}
