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

import "testing"

func TestEscapeText(t *testing.T) {
	tests := []struct {
		s    string
		want string
	}{
		{"", ""},
		{"plain", "plain"},
		{"a < b", "a &lt; b"},
		{"<b>x</b>", "&lt;b&gt;x&lt;/b&gt;"},
		{"&amp; \"quoted\" 'single'", "&amp; \"quoted\" 'single'"},
		{"&lt;", "&lt;"},
		{"日本<語>", "日本&lt;語&gt;"},
	}
	for _, test := range tests {
		if got := EscapeText(test.s); got != test.want {
			t.Errorf("EscapeText(%q) = %q; want %q", test.s, got, test.want)
		}
		if got := string(appendEscaped([]byte("x"), test.s)); got != "x"+test.want {
			t.Errorf("appendEscaped(\"x\", %q) = %q; want %q", test.s, got, "x"+test.want)
		}
		if got := EscapeText(EscapeText(test.s)); got != test.want {
			t.Errorf("EscapeText(EscapeText(%q)) = %q; want %q", test.s, got, test.want)
		}
	}
}
