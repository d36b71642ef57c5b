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

package mdregen_test

import (
	"fmt"
	"os"
	"strings"

	"zombiezen.com/go/mdregen"
)

func Example() {
	// Convert Markdown to a document tree.
	doc := mdregen.Parse([]byte("# Hello\nHello, **World**!\n"))
	// Find the slots in an existing page.
	tmpl, err := mdregen.ExtractTemplate(strings.NewReader(
		"<head>\n" +
			"  <title>old title</title>\n" +
			"</head>\n" +
			"<div id=\"content\">\n" +
			"  <p>old content</p>\n" +
			"</div>\n",
	))
	if err != nil {
		panic(err)
	}
	// Regenerate the page.
	mdregen.RenderHTML(os.Stdout, doc, tmpl)
	// Output:
	// <head>
	//   <title>Hello</title>
	// </head>
	// <div id="content">
	//   <h1 id="Hello">Hello</h1>
	//   <p>Hello, <strong>World</strong>!</p>
	// </div>
}

func ExampleHTMLRenderer_AppendBlock() {
	doc := mdregen.Parse([]byte("- one\n- two\n"))
	os.Stdout.Write(new(mdregen.HTMLRenderer).AppendBlock(nil, 0, doc.Content[0]))
	// Output:
	// <ul>
	//   <li>
	//     one
	//   </li>
	//   <li>
	//     two
	//   </li>
	// </ul>
}

func ExampleHeaderRegistry() {
	var r mdregen.HeaderRegistry
	for _, text := range []string{"Intro", "Usage", "Intro"} {
		fmt.Println(r.ID(text))
	}
	// Output:
	// Intro
	// Usage
	// Intro-1
}
