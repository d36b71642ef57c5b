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

package format_test

import (
	"bytes"
	"os"

	"zombiezen.com/go/mdregen"
	"zombiezen.com/go/mdregen/format"
)

func ExampleFormat() {
	doc := mdregen.Parse([]byte(
		"# Notes\n" +
			"Some __strong__ and *emphasized* text.\n" +
			"\n\n" +
			"* first\n" +
			"    + nested\n" +
			"* second\n" +
			"|a|b|\n" +
			"|:-|-:|\n" +
			"|1|2|\n",
	))
	out := new(bytes.Buffer)
	if err := format.Format(out, doc); err != nil {
		// Writing in-memory shouldn't fail.
		panic(err)
	}
	os.Stdout.Write(out.Bytes())
	// Output:
	// # Notes
	//
	// Some **strong** and _emphasized_ text.
	//
	// - first
	//   - nested
	// - second
	//
	// |a|b|
	// |---|---|
	// |1|2|
}
