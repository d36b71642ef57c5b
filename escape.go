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
	"strings"

	"go4.org/bytereplacer"
)

// angleEscaper escapes angle brackets only.
// Ampersands and quotes are copied through unchanged.
var angleEscaper = bytereplacer.New(
	"<", "&lt;",
	">", "&gt;",
)

// EscapeText replaces '<' with "&lt;" and '>' with "&gt;".
func EscapeText(s string) string {
	if !strings.ContainsAny(s, "<>") {
		return s
	}
	return string(angleEscaper.Replace([]byte(s)))
}

// appendEscaped appends the escaped form of s to dst.
func appendEscaped(dst []byte, s string) []byte {
	if !strings.ContainsAny(s, "<>") {
		return append(dst, s...)
	}
	return append(dst, angleEscaper.Replace([]byte(s))...)
}
