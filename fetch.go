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

import "context"

// A Fetcher looks up metadata of remote pages.
// The parser calls it synchronously
// for links with empty text and for link cards.
// Implementations own their timeout and retry policy.
type Fetcher interface {
	// FetchTitle returns the title of the page at url.
	FetchTitle(ctx context.Context, url string) (string, error)
	// FetchOGP returns the Open Graph metadata of the page at url.
	FetchOGP(ctx context.Context, url string) (*OGP, error)
}

// OGP is the subset of a page's Open Graph metadata used for link cards.
// Empty fields are absent.
type OGP struct {
	Title       string `json:"title"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
	SiteName    string `json:"site_name,omitempty"`
}

// noFetcher fails every lookup.
type noFetcher struct{}

func (noFetcher) FetchTitle(ctx context.Context, url string) (string, error) {
	return "", errNoFetcher
}

func (noFetcher) FetchOGP(ctx context.Context, url string) (*OGP, error) {
	return nil, errNoFetcher
}
