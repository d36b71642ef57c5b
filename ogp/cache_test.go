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

package ogp

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"zombiezen.com/go/mdregen"
)

// countingFetcher serves fixed answers and counts lookups.
type countingFetcher struct {
	titles map[string]string
	ogps   map[string]*mdregen.OGP
	calls  int
}

var errNotFound = errors.New("not found")

func (f *countingFetcher) FetchTitle(ctx context.Context, url string) (string, error) {
	f.calls++
	title, ok := f.titles[url]
	if !ok {
		return "", errNotFound
	}
	return title, nil
}

func (f *countingFetcher) FetchOGP(ctx context.Context, url string) (*mdregen.OGP, error) {
	f.calls++
	ogp, ok := f.ogps[url]
	if !ok {
		return nil, errNotFound
	}
	return ogp, nil
}

func TestCache(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdregen.ogp")
	defer teardown()
	//
	next := &countingFetcher{
		titles: map[string]string{"https://a.example/": "A"},
		ogps: map[string]*mdregen.OGP{
			"https://b.example/": {Title: "B", SiteName: "Bee"},
		},
	}
	path := filepath.Join(t.TempDir(), "cache.db")
	c, err := OpenCache(path, next)
	require.NoError(t, err)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		title, err := c.FetchTitle(ctx, "https://a.example/")
		require.NoError(t, err)
		assert.Equal(t, "A", title)
		ogp, err := c.FetchOGP(ctx, "https://b.example/")
		require.NoError(t, err)
		assert.Equal(t, &mdregen.OGP{Title: "B", SiteName: "Bee"}, ogp)
	}
	assert.Equal(t, 2, next.calls, "expected second round to hit the cache")

	for i := 0; i < 2; i++ {
		_, err := c.FetchTitle(ctx, "https://missing.example/")
		assert.ErrorIs(t, err, errNotFound)
	}
	assert.Equal(t, 4, next.calls, "expected failures not to be cached")
	require.NoError(t, c.Close())

	// Entries survive reopening.
	next.calls = 0
	c, err = OpenCache(path, next)
	require.NoError(t, err)
	defer c.Close()
	title, err := c.FetchTitle(ctx, "https://a.example/")
	require.NoError(t, err)
	assert.Equal(t, "A", title)
	assert.Zero(t, next.calls)
}
