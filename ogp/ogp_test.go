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
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"zombiezen.com/go/mdregen"
)

const articlePage = `<!DOCTYPE html>
<html>
<head>
<title>
  An   Article
</title>
<meta name="description" content="Plain description">
<meta property="og:title" content="OG Article">
<meta property="og:image" content="https://example.com/a.png">
<meta property="og:site_name" content="Example">
</head>
<body><p>Hello</p></body>
</html>
`

const bareOGPPage = `<html><head>
<meta property="og:title" content="Only OG">
</head><body></body></html>
`

func newTestServer(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/article", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "mdregen-test" {
			t.Errorf("User-Agent = %q; want %q", got, "mdregen-test")
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(articlePage))
	})
	mux.HandleFunc("/bare", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(bareOGPPage))
	})
	mux.HandleFunc("/empty", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><body>nothing</body></html>"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchTitle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdregen.ogp")
	defer teardown()
	//
	srv := newTestServer(t)
	c := NewClient(5*time.Second, "mdregen-test")
	ctx := context.Background()

	title, err := c.FetchTitle(ctx, srv.URL+"/article")
	require.NoError(t, err)
	assert.Equal(t, "An Article", title)

	c.UserAgent = ""
	title, err = c.FetchTitle(ctx, srv.URL+"/bare")
	require.NoError(t, err)
	assert.Equal(t, "Only OG", title, "expected og:title fallback")

	_, err = c.FetchTitle(ctx, srv.URL+"/empty")
	assert.Error(t, err, "page without a title")

	_, err = c.FetchTitle(ctx, srv.URL+"/missing")
	assert.Error(t, err, "404 response")
}

func TestFetchOGP(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdregen.ogp")
	defer teardown()
	//
	srv := newTestServer(t)
	c := NewClient(5*time.Second, "mdregen-test")
	ctx := context.Background()

	got, err := c.FetchOGP(ctx, srv.URL+"/article")
	require.NoError(t, err)
	assert.Equal(t, &mdregen.OGP{
		Title:       "OG Article",
		Image:       "https://example.com/a.png",
		Description: "Plain description",
		SiteName:    "Example",
	}, got)

	got, err = c.FetchOGP(ctx, srv.URL+"/empty")
	require.NoError(t, err)
	assert.Equal(t, &mdregen.OGP{}, got)
}

func TestFetchCanceled(t *testing.T) {
	srv := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := new(Client).FetchOGP(ctx, srv.URL+"/article")
	assert.ErrorIs(t, err, context.Canceled)
}
