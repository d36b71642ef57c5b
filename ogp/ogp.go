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

// Package ogp fetches page titles and Open Graph metadata over HTTP
// for use as an [mdregen.Fetcher].
package ogp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/npillmayer/schuko/tracing"
	"zombiezen.com/go/mdregen"
)

// tracer traces with key 'mdregen.ogp'.
func tracer() tracing.Trace {
	return tracing.Select("mdregen.ogp")
}

// DefaultUserAgent is sent when a Client has no UserAgent.
const DefaultUserAgent = "mdregen (+https://zombiezen.com/go/mdregen)"

// maxPageSize is the number of body bytes read from a page.
const maxPageSize = 2 << 20

// A Client fetches page metadata over HTTP.
// It implements [mdregen.Fetcher].
type Client struct {
	// HTTPClient is the client used for requests.
	// If nil, http.DefaultClient is used.
	HTTPClient *http.Client
	// UserAgent is the User-Agent header sent with requests.
	UserAgent string
}

var _ mdregen.Fetcher = (*Client)(nil)

// NewClient returns a client whose requests time out after timeout.
// A zero timeout means no timeout.
func NewClient(timeout time.Duration, userAgent string) *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: timeout},
		UserAgent:  userAgent,
	}
}

// FetchTitle returns the content of the page's <title> element,
// falling back to its og:title property.
func (c *Client) FetchTitle(ctx context.Context, url string) (string, error) {
	doc, err := c.get(ctx, url)
	if err != nil {
		return "", fmt.Errorf("fetch title: %w", err)
	}
	title := pageTitle(doc)
	if title == "" {
		title = property(doc, "og:title")
	}
	if title == "" {
		return "", fmt.Errorf("fetch title: %s has no title", url)
	}
	return title, nil
}

// FetchOGP returns the page's Open Graph metadata.
// og:title falls back to <title>
// and og:description falls back to the description meta tag.
func (c *Client) FetchOGP(ctx context.Context, url string) (*mdregen.OGP, error) {
	doc, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch open graph metadata: %w", err)
	}
	ogp := &mdregen.OGP{
		Title:       property(doc, "og:title"),
		Image:       property(doc, "og:image"),
		Description: property(doc, "og:description"),
		SiteName:    property(doc, "og:site_name"),
	}
	if ogp.Title == "" {
		ogp.Title = pageTitle(doc)
	}
	if ogp.Description == "" {
		ogp.Description = metaName(doc, "description")
	}
	return ogp, nil
}

func (c *Client) get(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	ua := c.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.1")

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	tracer().Debugf("GET %s", url)
	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not get %s: %w", url, err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("could not get %s: http %s", url, res.Status)
	}
	doc, err := goquery.NewDocumentFromReader(io.LimitReader(res.Body, maxPageSize))
	if err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", url, err)
	}
	return doc, nil
}

func pageTitle(doc *goquery.Document) string {
	return collapseSpace(doc.Find("head title").First().Text())
}

// property returns the content of the first <meta property=name> tag.
func property(doc *goquery.Document, name string) string {
	return metaContent(doc, "property", name)
}

// metaName returns the content of the first <meta name=name> tag.
func metaName(doc *goquery.Document, name string) string {
	return metaContent(doc, "name", name)
}

func metaContent(doc *goquery.Document, attr, name string) string {
	var content string
	doc.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !strings.EqualFold(s.AttrOr(attr, ""), name) {
			return true
		}
		content = s.AttrOr("content", "")
		return false
	})
	return collapseSpace(content)
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
