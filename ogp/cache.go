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
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
	"zombiezen.com/go/mdregen"
)

const (
	bucketTitles = "titles"
	bucketOGP    = "ogp"
)

// A Cache is an [mdregen.Fetcher] that remembers successful lookups
// of another Fetcher in a Bolt database.
// Failed lookups are not cached.
type Cache struct {
	db   *bolt.DB
	next mdregen.Fetcher
}

var _ mdregen.Fetcher = (*Cache)(nil)

// OpenCache opens (creating if necessary) the cache database at path.
// Lookups that miss the cache are passed to next.
func OpenCache(path string, next mdregen.Fetcher) (*Cache, error) {
	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{bucketTitles, bucketOGP} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("open cache %s: %w", path, err)
	}
	return &Cache{db: db, next: next}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// FetchTitle returns the cached title for url
// or fetches and stores it.
func (c *Cache) FetchTitle(ctx context.Context, url string) (string, error) {
	if v := c.get(bucketTitles, url); v != nil {
		tracer().Debugf("title cache hit for %s", url)
		return string(v), nil
	}
	title, err := c.next.FetchTitle(ctx, url)
	if err != nil {
		return "", err
	}
	c.put(bucketTitles, url, []byte(title))
	return title, nil
}

// FetchOGP returns the cached Open Graph metadata for url
// or fetches and stores it.
func (c *Cache) FetchOGP(ctx context.Context, url string) (*mdregen.OGP, error) {
	if v := c.get(bucketOGP, url); v != nil {
		ogp := new(mdregen.OGP)
		err := json.Unmarshal(v, ogp)
		if err == nil {
			tracer().Debugf("open graph cache hit for %s", url)
			return ogp, nil
		}
		tracer().Errorf("Corrupt cache entry for %s: %v", url, err)
	}
	ogp, err := c.next.FetchOGP(ctx, url)
	if err != nil {
		return nil, err
	}
	if v, err := json.Marshal(ogp); err == nil {
		c.put(bucketOGP, url, v)
	}
	return ogp, nil
}

// get returns a copy of the value stored under key
// or nil if there is none.
func (c *Cache) get(bucket, key string) []byte {
	var value []byte
	err := c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if v := b.Get([]byte(key)); v != nil {
			value = append([]byte{}, v...)
		}
		return nil
	})
	if err != nil {
		tracer().Errorf("Read %s cache: %v", bucket, err)
		return nil
	}
	return value
}

func (c *Cache) put(bucket, key string, value []byte) {
	err := c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		return b.Put([]byte(key), value)
	})
	if err != nil {
		tracer().Errorf("Write %s cache: %v", bucket, err)
	}
}
