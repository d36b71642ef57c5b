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

package main

import (
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// configFileName is the configuration file
// looked up in the source's directory when -config is not given.
const configFileName = "mdregen.toml"

// configuration is the content of a -config file.
// Flags given on the command line take precedence.
type configuration struct {
	// Template is the path of the page layout.
	Template string
	// Cache is the path of the lookup cache database.
	// Empty disables caching.
	Cache        string
	FetchTimeout duration
	UserAgent    string
	// Offline disables network lookups.
	Offline      bool
	TraceLevel   string
	KeepEmptyTOC bool
}

func defaultConfig() configuration {
	return configuration{
		FetchTimeout: duration(10 * time.Second),
		TraceLevel:   "Error",
	}
}

// loadConfig reads the TOML file at path over the defaults.
func loadConfig(path string) (configuration, error) {
	cfg := defaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(err, "could not parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.Errorf("config %s: unknown keys %v", path, undecoded)
	}
	return cfg, nil
}

// duration is a time.Duration written as a string like "10s".
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(v)
	return nil
}

func (d duration) String() string {
	return time.Duration(d).String()
}

func (d *duration) Set(s string) error {
	return d.UnmarshalText([]byte(s))
}
