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

// mdregen converts a Markdown file to HTML,
// regenerating the title, table of contents, and content
// of an existing page in place.
//
// Usage:
//
//	mdregen [flags] <source.md|-> <dest.html>
//
// The page layout is taken from -template if given,
// otherwise from dest itself if it exists,
// otherwise from a built-in skeleton.
package main

import (
	"bufio"
	"context"
	_ "embed"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/k0kubun/pp"
	"github.com/mattn/go-isatty"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pkg/errors"
	"zombiezen.com/go/mdregen"
	"zombiezen.com/go/mdregen/ogp"
)

//go:embed default.html
var defaultPage string

// flagError is returned for command lines the flag package rejects.
type flagError struct {
	err error
}

func (e flagError) Error() string { return e.err.Error() }
func (e flagError) Unwrap() error { return e.err }

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stderr)
	cancel()
	if err == nil {
		return
	}
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	var fe flagError
	if errors.As(err, &fe) {
		os.Exit(2)
	}
	fmt.Fprintln(os.Stderr, "mdregen:", err)
	os.Exit(1)
}

func run(ctx context.Context, args []string, stdin io.Reader, stderr io.Writer) error {
	flagSet := flag.NewFlagSet("mdregen", flag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.Usage = func() {
		fmt.Fprintln(stderr, "usage: mdregen [flags] <source.md|-> <dest.html>")
		flagSet.PrintDefaults()
	}
	configPath := flagSet.String("config", "", "read settings from TOML `file`")
	dump := flagSet.Bool("dump", false, "pretty-print the parsed document to stderr")
	flagCfg := defaultConfig()
	flagSet.StringVar(&flagCfg.Template, "template", "", "page layout `file` (default: dest if it exists)")
	flagSet.StringVar(&flagCfg.Cache, "cache", "", "cache lookups in database `file`")
	flagSet.BoolVar(&flagCfg.Offline, "offline", false, "do not fetch page titles or link card metadata")
	flagSet.Var(&flagCfg.FetchTimeout, "timeout", "time limit for each lookup")
	flagSet.StringVar(&flagCfg.UserAgent, "user-agent", "", "User-Agent header for lookups")
	flagSet.StringVar(&flagCfg.TraceLevel, "trace", flagCfg.TraceLevel, "trace `level` (Error, Info, or Debug)")
	flagSet.BoolVar(&flagCfg.KeepEmptyTOC, "keep-empty-toc", false, "emit the table of contents even without headers")
	if err := flagSet.Parse(args); err != nil {
		return flagError{err}
	}
	if flagSet.NArg() != 2 {
		flagSet.Usage()
		return errors.New("want source and destination arguments")
	}
	source, dest := flagSet.Arg(0), flagSet.Arg(1)

	if *configPath == "" && source != "-" {
		// Pick up mdregen.toml next to the source.
		candidate := filepath.Join(filepath.Dir(source), configFileName)
		if _, err := os.Stat(candidate); err == nil {
			*configPath = candidate
		}
	}
	cfg := defaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = loadConfig(*configPath)
		if err != nil {
			return err
		}
	}
	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "template":
			cfg.Template = flagCfg.Template
		case "cache":
			cfg.Cache = flagCfg.Cache
		case "offline":
			cfg.Offline = flagCfg.Offline
		case "timeout":
			cfg.FetchTimeout = flagCfg.FetchTimeout
		case "user-agent":
			cfg.UserAgent = flagCfg.UserAgent
		case "trace":
			cfg.TraceLevel = flagCfg.TraceLevel
		case "keep-empty-toc":
			cfg.KeepEmptyTOC = flagCfg.KeepEmptyTOC
		}
	})

	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
	trace := tracing.Select("mdregen")
	trace.SetOutput(stderr)
	trace.SetTraceLevel(tracing.TraceLevelFromString(cfg.TraceLevel))

	src, closeSource, err := openSource(source, stdin)
	if err != nil {
		return err
	}
	defer closeSource()

	parser := new(mdregen.Parser)
	if !cfg.Offline {
		client := ogp.NewClient(time.Duration(cfg.FetchTimeout), cfg.UserAgent)
		parser.Fetcher = client
		if cfg.Cache != "" {
			cache, err := ogp.OpenCache(cfg.Cache, client)
			if err != nil {
				return err
			}
			defer cache.Close()
			parser.Fetcher = cache
		}
	}
	doc, err := parser.ParseReader(ctx, src)
	if err != nil {
		return errors.Wrapf(err, "read %s", source)
	}
	if *dump {
		pp.Fprintln(stderr, doc)
	}

	tmpl, err := loadTemplate(cfg.Template, dest)
	if err != nil {
		return err
	}
	renderer := &mdregen.HTMLRenderer{KeepEmptyTOC: cfg.KeepEmptyTOC}
	n, err := writePage(dest, func(w io.Writer) error {
		return renderer.Render(w, doc, tmpl)
	})
	if err != nil {
		return err
	}
	trace.Infof("wrote %s (%s)", dest, humanize.Bytes(uint64(n)))
	return nil
}

// openSource opens the Markdown source named on the command line.
// "-" is standard input, which must not be a terminal.
func openSource(name string, stdin io.Reader) (io.Reader, func(), error) {
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, nil, err
		}
		return f, func() { f.Close() }, nil
	}
	if f, ok := stdin.(*os.File); ok {
		if fd := f.Fd(); isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
			return nil, nil, errors.New("refusing to read source from a terminal")
		}
	}
	return stdin, func() {}, nil
}

// loadTemplate returns the page layout to render into.
// Without an explicit layout, a missing destination
// falls back to the built-in skeleton.
func loadTemplate(path, dest string) (mdregen.Template, error) {
	if path != "" {
		return mdregen.ReadTemplateFile(path)
	}
	tmpl, err := mdregen.ReadTemplateFile(dest)
	if errors.Is(err, fs.ErrNotExist) {
		return mdregen.ExtractTemplate(strings.NewReader(defaultPage))
	}
	return tmpl, err
}

// writePage writes a file at dest with the output of render.
// dest is replaced only if render succeeds.
func writePage(dest string, render func(w io.Writer) error) (n int64, err error) {
	f, err := os.CreateTemp(filepath.Dir(dest), ".mdregen-*.html")
	if err != nil {
		return 0, errors.Wrap(err, "write page")
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()
	cw := &countWriter{w: f}
	bw := bufio.NewWriter(cw)
	if err := render(bw); err != nil {
		return 0, errors.Wrapf(err, "write %s", dest)
	}
	if err := bw.Flush(); err != nil {
		return 0, errors.Wrapf(err, "write %s", dest)
	}
	if err := f.Chmod(0o644); err != nil {
		return 0, errors.Wrapf(err, "write %s", dest)
	}
	if err := f.Close(); err != nil {
		return 0, errors.Wrapf(err, "write %s", dest)
	}
	if err := os.Rename(f.Name(), dest); err != nil {
		return 0, errors.Wrapf(err, "write %s", dest)
	}
	return cw.n, nil
}

type countWriter struct {
	w io.Writer
	n int64
}

func (cw *countWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
