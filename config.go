// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"

	"github.com/obsfix/obsfix/refactor"
	"github.com/obsfix/obsfix/report"
)

// configNames are the settings files looked for in the working directory,
// in order.
var configNames = []string{".obsfix.yaml", ".obsfix.yml", ".obsfix.toml"}

// settings are the values of a settings file.
type settings struct {
	refactor.Config `yaml:",inline"`

	Passes int           `yaml:"passes" toml:"passes"`
	Jobs   int           `yaml:"jobs" toml:"jobs"`
	Format report.Format `yaml:"format" toml:"format"`
}

func defaultSettings() settings {
	return settings{
		Passes: 10,
		Jobs:   runtime.GOMAXPROCS(0),
		Format: report.Text,
	}
}

// loadSettings reads the settings file name, or when name is empty the
// first of configNames found in dir. It returns the defaults when there
// is no file, and the name of the file read.
func loadSettings(dir, name string) (settings, string, error) {
	st := defaultSettings()
	if name == "" {
		for _, n := range configNames {
			path := filepath.Join(dir, n)
			if _, err := os.Stat(path); err == nil {
				name = path
				break
			} else if !errors.Is(err, fs.ErrNotExist) {
				return st, "", xerrors.Errorf("settings: %w", err)
			}
		}
		if name == "" {
			return st, "", nil
		}
	} else if !filepath.IsAbs(name) {
		name = filepath.Join(dir, name)
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return st, "", xerrors.Errorf("settings: %w", err)
	}
	if strings.HasSuffix(name, ".toml") {
		md, err := toml.Decode(string(data), &st)
		if err != nil {
			return st, "", xerrors.Errorf("%s: %w", name, err)
		}
		if und := md.Undecoded(); len(und) > 0 {
			return st, "", xerrors.Errorf("%s: unknown setting %s", name, und[0])
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&st); err != nil && !errors.Is(err, io.EOF) {
			return st, "", xerrors.Errorf("%s: %w", name, err)
		}
	}
	if err := st.check(); err != nil {
		return st, "", xerrors.Errorf("%s: %w", name, err)
	}
	return st, name, nil
}

// check validates the settings.
func (st *settings) check() error {
	if st.Passes < 1 {
		return newErrUsage("passes must be at least 1, have %d", st.Passes)
	}
	if st.Jobs < 1 {
		return newErrUsage("jobs must be at least 1, have %d", st.Jobs)
	}
	f := st.Format
	if f == "" {
		f = report.Text
	}
	if err := st.Format.Set(string(f)); err != nil {
		return newErrUsage("%v", err)
	}
	return nil
}
