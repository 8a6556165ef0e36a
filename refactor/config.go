// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
)

// A Config is a build configuration plus the settings that control
// which files are loaded and how edited files are finished.
type Config struct {
	// BuildTags is a list of build tags to set for this configuration.
	//
	// Some build tags are propagated specially:
	//
	// - GOOS and GOARCH build tags control the GOOS/GOARCH environment
	// variables.
	//
	// - The "race" build tag controls the -race flag.
	//
	// - The "cgo" and "!cgo" build tags control the CGO_ENABLED environment
	// variable.
	//
	// TODO: We might need to do something for release tags, too.
	BuildTags []string `yaml:"tags" toml:"tags"`

	// Tests reports whether test files are loaded. Unset means true.
	Tests *bool `yaml:"tests" toml:"tests"`

	// Goimports runs goimports over every edited file.
	Goimports bool `yaml:"goimports" toml:"goimports"`

	// Exclude lists gitignore-style patterns, relative to the module
	// root, of files that are never edited.
	Exclude []string `yaml:"exclude" toml:"exclude"`
}

func (c Config) tests() bool {
	return c.Tests == nil || *c.Tests
}

func readJSON(cmd *exec.Cmd, out any) error {
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr
	err := cmd.Run()
	if err != nil {
		return err
	}
	return json.Unmarshal(stdout.Bytes(), out)
}

type goosGoarch struct {
	GOOS         string
	GOARCH       string
	CgoSupported bool
}

var platformsOnce struct {
	once sync.Once
	ps   []goosGoarch
	err  error
}

func platforms(goBinary string) ([]goosGoarch, error) {
	platformsOnce.once.Do(func() {
		var platforms []goosGoarch
		cmd := exec.Command(goBinary, "tool", "dist", "list", "-json")
		if err := readJSON(cmd, &platforms); err != nil {
			platformsOnce.err = fmt.Errorf("getting GOOS/GOARCH values: %w", err)
			return
		}
		platformsOnce.ps = platforms
	})
	return platformsOnce.ps, platformsOnce.err
}

func (c Config) String() string {
	return strings.Join(c.BuildTags, ",")
}

// flagsEnvs returns the flags and environment variables to pass to go build to
// produce this build configuration.
func (c Config) flagsEnvs(goBinary string) (flags, envs []string, err error) {
	if len(c.BuildTags) == 0 {
		return nil, nil, nil
	}
	plats, err := platforms(goBinary)
	if err != nil {
		return nil, nil, err
	}
	gooses := make(map[string]bool)
	goarches := make(map[string]bool)
	for _, plat := range plats {
		gooses[plat.GOOS] = true
		goarches[plat.GOARCH] = true
	}

	var flagTags []string
	haveEnv := make(map[string]string)
	addEnv := func(k, v string) error {
		if v2, ok := haveEnv[k]; ok {
			if v == v2 {
				return nil
			}
			return fmt.Errorf("conflicting %s values: %s and %s", k, v, v2)
		}
		haveEnv[k] = v
		envs = append(envs, k+"="+v)
		return nil
	}
	for _, tag := range c.BuildTags {
		switch {
		case gooses[tag]:
			if err := addEnv("GOOS", tag); err != nil {
				return nil, nil, err
			}
		case goarches[tag]:
			if err := addEnv("GOARCH", tag); err != nil {
				return nil, nil, err
			}
		case tag == "cgo":
			if err := addEnv("CGO_ENABLED", "1"); err != nil {
				return nil, nil, err
			}
		case tag == "!cgo":
			if err := addEnv("CGO_ENABLED", "0"); err != nil {
				return nil, nil, err
			}
		case tag == "race":
			flags = append(flags, "-race")
		default:
			flagTags = append(flagTags, tag)
		}
	}
	if len(flagTags) > 0 {
		flags = append(flags, "-tags="+strings.Join(flagTags, ","))
	}
	return flags, envs, nil
}
