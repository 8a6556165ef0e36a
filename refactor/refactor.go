// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package refactor loads a module's packages with full syntax and type
// information and collects edits to their source files.
//
// Edits accumulate in a Snapshot. Loading again after edits yields a new
// Snapshot that sees the edited text, so that a sequence of rewrites can
// be applied one pass at a time before anything is written to disk.
package refactor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	ignore "github.com/sabhiram/go-gitignore"
	"golang.org/x/mod/modfile"
	"golang.org/x/tools/go/packages"
	"golang.org/x/xerrors"
)

// ErrNoModule is returned by New when the directory is not in a module.
var ErrNoModule = errors.New("no module found")

// A Refactor holds the state for an active refactoring.
type Refactor struct {
	Stderr io.Writer

	dir     string
	modRoot string
	modPath string
	cfg     Config
	exclude *ignore.GitIgnore

	g *Snapshot // latest snapshot

	// orig holds the on-disk text of every file edited in any snapshot.
	mu    sync.Mutex
	orig  map[string][]byte
	clean map[string]bool // orig is gofmt-formatted
}

// New returns a new refactoring of the module containing dir
// (usually ".").
func New(dir string, cfg Config) (*Refactor, error) {
	dir, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return nil, err
	}
	dir = filepath.Clean(dir)

	cmd := exec.Command("go", "env", "GOMOD")
	cmd.Dir = dir
	bmod, err := cmd.CombinedOutput()
	if err != nil {
		return nil, xerrors.Errorf("loading module: %v", err)
	}
	mod := strings.TrimSpace(string(bmod))
	if filepath.Base(mod) != "go.mod" {
		return nil, xerrors.Errorf("%s: %w", dir, ErrNoModule)
	}
	data, err := os.ReadFile(mod)
	if err != nil {
		return nil, xerrors.Errorf("loading module: %w", err)
	}
	mf, err := modfile.ParseLax(mod, data, nil)
	if err != nil {
		return nil, xerrors.Errorf("loading module: %w", err)
	}
	if mf.Module == nil {
		return nil, xerrors.Errorf("%s: no module statement: %w", mod, ErrNoModule)
	}

	r := &Refactor{
		Stderr:  os.Stderr,
		dir:     dir,
		modRoot: filepath.Dir(mod),
		modPath: mf.Module.Mod.Path,
		cfg:     cfg,
		orig:    make(map[string][]byte),
		clean:   make(map[string]bool),
	}
	if len(cfg.Exclude) > 0 {
		r.exclude = ignore.CompileIgnoreLines(cfg.Exclude...)
	}
	return r, nil
}

func (r *Refactor) ModPath() string {
	return r.modPath
}

// shortPath returns an absolute or relative name for path, whatever is shorter.
func (r *Refactor) shortPath(path string) string {
	if rel, err := filepath.Rel(r.dir, path); err == nil && len(rel) < len(path) {
		return rel
	}
	return path
}

func (r *Refactor) logf(format string, args ...any) {
	fmt.Fprintf(r.Stderr, format+"\n", args...)
}

// excluded reports whether the file name matches an exclude pattern.
// Patterns are matched against the path relative to the module root.
func (r *Refactor) excluded(name string) bool {
	if r.exclude == nil {
		return false
	}
	rel, err := filepath.Rel(r.modRoot, name)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	return r.exclude.MatchesPath(filepath.ToSlash(rel))
}

// saveOrig records the on-disk text of name the first time it is edited.
func (r *Refactor) saveOrig(name string, text []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orig[name]; !ok {
		r.orig[name] = text
	}
}

// editedNames returns the names of all files edited so far, sorted by
// directory and then by name.
func (r *Refactor) editedNames() []string {
	r.mu.Lock()
	names := make([]string, 0, len(r.orig))
	for name := range r.orig {
		names = append(names, name)
	}
	r.mu.Unlock()
	sort.Slice(names, func(i, j int) bool {
		di, dj := filepath.Dir(names[i]), filepath.Dir(names[j])
		if di != dj {
			return di < dj
		}
		return names[i] < names[j]
	})
	return names
}

func (r *Refactor) origText(name string) ([]byte, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	text, ok := r.orig[name]
	return text, ok
}

// gofmtClean reports whether the on-disk text of the edited file name
// is gofmt-formatted.
func (r *Refactor) gofmtClean(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if clean, ok := r.clean[name]; ok {
		return clean
	}
	orig, ok := r.orig[name]
	if !ok {
		return false
	}
	out, err := format.Source(orig)
	clean := err == nil && bytes.Equal(out, orig)
	r.clean[name] = clean
	return clean
}

type fileCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (fc *fileCache) cacheRead(name string, src []byte) []byte {
	fc.mu.Lock()
	if fc.data[name] == nil {
		if fc.data == nil {
			fc.data = make(map[string][]byte)
		}
		fc.data[name] = src
	} else {
		src = fc.data[name]
	}
	fc.mu.Unlock()
	return src
}

func (fc *fileCache) ParseFile(fset *token.FileSet, filename string, src []byte) (*ast.File, error) {
	const mode = parser.AllErrors | parser.ParseComments | parser.SkipObjectResolution
	return parser.ParseFile(fset, filename, fc.cacheRead(filename, src), mode)
}

const loadMode = packages.NeedName | packages.NeedFiles | packages.NeedSyntax |
	packages.NeedImports | packages.NeedDeps | packages.NeedTypes |
	packages.NeedTypesInfo | packages.NeedModule

// Load loads the packages matching patterns, with full syntax and type
// information for them and all their dependencies.
// Files edited in the previous snapshot are loaded with their edited text.
func (r *Refactor) Load(ctx context.Context, patterns ...string) (*Snapshot, error) {
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}
	flags, envs, err := r.cfg.flagsEnvs("go")
	if err != nil {
		return nil, xerrors.Errorf("build configuration %v: %w", r.cfg, err)
	}

	s := newSnapshot(r)
	if r.g != nil {
		for _, name := range r.editedNames() {
			s.files.cacheRead(name, r.g.currentBytes(name))
		}
	}
	cfg := &packages.Config{
		Context:    ctx,
		Mode:       loadMode,
		Dir:        r.dir,
		Tests:      r.cfg.tests(),
		Fset:       s.fset,
		ParseFile:  s.files.ParseFile,
		BuildFlags: flags,
		Env:        append(os.Environ(), envs...),
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, xerrors.Errorf("loading packages: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, xerrors.Errorf("no packages matching %s", strings.Join(patterns, " "))
	}
	s.setRoots(pkgs)
	if r.g != nil {
		r.g.stale = true
	}
	r.g = s
	return s, nil
}
