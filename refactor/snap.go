// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"go/ast"
	"go/token"
	"sort"
	"strings"
	"sync"

	"golang.org/x/tools/go/packages"

	"github.com/obsfix/obsfix/edit"
)

// A Snapshot is a set of loaded packages and their parsed source files,
// plus a set of edits to be made to those files.
type Snapshot struct {
	r     *Refactor
	fset  *token.FileSet
	files fileCache
	stale bool
	roots []*Package // packages matching the load patterns
	all   []*Package // roots and their dependencies, dependencies first

	mu    sync.Mutex
	edits map[string]*edit.PosBuffer // keyed by absolute file name
}

// A Package is a loaded package.
type Package struct {
	s   *Snapshot
	Pkg *packages.Package
}

func (p *Package) String() string { return p.Pkg.ID }

// A File is a root source file, with the package it was type-checked in.
type File struct {
	Name   string // absolute file name
	Syntax *ast.File
	Pkg    *Package
}

func newSnapshot(r *Refactor) *Snapshot {
	return &Snapshot{
		r:     r,
		fset:  token.NewFileSet(),
		edits: make(map[string]*edit.PosBuffer),
	}
}

// setRoots records the loaded packages. Test mains are dropped, and a
// package's test variant is put ahead of the package itself so that
// files shared by both are attributed to the variant that sees the tests.
func (s *Snapshot) setRoots(pkgs []*packages.Package) {
	byID := make(map[string]*Package)
	wrap := func(p *packages.Package) *Package {
		if rp := byID[p.ID]; rp != nil {
			return rp
		}
		rp := &Package{s: s, Pkg: p}
		byID[p.ID] = rp
		return rp
	}
	packages.Visit(pkgs, nil, func(p *packages.Package) {
		s.all = append(s.all, wrap(p))
	})
	for _, p := range pkgs {
		if strings.HasSuffix(p.ID, ".test") {
			continue
		}
		s.roots = append(s.roots, wrap(p))
	}
	sort.SliceStable(s.roots, func(i, j int) bool {
		pi, pj := s.roots[i].Pkg, s.roots[j].Pkg
		if pi.PkgPath != pj.PkgPath {
			return pi.PkgPath < pj.PkgPath
		}
		return pi.ID != pi.PkgPath && pj.ID == pj.PkgPath
	})
}

// Stale reports whether a later snapshot has been loaded.
func (s *Snapshot) Stale() bool { return s.stale }

// Packages returns the root packages and all their dependencies.
func (s *Snapshot) Packages() []*Package {
	return s.all
}

// Files returns the source files of the root packages, each file once.
// Generated files and files matching an exclude pattern are skipped.
func (s *Snapshot) Files() []*File {
	return s.rootFiles(func(*Package) bool { return true })
}

// CheckedFiles is like Files but leaves out root packages that failed
// to load or type-check. A file shared with a broken test variant is
// attributed to a package without errors.
func (s *Snapshot) CheckedFiles() []*File {
	return s.rootFiles(func(p *Package) bool { return len(p.Pkg.Errors) == 0 })
}

func (s *Snapshot) rootFiles(ok func(*Package) bool) []*File {
	seen := make(map[string]bool)
	var files []*File
	for _, p := range s.roots {
		if !ok(p) {
			continue
		}
		for _, f := range p.Pkg.Syntax {
			name := s.fset.Position(f.Package).Filename
			if seen[name] {
				continue
			}
			seen[name] = true
			if ast.IsGenerated(f) || s.r.excluded(name) {
				continue
			}
			files = append(files, &File{Name: name, Syntax: f, Pkg: p})
		}
	}
	return files
}

// LoadErrors returns the errors reported while loading the root packages.
func (s *Snapshot) LoadErrors() error {
	var errs ErrorList
	for _, p := range s.roots {
		for _, e := range p.Pkg.Errors {
			if file, rest, ok := strings.Cut(e.Pos, ":"); ok {
				e.Pos = s.r.shortPath(file) + ":" + rest
			}
			errs.Add(e)
		}
	}
	return errs.Err()
}
