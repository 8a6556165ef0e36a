// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"go/ast"
	"go/format"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/imports"
	"golang.org/x/xerrors"

	"github.com/obsfix/obsfix/diff"
	"github.com/obsfix/obsfix/edit"
)

// bufferAt returns the edit buffer of the file containing pos.
func (s *Snapshot) bufferAt(pos token.Pos) *edit.PosBuffer {
	posn := s.Position(pos)
	name := posn.Filename

	s.mu.Lock()
	defer s.mu.Unlock()
	if b := s.edits[name]; b != nil {
		return b
	}
	text := s.files.cacheRead(name, nil)
	if text == nil {
		panic("file not found: " + name)
	}
	s.r.saveOrig(name, text)
	b := edit.NewBufferAt(pos-token.Pos(posn.Offset), text)
	s.edits[name] = b
	return b
}

// ReplaceAt replaces the text between lo and hi with repl.
func (s *Snapshot) ReplaceAt(lo, hi token.Pos, repl string) {
	s.bufferAt(lo).Replace(lo, hi, repl)
}

// ReplaceNode replaces the text of n with repl, as the smallest set of
// edits that turns one into the other. Comments and spacing in the parts
// that do not change are kept.
func (s *Snapshot) ReplaceNode(n ast.Node, repl string) {
	old := s.Text(n.Pos(), n.End())
	s.bufferAt(n.Pos()).ReplaceMinimal(n.Pos(), n.End(), string(old), repl)
}

// currentBytes returns the text of the named file with this snapshot's
// edits applied.
func (s *Snapshot) currentBytes(name string) []byte {
	s.mu.Lock()
	b := s.edits[name]
	s.mu.Unlock()
	if b != nil {
		return b.Bytes()
	}
	if text := s.files.cacheRead(name, nil); text != nil {
		return text
	}
	text, _ := s.r.origText(name)
	return text
}

// changed returns the names of files whose current text differs from
// the text on disk, in directory order.
func (s *Snapshot) changed() []string {
	var names []string
	for _, name := range s.r.editedNames() {
		old, _ := s.r.origText(name)
		if !bytes.Equal(old, s.currentBytes(name)) {
			names = append(names, name)
		}
	}
	return names
}

// Gofmt reformats the files edited in this snapshot whose text on disk
// was gofmt-formatted. Other files keep their layout outside the edits.
// With goimports enabled every edited file goes through goimports.
// Files that no longer parse are left as they are.
func (s *Snapshot) Gofmt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name, b := range s.edits {
		var text []byte
		var err error
		switch {
		case s.r.cfg.Goimports:
			text, err = imports.Process(name, b.Bytes(), nil)
		case s.r.gofmtClean(name):
			text, err = format.Source(b.Bytes())
		default:
			continue
		}
		if err != nil {
			continue
		}
		s.edits[name] = edit.NewBufferAt(^token.Pos(0), text)
	}
}

// Hash returns a digest of the names and current text of all files that
// differ from the text on disk. Two snapshots with the same hash have the
// same contents.
func (s *Snapshot) Hash() string {
	h := sha256.New()
	for _, name := range s.changed() {
		h.Write([]byte(name))
		h.Write([]byte{0})
		h.Write(s.currentBytes(name))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Diff returns a unified diff of every changed file against its text on
// disk, with file names relative to the module root.
func (s *Snapshot) Diff() ([]byte, error) {
	var diffs []byte
	for _, name := range s.changed() {
		old, _ := s.r.origText(name)
		rel, err := filepath.Rel(s.r.modRoot, name)
		if err != nil {
			rel = name
		}
		rel = filepath.ToSlash(rel)
		d, err := diff.Diff("old/"+rel, old, "new/"+rel, s.currentBytes(name))
		if err != nil {
			return nil, err
		}
		diffs = append(diffs, d...)
	}
	return diffs, nil
}

// Write writes every changed file back to disk.
func (s *Snapshot) Write() error {
	failed := false
	for _, name := range s.changed() {
		mode := os.FileMode(0666)
		if info, err := os.Stat(name); err == nil {
			mode = info.Mode().Perm()
		}
		if err := os.WriteFile(name, s.currentBytes(name), mode); err != nil {
			s.r.logf("%s", err)
			failed = true
		}
	}
	if failed {
		return xerrors.New("errors writing files")
	}
	return nil
}

// Modified returns the paths of the packages with changed files.
func (s *Snapshot) Modified() []string {
	changed := make(map[string]bool)
	for _, name := range s.changed() {
		changed[name] = true
	}
	seen := make(map[string]bool)
	var paths []string
	for _, p := range s.roots {
		path := strings.TrimSuffix(p.Pkg.PkgPath, "_test")
		if seen[path] {
			continue
		}
		for _, name := range p.Pkg.GoFiles {
			if changed[name] {
				seen[path] = true
				paths = append(paths, path)
				break
			}
		}
	}
	sort.Strings(paths)
	return paths
}
