// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"go/token"
	"path/filepath"
)

func (s *Snapshot) Position(pos token.Pos) token.Position {
	return s.fset.Position(pos)
}

// Addr returns the position of pos as file:line:col,
// with the file name relative to the working directory when shorter.
func (s *Snapshot) Addr(pos token.Pos) string {
	p := s.fset.Position(pos)
	p.Filename = s.r.shortPath(p.Filename)
	return p.String()
}

// ShortPath returns name relative to the working directory when that is
// shorter.
func (s *Snapshot) ShortPath(name string) string {
	return s.r.shortPath(name)
}

// Text returns the text of the loaded file between lo and hi.
// It does not reflect edits made in this snapshot.
func (s *Snapshot) Text(lo, hi token.Pos) []byte {
	plo := s.Position(lo)
	phi := s.Position(hi)
	text := s.files.cacheRead(plo.Filename, nil)
	if text == nil || plo.Filename != phi.Filename {
		return nil
	}
	return text[plo.Offset:phi.Offset]
}

// FileByName returns the root file with the given name, which is
// relative to the working directory unless it is absolute.
func (s *Snapshot) FileByName(name string) *File {
	if !filepath.IsAbs(name) {
		name = filepath.Join(s.r.dir, name)
	}
	for _, f := range s.Files() {
		if f.Name == name {
			return f
		}
	}
	return nil
}
