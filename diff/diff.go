// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diff implements a Diff function that compares two inputs
// and prints the result in unified diff format.
package diff

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	godiff "github.com/sourcegraph/go-diff/diff"
)

// Diff returns the unified diff of old and new, with three lines of context,
// preceded by a "diff oldName newName" line.
// It returns nil if the inputs are equal.
func Diff(oldName string, old []byte, newName string, new []byte) ([]byte, error) {
	if bytes.Equal(old, new) {
		return nil, nil
	}
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        splitLines(old),
		B:        splitLines(new),
		FromFile: oldName,
		ToFile:   newName,
		Context:  3,
	})
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, nil
	}
	return []byte(fmt.Sprintf("diff %s %s\n", oldName, newName) + text), nil
}

// splitLines splits text into lines, each ending in a newline.
// A final line without one gets it added.
func splitLines(text []byte) []string {
	if len(text) == 0 {
		return nil
	}
	lines := strings.SplitAfter(string(text), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	} else {
		lines[len(lines)-1] += "\n"
	}
	return lines
}

// A Stat summarizes a multi-file diff.
type Stat struct {
	Files   int
	Added   int
	Deleted int
}

func (s Stat) String() string {
	files := "files"
	if s.Files == 1 {
		files = "file"
	}
	return fmt.Sprintf("%d %s changed, %d insertions(+), %d deletions(-)", s.Files, files, s.Added, s.Deleted)
}

// Stats parses the concatenated output of Diff and counts
// the changed files and lines.
func Stats(d []byte) (Stat, error) {
	var st Stat
	if len(d) == 0 {
		return st, nil
	}
	files, err := godiff.ParseMultiFileDiff(d)
	if err != nil {
		return st, err
	}
	for _, f := range files {
		s := f.Stat()
		st.Files++
		st.Added += int(s.Added + s.Changed)
		st.Deleted += int(s.Deleted + s.Changed)
	}
	return st, nil
}
