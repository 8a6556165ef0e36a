// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hint

import "testing"

var extractTests = []struct {
	msg  string
	text string
	ok   bool
}{
	{"", "", false},
	{"use `a`", "", false},
	{"replace with `a`", "a", true},
	{"replace with 'a'", "", false},
	{"replace with `a'", "", false},
	{"replace with: `a`", "a", true},
	{"replace with`a`", "a", true},
	{"replace with`a`sometext", "a", true},
	{"Deprecated: Replace With `  pkg.F(x)  ` please", "pkg.F(x)", true},
	{"REPLACE WITH `a` or `b`", "a", true},
	{"`x` replace with `a`", "a", true},
	{"replace with ``", "", true},
	{"replace  with `a`", "", false},
}

func TestExtract(t *testing.T) {
	for _, tt := range extractTests {
		text, ok := Extract(tt.msg)
		if text != tt.text || ok != tt.ok {
			t.Errorf("Extract(%q) = %q, %v, want %q, %v", tt.msg, text, ok, tt.text, tt.ok)
		}
	}
}

var deprecationTests = []struct {
	doc  string
	msg  string
	ok   bool
	hint string
}{
	{"F does things.\n", "", false, ""},
	{"F does things.\n\nDeprecated: Replace with `G`.\n", "Deprecated: Replace with `G`.", true, "G"},
	{"Deprecated: Replace\nwith `G(a,\nb)`.\n\nMore text.\n", "Deprecated: Replace with `G(a, b)`.", true, "G(a, b)"},
	{"F does things.\n\nDeprecated: use G instead.\n", "Deprecated: use G instead.", true, ""},
	{"F does things. Replace with `G`.\n", "", false, ""},
	{"Deprecated: replace with ``.\n", "Deprecated: replace with ``.", true, ""},
}

func TestDeprecation(t *testing.T) {
	for _, tt := range deprecationTests {
		msg, ok := Deprecation(tt.doc)
		if msg != tt.msg || ok != tt.ok {
			t.Errorf("Deprecation(%q) = %q, %v, want %q, %v", tt.doc, msg, ok, tt.msg, tt.ok)
		}
		hint, ok := FromDoc(tt.doc)
		if hint != tt.hint || ok != (tt.hint != "") {
			t.Errorf("FromDoc(%q) = %q, %v, want %q", tt.doc, hint, ok, tt.hint)
		}
	}
}
