// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hint extracts replacement hints from deprecation notices
// and parses them into rewrite plans.
//
// A hint is the text between the first pair of backticks following
// the phrase "replace with", in any letter case:
//
//	// Deprecated: Replace with `NewMethod(y, x, "text2")`.
//
// The hint names the successor, optionally qualified by a package or
// type, optionally followed by an argument list that may refer to the
// deprecated function's parameters by name.
package hint

import (
	"regexp"
	"strings"
)

var replaceWith = regexp.MustCompile(`(?i)replace with`)

// Extract returns the hint text in msg, trimmed of surrounding space.
// It reports false if msg has no "replace with" phrase or no backtick
// pair after it. Single quotes never delimit a hint.
// The returned text may be empty; Parse rejects it.
func Extract(msg string) (string, bool) {
	loc := replaceWith.FindStringIndex(msg)
	if loc == nil {
		return "", false
	}
	_, rest, ok := strings.Cut(msg[loc[1]:], "`")
	if !ok {
		return "", false
	}
	text, _, ok := strings.Cut(rest, "`")
	if !ok {
		return "", false
	}
	return strings.TrimSpace(text), true
}

// Deprecation returns the "Deprecated:" paragraph of a doc comment,
// as returned by (*ast.CommentGroup).Text, with its line breaks and
// runs of spaces collapsed to single spaces.
func Deprecation(doc string) (string, bool) {
	for _, para := range strings.Split(doc, "\n\n") {
		para = strings.TrimSpace(para)
		if strings.HasPrefix(para, "Deprecated:") {
			return strings.Join(strings.Fields(para), " "), true
		}
	}
	return "", false
}

// FromDoc returns the hint of a doc comment: the hint text of its
// "Deprecated:" paragraph. It reports false when either is missing
// or the hint is empty.
func FromDoc(doc string) (string, bool) {
	msg, ok := Deprecation(doc)
	if !ok {
		return "", false
	}
	text, ok := Extract(msg)
	if !ok || text == "" {
		return "", false
	}
	return text, true
}
