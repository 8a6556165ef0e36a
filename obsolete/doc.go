// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package obsolete defines an Analyzer that reports uses of obsolete
symbols and suggests rewriting them to their successors.

# Analyzer obsolete

obsolete: report and replace uses of symbols deprecated with a replacement hint

A symbol is obsolete when its doc comment has a "Deprecated:" paragraph
naming its successor in backticks after the words "replace with":

	// Deprecated: Replace with `MyNewMethod(y, x, "text2")`.
	func (c *MyClass) MyOldMethod(x string, y int) {}

The text between the backticks is the hint. It names the successor, may
qualify it with a package or type, and may give an argument list in
which the parameter names of the obsolete function stand for the
arguments passed at each call:

	c.MyOldMethod("text", 2)

becomes

	c.MyNewMethod(2, "text", "text2")

A hint without an argument list keeps the call's arguments. A qualified
hint moves the call to the qualifier:

	// Deprecated: Replace with `strutil.Reverse(s)`.
	func Reverse(s string) string

Calls, reads and assignments of obsolete fields and variables, method
values, and composite literals or new calls of obsolete types are all
reported. A hint on a type renames the type at object creations and in
selectors through the type, such as method expressions. A member's own
hint wins over the hint of its type.

Uses the analyzer cannot rewrite, such as a call of an obsolete function
of the same package by its bare name, are reported without a fix.
Deprecation notices without a hint are ignored.
*/
package obsolete
