// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Obsfix replaces uses of deprecated Go symbols with their successors.
//
// Usage:
//
//	obsfix check [-format text|json|sarif] [-exit-zero] [packages]
//	obsfix fix [-diff] [-passes n] [packages]
//	obsfix hint [-params a,b] message
//	obsfix version
//
// Obsfix works on the module containing the current directory
// (or the directory given by -C). Packages default to ./...
//
// # Hints
//
// A deprecated symbol names its successor in the “Deprecated:” paragraph
// of its doc comment, after the words “replace with” and between backticks:
//
//	// MyOldMethod does things.
//	//
//	// Deprecated: Replace with `MyNewMethod(y, x, "text2")`.
//	func (c *MyClass) MyOldMethod(x string, y int) {}
//
// The words are matched without regard to case. The text between the
// first pair of backticks after them is the hint. A deprecation notice
// without a hint is left alone.
//
// A hint is a name, optionally qualified by a package or type and
// optionally followed by an argument list. In the argument list, the
// parameter names of the deprecated function stand for the arguments
// passed for them at each call. Every other argument is copied as
// written. Given the hint above,
//
//	c.MyOldMethod("text", 2)
//
// becomes
//
//	c.MyNewMethod(2, "text", "text2")
//
// A hint without an argument list keeps the arguments of the call.
// A qualified hint moves the call: with the hint `strutil.Reverse(s)`,
// the call util.Reverse(name) becomes strutil.Reverse(name).
// The qualifier is copied as written and no import is added for it,
// unless the goimports setting is on.
//
// A hint on a type renames the type in composite literals, new calls,
// method expressions and other selectors through the type. Arguments
// of a composite literal are never touched. When both a method and its
// receiver's type carry hints, the method's hint wins.
//
// Hints on struct fields and package-level variables rename reads and
// assignments through a selector, such as c.Field or pkg.Var.
//
// Some uses cannot be rewritten: a call of a deprecated function of the
// same package by its bare name, or a call passing a slice with ....
// They are still reported, and obsfix fix leaves them as they are.
//
// # The check command
//
// Check reports every use of a deprecated symbol that has a hint, one
// line per use, noting the uses it cannot fix. It exits with status 1
// when it reports anything, unless -exit-zero is given.
// The -format flag selects json or SARIF 2.1.0 output instead.
//
// # The fix command
//
// Fix rewrites every use it can and writes the changed files back.
// The -diff flag prints a unified diff of the changes instead.
//
// Fix works in passes. After each pass the packages are reloaded from
// the edited text and checked again, so a hint that names another
// deprecated symbol is followed to its end, and uses nested in other
// uses are fixed once their outer use is. The -passes flag bounds the
// number of passes; -passes 1 applies one hop of every chain.
// Fix stops early when a pass produces text seen before, which happens
// when hints form a cycle.
//
// Generated files and files matching an exclude pattern are never edited.
//
// # The hint command
//
// Hint prints the hint found in a deprecation message and how obsfix
// parses it, given the parameter names of the deprecated function:
//
//	$ obsfix hint -params x,y 'Deprecated: Replace with `MyNewMethod(y, x, "text2")`.'
//	hint: MyNewMethod(y, x, "text2")
//	name: MyNewMethod
//	args: ParamRef(y), ParamRef(x), Literal("text2")
//
// # Configuration
//
// Settings are read from .obsfix.yaml or .obsfix.toml in the working
// directory, or from the file given by -config:
//
//	tags: [integration]
//	tests: true
//	passes: 10
//	jobs: 8
//	goimports: false
//	exclude: ["third_party/", "*_mock.go"]
//	format: text
//
// Flags override the file.
//
// # Vet
//
// The obsfixvet command runs the same check as an analyzer, for use with
// go vet -vettool or any driver of golang.org/x/tools/go/analysis.
package main
