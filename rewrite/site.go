// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rewrite turns a use of an obsolete symbol into a use of its
// successor, as described by the symbol's replacement hint.
//
// Detection hands a Diagnostic to a Fixer, which locates the site in the
// syntax tree, classifies it, resolves the callee's signature, remaps the
// call's arguments and builds the replacement text. Nothing is committed
// unless every step succeeds; otherwise the result is a no-op carrying
// the reason.
package rewrite

import (
	"fmt"
	"go/ast"
	"go/token"
)

// Rule is the identifier of the obsolete-symbol diagnostic.
const Rule = "obsolete"

// A SiteKind is the syntactic shape of a use of an obsolete symbol.
type SiteKind int

const (
	Invocation       SiteKind = 1 + iota // f(x), recv.M(x), pkg.F(x)
	SimpleAssignment                     // recv.F = x
	MemberAccess                         // recv.F, pkg.V, recv.M used as a value
	ObjectCreation                       // T{...}, &T{...}, new(T)
)

var siteKindNames = []string{
	Invocation:       "Invocation",
	SimpleAssignment: "SimpleAssignment",
	MemberAccess:     "MemberAccess",
	ObjectCreation:   "ObjectCreation",
}

func (k SiteKind) valid() bool {
	return Invocation <= k && k <= ObjectCreation
}

func (k SiteKind) String() string {
	if k.valid() {
		return siteKindNames[k]
	}
	return fmt.Sprintf("SiteKind(%d)", int(k))
}

func (k SiteKind) MarshalText() ([]byte, error) {
	if !k.valid() {
		return nil, fmt.Errorf("invalid site kind %d", int(k))
	}
	return []byte(siteKindNames[k]), nil
}

func (k *SiteKind) UnmarshalText(text []byte) error {
	for i, name := range siteKindNames {
		if name != "" && name == string(text) {
			*k = SiteKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown site kind %q", text)
}

// Props are the properties a diagnostic carries from detection to
// rewriting.
type Props struct {
	Replacement string   `json:"replacement"` // hint text
	Kind        SiteKind `json:"kind"`
	TypeLevel   bool     `json:"typeLevel"` // hint came from the used type, not the member
}

// Valid reports whether p has a replacement and a known site kind.
// Records that are not valid are skipped by the Fixer.
func (p Props) Valid() bool {
	return p.Replacement != "" && p.Kind.valid()
}

// A Diagnostic reports one use of an obsolete symbol.
type Diagnostic struct {
	Pos    token.Pos
	End    token.Pos
	Symbol string // name of the obsolete symbol
	Owner  string // qualified name of its declaring type or package
	Props  Props
}

func (d *Diagnostic) Message() string {
	return fmt.Sprintf("%s is obsolete and should be replaced with %s", d.Symbol, d.Props.Replacement)
}

// FixTitle returns the title of the suggested fix for d.
func (d *Diagnostic) FixTitle() string {
	return fmt.Sprintf("Replace method call with `%s`", d.Props.Replacement)
}

// A Signature is the resolved declaration behind a site.
type Signature struct {
	Name   string
	Params []string // parameter names in declaration order
	Static bool     // no receiver value at the site (function or method expression)
	Owner  string   // qualified name of the declaring type or package
}

// A CallSite is a read-only view of one site, built at fix time.
type CallSite struct {
	Kind     SiteKind
	Node     ast.Node
	Receiver ast.Expr // nil for object creation
	Member   string   // selected name, or the created type's name
	Static   bool
	Params   []string
	Args     []ast.Expr // call arguments or literal elements
}

// A Resolver resolves the signature of the symbol used at a site node.
type Resolver interface {
	Resolve(n ast.Node) (Signature, bool)
}

// A Source returns the current text of the file being fixed.
type Source interface {
	Text(lo, hi token.Pos) []byte
}

// An Editor commits the replacement of a node's text.
type Editor interface {
	ReplaceNode(n ast.Node, text string)
}
