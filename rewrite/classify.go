// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"go/ast"
	"go/token"
)

// A Path is the way a site is rewritten: one of *TypeRename,
// *MethodRewrite, *PropertyRewrite or *Unsupported.
type Path interface {
	path()
}

// TypeRename renames the type of an object creation.
// Arguments and elements are never touched.
type TypeRename struct {
	Node ast.Expr // *ast.CompositeLit, &T{...} or new(T)
	Type ast.Expr // type name within Node: *ast.Ident or *ast.SelectorExpr
}

// MethodRewrite rewrites a call through a selector.
type MethodRewrite struct {
	Call *ast.CallExpr
	Sel  *ast.SelectorExpr // Call.Fun without parentheses or instantiation
}

// PropertyRewrite rewrites a selector that is read, assigned or used
// as a method value.
type PropertyRewrite struct {
	Sel *ast.SelectorExpr
}

// Unsupported is a site that is reported but not rewritten.
type Unsupported struct {
	Reason string
}

func (*TypeRename) path()      {}
func (*MethodRewrite) path()   {}
func (*PropertyRewrite) path() {}
func (*Unsupported) path()     {}

// Classify returns the rewrite path for the site node n of the given kind.
func Classify(kind SiteKind, n ast.Node) Path {
	if !kind.valid() {
		return &Unsupported{"unknown site kind " + kind.String()}
	}
	x, ok := n.(ast.Expr)
	if !ok {
		return &Unsupported{"site is not an expression"}
	}
	if t, ok := CreationType(x); ok && (kind == ObjectCreation || !isCall(x)) {
		if name := TypeName(t); name != nil {
			return &TypeRename{Node: x, Type: name}
		}
		return &Unsupported{"creation of unnamed type"}
	}

	switch x := x.(type) {
	case *ast.CallExpr:
		if sel, ok := callee(x.Fun).(*ast.SelectorExpr); ok {
			return &MethodRewrite{Call: x, Sel: sel}
		}
		return &Unsupported{"call of unqualified function"}
	case *ast.SelectorExpr:
		return &PropertyRewrite{Sel: x}
	case *ast.Ident:
		return &Unsupported{"unqualified use of " + x.Name}
	case *ast.ParenExpr:
		return Classify(kind, x.X)
	}
	return &Unsupported{"unsupported expression"}
}

// callee returns the function of a call with parentheses and any
// instantiation removed: the pkg.F of (pkg.F[int]).
func callee(fun ast.Expr) ast.Expr {
	fun = ast.Unparen(fun)
	switch f := fun.(type) {
	case *ast.IndexExpr:
		return ast.Unparen(f.X)
	case *ast.IndexListExpr:
		return ast.Unparen(f.X)
	}
	return fun
}

func isCall(x ast.Expr) bool {
	_, ok := x.(*ast.CallExpr)
	return ok
}

// CreationType returns the type expression of an object creation:
// T{...}, &T{...} or new(T), with any parentheses removed.
func CreationType(x ast.Expr) (ast.Expr, bool) {
	switch x := ast.Unparen(x).(type) {
	case *ast.CompositeLit:
		if x.Type == nil {
			return nil, false
		}
		return x.Type, true
	case *ast.UnaryExpr:
		if lit, ok := ast.Unparen(x.X).(*ast.CompositeLit); ok && x.Op == token.AND && lit.Type != nil {
			return lit.Type, true
		}
	case *ast.CallExpr:
		if id, ok := ast.Unparen(x.Fun).(*ast.Ident); ok && id.Name == "new" && len(x.Args) == 1 && !x.Ellipsis.IsValid() {
			return x.Args[0], true
		}
	}
	return nil, false
}

// TypeName returns the name part of a type expression: the Old of
// Old, pkg.Old, Old[int], *Old or (Old). It returns nil for unnamed
// types.
func TypeName(x ast.Expr) ast.Expr {
	for {
		switch t := x.(type) {
		case *ast.ParenExpr:
			x = t.X
		case *ast.StarExpr:
			x = t.X
		case *ast.IndexExpr:
			x = t.X
		case *ast.IndexListExpr:
			x = t.X
		case *ast.Ident:
			return t
		case *ast.SelectorExpr:
			if _, ok := t.X.(*ast.Ident); ok {
				return t
			}
			return nil
		default:
			return nil
		}
	}
}
