// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"context"
	"go/ast"
	"go/token"

	"golang.org/x/tools/go/ast/astutil"

	"github.com/obsfix/obsfix/hint"
)

// A Fixer applies the rewrite for one diagnostic at a time.
type Fixer struct {
	Source   Source
	Resolver Resolver
	Editor   Editor // may be nil to compute results without committing them
}

// Fix rewrites the site reported by d in file. The edit is committed
// through f.Editor only if every step succeeds and ctx is still live.
func (f *Fixer) Fix(ctx context.Context, file *ast.File, d *Diagnostic) Result {
	if !d.Props.Valid() {
		return noop(nil, "invalid diagnostic properties %+v", d.Props)
	}
	if err := ctx.Err(); err != nil {
		return noop(nil, "%v", err)
	}

	n := Locate(file, d.Pos, d.End, d.Props.Kind)
	if n == nil {
		return noop(nil, "no %v site at diagnostic", d.Props.Kind)
	}
	path := Classify(d.Props.Kind, n)
	if u, ok := path.(*Unsupported); ok {
		return noop(n, "%s", u.Reason)
	}

	var sig Signature
	var params []string
	if _, ok := path.(*TypeRename); !ok && !d.Props.TypeLevel {
		var ok bool
		sig, ok = f.Resolver.Resolve(n)
		if !ok {
			return noop(n, "cannot resolve %s", d.Symbol)
		}
		params = sig.Params
	}
	if err := ctx.Err(); err != nil {
		return noop(n, "%v", err)
	}

	plan, err := hint.Parse(d.Props.Replacement, params)
	if err != nil {
		return noop(n, "%v", err)
	}
	if err := ctx.Err(); err != nil {
		return noop(n, "%v", err)
	}

	r := Rewrite(f.Source, NewSite(d.Props.Kind, path, sig), path, plan, d.Props.TypeLevel)
	if !r.Replaced() {
		return r
	}
	if err := ctx.Err(); err != nil {
		return noop(n, "%v", err)
	}
	if f.Editor != nil {
		f.Editor.ReplaceNode(r.Node, r.Text)
	}
	return r
}

// Locate returns the innermost node of the given site kind spanning
// exactly [pos, end) in file, or nil.
func Locate(file *ast.File, pos, end token.Pos, kind SiteKind) ast.Node {
	path, _ := astutil.PathEnclosingInterval(file, pos, end)
	for _, n := range path {
		if n.Pos() != pos || n.End() != end {
			break
		}
		if isKind(n, kind) {
			return n
		}
	}
	return nil
}

func isKind(n ast.Node, kind SiteKind) bool {
	switch n.(type) {
	case *ast.CallExpr:
		return kind == Invocation || kind == ObjectCreation
	case *ast.CompositeLit:
		return kind == ObjectCreation
	case *ast.UnaryExpr:
		return kind == ObjectCreation
	case *ast.SelectorExpr, *ast.Ident:
		return kind == MemberAccess || kind == SimpleAssignment
	}
	return false
}
