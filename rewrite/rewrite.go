// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"

	"github.com/obsfix/obsfix/edit"
	"github.com/obsfix/obsfix/hint"
)

// A Result is the outcome of rewriting one site.
// Either New is set and Text is the replacement text of Node,
// or NoOp says why Node is left alone.
type Result struct {
	Node ast.Node
	New  ast.Expr
	Text string
	NoOp string
}

// Replaced reports whether r carries a replacement.
func (r Result) Replaced() bool {
	return r.New != nil
}

func noop(n ast.Node, format string, args ...any) Result {
	return Result{Node: n, NoOp: fmt.Sprintf(format, args...)}
}

// NewSite returns the call site view of path for the resolved signature.
func NewSite(kind SiteKind, path Path, sig Signature) CallSite {
	site := CallSite{Kind: kind, Static: sig.Static, Params: sig.Params}
	switch p := path.(type) {
	case *TypeRename:
		site.Node = p.Node
		site.Member = typeString(p.Type)
		switch x := ast.Unparen(p.Node).(type) {
		case *ast.CompositeLit:
			site.Args = x.Elts
		case *ast.UnaryExpr:
			if lit, ok := ast.Unparen(x.X).(*ast.CompositeLit); ok {
				site.Args = lit.Elts
			}
		}
	case *MethodRewrite:
		site.Node = p.Call
		site.Receiver = p.Sel.X
		site.Member = p.Sel.Sel.Name
		site.Args = p.Call.Args
	case *PropertyRewrite:
		site.Node = p.Sel
		site.Receiver = p.Sel.X
		site.Member = p.Sel.Sel.Name
	}
	return site
}

// Rewrite builds the replacement of the site on path according to plan.
// A typeLevel plan comes from the type the site goes through rather than
// from the used member: it renames that type and keeps the member.
//
// The replacement is built in full over the site's text and checked to
// parse before it is returned. Any failure yields a no-op result.
func Rewrite(src Source, site CallSite, path Path, plan *hint.Plan, typeLevel bool) Result {
	switch p := path.(type) {
	case *Unsupported:
		return noop(site.Node, "%s", p.Reason)
	case nil:
		return noop(site.Node, "no rewrite path")
	}
	n := site.Node
	if n == nil {
		return noop(nil, "no site node")
	}
	if !token.IsIdentifier(plan.Name) {
		return noop(n, "replacement name %q is not an identifier", plan.Name)
	}
	if plan.Qualifier != "" && !isTypeName(plan.Qualifier) {
		return noop(n, "qualifier %q is not a type name", plan.Qualifier)
	}

	text := src.Text(n.Pos(), n.End())
	if len(text) != int(n.End()-n.Pos()) {
		return noop(n, "source text unavailable")
	}
	buf := edit.NewBufferAt(n.Pos(), text)
	switch p := path.(type) {
	case *TypeRename:
		renameType(buf, p.Type, plan)

	case *MethodRewrite:
		if typeLevel {
			if !renameReceiverType(buf, p.Sel.X, plan) {
				return noop(n, "receiver of %s is not a type", p.Sel.Sel.Name)
			}
			break
		}
		relocate(buf, p.Sel, plan)
		if !plan.HasArgs {
			break
		}
		if p.Call.Ellipsis.IsValid() {
			return noop(n, "cannot remap arguments of a call with ...")
		}
		args, err := Remap(src, Bind(site.Params, site.Args), plan)
		if err != nil {
			return noop(n, "%v", err)
		}
		// The list is replaced whole; comments between arguments are dropped.
		buf.Replace(p.Call.Lparen+1, p.Call.Rparen, strings.Join(args, ", "))

	case *PropertyRewrite:
		if typeLevel {
			if !renameReceiverType(buf, p.Sel.X, plan) {
				return noop(n, "receiver of %s is not a type", p.Sel.Sel.Name)
			}
			break
		}
		relocate(buf, p.Sel, plan)

	default:
		return noop(n, "unknown rewrite path %T", path)
	}

	repl := buf.String()
	x, err := parser.ParseExpr(repl)
	if err != nil {
		return noop(n, "replacement %s does not parse: %v", repl, firstLine(err))
	}
	return Result{Node: n, New: x, Text: repl}
}

// relocate moves the selector to the plan's target: the member becomes
// plan.Name and, with a qualifier, the receiver becomes the qualifier.
// A receiver that creates an object keeps its creation and only has its
// type replaced.
func relocate(buf *edit.PosBuffer, sel *ast.SelectorExpr, plan *hint.Plan) {
	if plan.Qualifier != "" {
		if t, ok := CreationType(sel.X); ok {
			if name := TypeName(t); name != nil {
				buf.Replace(name.Pos(), name.End(), plan.Qualifier)
			} else {
				buf.Replace(t.Pos(), t.End(), plan.Qualifier)
			}
		} else {
			buf.Replace(sel.X.Pos(), sel.X.End(), plan.Qualifier)
		}
	}
	buf.Replace(sel.Sel.Pos(), sel.Sel.End(), plan.Name)
}

// renameType replaces the type name t with the plan's qualified name.
// An unqualified plan applied to pkg.Old keeps the package.
func renameType(buf *edit.PosBuffer, t ast.Expr, plan *hint.Plan) {
	if sel, ok := t.(*ast.SelectorExpr); ok && plan.Qualifier == "" {
		buf.Replace(sel.Sel.Pos(), sel.Sel.End(), plan.Name)
		return
	}
	buf.Replace(t.Pos(), t.End(), plan.QualifiedName())
}

// renameReceiverType renames the type that x, the operand of a selector,
// denotes: Old, pkg.Old, (*Old), Old[T] and the like.
// It reports false if x does not name a type.
func renameReceiverType(buf *edit.PosBuffer, x ast.Expr, plan *hint.Plan) bool {
	if t, ok := CreationType(x); ok {
		x = t
	}
	name := TypeName(x)
	if name == nil {
		return false
	}
	renameType(buf, name, plan)
	return true
}

// isTypeName reports whether s is a possibly qualified type name.
func isTypeName(s string) bool {
	x, err := parser.ParseExpr(s)
	if err != nil {
		return false
	}
	for {
		switch t := x.(type) {
		case *ast.Ident:
			return true
		case *ast.SelectorExpr:
			x = t.X
		default:
			return false
		}
	}
}

func typeString(x ast.Expr) string {
	switch x := x.(type) {
	case *ast.Ident:
		return x.Name
	case *ast.SelectorExpr:
		return typeString(x.X) + "." + x.Sel.Name
	}
	return ""
}
