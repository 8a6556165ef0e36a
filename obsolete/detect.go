// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package obsolete

import (
	"go/ast"
	"go/token"
	"go/types"

	"github.com/obsfix/obsfix/rewrite"
)

// A LookupFunc returns the hint of an object.
type LookupFunc func(types.Object) (string, bool)

// Detect returns the uses of obsolete symbols in file, in source order.
func Detect(file *ast.File, info *types.Info, lookup LookupFunc) []rewrite.Diagnostic {
	d := newDetector(info, lookup)
	ast.Inspect(file, func(n ast.Node) bool {
		if n != nil {
			d.visit(n)
		}
		return true
	})
	return d.diags
}

// nodeTypes are the nodes a detector visits.
var nodeTypes = []ast.Node{
	(*ast.CallExpr)(nil),
	(*ast.AssignStmt)(nil),
	(*ast.IncDecStmt)(nil),
	(*ast.SelectorExpr)(nil),
	(*ast.CompositeLit)(nil),
	(*ast.Ident)(nil),
}

// A detector finds uses of obsolete symbols. It must visit nodes in
// preorder: a call or assignment claims its selector or identifier so
// that the node is not reported again when visited on its own.
type detector struct {
	info    *types.Info
	lookup  LookupFunc
	handled map[ast.Node]bool
	diags   []rewrite.Diagnostic
}

func newDetector(info *types.Info, lookup LookupFunc) *detector {
	return &detector{info: info, lookup: lookup, handled: make(map[ast.Node]bool)}
}

func (d *detector) visit(n ast.Node) {
	if d.handled[n] {
		if sel, ok := n.(*ast.SelectorExpr); ok {
			d.handled[sel.Sel] = true
		}
		return
	}
	switch n := n.(type) {
	case *ast.CallExpr:
		d.call(n)
	case *ast.AssignStmt:
		if n.Tok == token.DEFINE {
			return
		}
		for _, lhs := range n.Lhs {
			d.assign(lhs)
		}
	case *ast.IncDecStmt:
		d.assign(n.X)
	case *ast.SelectorExpr:
		d.handled[n.Sel] = true
		d.selector(n, n, rewrite.MemberAccess)
	case *ast.CompositeLit:
		if n.Type != nil {
			d.creation(n, n.Type)
		}
	case *ast.Ident:
		d.ident(n)
	}
}

func (d *detector) call(call *ast.CallExpr) {
	fun := ast.Unparen(call.Fun)
	if tv, ok := d.info.Types[fun]; ok && tv.IsType() {
		return // conversion
	}
	switch fun := stripIndex(fun).(type) {
	case *ast.Ident:
		if _, ok := d.info.Uses[fun].(*types.Builtin); ok {
			if fun.Name == "new" && len(call.Args) == 1 {
				d.creation(call, call.Args[0])
			}
			return
		}
		if d.member(call, fun, rewrite.Invocation) {
			d.handled[fun] = true
		}
	case *ast.SelectorExpr:
		if d.selector(call, fun, rewrite.Invocation) {
			d.handled[fun] = true
		}
	}
}

func (d *detector) assign(lhs ast.Expr) {
	switch x := ast.Unparen(lhs).(type) {
	case *ast.SelectorExpr:
		if d.selector(x, x, rewrite.SimpleAssignment) {
			d.handled[x] = true
		}
	case *ast.Ident:
		if d.member(x, x, rewrite.SimpleAssignment) {
			d.handled[x] = true
		}
	}
}

// selector reports the use at site of the member selected by sel.
// The member's own hint wins. Otherwise, when sel.X denotes an obsolete
// type, the type's hint applies and the member is kept.
func (d *detector) selector(site ast.Node, sel *ast.SelectorExpr, kind rewrite.SiteKind) bool {
	if _, ok := d.info.Uses[sel.Sel].(*types.TypeName); ok {
		return false // qualified type name
	}
	if d.member(site, sel.Sel, kind) {
		// A receiver creating an obsolete type moves with the member.
		if _, ok := rewrite.CreationType(sel.X); ok {
			d.claimCreation(sel.X)
		}
		return true
	}
	if tv, ok := d.info.Types[sel.X]; ok && tv.IsType() {
		if obj := namedType(tv.Type); obj != nil {
			if text, ok := d.lookup(obj); ok {
				d.report(site, obj, text, kind, true)
				return true
			}
		}
	}
	return false
}

// member reports the use at site of the object id refers to, if it has a hint.
func (d *detector) member(site ast.Node, id *ast.Ident, kind rewrite.SiteKind) bool {
	obj := origin(d.info.Uses[id])
	switch obj.(type) {
	case *types.Func, *types.Var, *types.Const:
	default:
		return false
	}
	text, ok := d.lookup(obj)
	if !ok {
		return false
	}
	d.report(site, obj, text, kind, false)
	return true
}

// creation reports an object creation of an obsolete type.
func (d *detector) creation(site ast.Expr, typ ast.Expr) {
	name := rewrite.TypeName(typ)
	if name == nil {
		return
	}
	if _, ok := typ.(*ast.StarExpr); ok {
		return // new(*T) creates a pointer
	}
	id, ok := name.(*ast.Ident)
	if !ok {
		id = name.(*ast.SelectorExpr).Sel
	}
	tn, ok := d.info.Uses[id].(*types.TypeName)
	if !ok {
		return
	}
	if text, ok := d.lookup(tn); ok {
		d.report(site, tn, text, rewrite.ObjectCreation, true)
	}
}

// claimCreation marks the creation in x as handled.
func (d *detector) claimCreation(x ast.Expr) {
	switch x := ast.Unparen(x).(type) {
	case *ast.UnaryExpr:
		d.handled[ast.Unparen(x.X)] = true
	default:
		d.handled[x] = true
	}
}

// ident reports uses of obsolete functions, variables and constants by
// their bare name. They are never rewritten.
func (d *detector) ident(id *ast.Ident) {
	switch obj := d.info.Uses[id].(type) {
	case nil:
		return
	case *types.Var:
		if obj.IsField() {
			return // key of a struct literal
		}
	}
	d.member(id, id, rewrite.MemberAccess)
}

func (d *detector) report(site ast.Node, obj types.Object, text string, kind rewrite.SiteKind, typeLevel bool) {
	d.diags = append(d.diags, rewrite.Diagnostic{
		Pos:    site.Pos(),
		End:    site.End(),
		Symbol: obj.Name(),
		Owner:  owner(obj),
		Props: rewrite.Props{
			Replacement: text,
			Kind:        kind,
			TypeLevel:   typeLevel,
		},
	})
}

// stripIndex removes the instantiation of a generic function.
func stripIndex(x ast.Expr) ast.Expr {
	switch ix := x.(type) {
	case *ast.IndexExpr:
		return ix.X
	case *ast.IndexListExpr:
		return ix.X
	}
	return x
}

// origin returns the generic declaration of an instantiated object.
func origin(obj types.Object) types.Object {
	switch obj := obj.(type) {
	case *types.Func:
		return obj.Origin()
	case *types.Var:
		return obj.Origin()
	}
	return obj
}

// namedType returns the declared type name of t or *t.
func namedType(t types.Type) *types.TypeName {
	t = types.Unalias(t)
	if p, ok := t.(*types.Pointer); ok {
		t = types.Unalias(p.Elem())
	}
	if n, ok := t.(*types.Named); ok {
		return n.Origin().Obj()
	}
	return nil
}

// owner returns the qualified name of the type or package declaring obj.
func owner(obj types.Object) string {
	if fn, ok := obj.(*types.Func); ok {
		if recv := fn.Signature().Recv(); recv != nil {
			if tn := namedType(recv.Type()); tn != nil {
				return qualifiedName(tn)
			}
		}
	}
	if obj.Pkg() == nil {
		return ""
	}
	return obj.Pkg().Path()
}

func qualifiedName(obj types.Object) string {
	if obj.Pkg() == nil {
		return obj.Name()
	}
	return obj.Pkg().Path() + "." + obj.Name()
}
