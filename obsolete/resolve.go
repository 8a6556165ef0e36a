// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package obsolete

import (
	"go/ast"
	"go/types"

	"github.com/obsfix/obsfix/rewrite"
)

// A Resolver resolves sites against the type information of the
// package containing them.
type Resolver struct {
	Info *types.Info
}

var _ rewrite.Resolver = Resolver{}

// Resolve returns the signature of the function, method or variable
// used at n. For a method expression T.M the receiver becomes the
// first parameter, matching the arguments at the call.
func (r Resolver) Resolve(n ast.Node) (rewrite.Signature, bool) {
	var id *ast.Ident
	var recvParam bool
	switch n := n.(type) {
	case *ast.CallExpr:
		switch fun := stripIndex(ast.Unparen(n.Fun)).(type) {
		case *ast.Ident:
			id = fun
		case *ast.SelectorExpr:
			id = fun.Sel
			if sel := r.Info.Selections[fun]; sel != nil && sel.Kind() == types.MethodExpr {
				recvParam = true
			}
		default:
			return rewrite.Signature{}, false
		}
	case *ast.SelectorExpr:
		id = n.Sel
	case *ast.Ident:
		id = n
	default:
		return rewrite.Signature{}, false
	}

	obj := origin(r.Info.Uses[id])
	if obj == nil {
		return rewrite.Signature{}, false
	}
	s := rewrite.Signature{Name: obj.Name(), Owner: owner(obj)}
	if _, ok := n.(*ast.CallExpr); !ok {
		return s, true
	}

	sig, ok := obj.Type().Underlying().(*types.Signature)
	if !ok {
		return rewrite.Signature{}, false
	}
	s.Static = sig.Recv() == nil || recvParam
	if recvParam {
		s.Params = append(s.Params, sig.Recv().Name())
	}
	for v := range sig.Params().Variables() {
		s.Params = append(s.Params, v.Name())
	}
	return s, true
}
