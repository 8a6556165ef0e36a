// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"fmt"
	"go/ast"
	"go/parser"
	"strings"

	"github.com/obsfix/obsfix/hint"
)

// A Binding maps parameter names to the arguments passed for them.
type Binding struct {
	Args   []ast.Expr          // all arguments of the call, in order
	Params map[string]ast.Expr // bound parameters
}

// Bind binds params to args by position. Only the first
// min(len(params), len(args)) pairs are bound: arguments beyond the
// declared parameters, as passed to a variadic parameter, are not
// reachable by name. Blank and unnamed parameters bind nothing.
func Bind(params []string, args []ast.Expr) Binding {
	b := Binding{Args: args, Params: make(map[string]ast.Expr)}
	for i := 0; i < len(params) && i < len(args); i++ {
		if p := params[i]; p != "" && p != "_" {
			b.Params[p] = args[i]
		}
	}
	return b
}

// Remap returns the argument list of the new call.
// A plan without an argument list reuses the original arguments.
// Otherwise each ParamRef token bound in b becomes the text of its
// argument, and every other token must parse as an expression on its own
// and is used as written.
func Remap(src Source, b Binding, plan *hint.Plan) ([]string, error) {
	if !plan.HasArgs {
		out := make([]string, len(b.Args))
		for i, arg := range b.Args {
			out[i] = string(src.Text(arg.Pos(), arg.End()))
		}
		return out, nil
	}
	out := make([]string, 0, len(plan.Args))
	for _, tok := range plan.Args {
		if tok.Kind == hint.ParamRef {
			if arg, ok := b.Params[tok.Text]; ok {
				out = append(out, string(src.Text(arg.Pos(), arg.End())))
				continue
			}
		}
		if _, err := parser.ParseExpr(tok.Text); err != nil {
			return nil, fmt.Errorf("argument %s: %v", tok.Text, firstLine(err))
		}
		out = append(out, tok.Text)
	}
	return out, nil
}

func firstLine(err error) string {
	s, _, _ := strings.Cut(err.Error(), "\n")
	return s
}
