// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package obsolete_test

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"reflect"
	"testing"

	"golang.org/x/tools/go/analysis/analysistest"

	"github.com/obsfix/obsfix/obsolete"
	"github.com/obsfix/obsfix/rewrite"
)

func TestAnalyzer(t *testing.T) {
	analysistest.Run(t, analysistest.TestData(), obsolete.Analyzer, "old")
	analysistest.RunWithSuggestedFixes(t, analysistest.TestData(), obsolete.Analyzer, "a", "b")
}

const detectSrc = `package p

type C struct {
	// Deprecated: Replace with ` + "`New`" + `.
	Old int

	New int
}

// Deprecated: Replace with ` + "`N(y, x)`" + `.
func (C) M(x, y int) {}

func (C) N(y, x int) {}

// Deprecated: Replace with ` + "`T2`" + `.
type T struct{}

func (T) Get() int { return 0 }

type T2 struct{}

func (T2) Get() int { return 0 }

// Deprecated: Replace with ` + "`V2`" + `.
var V = 1

var V2 = 2

func _(c C) {
	c.M(1, 2)
	c.Old = 3
	_ = c.Old
	_ = T{}
	_ = &T{}
	_ = new(T)
	_ = T.Get
	_ = (*T).Get
	_ = T{}.Get()
	_ = C{Old: 1}
	_ = V
	V++
	f := c.M
	_ = f
}
`

type detected struct {
	Symbol    string
	Kind      rewrite.SiteKind
	TypeLevel bool
	Text      string
}

func check(t *testing.T, src string) (*token.FileSet, *ast.File, *types.Info) {
	t.Helper()
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "p.go", src, parser.ParseComments)
	if err != nil {
		t.Fatal(err)
	}
	info := &types.Info{
		Types:      make(map[ast.Expr]types.TypeAndValue),
		Defs:       make(map[*ast.Ident]types.Object),
		Uses:       make(map[*ast.Ident]types.Object),
		Selections: make(map[*ast.SelectorExpr]*types.Selection),
	}
	conf := types.Config{Importer: importer.Default()}
	if _, err := conf.Check("p", fset, []*ast.File{f}, info); err != nil {
		t.Fatal(err)
	}
	return fset, f, info
}

func TestDetect(t *testing.T) {
	fset, f, info := check(t, detectSrc)
	idx := obsolete.NewIndex()
	idx.Add([]*ast.File{f}, info)
	if n := idx.Len(); n != 4 {
		t.Errorf("Index.Len() = %d, want 4", n)
	}

	var got []detected
	for _, d := range obsolete.Detect(f, info, idx.Lookup) {
		start := fset.Position(d.Pos).Offset
		end := fset.Position(d.End).Offset
		got = append(got, detected{d.Symbol, d.Props.Kind, d.Props.TypeLevel, detectSrc[start:end]})
	}
	want := []detected{
		{"M", rewrite.Invocation, false, "c.M(1, 2)"},
		{"Old", rewrite.SimpleAssignment, false, "c.Old"},
		{"Old", rewrite.MemberAccess, false, "c.Old"},
		{"T", rewrite.ObjectCreation, true, "T{}"},
		{"T", rewrite.ObjectCreation, true, "T{}"},
		{"T", rewrite.ObjectCreation, true, "new(T)"},
		{"T", rewrite.MemberAccess, true, "T.Get"},
		{"T", rewrite.MemberAccess, true, "(*T).Get"},
		{"T", rewrite.ObjectCreation, true, "T{}"},
		{"V", rewrite.MemberAccess, false, "V"},
		{"V", rewrite.SimpleAssignment, false, "V"},
		{"M", rewrite.MemberAccess, false, "c.M"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Detect:\nhave %v\nwant %v", got, want)
	}
}

// A member's own hint wins over the hint of the type it is used through,
// and the receiver creation is not reported separately.
func TestDetectMemberWins(t *testing.T) {
	const src = `package p

// Deprecated: Replace with ` + "`New`" + `.
type Old struct{}

// Deprecated: Replace with ` + "`N`" + `.
func (Old) M() {}

func (Old) N() {}

type New struct{}

func _() {
	Old{}.M()
	(&Old{}).M()
}
`
	_, f, info := check(t, src)
	idx := obsolete.NewIndex()
	idx.Add([]*ast.File{f}, info)
	diags := obsolete.Detect(f, info, idx.Lookup)
	if len(diags) != 2 {
		t.Fatalf("Detect: %d diagnostics, want 2: %+v", len(diags), diags)
	}
	for _, d := range diags {
		if d.Symbol != "M" || d.Props.Kind != rewrite.Invocation || d.Props.TypeLevel {
			t.Errorf("Detect: %+v, want member invocation of M", d)
		}
	}
}

func TestResolver(t *testing.T) {
	const src = `package p

type T struct{}

func (t T) M(x, y int) {}

func F(a string, b ...int) {}

var G func(z int)

var V int

func _(t T) {
	t.M(1, 2)
	T.M(t, 1, 2)
	F("s")
	G(1)
	_ = t.M
	_ = V
}
`
	_, f, info := check(t, src)
	r := obsolete.Resolver{Info: info}

	var sigs []rewrite.Signature
	ast.Inspect(f, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.CallExpr:
			sig, ok := r.Resolve(n)
			if !ok {
				t.Errorf("Resolve(call): not resolved")
			}
			sigs = append(sigs, sig)
			return false
		case *ast.AssignStmt:
			sig, ok := r.Resolve(n.Rhs[0])
			if !ok {
				t.Errorf("Resolve(%T): not resolved", n.Rhs[0])
			}
			sigs = append(sigs, sig)
			return false
		}
		return true
	})
	want := []rewrite.Signature{
		{Name: "M", Params: []string{"x", "y"}, Owner: "p.T"},
		{Name: "M", Params: []string{"t", "x", "y"}, Static: true, Owner: "p.T"},
		{Name: "F", Params: []string{"a", "b"}, Static: true, Owner: "p"},
		{Name: "G", Params: []string{"z"}, Static: true, Owner: "p"},
		{Name: "M", Owner: "p.T"},
		{Name: "V", Owner: "p"},
	}
	if !reflect.DeepEqual(sigs, want) {
		t.Errorf("Resolve:\nhave %+v\nwant %+v", sigs, want)
	}
}
