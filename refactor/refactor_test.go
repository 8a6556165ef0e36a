// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"context"
	"go/ast"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"
)

const testMod = "module example.com/m\n\ngo 1.22\n"

const testSrc = `package m

func Old(x, y int) int { return x + y }

func New(x, y int) int { return x + y }

var V = Old(1, 2) // keep this comment
`

func writeModule(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, text := range files {
		name = filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(name), 0777))
		require.NoError(t, os.WriteFile(name, []byte(text), 0666))
	}
	return dir
}

func findCall(t *testing.T, f *ast.File, name string) *ast.CallExpr {
	t.Helper()
	var call *ast.CallExpr
	ast.Inspect(f, func(n ast.Node) bool {
		if c, ok := n.(*ast.CallExpr); ok && call == nil {
			if id, ok := c.Fun.(*ast.Ident); ok && id.Name == name {
				call = c
			}
		}
		return call == nil
	})
	require.NotNil(t, call, "no call of %s", name)
	return call
}

func TestSnapshotEdits(t *testing.T) {
	dir := writeModule(t, map[string]string{"go.mod": testMod, "m.go": testSrc})
	r, err := New(dir, Config{})
	require.NoError(t, err)
	assert.Equal(t, "example.com/m", r.ModPath())

	ctx := context.Background()
	s, err := r.Load(ctx, "./...")
	require.NoError(t, err)
	require.NoError(t, s.LoadErrors())
	assert.Equal(t, sha256Empty, s.Hash())

	f := s.FileByName("m.go")
	require.NotNil(t, f)
	call := findCall(t, f.Syntax, "Old")
	assert.Equal(t, "Old(1, 2)", string(s.Text(call.Pos(), call.End())))
	assert.Equal(t, "m.go:7:9", s.Addr(call.Pos()))

	s.ReplaceNode(call, "New(2, 1)")
	s.Gofmt()
	d, err := s.Diff()
	require.NoError(t, err)
	assert.Contains(t, string(d), "--- old/m.go\n+++ new/m.go\n")
	assert.Contains(t, string(d), "-var V = Old(1, 2) // keep this comment\n+var V = New(2, 1) // keep this comment\n")
	assert.Equal(t, []string{"example.com/m"}, s.Modified())
	h1 := s.Hash()
	assert.NotEqual(t, sha256Empty, h1)

	// The next load sees the edit, and the disk is untouched.
	s2, err := r.Load(ctx, "./...")
	require.NoError(t, err)
	assert.True(t, s.Stale())
	f2 := s2.FileByName("m.go")
	require.NotNil(t, f2)
	call = findCall(t, f2.Syntax, "New")
	assert.Equal(t, "New(2, 1)", string(s2.Text(call.Pos(), call.End())))
	assert.Equal(t, h1, s2.Hash())
	disk, err := os.ReadFile(filepath.Join(dir, "m.go"))
	require.NoError(t, err)
	assert.Equal(t, testSrc, string(disk))

	// Undoing the edit returns to the original hash.
	s2.ReplaceNode(call, "Old(1, 2)")
	assert.Equal(t, sha256Empty, s2.Hash())

	s3, err := r.Load(ctx)
	require.NoError(t, err)
	fun := findCall(t, s3.FileByName("m.go").Syntax, "Old").Fun
	s3.ReplaceAt(fun.Pos(), fun.End(), "New")
	require.NoError(t, s3.Write())
	disk, err = os.ReadFile(filepath.Join(dir, "m.go"))
	require.NoError(t, err)
	assert.Equal(t, strings.Replace(testSrc, "V = Old(1, 2)", "V = New(1, 2)", 1), string(disk))
}

const sha256Empty = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

func TestFilesSkipped(t *testing.T) {
	dir := writeModule(t, map[string]string{
		"go.mod":          testMod,
		"m.go":            testSrc,
		"m_test.go":       "package m\n\nvar T = Old(3, 4)\n",
		"gen.go":          "// Code generated by hand. DO NOT EDIT.\n\npackage m\n\nvar G = Old(5, 6)\n",
		"vendored/v.go":   "package vendored\n\nfunc F() {}\n",
		"internal/i/i.go": "package i\n\nfunc F() {}\n",
	})
	no := false
	r, err := New(dir, Config{Tests: &no, Exclude: []string{"vendored/"}})
	require.NoError(t, err)
	s, err := r.Load(context.Background(), "./...")
	require.NoError(t, err)

	var names []string
	for _, f := range s.Files() {
		rel, err := filepath.Rel(dir, f.Name)
		require.NoError(t, err)
		names = append(names, filepath.ToSlash(rel))
	}
	assert.ElementsMatch(t, []string{"m.go", "internal/i/i.go"}, names)
	assert.Nil(t, s.FileByName("m_test.go"))

	var sawFmt bool
	for _, p := range s.Packages() {
		if p.Pkg.PkgPath == "fmt" {
			sawFmt = true
		}
	}
	assert.False(t, sawFmt, "unexpected dependency fmt")
}

func TestTestVariantFirst(t *testing.T) {
	dir := writeModule(t, map[string]string{
		"go.mod":    testMod,
		"m.go":      testSrc,
		"m_test.go": "package m\n\nvar T = Old(3, 4)\n",
	})
	r, err := New(dir, Config{})
	require.NoError(t, err)
	s, err := r.Load(context.Background())
	require.NoError(t, err)
	files := s.Files()
	require.Len(t, files, 2)
	for _, f := range files {
		assert.NotEqual(t, f.Pkg.Pkg.ID, f.Pkg.Pkg.PkgPath, "%s attributed to %s", f.Name, f.Pkg)
	}
}

func TestNoModule(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GO111MODULE", "on")
	_, err := New(dir, Config{})
	if err == nil {
		t.Skip("temporary directory is inside a module")
	}
	assert.ErrorIs(t, err, ErrNoModule)
}

func TestLoadErrors(t *testing.T) {
	dir := writeModule(t, map[string]string{
		"go.mod": testMod,
		"m.go":   "package m\n\nvar V int = \"x\"\n",
	})
	r, err := New(dir, Config{})
	require.NoError(t, err)
	s, err := r.Load(context.Background())
	require.NoError(t, err)
	err = s.LoadErrors()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "m.go:3:")
}

func TestErrorList(t *testing.T) {
	var l ErrorList
	assert.NoError(t, l.Err())
	l.Add(nil)
	l.Add(&Error{Pos: token.Position{Filename: "b.go", Line: 2, Column: 1, Offset: 10}, Msg: "second"})
	l.Add(&Error{Pos: token.Position{Filename: "a.go", Line: 1, Column: 1}, Msg: "first"})
	l.Add(&Error{Pos: token.Position{Filename: "a.go", Line: 1, Column: 1}, Msg: "first"})
	l.Add(packages.Error{Pos: "c.go:4:2", Msg: "third"})
	l.Add(packages.Error{Pos: "-", Msg: "nowhere"})
	require.Error(t, l.Err())
	assert.Equal(t, "nowhere\na.go:1:1: first\nb.go:2:1: second\nc.go:4:2: third", l.Error())

	var many ErrorList
	for i := 0; i < 5; i++ {
		many.Add(&Error{Pos: token.Position{Filename: "x.go", Line: i + 1, Column: 1, Offset: i}, Msg: "again"})
	}
	assert.Equal(t, "x.go:1:1: again [× 5]", many.Error())
}

func TestParsePos(t *testing.T) {
	tests := []struct {
		in   string
		want token.Position
	}{
		{"", token.Position{}},
		{"-", token.Position{}},
		{"a.go:3:4", token.Position{Filename: "a.go", Line: 3, Column: 4}},
		{"a.go:3", token.Position{Filename: "a.go", Line: 3}},
		{"/x/a.go", token.Position{Filename: "/x/a.go"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parsePos(tt.in), "parsePos(%q)", tt.in)
	}
}

func TestFlagsEnvsNoTags(t *testing.T) {
	flags, envs, err := Config{}.flagsEnvs("go")
	require.NoError(t, err)
	assert.Empty(t, flags)
	assert.Empty(t, envs)
	assert.True(t, Config{}.tests())
}

func TestCheckedFiles(t *testing.T) {
	dir := writeModule(t, map[string]string{
		"go.mod":     testMod,
		"m.go":       testSrc,
		"bad/bad.go": "package bad\n\nvar V int = \"x\"\n",
	})
	r, err := New(dir, Config{})
	require.NoError(t, err)
	s, err := r.Load(context.Background(), "./...")
	require.NoError(t, err)
	require.Error(t, s.LoadErrors())

	var all, checked []string
	for _, f := range s.Files() {
		all = append(all, filepath.Base(f.Name))
	}
	for _, f := range s.CheckedFiles() {
		checked = append(checked, filepath.Base(f.Name))
	}
	assert.ElementsMatch(t, []string{"m.go", "bad.go"}, all)
	assert.Equal(t, []string{"m.go"}, checked)
}

func TestGofmtKeepsLayout(t *testing.T) {
	const messy = "package m\n\nfunc Old() {}\n\nfunc New() {}\n\nfunc F() {\n\tx:=1\n\t_ =   x\n\tOld()\n}\n"
	dir := writeModule(t, map[string]string{
		"go.mod": testMod,
		"a.go":   messy,
		"b.go":   "package m\n\nfunc G() {\n\tOld()\n}\n",
	})
	r, err := New(dir, Config{})
	require.NoError(t, err)
	s, err := r.Load(context.Background())
	require.NoError(t, err)

	// a.go was never gofmt-formatted: only the edit changes it.
	call := findCall(t, s.FileByName("a.go").Syntax, "Old")
	s.ReplaceNode(call, "New()")
	// b.go was: the edit is reformatted along with it.
	call = findCall(t, s.FileByName("b.go").Syntax, "Old")
	s.ReplaceNode(call, "New( )")
	s.Gofmt()
	require.NoError(t, s.Write())

	a, err := os.ReadFile(filepath.Join(dir, "a.go"))
	require.NoError(t, err)
	assert.Equal(t, strings.Replace(messy, "\tOld()", "\tNew()", 1), string(a))
	b, err := os.ReadFile(filepath.Join(dir, "b.go"))
	require.NoError(t, err)
	assert.Equal(t, "package m\n\nfunc G() {\n\tNew()\n}\n", string(b))
}
