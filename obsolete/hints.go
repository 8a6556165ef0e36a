// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package obsolete

import (
	"go/ast"
	"go/types"
	"sync"

	"github.com/obsfix/obsfix/hint"
)

// declHints calls add for each object declared in files whose doc
// comment carries a replacement hint. A spec without its own doc comment
// uses the doc comment of its declaration.
func declHints(files []*ast.File, info *types.Info, add func(types.Object, string)) {
	def := func(id *ast.Ident, docs ...*ast.CommentGroup) {
		if id == nil || id.Name == "_" {
			return
		}
		obj := info.Defs[id]
		if obj == nil {
			return
		}
		for _, doc := range docs {
			if doc == nil {
				continue
			}
			if text, ok := hint.FromDoc(doc.Text()); ok {
				add(obj, text)
			}
			return
		}
	}

	for _, file := range files {
		for _, decl := range file.Decls {
			switch decl := decl.(type) {
			case *ast.FuncDecl:
				def(decl.Name, decl.Doc)
			case *ast.GenDecl:
				for _, spec := range decl.Specs {
					switch spec := spec.(type) {
					case *ast.TypeSpec:
						def(spec.Name, spec.Doc, decl.Doc)
						memberHints(spec.Type, def)
					case *ast.ValueSpec:
						for _, name := range spec.Names {
							def(name, spec.Doc, decl.Doc)
						}
					}
				}
			}
		}
	}
}

// memberHints visits the fields of a struct type and the methods of an
// interface type.
func memberHints(typ ast.Expr, def func(*ast.Ident, ...*ast.CommentGroup)) {
	var fields *ast.FieldList
	switch t := typ.(type) {
	case *ast.StructType:
		fields = t.Fields
	case *ast.InterfaceType:
		fields = t.Methods
	default:
		return
	}
	for _, f := range fields.List {
		for _, name := range f.Names {
			def(name, f.Doc)
		}
	}
}

// An Index maps objects of fully loaded packages to their hints.
// It is safe for concurrent use.
type Index struct {
	mu    sync.RWMutex
	hints map[types.Object]string
}

func NewIndex() *Index {
	return &Index{hints: make(map[types.Object]string)}
}

// Add records the hints declared in files, which were type-checked
// with info.
func (x *Index) Add(files []*ast.File, info *types.Info) {
	if info == nil {
		return
	}
	declHints(files, info, func(obj types.Object, text string) {
		x.mu.Lock()
		x.hints[obj] = text
		x.mu.Unlock()
	})
}

// Lookup returns the hint of obj.
func (x *Index) Lookup(obj types.Object) (string, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	text, ok := x.hints[obj]
	return text, ok
}

// Len returns the number of objects with hints.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.hints)
}
