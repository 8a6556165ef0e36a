// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package obsolete

import (
	"context"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"reflect"
	"sync"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"github.com/obsfix/obsfix/edit"
	"github.com/obsfix/obsfix/rewrite"
)

var Analyzer = &analysis.Analyzer{
	Name:       rewrite.Rule,
	Doc:        "report and replace uses of symbols deprecated with a replacement hint",
	URL:        "https://pkg.go.dev/github.com/obsfix/obsfix/obsolete",
	Requires:   []*analysis.Analyzer{inspect.Analyzer},
	FactTypes:  []analysis.Fact{(*hintFact)(nil)},
	ResultType: reflect.TypeOf((*Result)(nil)),
	Run:        run,
}

// A hintFact marks an object whose doc comment carries a replacement hint.
type hintFact struct {
	Text string
}

func (*hintFact) AFact() {}

func (f *hintFact) String() string { return fmt.Sprintf("hint(%s)", f.Text) }

// Result is the result of the analyzer: the diagnostics it reported,
// in source order.
type Result struct {
	Diagnostics []rewrite.Diagnostic
}

func run(pass *analysis.Pass) (any, error) {
	local := make(map[types.Object]string)
	declHints(pass.Files, pass.TypesInfo, func(obj types.Object, text string) {
		local[obj] = text
		pass.ExportObjectFact(obj, &hintFact{text})
	})
	lookup := func(obj types.Object) (string, bool) {
		if text, ok := local[obj]; ok {
			return text, true
		}
		if obj.Pkg() == nil || obj.Pkg() == pass.Pkg {
			return "", false
		}
		var fact hintFact
		if pass.ImportObjectFact(obj, &fact) {
			return fact.Text, true
		}
		return "", false
	}

	generated := make(map[*token.File]bool)
	files := make(map[*token.File]*ast.File)
	for _, f := range pass.Files {
		tf := pass.Fset.File(f.FileStart)
		files[tf] = f
		generated[tf] = ast.IsGenerated(f)
	}

	d := newDetector(pass.TypesInfo, lookup)
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	insp.Preorder(nodeTypes, d.visit)

	src := &passSource{pass: pass}
	res := new(Result)
	for i := range d.diags {
		diag := &d.diags[i]
		tf := pass.Fset.File(diag.Pos)
		if generated[tf] {
			continue
		}
		res.Diagnostics = append(res.Diagnostics, *diag)

		ed := &textEdits{src: src}
		fixer := &rewrite.Fixer{
			Source:   src,
			Resolver: Resolver{pass.TypesInfo},
			Editor:   ed,
		}
		ad := analysis.Diagnostic{
			Pos:      diag.Pos,
			End:      diag.End,
			Category: rewrite.Rule,
			Message:  diag.Message(),
		}
		if r := fixer.Fix(context.Background(), files[tf], diag); r.Replaced() && len(ed.edits) > 0 {
			ad.SuggestedFixes = []analysis.SuggestedFix{{
				Message:   diag.FixTitle(),
				TextEdits: ed.edits,
			}}
		}
		pass.Report(ad)
	}
	return res, nil
}

// A passSource serves file text through the pass, which may hold
// unsaved edits.
type passSource struct {
	pass *analysis.Pass

	mu   sync.Mutex
	text map[*token.File][]byte
}

func (s *passSource) Text(lo, hi token.Pos) []byte {
	tf := s.pass.Fset.File(lo)
	if tf == nil || hi < lo || int(hi) > tf.Base()+tf.Size() {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.text[tf]
	if !ok {
		var err error
		data, err = s.pass.ReadFile(tf.Name())
		if err != nil || len(data) != tf.Size() {
			data = nil
		}
		if s.text == nil {
			s.text = make(map[*token.File][]byte)
		}
		s.text[tf] = data
	}
	if data == nil {
		return nil
	}
	return data[tf.Offset(lo):tf.Offset(hi)]
}

// textEdits collects the minimal edits of a replacement.
type textEdits struct {
	src   rewrite.Source
	edits []analysis.TextEdit
}

func (e *textEdits) ReplaceNode(n ast.Node, text string) {
	old := e.src.Text(n.Pos(), n.End())
	for _, r := range edit.Minimal(n.Pos(), string(old), text) {
		e.edits = append(e.edits, analysis.TextEdit{
			Pos:     r.Pos,
			End:     r.End,
			NewText: []byte(r.Text),
		})
	}
}
