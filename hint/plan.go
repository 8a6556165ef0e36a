// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hint

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"slices"
	"strings"
)

// A TokenKind says how an argument of a hint is resolved.
type TokenKind int

const (
	// Literal arguments are spliced into the new call verbatim.
	Literal TokenKind = iota
	// ParamRef arguments name a parameter of the deprecated function
	// and are replaced by the argument passed for it.
	ParamRef
)

func (k TokenKind) String() string {
	switch k {
	case Literal:
		return "Literal"
	case ParamRef:
		return "ParamRef"
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// A Token is one argument of a hint's argument list.
type Token struct {
	Kind TokenKind
	Text string
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%s)", t.Kind, t.Text)
}

// A Plan is the parsed form of a hint.
type Plan struct {
	Qualifier string // package or type prefix; empty if none
	Name      string // simple name of the successor
	HasArgs   bool   // hint has an argument list
	Args      []Token
}

// QualifiedName returns Name prefixed by Qualifier, if any.
func (p *Plan) QualifiedName() string {
	if p.Qualifier == "" {
		return p.Name
	}
	return p.Qualifier + "." + p.Name
}

func (p *Plan) String() string {
	if !p.HasArgs {
		return p.QualifiedName()
	}
	args := make([]string, len(p.Args))
	for i, a := range p.Args {
		args[i] = a.Text
	}
	return p.QualifiedName() + "(" + strings.Join(args, ", ") + ")"
}

// ErrNoHint is returned by Parse for an empty hint.
var ErrNoHint = errors.New("empty replacement hint")

// A SyntaxError reports a hint that is not a name optionally followed
// by an argument list.
type SyntaxError struct {
	Text   string // hint text
	Offset int    // byte offset in Text
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("hint %q: offset %d: %s", e.Text, e.Offset, e.Msg)
}

// Parse parses a hint into a Plan. Arguments of the hint that are
// exactly one of params become ParamRef tokens; the rest are literals,
// kept as written.
func Parse(text string, params []string) (*Plan, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrNoHint
	}
	names, end, err := scanName(text)
	if err != nil {
		return nil, err
	}
	p := &Plan{Name: names[len(names)-1]}
	if len(names) > 1 {
		p.Qualifier = strings.Join(names[:len(names)-1], ".")
	}
	if strings.TrimSpace(text[end:]) == "" {
		return p, nil
	}

	args, err := parseArgs(text, end)
	if err != nil {
		return nil, err
	}
	p.HasArgs = true
	p.Args = make([]Token, 0, len(args))
	for _, arg := range args {
		kind := Literal
		if token.IsIdentifier(arg) && slices.Contains(params, arg) {
			kind = ParamRef
		}
		p.Args = append(p.Args, Token{kind, arg})
	}
	return p, nil
}

// scanName scans the dotted name at the start of text.
// It stops at the end of text or at an opening parenthesis
// and returns the name's segments and end offset.
func scanName(text string) (names []string, end int, err error) {
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(text))
	var s scanner.Scanner
	s.Init(file, []byte(text), func(pos token.Position, msg string) {
		if err == nil {
			err = &SyntaxError{text, pos.Offset, msg}
		}
	}, 0)

	ident := true
	for {
		pos, tok, lit := s.Scan()
		if err != nil {
			return nil, 0, err
		}
		off := file.Offset(pos)
		if ident {
			if tok != token.IDENT {
				return nil, 0, &SyntaxError{text, off, "expected identifier, found " + describe(tok, lit)}
			}
			names = append(names, lit)
			end = off + len(lit)
			ident = false
			continue
		}
		switch {
		case tok == token.PERIOD:
			ident = true
		case tok == token.LPAREN, tok == token.EOF, tok == token.SEMICOLON && lit == "\n":
			return names, end, nil
		default:
			return nil, 0, &SyntaxError{text, off, "unexpected " + describe(tok, lit) + " after name"}
		}
	}
}

// parseArgs parses the argument list that follows the name ending at end
// and returns the source text of each argument.
func parseArgs(text string, end int) ([]string, error) {
	const placeholder = "_"
	src := placeholder + text[end:]
	fset := token.NewFileSet()
	x, err := parser.ParseExprFrom(fset, "", src, 0)
	if err != nil {
		var list scanner.ErrorList
		if errors.As(err, &list) && len(list) > 0 {
			return nil, &SyntaxError{text, end + list[0].Pos.Offset - len(placeholder), list[0].Msg}
		}
		return nil, &SyntaxError{text, end, err.Error()}
	}
	call, ok := x.(*ast.CallExpr)
	if !ok {
		return nil, &SyntaxError{text, end, "expected argument list after name"}
	}
	if id, ok := call.Fun.(*ast.Ident); !ok || id.Name != placeholder {
		return nil, &SyntaxError{text, end, "expected a single argument list after name"}
	}
	file := fset.File(call.Pos())
	if call.Ellipsis.IsValid() {
		return nil, &SyntaxError{text, end + file.Offset(call.Ellipsis) - len(placeholder), "spread arguments are not supported"}
	}
	args := make([]string, len(call.Args))
	for i, arg := range call.Args {
		args[i] = strings.TrimSpace(src[file.Offset(arg.Pos()):file.Offset(arg.End())])
	}
	return args, nil
}

func describe(tok token.Token, lit string) string {
	switch {
	case tok == token.EOF:
		return "end of hint"
	case lit != "" && lit != "\n":
		return fmt.Sprintf("%s %q", tok, lit)
	}
	return fmt.Sprintf("%q", tok.String())
}
