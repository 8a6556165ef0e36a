// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report prints obsolete-symbol findings as text, JSON or SARIF.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// A Finding is one reported use of an obsolete symbol.
type Finding struct {
	File        string `json:"file"` // relative to the working directory
	Line        int    `json:"line"`
	Col         int    `json:"col"`
	EndLine     int    `json:"endLine"`
	EndCol      int    `json:"endCol"`
	Rule        string `json:"rule"`
	Symbol      string `json:"symbol"`
	Owner       string `json:"owner,omitempty"`
	Message     string `json:"message"`
	Replacement string `json:"replacement"`
	Kind        string `json:"kind"`
	TypeLevel   bool   `json:"typeLevel,omitempty"`
	Fixable     bool   `json:"fixable"`
	Reason      string `json:"reason,omitempty"` // why there is no fix
}

// Pos returns the file:line:col position of f.
func (f *Finding) Pos() string {
	return fmt.Sprintf("%s:%d:%d", f.File, f.Line, f.Col)
}

// A Format is an output format.
type Format string

const (
	Text  Format = "text"
	JSON  Format = "json"
	SARIF Format = "sarif"
)

func (f *Format) String() string { return string(*f) }

func (f *Format) Set(s string) error {
	switch Format(s) {
	case Text, JSON, SARIF:
		*f = Format(s)
		return nil
	}
	return fmt.Errorf("unknown format %q (want text, json or sarif)", s)
}

func (f *Format) Type() string { return "format" }

// A Writer writes findings in one format.
type Writer struct {
	Format  Format
	Color   bool   // text format only
	Version string // tool version recorded in SARIF
}

// Write writes findings to w.
func (rw *Writer) Write(w io.Writer, findings []Finding) error {
	switch rw.Format {
	case Text, "":
		return rw.writeText(w, findings)
	case JSON:
		if findings == nil {
			findings = []Finding{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(findings)
	case SARIF:
		r := NewSARIF(rw.Version)
		for i := range findings {
			r.AddResult(&findings[i])
		}
		data, err := r.ToJSON()
		if err != nil {
			return err
		}
		_, err = w.Write(append(data, '\n'))
		return err
	}
	return fmt.Errorf("unknown format %q", rw.Format)
}

type styles struct {
	pos    *color.Color
	symbol *color.Color
	hint   *color.Color
	nofix  *color.Color
}

func newStyles(enabled bool) *styles {
	s := &styles{
		pos:    color.New(color.Bold),
		symbol: color.New(color.FgYellow),
		hint:   color.New(color.FgGreen),
		nofix:  color.New(color.Faint),
	}
	for _, c := range []*color.Color{s.pos, s.symbol, s.hint, s.nofix} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

func (rw *Writer) writeText(w io.Writer, findings []Finding) error {
	s := newStyles(rw.Color)
	for i := range findings {
		f := &findings[i]
		line := fmt.Sprintf("%s: %s is obsolete and should be replaced with %s",
			s.pos.Sprint(f.Pos()), s.symbol.Sprint(f.Symbol), s.hint.Sprint(f.Replacement))
		if !f.Fixable {
			line += s.nofix.Sprint(" (no fix")
			if f.Reason != "" {
				line += s.nofix.Sprint(": " + f.Reason)
			}
			line += s.nofix.Sprint(")")
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
