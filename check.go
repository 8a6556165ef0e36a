// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"log/slog"
	"sort"

	"github.com/spf13/cobra"

	"github.com/obsfix/obsfix/obsolete"
	"github.com/obsfix/obsfix/report"
	"github.com/obsfix/obsfix/rewrite"
)

func newCheckCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [packages]",
		Short: "Report uses of deprecated symbols that name a replacement",
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runCheck(cmd, args)
		},
	}
	o.format = report.Text
	cmd.Flags().Var(&o.format, "format", "output format: text, json or sarif")
	cmd.Flags().BoolVar(&o.exitZero, "exit-zero", false, "exit with status 0 even when uses are reported")
	return cmd
}

func (o *options) runCheck(cmd *cobra.Command, patterns []string) error {
	ctx := cmd.Context()
	r, err := o.newRefactor()
	if err != nil {
		return err
	}
	snap, err := r.Load(ctx, patterns...)
	if err != nil {
		return err
	}
	if err := checkLoad(o.log, snap); err != nil {
		return err
	}
	sites, err := detect(ctx, snap, o.st.Jobs)
	if err != nil {
		return err
	}

	var findings []report.Finding
	for _, fs := range sites {
		// A fixer without an editor only computes the rewrite.
		fixer := &rewrite.Fixer{
			Source:   snap,
			Resolver: obsolete.Resolver{Info: fs.file.Pkg.Pkg.TypesInfo},
		}
		for i := range fs.diags {
			d := &fs.diags[i]
			res := fixer.Fix(ctx, fs.file.Syntax, d)
			pos, end := snap.Position(d.Pos), snap.Position(d.End)
			findings = append(findings, report.Finding{
				File:        snap.ShortPath(pos.Filename),
				Line:        pos.Line,
				Col:         pos.Column,
				EndLine:     end.Line,
				EndCol:      end.Column,
				Rule:        rewrite.Rule,
				Symbol:      d.Symbol,
				Owner:       d.Owner,
				Message:     d.Message(),
				Replacement: d.Props.Replacement,
				Kind:        d.Props.Kind.String(),
				TypeLevel:   d.Props.TypeLevel,
				Fixable:     res.Replaced(),
				Reason:      res.NoOp,
			})
		}
	}
	sort.SliceStable(findings, func(i, j int) bool {
		fi, fj := &findings[i], &findings[j]
		if fi.File != fj.File {
			return fi.File < fj.File
		}
		if fi.Line != fj.Line {
			return fi.Line < fj.Line
		}
		return fi.Col < fj.Col
	})

	w := &report.Writer{Format: o.st.Format, Color: o.colorEnabled(), Version: moduleVersion()}
	if err := w.Write(o.stdout, findings); err != nil {
		return err
	}
	o.log.Debug("checked", slog.Int("files", len(snap.CheckedFiles())), slog.Int("uses", len(findings)))
	if len(findings) > 0 && !o.exitZero {
		return errFindings
	}
	return nil
}
