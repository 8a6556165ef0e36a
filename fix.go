// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/obsfix/obsfix/diff"
)

func newFixCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [packages]",
		Short: "Rewrite uses of deprecated symbols to their replacements",
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runFix(cmd, args)
		},
	}
	cmd.Flags().BoolVar(&o.diff, "diff", false, "print a diff instead of writing files")
	cmd.Flags().IntVar(&o.passes, "passes", 10, "maximum number of fix passes")
	return cmd
}

func (o *options) runFix(cmd *cobra.Command, patterns []string) error {
	ctx := cmd.Context()
	r, err := o.newRefactor()
	if err != nil {
		return err
	}
	dr := &driver{
		r:        r,
		log:      o.log,
		patterns: patterns,
		passes:   o.st.Passes,
		jobs:     o.st.Jobs,
	}
	snap, stats, err := dr.run(ctx)
	if err != nil {
		return err
	}
	if stats.sites == 0 {
		o.log.Info("nothing to fix")
		return nil
	}

	d, err := snap.Diff()
	if err != nil {
		return err
	}
	st, err := diff.Stats(d)
	if err != nil {
		return err
	}
	if o.diff {
		if _, err := o.stdout.Write(d); err != nil {
			return err
		}
	} else if err := snap.Write(); err != nil {
		return err
	}
	o.log.Info("fixed",
		slog.Int("sites", stats.sites),
		slog.Int("passes", stats.passes),
		slog.Int("packages", len(snap.Modified())),
		slog.Int("files", st.Files),
		slog.Int("added", st.Added),
		slog.Int("deleted", st.Deleted))
	return nil
}
