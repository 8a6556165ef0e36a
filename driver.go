// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"log/slog"
	"sort"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/obsfix/obsfix/obsolete"
	"github.com/obsfix/obsfix/refactor"
	"github.com/obsfix/obsfix/rewrite"
)

// fileSites are the uses of obsolete symbols found in one file.
type fileSites struct {
	file  *refactor.File
	diags []rewrite.Diagnostic
}

// detect finds the uses of obsolete symbols in the root files of snap
// that type-checked. Hints are collected from every loaded package first.
func detect(ctx context.Context, snap *refactor.Snapshot, jobs int) ([]fileSites, error) {
	idx := obsolete.NewIndex()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for _, p := range snap.Packages() {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			idx.Add(p.Pkg.Syntax, p.Pkg.TypesInfo)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if idx.Len() == 0 {
		return nil, nil
	}

	files := snap.CheckedFiles()
	out := make([]fileSites, len(files))
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i].file = f
			if info := f.Pkg.Pkg.TypesInfo; info != nil {
				out[i].diags = obsolete.Detect(f.Syntax, info, idx.Lookup)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sites := out[:0]
	for _, fs := range out {
		if len(fs.diags) > 0 {
			sites = append(sites, fs)
		}
	}
	return sites, nil
}

// A driver runs fix passes over the module.
type driver struct {
	r        *refactor.Refactor
	log      *slog.Logger
	patterns []string
	passes   int // maximum
	jobs     int
}

// A fixStats summarizes a run of the driver.
type fixStats struct {
	sites  int // sites rewritten
	passes int // passes that rewrote something
	cycle  bool
}

// run loads the packages and fixes them pass by pass until nothing is
// left to fix, the pass limit is reached, or a pass reproduces text
// seen before. It returns the snapshot holding the result.
func (d *driver) run(ctx context.Context) (*refactor.Snapshot, fixStats, error) {
	var stats fixStats
	snap, err := d.r.Load(ctx, d.patterns...)
	if err != nil {
		return nil, stats, err
	}
	if err := checkLoad(d.log, snap); err != nil {
		return nil, stats, err
	}

	seen := map[string]bool{snap.Hash(): true}
	result := snap
	for pass := 1; ; pass++ {
		sites, err := detect(ctx, snap, d.jobs)
		if err != nil {
			return nil, stats, err
		}
		n, err := d.apply(ctx, snap, sites)
		if err != nil {
			return nil, stats, err
		}
		if n == 0 {
			break
		}
		snap.Gofmt()
		h := snap.Hash()
		if seen[h] {
			d.log.Warn("hints form a cycle; keeping the text before it",
				slog.Int("pass", pass))
			stats.cycle = true
			break
		}
		seen[h] = true
		result = snap
		stats.sites += n
		stats.passes = pass
		d.log.Debug("pass done", slog.Int("pass", pass), slog.Int("sites", n))
		if pass == d.passes {
			d.log.Debug("pass limit reached", slog.Int("passes", pass))
			break
		}

		snap, err = d.r.Load(ctx, d.patterns...)
		if err != nil {
			return nil, stats, err
		}
		if err := checkLoad(d.log, snap); err != nil {
			d.log.Warn("rewritten packages have errors", slog.Any("err", err))
		}
	}
	return result, stats, nil
}

// checkLoad logs the load errors of snap as a warning; their packages
// are neither checked nor fixed. It fails only when no root file
// type-checked.
func checkLoad(log *slog.Logger, snap *refactor.Snapshot) error {
	err := snap.LoadErrors()
	if err == nil {
		return nil
	}
	if len(snap.CheckedFiles()) == 0 {
		return err
	}
	log.Warn("skipping packages with errors", slog.Any("err", err))
	return nil
}

// apply fixes the sites of one pass, files in parallel.
func (d *driver) apply(ctx context.Context, snap *refactor.Snapshot, sites []fileSites) (int, error) {
	var total atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.jobs)
	for _, fs := range sites {
		g.Go(func() error {
			total.Add(int64(d.applyFile(gctx, snap, fs)))
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return int(total.Load()), nil
}

// applyFile fixes the sites of one file in order of position. A site
// overlapping one already fixed waits for the next pass, which sees the
// edited text.
func (d *driver) applyFile(ctx context.Context, snap *refactor.Snapshot, fs fileSites) int {
	diags := fs.diags
	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].Pos != diags[j].Pos {
			return diags[i].Pos < diags[j].Pos
		}
		return diags[i].End > diags[j].End
	})

	fixer := &rewrite.Fixer{
		Source:   snap,
		Resolver: obsolete.Resolver{Info: fs.file.Pkg.Pkg.TypesInfo},
		Editor:   snap,
	}
	var done []*rewrite.Diagnostic
	n := 0
	for i := range diags {
		diag := &diags[i]
		if overlapsAny(done, diag) {
			d.log.Debug("deferred", slog.String("pos", snap.Addr(diag.Pos)), slog.String("symbol", diag.Symbol))
			continue
		}
		r := fixer.Fix(ctx, fs.file.Syntax, diag)
		if !r.Replaced() {
			d.log.Debug("not fixed",
				slog.String("pos", snap.Addr(diag.Pos)),
				slog.String("symbol", diag.Symbol),
				slog.String("reason", r.NoOp))
			continue
		}
		d.log.Debug("fixed", slog.String("pos", snap.Addr(diag.Pos)), slog.String("new", r.Text))
		done = append(done, diag)
		n++
	}
	return n
}

func overlapsAny(done []*rewrite.Diagnostic, d *rewrite.Diagnostic) bool {
	for _, x := range done {
		if x.Pos < d.End && d.Pos < x.End {
			return true
		}
	}
	return false
}
