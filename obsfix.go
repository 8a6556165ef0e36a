// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/obsfix/obsfix/refactor"
	"github.com/obsfix/obsfix/report"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run runs the command line args and returns the exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	o := &options{stdout: stdout, stderr: stderr}
	cmd := newRootCmd(o)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	err := cmd.ExecuteContext(ctx)
	if err != nil && err != errFindings {
		if o.verbose {
			fmt.Fprintf(stderr, "obsfix: %+v\n", err)
		} else {
			fmt.Fprintf(stderr, "obsfix: %v\n", err)
		}
	}
	return exitCode(err)
}

// options are the command-line settings shared by all commands.
type options struct {
	stdout, stderr io.Writer

	dir        string
	configFile string
	verbose    bool
	quiet      bool
	tags       []string
	tests      bool
	jobs       int
	color      string

	// command flags
	passes   int
	format   report.Format
	diff     bool
	exitZero bool
	params   []string

	st  settings
	log *slog.Logger
}

func newRootCmd(o *options) *cobra.Command {
	root := &cobra.Command{
		Use:   "obsfix",
		Short: "Replace uses of deprecated Go symbols with their successors",
		Long: `Obsfix finds uses of deprecated Go symbols whose deprecation notice
names a replacement, such as

	// Deprecated: Replace with ` + "`MyNewMethod(y, x)`" + `.

and rewrites each use to the replacement.`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: o.setup,
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return newErrUsage("%v\n%s", err, cmd.UsageString())
	})

	pf := root.PersistentFlags()
	pf.StringVarP(&o.dir, "dir", "C", ".", "run in `dir`")
	pf.StringVar(&o.configFile, "config", "", "read settings from `file`")
	pf.BoolVarP(&o.verbose, "verbose", "v", false, "log every step")
	pf.BoolVarP(&o.quiet, "quiet", "q", false, "log warnings and errors only")
	pf.StringSliceVar(&o.tags, "tags", nil, "build `tags` (GOOS, GOARCH, cgo and race are recognized)")
	pf.BoolVar(&o.tests, "tests", true, "include test files")
	pf.IntVar(&o.jobs, "jobs", 0, "number of files processed in parallel (default GOMAXPROCS)")
	pf.StringVar(&o.color, "color", "auto", "color output: auto, always or never")

	root.AddCommand(
		newCheckCmd(o),
		newFixCmd(o),
		newHintCmd(o),
		newVersionCmd(o),
	)
	return root
}

// setup reads the settings file, applies the flags that were set over
// it and configures logging.
func (o *options) setup(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	switch {
	case o.verbose && o.quiet:
		return newErrUsage("-v and -q are mutually exclusive")
	case o.verbose:
		level = slog.LevelDebug
	case o.quiet:
		level = slog.LevelWarn
	}
	o.log = slog.New(slog.NewTextHandler(o.stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		},
	}))

	switch o.color {
	case "auto", "always", "never":
	default:
		return newErrUsage("unknown --color value %q", o.color)
	}

	st, name, err := loadSettings(o.dir, o.configFile)
	if err != nil {
		return err
	}
	if name != "" {
		o.log.Debug("settings", slog.String("file", name))
	}
	flags := cmd.Flags()
	if flags.Changed("tags") {
		st.BuildTags = o.tags
	}
	if flags.Changed("tests") {
		st.Tests = &o.tests
	}
	if flags.Changed("jobs") {
		st.Jobs = o.jobs
	}
	if flags.Changed("passes") {
		st.Passes = o.passes
	}
	if flags.Changed("format") {
		st.Format = o.format
	}
	if err := st.check(); err != nil {
		return err
	}
	o.st = st
	return nil
}

// colorEnabled reports whether text output is colored.
func (o *options) colorEnabled() bool {
	switch o.color {
	case "always":
		return true
	case "never":
		return false
	}
	if color.NoColor {
		return false
	}
	f, ok := o.stdout.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// newRefactor returns the refactoring host for the module containing
// the working directory.
func (o *options) newRefactor() (*refactor.Refactor, error) {
	r, err := refactor.New(o.dir, o.st.Config)
	if err != nil {
		if errors.Is(err, refactor.ErrNoModule) {
			return nil, newErrPrecondition("%v", err)
		}
		return nil, err
	}
	r.Stderr = o.stderr
	return r, nil
}
