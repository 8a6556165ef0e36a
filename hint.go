// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/obsfix/obsfix/hint"
)

func newHintCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hint [--params a,b] message",
		Short: "Show how a deprecation message is parsed",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return newErrUsage("obsfix hint [--params a,b] message")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runHint(strings.Join(args, " "))
		},
	}
	cmd.Flags().StringSliceVar(&o.params, "params", nil, "parameter `names` of the deprecated function")
	return cmd
}

func (o *options) runHint(msg string) error {
	if d, ok := hint.Deprecation(msg); ok {
		msg = d
	}
	text, ok := hint.Extract(msg)
	if !ok {
		return newErrPrecondition("no replacement hint in %q", msg)
	}
	plan, err := hint.Parse(text, o.params)
	if err != nil {
		return err
	}

	w := o.stdout
	fmt.Fprintf(w, "hint: %s\n", text)
	if plan.Qualifier != "" {
		fmt.Fprintf(w, "qualifier: %s\n", plan.Qualifier)
	}
	fmt.Fprintf(w, "name: %s\n", plan.Name)
	switch {
	case !plan.HasArgs:
		fmt.Fprintf(w, "args: kept from the call\n")
	case len(plan.Args) == 0:
		fmt.Fprintf(w, "args: none\n")
	default:
		args := make([]string, len(plan.Args))
		for i, a := range plan.Args {
			args[i] = a.String()
		}
		fmt.Fprintf(w, "args: %s\n", strings.Join(args, ", "))
	}
	return nil
}
