// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
)

// errUsage indicates a malformed command line. Usage errors are
// independent of the source code being fixed.
type errUsage struct {
	err string
}

func newErrUsage(f string, args ...any) *errUsage {
	return &errUsage{fmt.Sprintf(f, args...)}
}

func (e *errUsage) Error() string {
	return "usage: " + e.err
}

// errPrecondition indicates that a command was well-formed, but some
// requirement of the command wasn't met. For example, the directory is
// not in a module, or a message has no hint.
type errPrecondition struct {
	err string
}

func newErrPrecondition(f string, args ...any) *errPrecondition {
	return &errPrecondition{fmt.Sprintf(f, args...)}
}

func (e *errPrecondition) Error() string {
	return e.err
}

// errFindings is returned by check when it reported uses of obsolete
// symbols. It sets the exit status without a message.
var errFindings = errors.New("obsolete symbols found")

// exitCode returns the exit status for the error returned by a command.
func exitCode(err error) int {
	var usage *errUsage
	switch {
	case err == nil:
		return 0
	case errors.As(err, &usage):
		return 2
	}
	return 1
}
