// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The obsfixvet command reports uses of deprecated symbols that name a
// replacement, and suggests the rewrite.
//
// It runs the obsolete analyzer as a standalone command or under go vet:
//
//	go vet -vettool=$(which obsfixvet) ./...
//	obsfixvet -fix ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/obsfix/obsfix/obsolete"
)

func main() { singlechecker.Main(obsolete.Analyzer) }
