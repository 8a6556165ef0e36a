// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package edit

import "go/token"

// A Replacement replaces the text in [Pos, End) with Text.
type Replacement struct {
	Pos  token.Pos
	End  token.Pos
	Text string
}

// maxCells bounds the size of the common subsequence table.
// Larger differences are replaced wholesale.
const maxCells = 1 << 22

// Minimal returns the replacements that turn old, located at pos,
// into repl while leaving the bytes they have in common untouched.
// That keeps comments and formatting of unchanged regions intact
// and keeps separate edits of the same file from overlapping.
func Minimal(pos token.Pos, old, repl string) []Replacement {
	if old == repl {
		return nil
	}

	// Trim the common prefix and suffix before running
	// the quadratic longest-common-subsequence pass.
	pre := 0
	for pre < len(old) && pre < len(repl) && old[pre] == repl[pre] {
		pre++
	}
	suf := 0
	for suf < len(old)-pre && suf < len(repl)-pre && old[len(old)-1-suf] == repl[len(repl)-1-suf] {
		suf++
	}
	x := old[pre : len(old)-suf]
	y := repl[pre : len(repl)-suf]
	base := pos + token.Pos(pre)

	if (len(x)+1)*(len(y)+1) > maxCells {
		return []Replacement{{base, base + token.Pos(len(x)), y}}
	}

	var list []Replacement
	posX := 0
	posY := 0
	for _, r := range commonRanges(x, y) {
		if posX < r.posX || posY < r.posY {
			list = append(list, Replacement{base + token.Pos(posX), base + token.Pos(r.posX), y[posY:r.posY]})
		}
		posX = r.posX + r.n
		posY = r.posY + r.n
	}
	if posX < len(x) || posY < len(y) {
		list = append(list, Replacement{base + token.Pos(posX), base + token.Pos(len(x)), y[posY:]})
	}
	return list
}

// ReplaceMinimal replaces [pos, end), whose current text is old, with repl
// using the edits computed by Minimal.
func (b *PosBuffer) ReplaceMinimal(pos, end token.Pos, old, repl string) {
	if int(end-pos) != len(old) {
		panic("ReplaceMinimal: text does not match span")
	}
	for _, r := range Minimal(pos, old, repl) {
		b.Replace(r.Pos, r.End, r.Text)
	}
}

type rangePair struct{ posX, posY, n int }

func commonRanges(x, y string) []rangePair {
	// t[i,j] = length of longest common substring of x[i:], y[j:]
	// t[i,len(y)] = t[len(x),j] = 0
	// t[i,j] = max {
	//	t[i+1,j]
	//	t[i,j+1]
	//	t[i+1,j+1] + 1 only if x[i] == y[j]
	// }
	t := make([][]int, len(x)+1)
	data := make([]int, (len(x)+1)*(len(y)+1))
	for i := range t {
		t[i], data = data[:len(y)+1], data[len(y)+1:]
	}

	for i := len(x) - 1; i >= 0; i-- {
		for j := len(y) - 1; j >= 0; j-- {
			m := max(t[i+1][j], t[i][j+1])
			if x[i] == y[j] {
				m = max(m, t[i+1][j+1]+1)
			}
			t[i][j] = m
		}
	}

	i := 0
	j := 0
	var pairs []rangePair
	for i < len(x) && j < len(y) {
		switch m := t[i][j]; {
		case m == t[i+1][j+1]+1 && x[i] == y[j]:
			// Start a new range.
			posX := i
			posY := j
			for i < len(x) && j < len(y) && t[i][j] == t[i+1][j+1]+1 && x[i] == y[j] {
				i++
				j++
			}
			pairs = append(pairs, rangePair{posX, posY, i - posX})

		case m == t[i+1][j]:
			i++

		case m == t[i][j+1]:
			j++

		default:
			panic("inconsistent")
		}
	}
	return pairs
}
