// Package diff produces unified diffs for the formatter's --diff mode.
package diff

import (
	"fmt"
	"strings"
)

// contextLines is the number of unchanged lines shown around each hunk.
const contextLines = 3

// Unified renders a unified diff between oldText and newText. It returns
// an empty string when the inputs are identical.
func Unified(filename, oldText, newText string) string {
	if oldText == newText {
		return ""
	}

	oldLines := splitLines(oldText)
	newLines := splitLines(newText)

	script := shortestEdits(oldLines, newLines)
	hunks := buildHunks(script)
	if len(hunks) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n", filename)
	fmt.Fprintf(&b, "+++ b/%s\n", filename)
	for _, h := range hunks {
		h.writeTo(&b, oldLines, newLines)
	}
	return b.String()
}

// splitLines keeps each line's trailing newline so the diff reproduces the
// file byte for byte. An empty string produces zero lines.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

type opKind int

const (
	opEqual opKind = iota
	opInsert
	opDelete
)

// op is one step of the edit script. oldIdx is -1 for inserts, newIdx is
// -1 for deletes.
type op struct {
	kind   opKind
	oldIdx int
	newIdx int
}

// shortestEdits computes the minimal edit script between a and b using the
// Myers algorithm.
func shortestEdits(a, b []string) []op {
	n, m := len(a), len(b)
	total := n + m
	if total == 0 {
		return nil
	}

	// v holds the farthest-reaching x per diagonal k = x - y, shifted by
	// total so indexes stay non-negative. trace keeps a copy per step for
	// the backtracking phase.
	v := make([]int, 2*total+1)
	trace := make([][]int, 0, total+1)

	for d := 0; d <= total; d++ {
		vc := make([]int, len(v))
		copy(vc, v)
		trace = append(trace, vc)

		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[k-1+total] < v[k+1+total]) {
				x = v[k+1+total]
			} else {
				x = v[k-1+total] + 1
			}
			y := x - k

			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}

			v[k+total] = x

			if x >= n && y >= m {
				return backtrack(trace, a, b, d, total)
			}
		}
	}
	return nil
}

func backtrack(trace [][]int, a, b []string, d, total int) []op {
	x, y := len(a), len(b)
	var script []op

	for step := d; step > 0; step-- {
		v := trace[step]
		k := x - y

		down := k == -step || (k != step && v[k-1+total] < v[k+1+total])

		var prevK int
		if down {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := v[prevK+total]
		prevY := prevX - prevK

		for x > prevX && y > prevY {
			x--
			y--
			script = append(script, op{kind: opEqual, oldIdx: x, newIdx: y})
		}

		if down {
			y--
			script = append(script, op{kind: opInsert, oldIdx: -1, newIdx: y})
		} else {
			x--
			script = append(script, op{kind: opDelete, oldIdx: x, newIdx: -1})
		}
	}

	for x > 0 && y > 0 {
		x--
		y--
		script = append(script, op{kind: opEqual, oldIdx: x, newIdx: y})
	}

	for i, j := 0, len(script)-1; i < j; i, j = i+1, j-1 {
		script[i], script[j] = script[j], script[i]
	}
	return script
}

type hunk struct {
	oldStart int
	oldCount int
	newStart int
	newCount int
	ops      []op
}

// buildHunks groups consecutive changes, padded with context lines, into
// unified diff hunks. Changes whose context windows touch share a hunk.
func buildHunks(script []op) []hunk {
	type region struct{ start, end int }
	var regions []region
	for i, e := range script {
		if e.kind == opEqual {
			continue
		}
		if len(regions) > 0 && i <= regions[len(regions)-1].end+2*contextLines+1 {
			regions[len(regions)-1].end = i
		} else {
			regions = append(regions, region{start: i, end: i})
		}
	}

	hunks := make([]hunk, 0, len(regions))
	for _, r := range regions {
		start := r.start - contextLines
		if start < 0 {
			start = 0
		}
		end := r.end + contextLines
		if end > len(script)-1 {
			end = len(script) - 1
		}

		h := hunk{ops: script[start : end+1]}
		for _, e := range h.ops {
			if e.oldIdx >= 0 {
				h.oldStart = e.oldIdx
				break
			}
		}
		for _, e := range h.ops {
			if e.newIdx >= 0 {
				h.newStart = e.newIdx
				break
			}
		}
		for _, e := range h.ops {
			switch e.kind {
			case opEqual:
				h.oldCount++
				h.newCount++
			case opDelete:
				h.oldCount++
			case opInsert:
				h.newCount++
			}
		}
		hunks = append(hunks, h)
	}
	return hunks
}

func (h *hunk) writeTo(b *strings.Builder, oldLines, newLines []string) {
	fmt.Fprintf(b, "@@ -%d,%d +%d,%d @@\n",
		h.oldStart+1, h.oldCount,
		h.newStart+1, h.newCount)

	for _, e := range h.ops {
		switch e.kind {
		case opEqual:
			b.WriteByte(' ')
			b.WriteString(ensureNewline(oldLines[e.oldIdx]))
		case opDelete:
			b.WriteByte('-')
			b.WriteString(ensureNewline(oldLines[e.oldIdx]))
		case opInsert:
			b.WriteByte('+')
			b.WriteString(ensureNewline(newLines[e.newIdx]))
		}
	}
}

func ensureNewline(line string) string {
	if strings.HasSuffix(line, "\n") {
		return line
	}
	return line + "\n"
}
