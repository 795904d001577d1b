package diff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Op marks how a line changed between two renders.
type Op byte

const (
	OpEqual  Op = ' '
	OpDelete Op = '-'
	OpInsert Op = '+'
)

// Line is one line of a line-level diff.
type Line struct {
	Op   Op
	Text string
}

func (l Line) String() string {
	return string(l.Op) + l.Text
}

// Lines computes a line-level diff between before and after.
func Lines(before, after []string) []Line {
	dmp := diffmatchpatch.New()
	beforeChars, afterChars, table := dmp.DiffLinesToChars(joinLines(before), joinLines(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(beforeChars, afterChars, false), table)

	var lines []Line
	for _, d := range diffs {
		op := OpEqual
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			op = OpDelete
		case diffmatchpatch.DiffInsert:
			op = OpInsert
		}
		for _, text := range strings.SplitAfter(d.Text, "\n") {
			if text == "" {
				continue
			}
			lines = append(lines, Line{Op: op, Text: strings.TrimSuffix(text, "\n")})
		}
	}
	return lines
}

// Changed reports whether the diff contains any insertion or deletion.
func Changed(lines []Line) bool {
	for _, line := range lines {
		if line.Op != OpEqual {
			return true
		}
	}
	return false
}

// Unified renders the changed lines of before→after with the given labels.
// It returns an empty string when nothing changed.
func Unified(before, after []string, beforeLabel, afterLabel string) string {
	lines := Lines(before, after)
	if !Changed(lines) {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- %s\n+++ %s\n", beforeLabel, afterLabel)
	fmt.Fprintf(&b, "@@ -1,%d +1,%d @@\n", len(before), len(after))
	for _, line := range lines {
		b.WriteString(line.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
