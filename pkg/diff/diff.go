// Package diff renders line diffs between an artifact on disk and its freshly
// rendered replacement.
package diff

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	maxDiffLines    = 10000
	truncateMessage = "... (diff truncated, exceeds 10,000 lines) ..."
)

// Stat counts the lines a diff adds and removes.
type Stat struct {
	Added   int
	Removed int
}

// Empty reports whether the diff changes nothing.
func (s Stat) Empty() bool {
	return s.Added == 0 && s.Removed == 0
}

func (s Stat) String() string {
	return fmt.Sprintf("+%d -%d", s.Added, s.Removed)
}

// Unified compares before and after line by line and returns a unified-style
// diff labelled with beforeLabel and afterLabel, along with its line counts. Identical
// content yields an empty string.
func Unified(before, after []byte, beforeLabel, afterLabel string) (string, Stat) {
	if bytes.Equal(before, after) {
		return "", Stat{}
	}

	diffs := lineDiffs(string(before), string(after))

	var (
		buf  bytes.Buffer
		stat Stat
	)
	fmt.Fprintf(&buf, "--- %s\n", beforeLabel)
	fmt.Fprintf(&buf, "+++ %s\n", afterLabel)
	fmt.Fprintf(&buf, "@@ -1,%d +1,%d @@\n", countLines(before), countLines(after))

	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range splitLines(d.Text) {
			buf.WriteString(prefix)
			buf.WriteString(line)
			buf.WriteString("\n")
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				stat.Removed++
			case diffmatchpatch.DiffInsert:
				stat.Added++
			}
		}
	}

	result := buf.String()
	lines := strings.Split(result, "\n")
	if len(lines) > maxDiffLines {
		return strings.Join(lines[:maxDiffLines], "\n") + "\n" + truncateMessage + "\n", stat
	}
	return result, stat
}

// lineDiffs diffs whole lines so that a changed colour value shows up as one
// removed and one added line.
func lineDiffs(before, after string) []diffmatchpatch.Diff {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(a, b, false)
	return dmp.DiffCharsToLines(diffs, lines)
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

func countLines(content []byte) int {
	return len(splitLines(string(content)))
}
