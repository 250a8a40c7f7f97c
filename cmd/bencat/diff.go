// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"io"
	"strings"

	"github.com/creachadair/bentree/cmd/bencat/internal/exit"
	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// diff compares the renderings of the files at p1 and p2 line by line. It
// prints the differences and reports CodeFailure if there are any.
func (a *app) diff(p1, p2 string) int {
	var texts [2]string
	for i, path := range []string{p1, p2} {
		n, err := a.load(path)
		if err == nil {
			texts[i], err = render(n, a.cfg)
		}
		if err != nil {
			a.fail(path, err)
			return exit.CodeFailure
		}
	}
	diffs := lineDiff(texts[0], texts[1])
	if !hasChanges(diffs) {
		a.log.Debug("no differences", "from", p1, "to", p2)
		return exit.CodeSuccess
	}
	writeDiff(a.stdout, p1, p2, diffs, a.colorOut)
	return exit.CodeFailure
}

// lineDiff returns the differences between a and b in units of whole lines.
func lineDiff(a, b string) []diffmatchpatch.Diff {
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	return dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)
}

func hasChanges(diffs []diffmatchpatch.Diff) bool {
	for _, d := range diffs {
		if d.Type != diffmatchpatch.DiffEqual {
			return true
		}
	}
	return false
}

// writeDiff writes diffs to w with one line per source line, prefixed with
// "-" for lines only in the first input, "+" for lines only in the second,
// and a space for common lines.
func writeDiff(w io.Writer, from, to string, diffs []diffmatchpatch.Diff, useColor bool) {
	del := color.New(color.FgRed)
	ins := color.New(color.FgGreen)
	hdr := color.New(color.Bold)
	for _, c := range []*color.Color{del, ins, hdr} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	hdr.Fprintf(w, "--- %s\n+++ %s\n", from, to)
	for _, d := range diffs {
		text := strings.TrimSuffix(d.Text, "\n")
		for line := range strings.SplitSeq(text, "\n") {
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				del.Fprintf(w, "-%s\n", line)
			case diffmatchpatch.DiffInsert:
				ins.Fprintf(w, "+%s\n", line)
			default:
				io.WriteString(w, " "+line+"\n")
			}
		}
	}
}
