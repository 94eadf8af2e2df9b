// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Op tags a span of a rendering.
type Op uint8

const (
	Equal Op = iota
	Deleted
	Inserted
)

func (o Op) String() string {
	switch o {
	case Equal:
		return "equal"
	case Deleted:
		return "deleted"
	case Inserted:
		return "inserted"
	}
	return fmt.Sprintf("op(%d)", uint8(o))
}

// Span is one line of one side of a rendering. Text keeps its line
// terminator. A placeholder stands opposite a line that exists only on the
// other side and has no text.
type Span struct {
	Op          Op
	Text        string
	Placeholder bool
}

// Rendering is a line alignment of two texts. Left and Right always have the
// same length; index i of both describes the same row of a side by side view.
type Rendering struct {
	Left  []Span
	Right []Span
}

// ErrRenderFailure is returned when an alignment does not reproduce its
// inputs.
var ErrRenderFailure = errors.New("render failure")

// lineDiff computes the line level edit script. Tests replace it.
var lineDiff = func(before, after string) []diffmatchpatch.Diff {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(a, b, false)
	return dmp.DiffCharsToLines(diffs, lines)
}

// Render aligns before and after with a minimal line diff. If the alignment
// fails to project back onto its inputs, Render returns the Replaced
// rendering together with an error wrapping ErrRenderFailure.
func Render(before, after string) (Rendering, error) {
	var r Rendering
	for _, d := range lineDiff(before, after) {
		for _, line := range splitLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				r.Left = append(r.Left, Span{Op: Deleted, Text: line})
				r.Right = append(r.Right, Span{Op: Deleted, Placeholder: true})
			case diffmatchpatch.DiffInsert:
				r.Left = append(r.Left, Span{Op: Inserted, Placeholder: true})
				r.Right = append(r.Right, Span{Op: Inserted, Text: line})
			case diffmatchpatch.DiffEqual:
				r.Left = append(r.Left, Span{Op: Equal, Text: line})
				r.Right = append(r.Right, Span{Op: Equal, Text: line})
			}
		}
	}

	if got := r.Before(); got != before {
		return Replaced(before, after), fmt.Errorf("%w: before side does not reproduce input", ErrRenderFailure)
	}
	if got := r.After(); got != after {
		return Replaced(before, after), fmt.Errorf("%w: after side does not reproduce input", ErrRenderFailure)
	}
	return r, nil
}

// Replaced renders every before line as deleted followed by every after
// line as inserted, with no alignment.
func Replaced(before, after string) Rendering {
	var r Rendering
	for _, line := range splitLines(before) {
		r.Left = append(r.Left, Span{Op: Deleted, Text: line})
		r.Right = append(r.Right, Span{Op: Deleted, Placeholder: true})
	}
	for _, line := range splitLines(after) {
		r.Left = append(r.Left, Span{Op: Inserted, Placeholder: true})
		r.Right = append(r.Right, Span{Op: Inserted, Text: line})
	}
	return r
}

// Before concatenates the non-inserted lines of the left side.
func (r Rendering) Before() string {
	return project(r.Left, Inserted)
}

// After concatenates the non-deleted lines of the right side.
func (r Rendering) After() string {
	return project(r.Right, Deleted)
}

// Changed reports whether any span is not Equal.
func (r Rendering) Changed() bool {
	for _, s := range r.Left {
		if s.Op != Equal {
			return true
		}
	}
	return false
}

func project(spans []Span, drop Op) string {
	var b strings.Builder
	for _, s := range spans {
		if s.Op == drop || s.Placeholder {
			continue
		}
		b.WriteString(s.Text)
	}
	return b.String()
}

// splitLines splits s after each newline. A final line without terminator
// is kept; an empty s yields no lines.
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
