// Package apply implements the offset-safe edit algorithm that lands a set
// of fixes in a file's content without corrupting the line/column references
// of fixes not yet applied.
package apply

import (
	"sort"
	"strings"

	"github.com/asciidoc-dita/adfix/internal/rule"
)

// SkipReason explains why a fix was not applied.
type SkipReason string

const (
	// ReasonConflict means the replace target no longer matches the line,
	// usually because an earlier fix on the same line consumed that span.
	ReasonConflict SkipReason = "conflict"

	// ReasonLineOutOfRange means the fix references a line the content does
	// not have.
	ReasonLineOutOfRange SkipReason = "line out of range"
)

// Skipped pairs a fix with the reason it was not applied.
type Skipped struct {
	Fix    *rule.Fix
	Reason SkipReason
}

// Result is the outcome of applying fixes to one file's content.
// The applier never touches disk; persistence is the processor's job.
type Result struct {
	Content string
	Applied []*rule.Fix
	Skipped []Skipped
}

// Apply produces new content from the original content and the fixes
// generated against it.
//
// Fixes are sorted by (line, column) descending and applied bottom-to-top,
// right-to-left. An insert at line L shifts every line >= L down by one;
// processing higher lines first means those shifts happen before any fix
// referring to a lower line, so earlier-computed positions stay valid. A
// replace only changes its own line, and applying rightmost targets first
// means a length change cannot shift the span of a pending replace to its
// left. Within one line, replaces run before inserts: an insert at L would
// otherwise leave a pending same-line replace pointing at the inserted
// comment instead of the original line.
//
// A conflicting fix (target text no longer present) is skipped and reported;
// one bad fix never aborts the rest of the file.
func Apply(content string, fixes []*rule.Fix) *Result {
	res := &Result{}

	ordered := make([]*rule.Fix, len(fixes))
	copy(ordered, fixes)
	sortForApplication(ordered)

	lines := strings.Split(content, "\n")

	// Flags stacking on one line land in application order: each later
	// insert goes below the ones already placed, so the last-applied flag
	// sits immediately above the target line and reading top to bottom
	// follows application order.
	insertedAt := make(map[int]int)

	for _, fix := range ordered {
		switch fix.Operation {
		case rule.OpReplace:
			if fix.Line < 1 || fix.Line > len(lines) {
				res.Skipped = append(res.Skipped, Skipped{Fix: fix, Reason: ReasonLineOutOfRange})
				continue
			}
			replaced, ok := replaceOnLine(lines[fix.Line-1], fix)
			if !ok {
				res.Skipped = append(res.Skipped, Skipped{Fix: fix, Reason: ReasonConflict})
				continue
			}
			lines[fix.Line-1] = replaced
			res.Applied = append(res.Applied, fix)

		case rule.OpInsertBefore:
			if fix.Line < 1 || fix.Line > len(lines) {
				res.Skipped = append(res.Skipped, Skipped{Fix: fix, Reason: ReasonLineOutOfRange})
				continue
			}
			at := fix.Line - 1 + insertedAt[fix.Line]
			lines = append(lines, "")
			copy(lines[at+1:], lines[at:])
			lines[at] = fix.ReplacementText
			insertedAt[fix.Line]++
			res.Applied = append(res.Applied, fix)

		default:
			res.Skipped = append(res.Skipped, Skipped{Fix: fix, Reason: ReasonConflict})
		}
	}

	res.Content = strings.Join(lines, "\n")
	return res
}

// replaceOnLine substitutes the fix target on the current line text.
// The stored column is tried first; if an earlier edit moved the target (or
// the linter's column was approximate) the first occurrence is used instead.
// Returns false when the target no longer occurs at all.
func replaceOnLine(line string, fix *rule.Fix) (string, bool) {
	target := fix.TargetText
	if target == "" {
		return line, false
	}

	idx := -1
	col := fix.Column - 1
	if col >= 0 && col+len(target) <= len(line) && line[col:col+len(target)] == target {
		idx = col
	} else {
		idx = strings.Index(line, target)
	}
	if idx < 0 {
		return line, false
	}
	return line[:idx] + fix.ReplacementText + line[idx+len(target):], true
}

// sortForApplication orders fixes bottom-to-top, right-to-left, with
// replaces ahead of inserts on the same line. The final check-ID tie-break
// keeps the application order (and therefore comment-flag stacking) stable
// regardless of input order.
func sortForApplication(fixes []*rule.Fix) {
	sort.SliceStable(fixes, func(i, j int) bool {
		fi, fj := fixes[i], fixes[j]
		if fi.Line != fj.Line {
			return fi.Line > fj.Line
		}
		if fi.Operation != fj.Operation {
			return fi.Operation == rule.OpReplace
		}
		if fi.Column != fj.Column {
			return fi.Column > fj.Column
		}
		return fi.Violation.CheckID < fj.Violation.CheckID
	})
}
