package apply

import (
	"fmt"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/asciidoc-dita/adfix/internal/rule"
)

// lineEdit is a generated edit against one original line: either a replace
// of that line's unique token or a comment flag inserted above it.
type lineEdit struct {
	line   int // 1-indexed original line
	insert bool
}

func token(line int) string {
	return fmt.Sprintf("tok%d", line)
}

// oracleApply builds the expected output directly: it walks the original
// lines top to bottom and emits each edit in place. This is the freshly
// re-scanned reference that the bottom-to-top algorithm must match.
func oracleApply(lines []string, edits []lineEdit) string {
	byLine := make(map[int]lineEdit, len(edits))
	for _, e := range edits {
		byLine[e.line] = e
	}

	var out []string
	for i, line := range lines {
		e, ok := byLine[i+1]
		if !ok {
			out = append(out, line)
			continue
		}
		if e.insert {
			out = append(out, fmt.Sprintf("// flag-%d", e.line), line)
		} else {
			out = append(out, strings.Replace(line, token(e.line), "REPLACED", 1))
		}
	}
	return strings.Join(out, "\n")
}

func TestApply_MatchesRescanningOracle(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("bottom-to-top application equals live rescanning", prop.ForAll(
		func(numLines int, editLines []int, editKinds []bool) bool {
			lines := make([]string, numLines)
			for i := range lines {
				lines[i] = fmt.Sprintf("line %d with %s inside", i+1, token(i+1))
			}
			content := strings.Join(lines, "\n")

			// At most one edit per line so that oracle and engine agree on
			// what "apply all" means; overlap semantics are covered by the
			// conflict tests.
			seen := make(map[int]bool)
			var edits []lineEdit
			for i, ln := range editLines {
				if ln > numLines || seen[ln] {
					continue
				}
				seen[ln] = true
				edits = append(edits, lineEdit{line: ln, insert: editKinds[i]})
			}

			var fixes []*rule.Fix
			for _, e := range edits {
				if e.insert {
					fixes = append(fixes, &rule.Fix{
						Violation:       rule.Violation{CheckID: "P.Flag", Line: e.line},
						Operation:       rule.OpInsertBefore,
						Line:            e.line,
						ReplacementText: fmt.Sprintf("// flag-%d", e.line),
					})
				} else {
					col := strings.Index(lines[e.line-1], token(e.line)) + 1
					fixes = append(fixes, &rule.Fix{
						Violation:       rule.Violation{CheckID: "P.Replace", Line: e.line, Column: col},
						Operation:       rule.OpReplace,
						Line:            e.line,
						Column:          col,
						TargetText:      token(e.line),
						ReplacementText: "REPLACED",
					})
				}
			}

			res := Apply(content, fixes)
			return len(res.Skipped) == 0 && res.Content == oracleApply(lines, edits)
		},
		gen.IntRange(1, 30),
		gen.SliceOfN(20, gen.IntRange(1, 30)),
		gen.SliceOfN(20, gen.Bool()),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
