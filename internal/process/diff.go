package process

import (
	"fmt"
	"strings"
)

// unifiedDiff renders a minimal diff between original and edited content for
// dry-run previews. Line-by-line, not a shortest-edit-script diff; good
// enough for eyeballing single-line rewrites and inserted flags.
func unifiedDiff(filename, original, edited string) string {
	if original == edited {
		return ""
	}

	var diff strings.Builder
	diff.WriteString(fmt.Sprintf("--- %s\n", filename))
	diff.WriteString(fmt.Sprintf("+++ %s (fixed)\n", filename))

	origLines := strings.Split(original, "\n")
	editedLines := strings.Split(edited, "\n")

	maxLines := len(origLines)
	if len(editedLines) > maxLines {
		maxLines = len(editedLines)
	}

	for i := 0; i < maxLines; i++ {
		var origLine, editedLine string
		if i < len(origLines) {
			origLine = origLines[i]
		}
		if i < len(editedLines) {
			editedLine = editedLines[i]
		}
		if origLine != editedLine {
			if i < len(origLines) {
				diff.WriteString(fmt.Sprintf("-%s\n", origLine))
			}
			if i < len(editedLines) {
				diff.WriteString(fmt.Sprintf("+%s\n", editedLine))
			}
		}
	}

	return diff.String()
}
