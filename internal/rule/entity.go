package rule

import (
	"strings"
)

// ditaEntities maps character entity references that DITA does not define to
// their numeric equivalents. Only XML's five built-in entities survive the
// conversion; everything else must become a numeric reference.
var ditaEntities = map[string]string{
	"&nbsp;":   "&#160;",
	"&copy;":   "&#169;",
	"&laquo;":  "&#171;",
	"&reg;":    "&#174;",
	"&deg;":    "&#176;",
	"&plusmn;": "&#177;",
	"&raquo;":  "&#187;",
	"&ndash;":  "&#8211;",
	"&mdash;":  "&#8212;",
	"&hellip;": "&#8230;",
	"&trade;":  "&#8482;",
	"&larr;":   "&#8592;",
	"&rarr;":   "&#8594;",
	"&harr;":   "&#8596;",
}

// EntityReference rewrites unsupported character entity references into
// numeric references. Fully deterministic: the replacement table is fixed
// and the rewrite cannot change meaning.
type EntityReference struct{}

// NewEntityReference creates the EntityReference rule.
func NewEntityReference() *EntityReference {
	return &EntityReference{}
}

func (r *EntityReference) Name() string           { return "AsciiDocDITA.EntityReference" }
func (r *EntityReference) FixType() FixType       { return FullyDeterministic }
func (r *EntityReference) Severity() Severity     { return SeverityError }
func (r *EntityReference) Dependencies() []string { return nil }

func (r *EntityReference) CanFix(v Violation) bool {
	return v.CheckID == r.Name()
}

// GenerateFix resolves the offending entity either from the violation
// snippet or by scanning the flagged line. Declines when the entity is not
// in the replacement table or the line no longer contains it.
func (r *EntityReference) GenerateFix(v Violation, fileText string) *Fix {
	line, ok := lineAt(fileText, v.Line)
	if !ok {
		return nil
	}

	entity := v.Snippet
	if entity == "" || ditaEntities[entity] == "" {
		entity = findEntityAt(line, v.Column)
	}
	replacement, ok := ditaEntities[entity]
	if !ok {
		return nil
	}
	if !strings.Contains(line, entity) {
		return nil // already fixed
	}

	return &Fix{
		Violation:       v,
		Operation:       OpReplace,
		Line:            v.Line,
		Column:          v.Column,
		TargetText:      entity,
		ReplacementText: replacement,
		Confidence:      1.0,
	}
}

// findEntityAt extracts an "&name;" token starting at the 1-indexed column,
// falling back to the leftmost known entity on the line.
func findEntityAt(line string, column int) string {
	if column > 0 && column <= len(line) && line[column-1] == '&' {
		if end := strings.IndexByte(line[column-1:], ';'); end >= 0 {
			return line[column-1 : column-1+end+1]
		}
	}
	rest := line
	for {
		amp := strings.IndexByte(rest, '&')
		if amp < 0 {
			return ""
		}
		semi := strings.IndexByte(rest[amp:], ';')
		if semi < 0 {
			return ""
		}
		if token := rest[amp : amp+semi+1]; ditaEntities[token] != "" {
			return token
		}
		rest = rest[amp+1:]
	}
}

// lineAt returns the 1-indexed line from text, reporting whether it exists.
func lineAt(text string, n int) (string, bool) {
	if n < 1 {
		return "", false
	}
	lines := strings.Split(text, "\n")
	if n > len(lines) {
		return "", false
	}
	return lines[n-1], true
}
