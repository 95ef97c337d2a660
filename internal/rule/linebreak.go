package rule

import "strings"

// LineBreak removes AsciiDoc hard line break markup (a line ending in " +"),
// which has no DITA equivalent. Fully deterministic: the trailing marker is
// dropped and the text itself is untouched.
type LineBreak struct{}

// NewLineBreak creates the LineBreak rule.
func NewLineBreak() *LineBreak {
	return &LineBreak{}
}

func (r *LineBreak) Name() string           { return "AsciiDocDITA.LineBreak" }
func (r *LineBreak) FixType() FixType       { return FullyDeterministic }
func (r *LineBreak) Severity() Severity     { return SeverityWarning }
func (r *LineBreak) Dependencies() []string { return nil }

func (r *LineBreak) CanFix(v Violation) bool {
	return v.CheckID == r.Name()
}

func (r *LineBreak) GenerateFix(v Violation, fileText string) *Fix {
	line, ok := lineAt(fileText, v.Line)
	if !ok {
		return nil
	}
	if !strings.HasSuffix(line, " +") {
		return nil // already fixed
	}

	return &Fix{
		Violation:       v,
		Operation:       OpReplace,
		Line:            v.Line,
		Column:          len(line) - 1, // 1-indexed start of the trailing " +"
		TargetText:      " +",
		ReplacementText: "",
		Confidence:      1.0,
	}
}
