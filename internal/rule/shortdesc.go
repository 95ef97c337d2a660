package rule

import "strings"

// abstractMarker is the placeholder a writer replaces with a real short
// description.
const abstractMarker = `[role="_abstract"]`

// ShortDescription inserts an abstract placeholder below the document title
// when a module has none. It depends on ContentType: whether a file needs a
// short description hinges on its content type, so this rule must observe
// the working copy after ContentType's fix has been applied, not the
// original linter snapshot.
type ShortDescription struct{}

// NewShortDescription creates the ShortDescription rule.
func NewShortDescription() *ShortDescription {
	return &ShortDescription{}
}

func (r *ShortDescription) Name() string       { return "AsciiDocDITA.ShortDescription" }
func (r *ShortDescription) FixType() FixType   { return PartiallyDeterministic }
func (r *ShortDescription) Severity() Severity { return SeveritySuggestion }

func (r *ShortDescription) Dependencies() []string {
	return []string{"AsciiDocDITA.ContentType"}
}

func (r *ShortDescription) CanFix(v Violation) bool {
	return v.CheckID == r.Name()
}

func (r *ShortDescription) GenerateFix(v Violation, fileText string) *Fix {
	switch DetectContentType(fileText) {
	case "ASSEMBLY", "SNIPPET":
		// Assemblies and snippets carry no shortdesc of their own.
		return nil
	}
	if strings.Contains(fileText, abstractMarker) {
		return nil // already fixed
	}

	titleLine := firstTitleLine(fileText)
	if titleLine == 0 {
		return nil // no title to anchor the abstract under
	}

	lines := strings.Split(fileText, "\n")
	// The abstract goes above the first content line after the title block,
	// skipping attribute lines and blanks.
	target := titleLine + 1
	for target <= len(lines) {
		trimmed := strings.TrimSpace(lines[target-1])
		if trimmed != "" && !strings.HasPrefix(trimmed, ":") {
			break
		}
		target++
	}
	if target > len(lines) {
		return nil // nothing after the title block
	}

	return &Fix{
		Violation:       v,
		Operation:       OpInsertBefore,
		Line:            target,
		ReplacementText: abstractMarker,
		Confidence:      0.6,
		RequiresReview:  true,
	}
}

// firstTitleLine returns the 1-indexed line of the document title ("= ..."),
// or 0 when the document has none.
func firstTitleLine(text string) int {
	for i, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "= ") {
			return i + 1
		}
	}
	return 0
}
