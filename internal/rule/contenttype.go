package rule

import (
	"fmt"
	"path/filepath"
	"strings"
)

// contentTypeAttr is the modular-docs content type attribute DITA conversion
// relies on. Current and legacy spellings both count as present.
var contentTypeAttrs = []string{
	":_mod-docs-content-type:",
	":_content-type:",
	":_module-type:",
}

// prefixContentTypes infers the content type from conventional file name
// prefixes used in modular documentation.
var prefixContentTypes = map[string]string{
	"assembly_": "ASSEMBLY",
	"assembly-": "ASSEMBLY",
	"con_":      "CONCEPT",
	"con-":      "CONCEPT",
	"proc_":     "PROCEDURE",
	"proc-":     "PROCEDURE",
	"ref_":      "REFERENCE",
	"ref-":      "REFERENCE",
	"snip_":     "SNIPPET",
	"snip-":     "SNIPPET",
}

// ContentTypePlaceholder is inserted when the content type cannot be
// inferred; a human must replace it.
const ContentTypePlaceholder = "TBD"

// ContentType inserts the :_mod-docs-content-type: attribute at the top of
// files that lack it. Partially deterministic: the value is inferred from
// the file name prefix when possible, otherwise a placeholder goes in and
// the fix is marked for review.
type ContentType struct{}

// NewContentType creates the ContentType rule.
func NewContentType() *ContentType {
	return &ContentType{}
}

func (r *ContentType) Name() string           { return "AsciiDocDITA.ContentType" }
func (r *ContentType) FixType() FixType       { return PartiallyDeterministic }
func (r *ContentType) Severity() Severity     { return SeverityWarning }
func (r *ContentType) Dependencies() []string { return nil }

func (r *ContentType) CanFix(v Violation) bool {
	return v.CheckID == r.Name()
}

func (r *ContentType) GenerateFix(v Violation, fileText string) *Fix {
	if DetectContentType(fileText) != "" {
		return nil // attribute already present
	}

	value := inferContentType(v.FilePath)
	confidence := 0.9
	review := false
	if value == "" {
		value = ContentTypePlaceholder
		confidence = 0.5
		review = true
	}

	return &Fix{
		Violation:       v,
		Operation:       OpInsertBefore,
		Line:            1,
		ReplacementText: fmt.Sprintf(":_mod-docs-content-type: %s", value),
		Confidence:      confidence,
		RequiresReview:  review,
	}
}

// DetectContentType returns the declared content type value in text, or ""
// when no content type attribute is present. Dependent rules use this to
// observe the working copy after ContentType has run.
func DetectContentType(text string) string {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		for _, attr := range contentTypeAttrs {
			if strings.HasPrefix(trimmed, attr) {
				return strings.TrimSpace(strings.TrimPrefix(trimmed, attr))
			}
		}
	}
	return ""
}

func inferContentType(path string) string {
	base := strings.ToLower(filepath.Base(path))
	for prefix, value := range prefixContentTypes {
		if strings.HasPrefix(base, prefix) {
			return value
		}
	}
	return ""
}
