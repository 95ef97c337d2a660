package rule

import "fmt"

// Severity mirrors the linter's severity levels.
type Severity string

const (
	SeverityError      Severity = "error"
	SeverityWarning    Severity = "warning"
	SeveritySuggestion Severity = "suggestion"
)

// Rank returns the sort rank of a severity (error first).
// Unknown severities sort after suggestion.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 0
	case SeverityWarning:
		return 1
	case SeveritySuggestion:
		return 2
	default:
		return 3
	}
}

// Violation is one finding from the external linter, tied to a file position.
// Immutable once parsed; lifetime is a single processing run.
type Violation struct {
	FilePath string
	CheckID  string // "Family.RuleName", e.g. "AsciiDocDITA.EntityReference"
	Line     int    // 1-indexed
	Column   int    // 1-indexed, 0 if not reported
	Message  string
	Severity Severity
	Snippet  string // offending text, when the linter reports it
}

// String returns "path:line:col: message [CheckID]" for log/report output.
func (v *Violation) String() string {
	loc := v.FilePath
	if v.Line > 0 {
		loc = fmt.Sprintf("%s:%d", loc, v.Line)
		if v.Column > 0 {
			loc = fmt.Sprintf("%s:%d", loc, v.Column)
		}
	}
	return fmt.Sprintf("%s: %s [%s]", loc, v.Message, v.CheckID)
}

// FixType classifies how deterministically a rule can resolve its violations.
type FixType int

const (
	// FullyDeterministic rules rewrite content with an exact, safe replacement.
	FullyDeterministic FixType = iota

	// PartiallyDeterministic rules insert a placeholder that a human must complete.
	PartiallyDeterministic

	// NonDeterministic rules only flag: they insert explanatory comments and
	// never rewrite content.
	NonDeterministic
)

func (t FixType) String() string {
	switch t {
	case FullyDeterministic:
		return "fully_deterministic"
	case PartiallyDeterministic:
		return "partially_deterministic"
	case NonDeterministic:
		return "non_deterministic"
	default:
		return "unknown"
	}
}

// Operation is the kind of edit a Fix performs.
type Operation string

const (
	// OpReplace substitutes TargetText with ReplacementText on the fix line.
	OpReplace Operation = "replace"

	// OpInsertBefore prepends a new line above the fix line, leaving the
	// original line untouched. Used for comment flags and attribute insertion.
	OpInsertBefore Operation = "insert_before"
)

// Fix is a proposed edit resolving exactly one Violation.
// Fixes are produced fresh per run and never persisted.
type Fix struct {
	Violation Violation
	Operation Operation

	// Line and Column locate the edit in the file content the fix was
	// generated against. Usually copied from the violation, but rules may
	// retarget (e.g. a missing-attribute fix always inserts at line 1).
	Line   int
	Column int

	// TargetText must exactly match a substring of the target line for
	// OpReplace. Empty for OpInsertBefore.
	TargetText string

	// ReplacementText is the substitute text for OpReplace, or the full
	// inserted line for OpInsertBefore.
	ReplacementText string

	Confidence     float64 // 0..1
	RequiresReview bool
	IsCommentFlag  bool // true only for insert_before explanation lines
}

// CommentFlagText formats the standard comment-flag line for a violation.
// AsciiDoc line comments start with "//", so the flag survives rendering.
func CommentFlagText(v Violation) string {
	return fmt.Sprintf("// %s, %s, %s", v.CheckID, v.Severity, v.Message)
}

// NewCommentFlag builds the insert_before fix that flags a violation for
// manual review without touching its line.
func NewCommentFlag(v Violation) *Fix {
	return &Fix{
		Violation:       v,
		Operation:       OpInsertBefore,
		Line:            v.Line,
		Column:          v.Column,
		ReplacementText: CommentFlagText(v),
		Confidence:      1.0,
		RequiresReview:  true,
		IsCommentFlag:   true,
	}
}
