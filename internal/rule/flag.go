package rule

import "strings"

// FlagRule handles checks whose violations cannot be resolved mechanically:
// it inserts an explanatory comment above the offending line and leaves the
// content alone. One instance per owned check.
type FlagRule struct {
	name     string
	severity Severity
}

// NewFlagRule creates a flag-only rule for the given check ID.
func NewFlagRule(checkID string, severity Severity) *FlagRule {
	return &FlagRule{name: checkID, severity: severity}
}

func (r *FlagRule) Name() string           { return r.name }
func (r *FlagRule) FixType() FixType       { return NonDeterministic }
func (r *FlagRule) Severity() Severity     { return r.severity }
func (r *FlagRule) Dependencies() []string { return nil }

func (r *FlagRule) CanFix(v Violation) bool {
	return v.CheckID == r.name
}

// GenerateFix emits the comment flag, unless an identical flag already sits
// directly above the violation line (re-running on flagged output must not
// stack duplicates).
func (r *FlagRule) GenerateFix(v Violation, fileText string) *Fix {
	if v.Line > 1 {
		if prev, ok := lineAt(fileText, v.Line-1); ok && strings.TrimSpace(prev) == CommentFlagText(v) {
			return nil
		}
	}
	return NewCommentFlag(v)
}
