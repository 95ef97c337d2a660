// Package rule defines the violation and fix model, the Rule interface, and
// the registry that resolves rule execution order.
package rule

// Rule resolves violations for one linter check.
//
// Design:
//   - One rule per check ID; CanFix routes violations to their owning rule.
//   - Rules are stateless across files and safe to call concurrently from
//     multiple file-processing workers, as long as each call only reads the
//     file text it is given.
//   - GenerateFix must not mutate its inputs. Returning nil means the rule
//     declines (ambiguous text, already fixed); the violation is then surfaced
//     as requiring manual review.
type Rule interface {
	// Name returns the rule name, which is the check ID it owns
	// (e.g. "AsciiDocDITA.EntityReference").
	Name() string

	// FixType returns how deterministically this rule resolves violations.
	// NonDeterministic rules must only produce insert_before comment flags.
	FixType() FixType

	// Severity is the severity class of the owned check, used to break ties
	// when ordering independent rules.
	Severity() Severity

	// Dependencies lists rule names that must have executed against the same
	// file before this rule runs. Dependent rules see the cumulative effect
	// of their prerequisites' fixes in the file text they are given.
	Dependencies() []string

	// CanFix reports whether this rule owns the violation's check.
	CanFix(v Violation) bool

	// GenerateFix turns a violation plus the current file text into zero or
	// one fix. fileText is the working copy for this run: for dependent
	// rules it already includes prerequisite edits.
	GenerateFix(v Violation, fileText string) *Fix
}
