// Package bootstrap registers all built-in rules into the global registry.
// Imported for side effects by cmd/adfix/main.go.
package bootstrap

import (
	"fmt"
	"os"

	"github.com/asciidoc-dita/adfix/internal/rule"
)

func init() {
	registry := rule.Global()

	rules := []rule.Rule{
		rule.NewEntityReference(),
		rule.NewLineBreak(),
		rule.NewContentType(),
		rule.NewShortDescription(),

		// Flag-only checks: violations a machine cannot resolve. Each gets
		// an explanatory comment above the offending line.
		rule.NewFlagRule("AsciiDocDITA.TaskSection", rule.SeverityError),
		rule.NewFlagRule("AsciiDocDITA.TaskExample", rule.SeverityError),
		rule.NewFlagRule("AsciiDocDITA.TaskStep", rule.SeverityError),
		rule.NewFlagRule("AsciiDocDITA.NestedSection", rule.SeverityWarning),
		rule.NewFlagRule("AsciiDocDITA.SidebarBlock", rule.SeverityWarning),
		rule.NewFlagRule("AsciiDocDITA.TableFooter", rule.SeveritySuggestion),
	}

	for _, r := range rules {
		if err := registry.Register(r); err != nil {
			// Duplicate registration is a programming error, not a runtime
			// condition; fail loudly at startup.
			fmt.Fprintf(os.Stderr, "bootstrap: %v\n", err)
			os.Exit(1)
		}
	}
}
