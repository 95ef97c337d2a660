// Package vale consumes the external linter: it parses the JSON violation
// report and can invoke the vale binary out of process.
package vale

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/asciidoc-dita/adfix/internal/rule"
)

// Alert is one finding in vale's JSON output.
type Alert struct {
	Check    string `json:"Check"`
	Severity string `json:"Severity"`
	Line     int    `json:"Line"`
	Span     [2]int `json:"Span"` // [start column, end column], 1-indexed
	Message  string `json:"Message"`
	Match    string `json:"Match"`
}

// Report is vale's JSON output shape: file path to findings.
type Report map[string][]Alert

// ParseReport converts the raw linter JSON into violations. A report that
// does not parse is a fatal run error: without trustworthy positions no fix
// is safe to generate.
func ParseReport(data []byte) ([]rule.Violation, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "{}" {
		return nil, nil
	}

	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("malformed linter report: %w", err)
	}

	paths := make([]string, 0, len(report))
	for path := range report {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var violations []rule.Violation
	for _, path := range paths {
		for _, alert := range report[path] {
			violations = append(violations, rule.Violation{
				FilePath: path,
				CheckID:  alert.Check,
				Line:     alert.Line,
				Column:   alert.Span[0],
				Message:  alert.Message,
				Severity: parseSeverity(alert.Severity),
				Snippet:  alert.Match,
			})
		}
	}
	return violations, nil
}

func parseSeverity(s string) rule.Severity {
	switch strings.ToLower(s) {
	case "error":
		return rule.SeverityError
	case "warning":
		return rule.SeverityWarning
	default:
		return rule.SeveritySuggestion
	}
}
