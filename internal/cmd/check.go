package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/asciidoc-dita/adfix/internal/rule"
)

var checkReportPath string

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Lint AsciiDoc files for DITA compatibility without editing",
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkReportPath, "report", "", "existing vale JSON report to consume instead of running the linter")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	violations, err := gatherViolations(cmd.Context(), cfg, args, checkReportPath)
	if err != nil {
		return err
	}
	if len(violations) == 0 {
		printOK("no violations found")
		return nil
	}

	printTitle("CHECK", fmt.Sprintf("%d violations", len(violations)))
	errors := 0
	for i := range violations {
		v := &violations[i]
		line := v.String()
		if _, err := rule.Global().RuleFor(*v); err == nil {
			line += " (fixable)"
		}
		switch v.Severity {
		case "error":
			printError(line)
			errors++
		case "warning":
			printWarn(line)
		default:
			fmt.Println(indent(line))
		}
	}
	if errors > 0 {
		os.Exit(1)
	}
	return nil
}
