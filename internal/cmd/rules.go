package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/asciidoc-dita/adfix/internal/rule"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List fix rules in execution order",
	Long: `List all registered rules in their dependency-resolved execution order,
with their fix type and the severity of the check they own.`,
	RunE: runRules,
}

func runRules(cmd *cobra.Command, args []string) error {
	ordered, err := rule.Global().ExecutionOrder()
	if err != nil {
		return err
	}

	printTitle("RULES", fmt.Sprintf("%d registered", len(ordered)))
	for i, r := range ordered {
		line := fmt.Sprintf("%2d. %-36s %-24s %s", i+1, r.Name(), r.FixType(), r.Severity())
		if deps := r.Dependencies(); len(deps) > 0 {
			line += fmt.Sprintf("  (after %s)", strings.Join(deps, ", "))
		}
		fmt.Println(line)
	}
	return nil
}
