package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/asciidoc-dita/adfix/internal/config"
	"github.com/asciidoc-dita/adfix/internal/logging"
	"github.com/asciidoc-dita/adfix/internal/process"
	"github.com/asciidoc-dita/adfix/internal/report"
	"github.com/asciidoc-dita/adfix/internal/rule"
	"github.com/asciidoc-dita/adfix/internal/vale"
	"github.com/asciidoc-dita/adfix/pkg/schema"
)

var (
	fixReportPath string
	fixWorkers    int
	fixDryRun     bool
	fixJSON       bool
	fixOpenReport bool
)

var fixCmd = &cobra.Command{
	Use:   "fix [paths...]",
	Short: "Apply DITA compatibility fixes to AsciiDoc files",
	Long: `Lint the given paths (or consume an existing report with --report) and
apply fixes in place. Every modified file gets a backup copy and is replaced
atomically; conflicting or unresolvable fixes are skipped and reported.`,
	RunE: runFix,
}

func init() {
	fixCmd.Flags().StringVar(&fixReportPath, "report", "", "existing vale JSON report to consume instead of running the linter")
	fixCmd.Flags().IntVar(&fixWorkers, "workers", 0, "worker pool size (0 = auto)")
	fixCmd.Flags().BoolVar(&fixDryRun, "dry-run", false, "compute fixes and show diffs without writing files")
	fixCmd.Flags().BoolVar(&fixJSON, "json", false, "print the machine-readable result instead of the summary")
	fixCmd.Flags().BoolVar(&fixOpenReport, "open", false, "write an HTML report and open it in the browser")
}

func runFix(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if fixWorkers > 0 {
		cfg.Workers = fixWorkers
	}
	warnUnknownRuleFilters(cfg)
	log := logging.New(verbose)

	// Interrupt stops dispatching new files; in-flight files finish their
	// write so nothing is left half-applied.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	violations, err := gatherViolations(ctx, cfg, args, fixReportPath)
	if err != nil {
		return err
	}
	if len(violations) == 0 {
		printOK("no violations found")
		return nil
	}
	log.Debug().Int("violations", len(violations)).Msg("report loaded")

	proc := process.New(cfg, rule.Global(), log)
	proc.DryRun = fixDryRun
	result, err := proc.Process(ctx, violations)
	if err != nil {
		return err
	}

	if fixJSON {
		data, err := report.JSON(result)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	} else {
		printResult(result)
	}

	if fixOpenReport {
		htmlPath := "adfix-report.html"
		if err := report.WriteHTML(result, htmlPath); err != nil {
			return err
		}
		printOK(fmt.Sprintf("report written to %s", htmlPath))
		if err := browser.OpenFile(htmlPath); err != nil {
			printWarn(fmt.Sprintf("could not open browser: %v", err))
		}
	}

	if result.HasFailures() {
		os.Exit(1)
	}
	return nil
}

// gatherViolations loads the violation list either from an existing report
// file or by running the linter on the given paths.
func gatherViolations(ctx context.Context, cfg *config.Config, paths []string, reportPath string) ([]rule.Violation, error) {
	if reportPath != "" {
		data, err := os.ReadFile(reportPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read report: %w", err)
		}
		return vale.ParseReport(data)
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no paths given (and no --report)")
	}
	executor := vale.NewExecutor()
	executor.Binary = cfg.ValeBinary
	executor.ConfigPath = cfg.ValeConfig
	return executor.Run(ctx, paths)
}

// warnUnknownRuleFilters flags skip/only entries that match no registered
// rule, which is usually a typo in the check ID.
func warnUnknownRuleFilters(cfg *config.Config) {
	known := make(map[string]bool)
	for _, name := range rule.Global().Names() {
		known[name] = true
	}
	for _, name := range cfg.SkipRules {
		if !known[name] {
			printWarn(fmt.Sprintf("skip_rules names unknown rule %q", name))
		}
	}
	for _, name := range cfg.OnlyRules {
		if !known[name] {
			printWarn(fmt.Sprintf("only_rules names unknown rule %q", name))
		}
	}
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath
	}
	return config.Load(path)
}

func printResult(result *schema.ProcessingResult) {
	printTitle("RESULT", result.Summary())

	for _, fr := range result.Files {
		switch fr.Status {
		case schema.StatusWritten:
			printOK(fmt.Sprintf("%s: %d fixes applied (backup: %s)", fr.Path, len(fr.Applied), fr.Backup))
		case schema.StatusPreviewed:
			printOK(fmt.Sprintf("%s: %d fixes (dry run)", fr.Path, len(fr.Applied)))
			if fr.Diff != "" {
				fmt.Print(fr.Diff)
			}
		case schema.StatusUnchanged:
			if verbose {
				fmt.Println(indent(fmt.Sprintf("%s: unchanged", fr.Path)))
			}
		case schema.StatusSkipped:
			printWarn(fmt.Sprintf("%s: skipped (%s)", fr.Path, fr.Reason))
		case schema.StatusInterrupted:
			printWarn(fmt.Sprintf("%s: interrupted", fr.Path))
		case schema.StatusFailed:
			printError(fmt.Sprintf("%s: %s", fr.Path, fr.Reason))
		}

		for _, sk := range fr.Skipped {
			printWarn(indent(fmt.Sprintf("%s:%d %s: %s", fr.Path, sk.Line, sk.CheckID, sk.Reason)))
		}
		for _, ap := range fr.Applied {
			if ap.RequiresReview {
				printWarn(indent(fmt.Sprintf("%s:%d %s: flagged for manual review", fr.Path, ap.Line, ap.CheckID)))
			}
		}
	}
}
