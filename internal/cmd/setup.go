package cmd

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/asciidoc-dita/adfix/internal/config"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactively create the adfix config file",
	RunE:  runSetup,
}

func runSetup(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		path = config.DefaultPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		cfg = config.Default()
	}

	fmt.Println("adfix setup - press Enter to keep the current value")
	fmt.Println()

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . }}",
		Selected: "✓ {{ . | green }}",
	}

	workersPrompt := promptui.Prompt{
		Label:   "Worker pool size (0 = auto)",
		Default: strconv.Itoa(cfg.Workers),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 || n > 64 {
				return fmt.Errorf("must be an integer between 0 and 64")
			}
			return nil
		},
	}
	workersStr, err := workersPrompt.Run()
	if err != nil {
		fmt.Println("\nSetup cancelled")
		return nil
	}
	cfg.Workers, _ = strconv.Atoi(workersStr)

	suffixPrompt := promptui.Prompt{
		Label:   "Backup suffix",
		Default: cfg.BackupSuffix,
	}
	if suffix, err := suffixPrompt.Run(); err == nil && suffix != "" {
		cfg.BackupSuffix = suffix
	}

	encodingSelect := promptui.Select{
		Label:     "Fallback encoding for non-UTF-8 files",
		Items:     []string{"latin-1", "none (skip such files)"},
		Templates: templates,
	}
	if idx, _, err := encodingSelect.Run(); err == nil {
		if idx == 0 {
			cfg.FallbackEncoding = "latin-1"
		} else {
			cfg.FallbackEncoding = ""
		}
	}

	valePrompt := promptui.Prompt{
		Label:   "vale binary",
		Default: cfg.ValeBinary,
	}
	if bin, err := valePrompt.Run(); err == nil && bin != "" {
		cfg.ValeBinary = bin
	}

	if err := config.Save(cfg, path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	printOK(fmt.Sprintf("configuration written to %s", path))
	return nil
}
