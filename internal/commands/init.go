package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pesafile-dev/pesafile/internal/config"
	"github.com/pesafile-dev/pesafile/internal/logger"
	"github.com/pesafile-dev/pesafile/internal/model"
	"github.com/pesafile-dev/pesafile/internal/regime"
	"github.com/pesafile-dev/pesafile/internal/rules"
)

func newInitCommand() *cobra.Command {
	var name string
	var pin string
	var profession string
	var businessType string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new filing workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, name, pin, profession, businessType)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "taxpayer name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&pin, "pin", "", "taxpayer PIN (required)")
	_ = cmd.MarkFlagRequired("pin")
	cmd.Flags().StringVar(&profession, "profession", "", "stated profession, used for regime triage")
	cmd.Flags().StringVar(&businessType, "business-type", "", "business type, used for regime triage")

	return cmd
}

func runInit(dir, name, pin, profession, businessType string) error {
	if len(pin) < model.MinPINLength {
		return fmt.Errorf("pin must be at least %d characters", model.MinPINLength)
	}

	dirs := []string{
		"rules",
		"filings",
		"uploads",
		"templates",
		"vault",
		"logs",
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Triage the regime from what the taxpayer stated. Confirmation
	// happens separately via `pesafile triage confirm`.
	reg := regime.NewClassifier(regime.DefaultConfig()).Classify(profession, businessType)

	cfg := config.Default(name, pin)
	cfg.Taxpayer.Profession = profession
	cfg.Taxpayer.BusinessType = businessType
	cfg.Taxpayer.Regime = string(reg)
	if err := config.Save(filepath.Join(dir, "pesafile.yaml"), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Seed the rule table with the current statutory rates.
	ruleSvc := rules.NewService(rules.DefaultRules(), logger.New())
	if err := ruleSvc.Save(dir); err != nil {
		return fmt.Errorf("writing tax rules: %w", err)
	}

	gitignore := "uploads/\n*.xlsx\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	fmt.Printf("Initialized pesafile workspace at %s (regime: %s, confirm with `pesafile triage confirm`)\n", dir, reg)
	return nil
}
