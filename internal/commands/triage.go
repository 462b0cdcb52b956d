package commands

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pesafile-dev/pesafile/internal/auditlog"
	"github.com/pesafile-dev/pesafile/internal/config"
	"github.com/pesafile-dev/pesafile/internal/model"
	"github.com/pesafile-dev/pesafile/internal/regime"
)

func newTriageCommand() *cobra.Command {
	triageCmd := &cobra.Command{
		Use:   "triage",
		Short: "Regime triage and confirmation",
	}
	triageCmd.AddCommand(newTriageShowCommand())
	triageCmd.AddCommand(newTriageConfirmCommand())
	return triageCmd
}

func newTriageShowCommand() *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the regime the classifier suggests for this taxpayer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(repoDir)
			if err != nil {
				return err
			}

			p := ws.cfg.Profile()
			suggested := regime.NewClassifier(regime.DefaultConfig()).Classify(p.Profession, p.BusinessType)

			fmt.Printf("Profession: %s\n", p.Profession)
			fmt.Printf("Business type: %s\n", p.BusinessType)
			fmt.Printf("Suggested regime: %s\n", suggested)
			fmt.Printf("Configured regime: %s (confirmed: %t)\n", p.Regime, p.Confirmed)
			return nil
		},
	}

	addRepoFlag(cmd, &repoDir)
	return cmd
}

func newTriageConfirmCommand() *cobra.Command {
	var repoDir string
	var override string

	cmd := &cobra.Command{
		Use:   "confirm",
		Short: "Confirm the taxpayer's regime, optionally overriding the suggestion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(repoDir)
			if err != nil {
				return err
			}

			p := ws.cfg.Profile()
			previous := p.Regime

			if override != "" {
				next := model.Regime(strings.ToUpper(override))
				if next != model.RegimeTrader && next != model.RegimeProfessional {
					return fmt.Errorf("unknown regime %q", override)
				}
				p.Regime = next
			}
			p.Confirmed = true

			ws.cfg.SetProfile(p)
			if err := config.Save(filepath.Join(ws.root, "pesafile.yaml"), ws.cfg); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			if p.Regime != previous {
				entry := auditlog.Entry{
					Timestamp:  time.Now().UTC(),
					Actor:      p.PIN,
					Action:     auditlog.ActionRegimeSwitched,
					EntityType: "taxpayer",
					EntityID:   p.PIN,
					Details:    fmt.Sprintf("%s -> %s", previous, p.Regime),
				}
				if err := auditlog.Append(ws.root, []auditlog.Entry{entry}); err != nil {
					return fmt.Errorf("recording regime switch: %w", err)
				}
			}

			fmt.Printf("Regime %s confirmed for %s\n", p.Regime, p.Name)
			return nil
		},
	}

	addRepoFlag(cmd, &repoDir)
	cmd.Flags().StringVar(&override, "regime", "", "override the regime (TRADER or PROFESSIONAL)")
	return cmd
}
