package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newFileCommand() *cobra.Command {
	var repoDir string
	var year int
	var month int

	cmd := &cobra.Command{
		Use:   "file <upload.csv>",
		Short: "Create a filing from an uploaded transaction sheet and compute tax due",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(repoDir)
			if err != nil {
				return err
			}

			source, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolving upload path: %w", err)
			}

			taxpayer := ws.cfg.Profile()
			created, err := ws.svc.Create(taxpayer, year, month, source)
			if err != nil {
				return err
			}

			filing, err := ws.svc.Process(created.ID, taxpayer)
			if err != nil {
				return fmt.Errorf("processing %s: %w", created.ID, err)
			}

			fmt.Printf("Filing %s computed: income %s, expenses %s, tax due %s (%s)\n",
				filing.ID,
				filing.GrossIncome.StringFixed(2),
				filing.TotalExpenses.StringFixed(2),
				filing.TaxDue.StringFixed(2),
				taxpayer.Regime)
			return nil
		},
	}

	addRepoFlag(cmd, &repoDir)
	cmd.Flags().IntVar(&year, "year", 0, "filing year (required)")
	_ = cmd.MarkFlagRequired("year")
	cmd.Flags().IntVar(&month, "month", 0, "filing month 1-12 (required)")
	_ = cmd.MarkFlagRequired("month")

	return cmd
}
