package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pesafile-dev/pesafile/internal/id"
	"github.com/pesafile-dev/pesafile/internal/logger"
)

func newGenerateCommand() *cobra.Command {
	var repoDir string
	var template string

	cmd := &cobra.Command{
		Use:   "generate <filing-id>",
		Short: "Fill the return template for a computed filing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, _, err := id.ParseFilingID(args[0]); err != nil {
				return fmt.Errorf("invalid filing id %q: %w", args[0], err)
			}

			ws, err := openWorkspace(repoDir)
			if err != nil {
				return err
			}

			templatePath, err := filepath.Abs(template)
			if err != nil {
				return fmt.Errorf("resolving template path: %w", err)
			}

			// The filler logs through the context.
			ctx := logger.WithContext(cmd.Context(), ws.log)
			filing, err := ws.svc.Generate(ctx, args[0], ws.cfg.Profile(), templatePath)
			if err != nil {
				return err
			}

			fmt.Printf("Filing %s ready: %s\n", filing.ID, filing.OutputFile)
			return nil
		},
	}

	addRepoFlag(cmd, &repoDir)
	cmd.Flags().StringVar(&template, "template", "", "return template spreadsheet (required)")
	_ = cmd.MarkFlagRequired("template")

	return cmd
}
