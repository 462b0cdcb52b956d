package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pesafile-dev/pesafile/internal/id"
)

func newSubmitCommand() *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "submit <filing-id>",
		Short: "Record that a ready filing was submitted on the portal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, _, err := id.ParseFilingID(args[0]); err != nil {
				return fmt.Errorf("invalid filing id %q: %w", args[0], err)
			}

			ws, err := openWorkspace(repoDir)
			if err != nil {
				return err
			}

			filing, err := ws.svc.Submit(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Filing %s submitted (tax due %s)\n", filing.ID, filing.TaxDue.StringFixed(2))
			return nil
		},
	}

	addRepoFlag(cmd, &repoDir)
	return cmd
}
