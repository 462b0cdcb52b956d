package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newHistoryCommand() *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List all filings, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(repoDir)
			if err != nil {
				return err
			}

			history, err := ws.svc.History()
			if err != nil {
				return err
			}
			if len(history) == 0 {
				fmt.Println("No filings yet.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPERIOD\tSTATUS\tINCOME\tEXPENSES\tTAX DUE")
			for _, f := range history {
				fmt.Fprintf(w, "%s\t%04d-%02d\t%s\t%s\t%s\t%s\n",
					f.ID, f.Year, f.Month, f.Status,
					f.GrossIncome.StringFixed(2),
					f.TotalExpenses.StringFixed(2),
					f.TaxDue.StringFixed(2))
			}
			return w.Flush()
		},
	}

	addRepoFlag(cmd, &repoDir)
	return cmd
}
