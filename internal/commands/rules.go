package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newRulesCommand() *cobra.Command {
	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect the tax rule table",
	}
	rulesCmd.AddCommand(newRulesListCommand())
	rulesCmd.AddCommand(newRulesResolveCommand())
	return rulesCmd
}

func newRulesListCommand() *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all rule versions, historical included",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(repoDir)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tRATE\tVALID FROM\tVALID TO\tNAME")
			for _, r := range ws.rules.All() {
				to := "open"
				if !r.ValidTo.IsZero() {
					to = r.ValidTo.Format("2006-01-02")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					r.Code, r.Rate.String(), r.ValidFrom.Format("2006-01-02"), to, r.Name)
			}
			return w.Flush()
		},
	}

	addRepoFlag(cmd, &repoDir)
	return cmd
}

func newRulesResolveCommand() *cobra.Command {
	var repoDir string
	var asOf string

	cmd := &cobra.Command{
		Use:   "resolve <code>",
		Short: "Show the rule version in force on a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(repoDir)
			if err != nil {
				return err
			}

			date := time.Now().UTC()
			if asOf != "" {
				date, err = time.Parse("2006-01-02", asOf)
				if err != nil {
					return fmt.Errorf("parsing --as-of: %w", err)
				}
			}

			rule, err := ws.rules.Resolve(args[0], date)
			if err != nil {
				return err
			}

			fmt.Printf("%s on %s: rate %s (%s)\n",
				rule.Code, date.Format("2006-01-02"), rule.Rate.String(), rule.Name)
			if rule.LegalReference != "" {
				fmt.Printf("  %s\n", rule.LegalReference)
			}
			return nil
		},
	}

	addRepoFlag(cmd, &repoDir)
	cmd.Flags().StringVar(&asOf, "as-of", "", "date (YYYY-MM-DD), defaults to today")
	return cmd
}
