package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newVaultCommand() *cobra.Command {
	vaultCmd := &cobra.Command{
		Use:   "vault",
		Short: "Inspect archived return forms",
	}
	vaultCmd.AddCommand(newVaultListCommand())
	return vaultCmd
}

func newVaultListCommand() *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived return forms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVaultList(repoDir)
		},
	}

	addRepoFlag(cmd, &repoDir)
	return cmd
}

func runVaultList(repoDir string) error {
	ws, err := openWorkspace(repoDir)
	if err != nil {
		return err
	}

	archives, err := ws.vault.List()
	if err != nil {
		return err
	}
	if len(archives) == 0 {
		fmt.Println("Vault is empty.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ARCHIVE\tARCHIVED")
	for _, a := range archives {
		fmt.Fprintf(w, "%s\t%s\n", a.Name, a.Archived.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
