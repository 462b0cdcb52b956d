// Package commands wires the CLI surface over the filing services.
package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/pesafile-dev/pesafile/internal/buildinfo"
	"github.com/pesafile-dev/pesafile/internal/compute"
	"github.com/pesafile-dev/pesafile/internal/config"
	"github.com/pesafile-dev/pesafile/internal/filings"
	"github.com/pesafile-dev/pesafile/internal/formfill"
	"github.com/pesafile-dev/pesafile/internal/forms"
	"github.com/pesafile-dev/pesafile/internal/logger"
	"github.com/pesafile-dev/pesafile/internal/notify"
	"github.com/pesafile-dev/pesafile/internal/rules"
	"github.com/pesafile-dev/pesafile/internal/vault"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "pesafile",
		Short:   "Monthly return filing for small traders and professionals",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newFileCommand())
	rootCmd.AddCommand(newGenerateCommand())
	rootCmd.AddCommand(newSubmitCommand())
	rootCmd.AddCommand(newHistoryCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newTriageCommand())
	rootCmd.AddCommand(newVaultCommand())

	return rootCmd
}

// workspace bundles everything a subcommand needs, built from the
// pesafile.yaml at root.
type workspace struct {
	root  string
	cfg   *config.Config
	rules *rules.Service
	svc   *filings.Service
	log   zerolog.Logger
	vault *vault.Service
}

func openWorkspace(dir string) (*workspace, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(root, "pesafile.yaml"))
	if err != nil {
		return nil, fmt.Errorf("not a pesafile workspace (run pesafile init first): %w", err)
	}

	log := logger.New()

	ruleSvc, err := rules.Load(root, log)
	if err != nil {
		return nil, err
	}

	engine := compute.NewEngine(ruleSvc, compute.FallbackRates{
		Trader:       decimal.NewFromFloat(cfg.Rates.TraderFallback),
		Professional: decimal.NewFromFloat(cfg.Rates.ProfessionalFallback),
	})
	builder := forms.NewBuilder(forms.DefaultLayouts())
	filler := formfill.NewPythonFiller(cfg.Filler.Python, time.Duration(cfg.Filler.TimeoutSeconds)*time.Second)
	notifier := notify.NewLogNotifier(log)

	var git *vault.GitOptions
	if cfg.Git.AutoCommit {
		git = &vault.GitOptions{AuthorName: cfg.Git.AuthorName, AuthorEmail: cfg.Git.AuthorEmail}
	}
	archiver := vault.New(root, git, log)

	return &workspace{
		root:  root,
		cfg:   cfg,
		rules: ruleSvc,
		svc:   filings.NewService(root, engine, builder, filler, notifier, archiver, log),
		log:   log,
		vault: archiver,
	}, nil
}

func addRepoFlag(cmd *cobra.Command, repoDir *string) {
	cmd.Flags().StringVar(repoDir, "repo", ".", "workspace directory")
}
