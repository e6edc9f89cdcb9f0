package commands

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cleared-dev/tiers/internal/accounts"
	"github.com/cleared-dev/tiers/internal/buildinfo"
	"github.com/cleared-dev/tiers/internal/config"
	"github.com/cleared-dev/tiers/internal/logging"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "tiers",
		Short:   "Third-party record codes, types and accounts",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newClassifyCommand())
	rootCmd.AddCommand(newGenerateCommand())
	rootCmd.AddCommand(newResolveCommand())
	rootCmd.AddCommand(newFillCommand())
	rootCmd.AddCommand(newServeCommand())

	return rootCmd
}

// project is a loaded tiers project: its configuration, chart and logger.
type project struct {
	root   string
	cfg    *config.Config
	chart  *accounts.Service
	logger *zap.Logger
}

func loadProject(repoDir string, logOut io.Writer) (*project, error) {
	root, err := filepath.Abs(repoDir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.LoadProject(root)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger, err := logging.New(cfg.Log, logOut)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	chart, err := accounts.Load(root, cfg.Chart)
	if err != nil {
		return nil, err
	}

	return &project{root: root, cfg: cfg, chart: chart, logger: logger}, nil
}
