package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tiers/internal/accounts"
	"github.com/cleared-dev/tiers/internal/config"
	"github.com/cleared-dev/tiers/internal/form"
)

func newInitCommand() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new tiers project",
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

			m, err := form.ParseMode(mode)
			if err != nil {
				return err
			}

			if err := runInit(absDir, m); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized tiers project at %s\n", absDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", string(form.ModeDerived), "form mode: derived or editable")

	return cmd
}

func runInit(dir string, mode form.Mode) error {
	for _, d := range []string{"accounts", "logs"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default()
	cfg.Form.Mode = mode
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	svc := accounts.NewService(accounts.DefaultChart())
	if err := svc.Save(dir); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}

	gitignore := ".env\nlogs/\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	return nil
}
