package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tiers/internal/accounts"
	"github.com/cleared-dev/tiers/internal/classify"
	"github.com/cleared-dev/tiers/internal/codegen"
	"github.com/cleared-dev/tiers/internal/model"
)

func newClassifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <code>",
		Short: "Print the third-party type encoded in a code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, ok := classify.Classify(args[0])
			if !ok {
				return fmt.Errorf("code %q does not start with a known prefix", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), t)
			return nil
		},
	}
}

func newGenerateCommand() *cobra.Command {
	var typ string

	cmd := &cobra.Command{
		Use:   "generate --type TYPE <name>",
		Short: "Generate the code of a third party from its type and name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, ok := model.ParsePartyType(typ)
			if !ok {
				return fmt.Errorf("unknown type %q", typ)
			}
			name := strings.Join(args, " ")
			code := codegen.Generate(t, name)
			if code == "" {
				return fmt.Errorf("cannot generate a %s code from %q", t, name)
			}
			fmt.Fprintln(cmd.OutOrStdout(), code)
			return nil
		},
	}

	cmd.Flags().StringVar(&typ, "type", "", "SUPPLIER, CUSTOMER or EMPLOYEE (required)")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func newResolveCommand() *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "resolve <code>",
		Short: "Print the chart account matching the prefix of a code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(repoDir, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = p.logger.Sync() }()

			prefix, ok := classify.Prefix(args[0])
			if !ok {
				return fmt.Errorf("code %q is shorter than %d characters", args[0], classify.PrefixLen)
			}

			cands := p.chart.Candidates()
			accounts.NormalizeLabels(prefix, cands)
			id, ok := accounts.Resolve(prefix, cands)
			if !ok {
				return fmt.Errorf("no account matches prefix %s", prefix)
			}
			for _, c := range cands {
				if c.ID == id {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", c.ID, c.Label)
					break
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "project directory")

	return cmd
}
