package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/tiers/internal/activity"
	"github.com/cleared-dev/tiers/internal/form"
)

type fillOptions struct {
	repoDir string
	formID  string
	mode    string
	code    string
	name    string
	typ     string
	account string
	events  []string
	noLog   bool
}

func newFillCommand() *cobra.Command {
	var opts fillOptions

	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill a record form in memory and print what it would submit",
		Long: `Fill opens a record form pre-filled from the flags, replays the given
events in order and prints the submitted values.

Events:
  code=VALUE   type VALUE into the code field
  name=VALUE   type VALUE into the name field
  blur         the name field loses focus
  type=VALUE   pick VALUE in the type field (editable mode only)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFill(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.repoDir, "repo", ".", "project directory")
	cmd.Flags().StringVar(&opts.formID, "form-id", "", "form identifier used in logs (default: random)")
	cmd.Flags().StringVar(&opts.mode, "mode", "", "form mode: derived or editable (default: from tiers.yaml)")
	cmd.Flags().StringVar(&opts.code, "code", "", "pre-filled code")
	cmd.Flags().StringVar(&opts.name, "name", "", "pre-filled name")
	cmd.Flags().StringVar(&opts.typ, "type", "", "pre-filled type")
	cmd.Flags().StringVar(&opts.account, "account", "", "pre-filled account id")
	cmd.Flags().StringArrayVar(&opts.events, "event", nil, "event to replay (repeatable)")
	cmd.Flags().BoolVar(&opts.noLog, "no-log", false, "do not append to logs/form-activity.csv")

	return cmd
}

func runFill(out, logOut io.Writer, opts fillOptions) error {
	p, err := loadProject(opts.repoDir, logOut)
	if err != nil {
		return err
	}
	defer func() { _ = p.logger.Sync() }()

	mode := p.cfg.Form.Mode
	if opts.mode != "" {
		if mode, err = form.ParseMode(opts.mode); err != nil {
			return err
		}
	}
	if opts.formID == "" {
		opts.formID = uuid.NewString()
	}

	f := form.NewMemoryForm(p.chart.Candidates())
	f.Set(form.RoleCode, opts.code)
	f.Set(form.RoleName, opts.name)
	f.Set(form.RoleType, opts.typ)
	f.Set(form.RoleAccount, opts.account)

	rec := activity.NewRecorder()
	ctrl := form.New(opts.formID, f,
		form.WithMode(mode),
		form.WithLogger(p.logger),
		form.WithObserver(rec.Observe),
	)
	ctrl.Init()

	for _, ev := range opts.events {
		if err := replay(ctrl, f, ev); err != nil {
			return fmt.Errorf("event %q: %w", ev, err)
		}
	}

	sub := f.Submission()
	for _, r := range form.AllRoles {
		for _, v := range sub[string(r)] {
			fmt.Fprintf(out, "%s=%s\n", r, v)
		}
	}

	if !opts.noLog && len(rec.Entries()) > 0 {
		if err := activity.Append(p.root, rec.Entries()); err != nil {
			return fmt.Errorf("writing activity log: %w", err)
		}
	}
	return nil
}

func replay(ctrl *form.Controller, f *form.MemoryForm, ev string) error {
	if ev == "blur" {
		ctrl.NameBlurred()
		return nil
	}

	key, value, ok := strings.Cut(ev, "=")
	if !ok {
		return fmt.Errorf("expected blur or FIELD=VALUE")
	}
	switch form.Role(key) {
	case form.RoleCode:
		if err := f.Input(form.RoleCode, value); err != nil {
			return err
		}
		ctrl.CodeChanged()
	case form.RoleName:
		return f.Input(form.RoleName, value)
	case form.RoleType:
		if err := f.Input(form.RoleType, value); err != nil {
			return err
		}
		ctrl.TypeChanged()
	default:
		return fmt.Errorf("field %q cannot be edited", key)
	}
	return nil
}
