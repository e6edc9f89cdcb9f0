package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cleared-dev/tiers/internal/server"
)

func newServeCommand() *cobra.Command {
	var repoDir string
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the record form API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return runServe(ctx, repoDir, port, cmd)
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "project directory")
	cmd.Flags().IntVar(&port, "port", 0, "listen port (default: from tiers.yaml)")

	return cmd
}

func runServe(ctx context.Context, repoDir string, port int, cmd *cobra.Command) error {
	p, err := loadProject(repoDir, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = p.logger.Sync() }()

	if port == 0 {
		port = p.cfg.Server.Port
	}

	srv := server.New(server.Config{
		Port:   port,
		Chart:  p.chart,
		Mode:   p.cfg.Form.Mode,
		Logger: p.logger,
	})

	p.logger.Info("tiers ready",
		zap.Int("port", port),
		zap.String("mode", string(p.cfg.Form.Mode)),
		zap.Int("accounts", len(p.chart.All())),
	)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return <-errCh
}
