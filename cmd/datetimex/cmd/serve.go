package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hrygo/datetimex/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the HTTP API.

Endpoints:
  POST /api/v1/datetime/recognize
  POST /api/v1/datetime/recognize:batch
  GET  /api/v1/datetime/cultures
  GET  /api/v1/datetime/metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, a)
		},
	}
	cmd.Flags().String("addr", "", "address of server")
	cmd.Flags().Int("port", 8081, "port of server")
	bindFlag(a.v, "addr", cmd.Flags().Lookup("addr"))
	bindFlag(a.v, "port", cmd.Flags().Lookup("port"))
	return cmd
}

func runServe(ctx context.Context, a *app) error {
	s := server.NewServer(a.profile, a.logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Start(ctx)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		a.logger.Info("shutting down")
		// ctx is already done; shutdown gets its own deadline.
		if err := s.Shutdown(context.Background()); err != nil {
			return err
		}
		return <-errCh
	}
}
