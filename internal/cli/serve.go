package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/myenergy/tracker/internal/api"
	"github.com/myenergy/tracker/internal/core/service"
	"github.com/myenergy/tracker/pkg/logger"
)

const (
	portFlag        = "port"
	shutdownTimeout = 10 * time.Second
)

// Flag maps are built per command: a cobraflags.Flag stays bound to the
// first pflag it was read from.
func NewServeCommand() *cobra.Command {
	flags := map[string]cobraflags.Flag{
		portFlag: &cobraflags.StringFlag{
			Name:  portFlag,
			Value: "",
			Usage: "Port to listen on (overrides PORT)",
		},
	}
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serveCommand(cmd, flags[portFlag].GetString())
		},
	}
	cobraflags.RegisterMap(serveCmd, flags)
	return serveCmd
}

func serveCommand(cmd *cobra.Command, port string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	b, err := bootstrap(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer b.close(context.Background())

	cfg := b.cfg
	if err := cfg.RequireSecret(); err != nil {
		return err
	}
	policy, err := service.ParseUserDeletePolicy(cfg.UserDeletePolicy)
	if err != nil {
		return err
	}

	// Seed the admin before the first request arrives.
	if _, err := b.store.Load(ctx); err != nil {
		return fmt.Errorf("load store: %w", err)
	}

	e := api.NewRouter(api.Deps{
		Services: api.Services{
			Auth:        service.NewAuthService(b.store, b.sessions, b.passwords, cfg.JWTSecret, cfg.TokenTTL, logger.Component("auth")),
			Directory:   service.NewDirectoryService(b.store, logger.Component("directory")),
			Consumption: service.NewConsumptionService(b.store, logger.Component("consumption")),
			Users:       service.NewUserService(b.store, policy, logger.Component("users")),
			Dashboard:   service.NewDashboardService(b.store),
			Backup:      service.NewBackupService(b.store, logger.Component("backup")),
		},
		Sessions:  b.sessions,
		JWTSecret: cfg.JWTSecret,
		Health:    b.checks,
		Logger:    logger.Component("http"),
	})

	if port == "" {
		port = cfg.Port
	}
	addr := ":" + port

	errCh := make(chan error, 1)
	go func() {
		b.log.Info().Str("address", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	b.log.Info().Msg("received interruption signal, shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		b.log.Error().Err(err).Msg("error during server shutdown")
	}
	<-errCh
	b.log.Info().Msg("shutdown complete")
	return nil
}
