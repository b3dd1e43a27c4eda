package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/tienda/internal/config"
	"github.com/Skotchmaster/tienda/pkg/logging"
	"github.com/Skotchmaster/tienda/pkg/portfinder"
)

// resolvePort picks the first free port from the desired one and writes it
// back to PORT for anything started after the server.
func resolvePort(cfg config.ServiceConfig, args []string, logger *slog.Logger) (int, error) {
	desired, err := cfg.DesiredPort(args)
	if err != nil {
		return 0, err
	}
	port, err := portfinder.Find(desired, cfg.PortMaxAttempts)
	if err != nil {
		return 0, err
	}
	if port != desired {
		logger.Warn("port in use, moved to next free port", "desired", desired, "port", port)
	}
	if err := os.Setenv("PORT", strconv.Itoa(port)); err != nil {
		return 0, err
	}
	return port, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	config.LoadDotEnv(envFile)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	port, err := resolvePort(cfg, args, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("shutdown close failed", "error", err)
		}
	}()

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(port),
		Handler:           a.echo,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("tienda listening", "addr", srv.Addr, "url", fmt.Sprintf("http://localhost:%d", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("tienda stopped")
	return nil
}
