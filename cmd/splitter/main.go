package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	apphttp "splitter/internal/http"
	"splitter/internal/cli"
	"splitter/internal/config"
	"splitter/internal/ledger"
	"splitter/internal/log"
	"splitter/internal/metrics"
	"splitter/internal/notify"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger().WithComponent(log.ComponentApp)

	cfg := cli.LoadAndValidateConfig(logger)

	if err := run(logger, cfg); err != nil {
		logger.Error("Server error", log.FieldError, err, "addr", cfg.Addr())
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

func run(logger *log.Logger, cfg *config.Config) error {
	ctx, stop := cli.GracefulShutdown(logger)
	defer stop()

	store := cli.InitStore(ctx, logger, cfg)
	defer func() {
		if store.Cleanup == nil {
			return
		}
		if err := store.Cleanup(); err != nil {
			logger.Error("Store cleanup failed", log.FieldError, err)
		}
	}()

	m := metrics.New()
	l := ledger.Load(ctx, store.Store, ledger.WithLogger(logger), ledger.WithObserver(m))
	prefs := ledger.LoadPreferences(ctx, store.Store, ledger.WithLogger(logger), ledger.WithObserver(m))
	m.SetLedgerSize(l.Len())

	notifier := notify.New(cfg.NotificationDuration, logger.WithComponent(log.ComponentNotify))

	srv := apphttp.NewServer(cfg.Addr(), apphttp.Deps{
		Ledger:      l,
		Preferences: prefs,
		Notifier:    notifier,
		Store:       store.Store,
		Metrics:     m,
		Logger:      logger.WithComponent(log.ComponentHTTP),
	})
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting splitter server",
			"addr", cfg.Addr(),
			"backend", cfg.DataBackend,
			log.FieldLedgerSize, l.Len())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
