package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/laptop-advisor/internal/api/handlers"
	"github.com/donaldgifford/laptop-advisor/internal/engine"
	"github.com/donaldgifford/laptop-advisor/internal/source"
	"github.com/donaldgifford/laptop-advisor/internal/telemetry"
	"github.com/donaldgifford/laptop-advisor/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server and refresh scheduler",
	RunE:  runServe,
}

func runServe(c *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Setup(ctx, &cfg.Telemetry, logger.Component(log, "telemetry"))
	if err != nil {
		return fmt.Errorf("setting up telemetry: %w", err)
	}
	defer func() {
		tctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(tctx); err != nil {
			log.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	var (
		lister  source.RawListingLister
		imports handlers.ImportStore
		pinger  func(context.Context) error
	)
	st, err := openStore(ctx, cfg)
	switch {
	case errors.Is(err, errNoDatabase):
		log.Info("no database configured, import endpoints disabled")
	case err != nil:
		return err
	default:
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		lister, imports, pinger = st, st, st.Ping
	}

	eng, err := buildEngine(cfg, lister, newNotifier(&cfg.Notifications, log), log)
	if err != nil {
		return err
	}

	// Warm the cache so the first request does not pay for the load. A
	// failure here is not fatal; readyz reports it until a load succeeds.
	if snap, err := eng.Refresh(ctx); err != nil {
		log.Warn("initial catalog load failed", "error", err)
	} else {
		log.Info("catalog loaded", "snapshot", snap.ID, "listings", len(snap.Listings()), "source", snap.Source)
	}

	sched, err := engine.NewScheduler(eng, cfg.Schedule.RefreshInterval, logger.Component(log, "scheduler"))
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}
	sched.Start()

	e := newServer(cfg, eng, imports, pinger, log)

	addr := cfg.Server.Addr()
	log.Info("starting server", "addr", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			<-sched.Stop().Done()
			return fmt.Errorf("server error: %w", err)
		}
	}

	log.Info("shutting down server")

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	<-sched.Stop().Done()
	if err := e.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	eng.WaitDigests()

	log.Info("server stopped")
	return nil
}
