package daemon

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nutriquest-app/nutriquest/internal/api"
	"github.com/nutriquest-app/nutriquest/internal/app/session"
	"github.com/nutriquest-app/nutriquest/internal/health"
	_ "github.com/nutriquest-app/nutriquest/internal/infra/metrics" // Register Prometheus metrics
	"github.com/nutriquest-app/nutriquest/internal/infra/sqlite"
)

// Daemon is the core NutriQuest runtime. It wires together all services.
type Daemon struct {
	Config  Config
	DB      *sqlite.DB
	Session *session.Session
	Server  *api.Server
	Health  *health.Checker
	cancel  context.CancelFunc
}

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	db, err := sqlite.Open(nutriquestHome())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sess, err := session.New(db, cfg.Profile.DomainProfile())
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create session: %w", err)
	}

	srv := api.NewServer(sess)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}

	return &Daemon{
		Config:  cfg,
		DB:      db,
		Session: sess,
		Server:  srv,
		Health:  health.NewChecker(db, nutriquestHome()),
	}, nil
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	// Periodic health checks and day rollover
	go d.Health.Run(ctx)
	go d.rolloverLoop(ctx)

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("NutriQuest serving on http://%s\n", addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Close releases the database. Used by one-shot CLI commands.
func (d *Daemon) Close() error {
	return d.DB.Close()
}

// Stop triggers a graceful shutdown.
func (d *Daemon) Stop() {
	if d.cancel != nil {
		d.cancel()
	}
}

// rolloverLoop settles the previous day shortly after local midnight, so
// streaks and settlement rewards land even when no request comes in.
func (d *Daemon) rolloverLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// No-op unless the date actually changed.
			_, _ = d.Session.CheckAndAdvanceDay()
		}
	}
}
