// Package server orchestrates the gamestats service: catalog, client, COMMS gateway and HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	comms "github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/morezero/gamestats/internal/config"
	"github.com/morezero/gamestats/pkg/client"
	"github.com/morezero/gamestats/pkg/commsutil"
	"github.com/morezero/gamestats/pkg/events"
	"github.com/morezero/gamestats/pkg/gateway"
)

const logPrefix = "server:server"

// shutdownTimeout bounds HTTP shutdown and the wait for in-flight gateway calls.
const shutdownTimeout = 10 * time.Second

// ParseLogLevel maps LOG_LEVEL values to slog levels. Unknown values mean info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetupLogging installs the default text logger at the given level.
func SetupLogging(level string) {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: ParseLogLevel(level)})))
}

// Run starts the server, blocks until shutdown signal, then cleans up.
func Run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("%s - failed to load config: %w", logPrefix, err)
	}
	SetupLogging(cfg.LogLevel)
	if err := cfg.ValidateForServe(); err != nil {
		return err
	}
	if ParseLogLevel(cfg.LogLevel) > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	slog.Info(fmt.Sprintf("%s - Starting gamestats", logPrefix))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Step 1: catalog (file or database)
	cat, pool, err := LoadCatalog(ctx, cfg)
	if err != nil {
		return err
	}
	if pool != nil {
		defer pool.Close()
	}

	// Step 2: client
	c, err := client.New(client.Options{
		Credential: cfg.APIKey,
		Region:     cfg.Region,
		Catalog:    cat,
		Timeout:    cfg.HTTPTimeout,
	})
	if err != nil {
		return fmt.Errorf("%s - failed to create client: %w", logPrefix, err)
	}

	// Step 3: COMMS
	nc, err := commsutil.Connect(cfg.COMMSURL, cfg.COMMSName)
	if err != nil {
		return fmt.Errorf("%s - failed to connect to COMMS: %w", logPrefix, err)
	}
	defer nc.Close()

	// Step 4: router with metrics and call events
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	router := gateway.NewRouter(gateway.NewRouterParams{
		Client:    c,
		Publisher: events.NewCommsPublisher(nc, &events.CommsPublisherOpts{Subject: cfg.CallEventSubject}),
		Metrics:   gateway.NewMetrics(reg),
	})

	// Step 5: gateway subscription
	subject := cfg.GatewaySubject
	if subject == "" {
		subject = commsutil.SubjectGateway
	}
	gw := newGatewayHandler(ctx, router, cfg.RequestTimeout, cfg.MaxInFlight)
	sub, err := gw.subscribe(nc, subject, cfg.COMMSName)
	if err != nil {
		return err
	}

	// Step 6: HTTP
	httpServer := &http.Server{
		Addr: cfg.ListenAddr(),
		Handler: newHTTPHandler(httpDeps{
			client:         c,
			router:         router,
			registry:       reg,
			checks:         buildHealthChecks(nc, pool),
			healthTimeout:  cfg.HealthCheckTimeout,
			requestTimeout: cfg.RequestTimeout,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		slog.Info(fmt.Sprintf("%s - HTTP server listening on %s", logPrefix, httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error(fmt.Sprintf("%s - HTTP server error: %v", logPrefix, err))
		}
	}()

	slog.Info(fmt.Sprintf("%s - gamestats is ready: region=%s groups=%d", logPrefix, cfg.Region, len(cat.Groups)))

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info(fmt.Sprintf("%s - Received signal %s, shutting down", logPrefix, sig))

	// Stop intake before waiting on in-flight calls.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := sub.Unsubscribe(); err != nil {
		slog.Warn(fmt.Sprintf("%s - unsubscribe: %v", logPrefix, err))
	}
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Warn(fmt.Sprintf("%s - HTTP shutdown: %v", logPrefix, err))
	}
	waitOrTimeout(shutdownCtx, gw.wait)
	if err := nc.Drain(); err != nil {
		slog.Warn(fmt.Sprintf("%s - COMMS drain: %v", logPrefix, err))
	}

	slog.Info(fmt.Sprintf("%s - Shutdown complete", logPrefix))
	return nil
}

func buildHealthChecks(nc *comms.Conn, pool *pgxpool.Pool) []healthCheck {
	checks := []healthCheck{{
		name: "comms",
		check: func(context.Context) error {
			if status := nc.Status(); status != comms.CONNECTED {
				return fmt.Errorf("status %s", status)
			}
			return nil
		},
	}}
	if pool != nil {
		checks = append(checks, healthCheck{name: "database", check: pool.Ping})
	}
	return checks
}

// waitOrTimeout runs wait and returns when it finishes or ctx is done.
func waitOrTimeout(ctx context.Context, wait func()) {
	done := make(chan struct{})
	go func() {
		wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		slog.Warn(fmt.Sprintf("%s - timed out waiting for in-flight calls", logPrefix))
	}
}
