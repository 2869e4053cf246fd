// File: cmd/httpd/main.go
// Package main boots the HTTP server: configuration from flags, a
// production logger, the session store, and the full handler chain.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/momentics/hioload-httpd/api"
	"github.com/momentics/hioload-httpd/control"
	"github.com/momentics/hioload-httpd/handlers"
	"github.com/momentics/hioload-httpd/internal/session"
	"github.com/momentics/hioload-httpd/server"
)

func main() {
	cfg := server.DefaultConfig()

	flag.StringVar(&cfg.ListenAddr, "addr", cfg.ListenAddr, "TCP listen address")
	flag.IntVar(&cfg.CoreWorkers, "core-workers", cfg.CoreWorkers, "worker pool core size")
	flag.IntVar(&cfg.MaxWorkers, "max-workers", cfg.MaxWorkers, "worker pool ceiling")
	flag.IntVar(&cfg.QueueCapacity, "queue", cfg.QueueCapacity, "admission queue capacity")
	flag.DurationVar(&cfg.IOTimeout, "io-timeout", cfg.IOTimeout, "per-connection read/write deadline")
	flag.DurationVar(&cfg.SessionTimeout, "session-timeout", cfg.SessionTimeout, "session idle timeout")
	flag.DurationVar(&cfg.SweepInterval, "sweep-interval", cfg.SweepInterval, "session expiry sweep period")
	flag.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "grace for in-flight requests at shutdown")
	devLog := flag.Bool("dev-log", false, "human-readable console logging")
	flag.Parse()

	logger, err := newLogger(*devLog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Error("server failed", zap.Error(err))
		os.Exit(1)
	}
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(cfg *server.Config, logger *zap.Logger) error {
	store := session.NewStore(cfg.SessionTimeout, cfg.SweepInterval, logger)
	defer store.Close()

	metrics := control.NewMetrics()

	srv := server.NewServer(cfg,
		server.WithLogger(logger),
		server.WithMetrics(metrics))
	srv.SetHandlers([]api.Handler{
		handlers.NewHome(),
		handlers.NewTime(),
		handlers.NewHeaders(),
		handlers.NewCookies(),
		handlers.NewLoadTest(),
		handlers.NewUsers(store),
		handlers.NewStatus(srv.PoolStats, srv.Accepted, store, metrics),
		handlers.NewMetrics(metrics, srv.PoolStats, store),
	})

	if err := srv.Start(); err != nil {
		return err
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigs
	logger.Info("shutdown signal received", zap.String("signal", sig.String()))

	return srv.Stop()
}
