// keapilot — validation and command-preparation console for Kea DHCP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/mokhtarhasfulloh/saga-kea-pilot-sub000/internal/api"
	"github.com/mokhtarhasfulloh/saga-kea-pilot-sub000/internal/audit"
	"github.com/mokhtarhasfulloh/saga-kea-pilot-sub000/internal/config"
	"github.com/mokhtarhasfulloh/saga-kea-pilot-sub000/internal/logging"
	"github.com/mokhtarhasfulloh/saga-kea-pilot-sub000/internal/radius"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to configuration file (optional)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("keapilot", version)
		return
	}

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
			os.Exit(1)
		}
	} else {
		cfg = config.Default()
	}

	logger := logging.Setup(cfg.Server.LogLevel, os.Stdout)
	logger.Info("keapilot starting",
		"version", version,
		"config", *configPath,
		"listen", cfg.Server.Listen)

	db, err := bolt.Open(cfg.Server.AuditDB, 0600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		logger.Error("failed to open audit database", "path", cfg.Server.AuditDB, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	auditLog, err := audit.NewLog(db, logger)
	if err != nil {
		logger.Error("failed to initialize audit log", "error", err)
		os.Exit(1)
	}
	logger.Info("audit database opened", "path", cfg.Server.AuditDB, "records", auditLog.Count())

	opts := []api.ServerOption{api.WithVersion(version)}
	if cfg.API.Auth.RADIUS.Enabled {
		rc := radius.NewClient(cfg.API.Auth.RADIUS, logger)
		opts = append(opts, api.WithRADIUSClient(rc))
		logger.Info("RADIUS login backend enabled",
			"server", cfg.API.Auth.RADIUS.Address,
			"role", cfg.API.Auth.RADIUS.Role)
	}

	server := api.NewServer(cfg, auditLog, logger, opts...)

	ln, err := server.Listen()
	if err != nil {
		logger.Error("failed to start API server", "error", err)
		os.Exit(1)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- server.Serve(ln) }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutting down", "signal", sig.String())
	case err := <-errCh:
		if err != nil {
			logger.Error("API server failed", "error", err)
			os.Exit(1)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	logger.Info("keapilot stopped")
}
