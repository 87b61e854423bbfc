package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ccgmariano/bayplan/archive"
	"github.com/ccgmariano/bayplan/config"
	"github.com/ccgmariano/bayplan/ingest"
	"github.com/ccgmariano/bayplan/repository"
	"github.com/ccgmariano/bayplan/server"
)

var (
	configPath   string
	httpPort     string
	postgresHost string
	badgerPath   string
)

func init() {
	flag.StringVar(&configPath, "config", "", "Path to optional config file (toml)")
	flag.StringVar(&httpPort, "http-port", "", "HTTP web server port")
	flag.StringVar(&postgresHost, "postgres-host", "", "DB host address")
	flag.StringVar(&badgerPath, "badger-path", "", "Raw manifest archive directory")
}

func main() {
	// Load Config
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Loading config: %v", err)
	}
	// Flags override file/env settings
	if httpPort != "" {
		cfg.HTTPPort = httpPort
	}
	if postgresHost != "" {
		cfg.PostgresHost = postgresHost
	}
	if badgerPath != "" {
		cfg.BadgerPath = badgerPath
	}

	logger, closeLog := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer closeLog()

	// Connect Postgresql DB
	repo := repository.NewRepository(logger)
	if err := repo.ConnectDB(cfg.DSN()); err != nil {
		log.Fatalf("Connecting database: %v", err)
	}
	if err := repo.Migrate(); err != nil {
		log.Fatalf("Migrating database: %v", err)
	}

	// Open raw manifest archive
	arc, err := archive.Open(cfg.BadgerPath, logger)
	if err != nil {
		log.Fatalf("Opening archive: %v", err)
	}
	defer func() {
		if err := arc.Close(); err != nil {
			logger.Error("Closing archive", "err", err)
		}
	}()

	coordinator := ingest.NewCoordinator(repo, logger)

	// Start Web Server
	webserver := server.NewWebServer(repo, coordinator, arc, cfg.HTTPPort, logger)
	if err := webserver.Start(); err != nil {
		log.Fatalf("Starting HTTP server: %v", err)
	}

	// Wait for interrupt signal to gracefully shut down the server
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	// Create deadline to wait for server shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := webserver.Shutdown(ctx); err != nil {
		logger.Error("Shutting down HTTP web server", "err", err)
	}
	logger.Info("HTTP web server gracefully stopped")
}
