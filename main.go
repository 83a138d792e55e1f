package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"clickup-mcp-server/internal/application"
	"clickup-mcp-server/internal/domain"
	"clickup-mcp-server/internal/infrastructure"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	// Logs go to stderr; on stdio transport stdout belongs to JSON-RPC.
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.JSONFormatter{})
	if level, err := logrus.ParseLevel(*logLevel); err == nil {
		logrus.SetLevel(level)
	}
	log := logrus.WithField("app", "clickup-mcp-server")

	// Optional .env file for local development; real env vars win.
	if err := godotenv.Load(); err == nil {
		log.Debug("loaded environment from .env")
	}

	log.WithField("path", *configPath).Info("loading configuration")
	config, err := domain.LoadConfig(*configPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	authManager := domain.NewAuthenticationManagerFromConfig(config)
	httpClient, err := authManager.GetAuthenticatedClient()
	if err != nil {
		log.WithError(err).Fatal("failed to create authenticated client")
	}

	mapper := domain.NewResponseMapper()

	checklistClient := infrastructure.NewChecklistClient(config.ClickUp.BaseURL, config.ClickUp.TeamID, httpClient)
	relationshipClient := infrastructure.NewRelationshipClient(config.ClickUp.BaseURL, config.ClickUp.TeamID, httpClient)

	router, err := application.NewRequestRouter(
		application.NewChecklistHandler(checklistClient, mapper),
		application.NewRelationshipHandler(relationshipClient, mapper),
	)
	if err != nil {
		log.WithError(err).Fatal("failed to build tool registry")
	}
	log.WithField("tools", len(router.ListAllTools())).Info("request router initialized")

	var transport domain.Transport
	switch config.Transport.Type {
	case "stdio":
		log.Info("initializing stdio transport")
		transport = domain.NewStdioTransport(log)
	case "http":
		log.WithFields(logrus.Fields{
			"host": config.Transport.HTTP.Host,
			"port": config.Transport.HTTP.Port,
		}).Info("initializing HTTP transport")
		transport = domain.NewHTTPTransport(config.Transport.HTTP.Host, config.Transport.HTTP.Port, log)
	default:
		log.Fatalf("invalid transport type: %s", config.Transport.Type)
	}

	server := application.NewServer(transport, router, config, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	errChan := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil {
			errChan <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	select {
	case sig := <-sigChan:
		log.WithField("signal", sig.String()).Info("shutdown signal received")
		cancel()
	case err := <-errChan:
		log.WithError(err).Error("server error")
		cancel()
		if err := server.Close(); err != nil {
			log.WithError(err).Error("error closing server")
		}
		os.Exit(1)
	}

	if err := server.Close(); err != nil {
		log.WithError(err).Error("error during server shutdown")
		os.Exit(1)
	}

	log.Info("server shutdown complete")
}
