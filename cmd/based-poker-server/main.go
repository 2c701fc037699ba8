package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/joho/godotenv"

	"github.com/jgresham/based-poker/internal/server"
)

var CLI struct {
	Config   string `short:"c" default:"based-poker.hcl" help:"Path to HCL configuration file"`
	Addr     string `short:"a" help:"Server address to bind to (overrides config)"`
	LogLevel string `short:"l" help:"Log level (overrides config)"`
}

func main() {
	// .env can carry ADDR / LOG_LEVEL for container deployments
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI)

	cfg, err := server.LoadConfig(CLI.Config)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		ctx.Exit(1)
	}

	if addr := firstNonEmpty(CLI.Addr, os.Getenv("ADDR")); addr != "" {
		cfg.Server.Address = addr
	}
	if level := firstNonEmpty(CLI.LogLevel, os.Getenv("LOG_LEVEL")); level != "" {
		cfg.Server.LogLevel = level
	}

	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		ctx.Exit(1)
	}

	logger := log.New(os.Stderr)
	switch cfg.Server.LogLevel {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "info":
		logger.SetLevel(log.InfoLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	logger.Info("Starting based-poker server",
		"addr", cfg.ListenAddress(),
		"tables", len(cfg.Tables))

	srv := server.NewServer(cfg, logger, quartz.NewReal())

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(runCtx); err != nil {
		logger.Error("Server failed", "error", err)
		ctx.Exit(1)
	}
	logger.Info("Server stopped")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
