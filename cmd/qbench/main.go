package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/qbench/internal/bench/engine"
	"github.com/DjordjeVuckovic/qbench/internal/bench/report"
	"github.com/DjordjeVuckovic/qbench/internal/bench/runner"
	"github.com/DjordjeVuckovic/qbench/internal/bench/suite"
	"github.com/DjordjeVuckovic/qbench/internal/storage/pg"
	"github.com/DjordjeVuckovic/qbench/pkg/config/env"
)

func main() {
	if err := env.LoadDotEnv(".env"); err != nil {
		slog.Warn("Failed to load .env", "error", err)
	}
	cfg := parseFlags()
	ctx := context.Background()

	files, err := suite.Discover(cfg.Dir, cfg.Pattern)
	if err != nil {
		slog.Error("Failed to discover definition files", "error", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		slog.Error("No definition files matched", "dir", cfg.Dir, "pattern", cfg.Pattern)
		os.Exit(1)
	}

	s, err := suite.Load(files)
	if err != nil {
		slog.Error("Failed to load benchmark definitions", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded benchmark definitions",
		"files", len(files), "benchmarks", len(s.Queries), "revisions", s.NumRevisions())

	pool, err := pg.NewConnectionPool(ctx, pg.PoolConfig{
		ConnStr:        cfg.URL,
		MaxConns:       int32(cfg.MaxConnections),
		AcquireTimeout: cfg.AcquireTimeout,
		IdleTimeout:    cfg.IdleTimeout,
	})
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	r := runner.New(runner.Config{Iterations: cfg.Iterations}, engine.NewPgExecutor(pool))
	run := r.Run(ctx, s)

	rpt := report.Generate(run, cfg.Iterations)
	report.WriteTable(rpt, os.Stdout)

	if cfg.Output == "" {
		return
	}

	switch cfg.Format {
	case "json":
		err = report.WriteJSON(rpt, cfg.Output)
	case "toml":
		err = report.WriteTOML(rpt, cfg.Output)
	default:
		slog.Error("Unknown export format", "format", cfg.Format)
		os.Exit(1)
	}
	if err != nil {
		slog.Error("Failed to write report", "error", err)
		os.Exit(1)
	}
	slog.Info("Report written", "path", cfg.Output)
}
