package main

import (
	"context"
	"flag"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"liftsim/src/config"
	"liftsim/src/elev"
	"liftsim/src/executor"
	"liftsim/src/panel"
	"liftsim/src/timer"
	"liftsim/src/utils"
)

func main() {
	if err := config.LoadEnv(".env"); err != nil {
		slog.Error("Loading environment", "error", err)
		os.Exit(1)
	}

	configPath := flag.String("config", os.Getenv(config.EnvConfigPath), "YAML config file")
	addr := flag.String("addr", os.Getenv(config.EnvPanelAddr), "Control panel address (default from config)")
	withPassengers := flag.Bool("passengers", true, "Spawn random passengers")
	status := flag.Bool("status", false, "Print a status line to the terminal")
	logLevel := flag.String("log-level", os.Getenv(config.EnvLogLevel), "Log level: debug, info, warn or error (default from config)")
	logFile := flag.String("log-file", "", "Also write logs to this file")
	seed := flag.Uint64("seed", 0, "Passenger spawn seed, 0 picks a random one")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Loading config", "error", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.PanelAddr = *addr
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	level, err := elev.ParseLevel(cfg.LogLevel)
	if err != nil {
		slog.Error("Parsing log level", "error", err)
		os.Exit(1)
	}
	closeLog, err := elev.InitLogger(level, *logFile)
	if err != nil {
		slog.Error("Initializing logger", "error", err)
		os.Exit(1)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	phaseTimer := timer.New(ctx)
	car := elev.NewCar(cfg, phaseTimer)

	var spawner *executor.Spawner
	if *withPassengers {
		if *seed == 0 {
			*seed = uint64(time.Now().UnixNano())
		}
		spawner = executor.NewSpawner(cfg, rand.NewPCG(*seed, *seed>>1))
		slog.Info("Spawning passengers", "seed", *seed, "max", cfg.MaxPassengers)
	}

	exec := executor.New(cfg, car, phaseTimer.C(), spawner)
	go exec.Run(ctx)

	if *status {
		go utils.RunStatus(ctx, exec.State, cfg.StatusInterval)
	}

	slog.Info("Simulator started", "floors", cfg.NumFloors, "capacity", cfg.Capacity, "panel", cfg.PanelAddr)
	if err := panel.Serve(ctx, cfg.PanelAddr, panel.NewRouter(exec, cfg.NumFloors)); err != nil {
		slog.Error("Control panel stopped", "error", err)
		stop()
		closeLog()
		os.Exit(1)
	}
	slog.Info("Simulator stopped")
}
