// Command oxy-lite opens a window and renders the ray-marched voxel scene with a stats overlay.
//
// Controls: W/S move forward and back, A/D strafe, Q/E move down and up, drag with the left
// mouse button to look around, Escape quits.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/Carmen-Shannon/oxy-lite/engine"
	"github.com/Carmen-Shannon/oxy-lite/engine/config"
	"github.com/pkg/profile"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "Path to a YAML config file")
	cpuProfile := flag.String("cpuprofile", "", "Write a CPU profile into this directory")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error); overrides the config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if *cpuProfile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*cpuProfile), profile.NoShutdownHook, profile.Quiet).Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	e, err := engine.NewEngine(cfg)
	if err != nil {
		slog.Error("startup failed", "error", err)
		return 1
	}
	defer e.Close()

	if err := e.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("engine stopped", "error", err)
		return 1
	}
	return 0
}
