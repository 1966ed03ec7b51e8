package main

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/joshuapare/icopatch/internal/logger"
	"github.com/joshuapare/icopatch/pkg/exeicon"
	"github.com/joshuapare/icopatch/relaunch"
)

// isHop reports whether args carry a relaunch marker.
func isHop(args []string) bool {
	return relaunch.HasMarker(relaunch.DefaultMarkerPrefix, args)
}

func newOrchestrator() *relaunch.Orchestrator {
	opts := exeicon.DefaultOptions()
	opts.Store = newStore()
	return relaunch.New(
		relaunch.DefaultConfig(),
		relaunch.ExecSpawner{},
		relaunch.OSHost{},
		relaunch.IconPatcher{Options: &opts},
	)
}

// runHop runs one relaunch hop and returns the process exit code. Hops have
// no console, so they always log to the default log directory.
func runHop(args []string) int {
	if err := logger.Init(logger.Options{Enabled: true}); err != nil {
		return 2
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("relaunch hop started", "pid", os.Getpid(), "args", strings.Join(args, " "))
	state, err := newOrchestrator().Run(ctx, args)
	if err != nil {
		logger.Error("relaunch hop finished with errors", "state", state, "err", err)
		return 1
	}
	logger.Info("relaunch hop finished", "state", state)
	return 0
}
