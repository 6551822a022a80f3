package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/leon-computer/alpha.component-async/async"
	"github.com/leon-computer/alpha.component-async/internal/ctxlog"
)

// Run assembles the system, starts it, waits for an interrupt, and stops
// it again. It returns once the system is fully stopped or a lifecycle
// phase failed.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	sys, err := a.assembleSystem(ctx)
	if err != nil {
		return err
	}
	a.logger.Info("system assembled", "components", sys.Names())

	started, err := async.StartWait(ctx, sys)
	if err != nil {
		return fmt.Errorf("starting system: %w", err)
	}
	a.logger.Info("system started", "components", started.Len())

	waitCtx, stopWaiting := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	<-waitCtx.Done()
	stopWaiting()
	a.logger.Info("shutting down", "timeout", a.cfg.StopTimeout)

	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.cfg.StopTimeout)
	defer cancel()
	if _, err := async.StopWait(stopCtx, started); err != nil {
		return fmt.Errorf("stopping system: %w", err)
	}
	a.logger.Info("system stopped")
	return nil
}
