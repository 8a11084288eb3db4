// Package bootstrap builds the word source from configuration and manages the lifecycle of
// long-running commands.
package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// App runs a blocking function until it returns or the process is told to stop.
type App struct {
	mu    sync.Mutex
	hooks []func(ctx context.Context) error
}

func New() *App {
	return &App{}
}

// AddShutdownHook registers fn to run when the App is stopped by a signal or a cancelled context.
// Hooks run in reverse order of registration.
func (a *App) AddShutdownHook(fn func(ctx context.Context) error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hooks = append(a.hooks, fn)
}

// Run calls run and waits. When ctx is cancelled or SIGINT/SIGTERM arrives, the shutdown hooks
// run and their joined errors are returned. If run fails first, its error is returned.
func (a *App) Run(ctx context.Context, run func(ctx context.Context) error) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		if err := run(ctx); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		slog.Default().Info("shutting down", "hooks", a.hookCount())
		return a.shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

func (a *App) hookCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.hooks)
}

func (a *App) shutdown(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	var errs []error
	for i := len(a.hooks) - 1; i >= 0; i-- {
		if err := a.hooks[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
