// Copyright 2026 The Gantry Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
)

// Run starts the HTTP server on addr and blocks until the context is
// canceled or the server fails. Cancellation triggers graceful shutdown
// bounded by the configured shutdown timeout; pass a context wired to
// signal.NotifyContext to shut down on SIGINT/SIGTERM.
//
// The application must be booted first.
//
// Example:
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	a.MustBoot(ctx)
//	if err := a.Run(ctx, ":8080"); err != nil {
//	    log.Fatal(err)
//	}
func (a *App) Run(ctx context.Context, addr string) error {
	if !a.Booted() {
		return ErrNotBooted
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           a,
		ReadTimeout:       a.server.readTimeout,
		ReadHeaderTimeout: a.server.readHeaderTimeout,
		WriteTimeout:      a.server.writeTimeout,
		IdleTimeout:       a.server.idleTimeout,
	}

	if a.showBanner {
		a.printStartupBanner(os.Stdout, addr)
	}
	a.log.Info("server starting", "address", addr)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("server failed: %w", err)
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		a.log.Info("server shutting down", "reason", ctx.Err())
	}

	// The parent ctx is already canceled; a fresh context gives graceful
	// shutdown its full budget.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.server.shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	a.log.Info("server exited")
	return nil
}
