package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"waitlist/internal/app"
	"waitlist/internal/app/deps"
	"waitlist/internal/app/services"

	dl "waitlist/internal/core/domain/logging"
)

// Covers a signup whose store and notifier calls both run to their 5s bounds.
const shutdownTimeout = 20 * time.Second

func main() {
	deps, shutdownDeps := deps.InitDeps()
	services := services.InitServices(deps)
	httpServer := app.InitHttpServer(deps, services)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	listener, err := net.Listen("tcp", httpServer.Addr)
	if err != nil {
		deps.Logger.Error(ctx, "Could not listen.", dl.Entry("address", httpServer.Addr), dl.Err(err))
		shutdownDeps()
		os.Exit(1)
	}

	deps.Logger.Info(
		ctx,
		"HTTP server has started.",
		dl.Entry("address", httpServer.Addr),
		dl.Entry("store", deps.Config.StoreBackend),
		dl.Entry("notifier", deps.Config.NotifierBackend),
	)
	err = serve(ctx, httpServer, listener, deps.Logger, shutdownTimeout)
	shutdownDeps()
	if err != nil {
		os.Exit(1)
	}
}

// serve blocks until ctx is done or the server fails. On ctx the server stops
// accepting connections and in-flight signups get up to timeout to finish.
func serve(
	ctx context.Context,
	server *http.Server,
	listener net.Listener,
	log dl.Logger,
	timeout time.Duration,
) error {
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(listener)
	}()

	select {
	case err := <-serveErr:
		log.Error(context.Background(), "HTTP server has failed.", dl.Err(err))
		return err
	case <-ctx.Done():
	}

	log.Info(context.Background(), "HTTP server is stopping gracefully.")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "HTTP server did not shut down in time.", dl.Err(err))
		return err
	}
	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error(shutdownCtx, "HTTP server has failed.", dl.Err(err))
		return err
	}

	log.Info(shutdownCtx, "HTTP server has shut down.")
	return nil
}
