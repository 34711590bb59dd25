// Command traceserver is the composition root: it wires config, the
// compiler validator, the session façade, and the HTTP surface, and
// runs the server with graceful shutdown on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Kaushal171205/Code-Visualizer/compiler"
	"github.com/Kaushal171205/Code-Visualizer/config"
	"github.com/Kaushal171205/Code-Visualizer/httpapi"
	"github.com/Kaushal171205/Code-Visualizer/session"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		return fmt.Errorf("traceserver: loading config: %w", err)
	}
	logger := cfg.Logger.With("component", "traceserver")

	validator := compiler.New(cfg.CompilerPath, cfg.CompileTimeout(), logger.With("component", "compiler"))
	manager := session.NewManager(validator, logger.With("component", "session"))
	server := httpapi.NewServer(manager, logger.With("component", "httpapi"))

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: server.Mux(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Run the listener and the shutdown watcher under one errgroup, the
	// idiom the teacher's own toolchain pulls in golang.org/x/sync for:
	// propagate the first error, wait for both goroutines to finish.
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("listening", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("traceserver: serving: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("shutting down")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("traceserver: shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
