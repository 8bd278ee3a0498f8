package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/internal/metrics"
	httpAdapter "github.com/aretw0/turing/pkg/adapters/http"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve [path]",
	Short: "Start the HTTP simulation server",
	Long: `Serves the machine over HTTP: POST /simulate runs inputs, /events streams results
as Server-Sent Events, /runs exposes the archive and /metrics exports Prometheus metrics.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := machineOptions(cmd, args)
		storeOptions(cmd, &opts)
		port, _ := cmd.Flags().GetString("port")
		parallel, _ := cmd.Flags().GetInt("parallel")

		level := slog.LevelInfo
		if opts.Debug {
			level = slog.LevelDebug
		}
		logger := logging.NewTee(os.Stderr, opts.LogWriter, level)

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		turingMetrics, err := metrics.New(reg)
		if err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}

		m, err := cli.NewMachine(opts, logger, turingMetrics.Hooks())
		if err != nil {
			return err
		}

		serverOpts := []httpAdapter.Option{
			httpAdapter.WithLogger(logger),
			httpAdapter.WithGatherer(reg),
			httpAdapter.WithLifecycleHooks(turingMetrics.Hooks()),
			httpAdapter.WithConcurrency(parallel),
		}
		store, closer, err := cli.OpenStore(opts)
		if err != nil {
			return err
		}
		if closer != nil {
			defer closer.Close()
		}
		if store != nil {
			serverOpts = append(serverOpts, httpAdapter.WithStore(store))
		}

		srv := &http.Server{
			Addr:              ":" + port,
			Handler:           httpAdapter.NewHandler(m, serverOpts...),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("Starting Turing Server", "addr", srv.Addr, "machine", m.Name, "path", opts.Path)
			serverErrors <- srv.ListenAndServe()
		}()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		select {
		case err := <-serverErrors:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		case <-ctx.Done():
			logger.Info("Start shutdown")

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("Graceful shutdown did not complete", "timeout", 5*time.Second, "err", err)
				return srv.Close()
			}
			logger.Info("Turing Server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("port", "8080", "Port to listen on")
	serveCmd.Flags().IntP("parallel", "p", 4, "Number of inputs simulated concurrently per request")
	addStoreFlags(serveCmd)
}
