package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/luciancaetano/gatewire"
	"github.com/luciancaetano/gatewire/ws"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gwtail",
		Short: "Connect to an event gateway and log what it sends",
		Long: `gwtail opens one gateway connection, identifies, keeps the
heartbeat going and logs every payload it receives.

It does not reconnect: the exit status tells whether the session
ended cleanly.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		runCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	var (
		configPath  string
		url         string
		logLevel    string
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Connect and tail gateway events",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			// Flags win over the file
			if cmd.Flags().Changed("url") {
				cfg.URL = url
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if cmd.Flags().Changed("metrics-addr") {
				cfg.MetricsAddr = metricsAddr
			}
			if err := cfg.validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return tail(ctx, cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	cmd.Flags().StringVar(&url, "url", "", "gateway URL (version and encoding are added)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gwtail %s (%s) %s %s/%s\n", version, commit, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}

func tail(ctx context.Context, cfg *Config) error {
	level, _ := cfg.level()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	registry := prometheus.NewRegistry()
	if cfg.MetricsAddr != "" {
		srv := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "error", err)
			}
		}()
		defer srv.Close()
	}

	wsCfg := ws.NewConfig(ws.GatewayURL(cfg.URL), cfg.shard())
	wsCfg.HandshakeTimeout = cfg.HandshakeTimeout
	wsCfg.Logger = logger
	wsCfg.Metrics = ws.NewMetrics(registry)

	client, err := ws.Dial(ctx, wsCfg)
	if err != nil {
		return err
	}
	logger.Info("connected", "conn_id", client.ID(), "shard", client.Shard().String())

	err = runSession(ctx, client, cfg, logger)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// runSession runs one session and then releases the socket, whichever side
// ended it.
func runSession(ctx context.Context, client gatewire.Client, cfg *Config, logger *slog.Logger) error {
	err := newSession(client, cfg, logger).run(ctx)
	client.Close(context.Background())
	return err
}
