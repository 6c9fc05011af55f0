// Racoon Configuration Orchestration Daemon
//
// orchd reconciles CONFIG_DB intent into APPL_DB state for syncd to
// pick up. It bulk-syncs on start, then blocks processing CONFIG_DB
// change notifications one at a time until terminated.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/racoon-project/racoon/pkg/config"
	"github.com/racoon-project/racoon/pkg/dbclient"
	"github.com/racoon-project/racoon/pkg/logging"
	"github.com/racoon-project/racoon/pkg/metrics"
	"github.com/racoon-project/racoon/pkg/orchd"
	"github.com/racoon-project/racoon/pkg/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "racoon-orchd",
	Short:         "Configuration orchestration daemon",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

var flags struct {
	dbURL       string
	logLevel    string
	logFormat   string
	metricsAddr string
}

func init() {
	rootCmd.Flags().StringVar(&flags.dbURL, "db-url", "", "state store URL (overrides "+config.EnvDBURL+")")
	rootCmd.Flags().StringVar(&flags.logLevel, "log-level", "", "log level (overrides "+config.EnvLogLevel+")")
	rootCmd.Flags().StringVar(&flags.logFormat, "log-format", "", "log format, text or json (overrides "+config.EnvLogFormat+")")
	rootCmd.Flags().StringVar(&flags.metricsAddr, "metrics-addr", "", "metrics listen address (overrides "+config.EnvMetricsAddr+")")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("racoon-orchd " + version.Info())
		},
	})
}

func run(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if flags.dbURL != "" {
		cfg.DBURL = flags.dbURL
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.LogFormat = flags.logFormat
	}
	if flags.metricsAddr != "" {
		cfg.MetricsAddr = flags.metricsAddr
	}

	if err := logging.SetLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	if cfg.LogFormat == "json" {
		logging.SetJSONFormat()
	}
	log := logging.WithComponent("orchd")

	log.WithField("db_url", cfg.DBURL).Info("starting racoon configuration orchestration daemon")

	db, err := dbclient.New(cfg.DBURL)
	if err != nil {
		return fmt.Errorf("connect to state store: %w", err)
	}
	defer db.Close()

	orchestrator := orchd.New(db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		<-sigCh
		log.Info("received shutdown signal")
		cancel()
	}()

	go metrics.Poller{Report: func() { metrics.ReportOrchd(orchestrator.Stats()) }}.Run(ctx)
	go func() {
		if err := metrics.Serve(ctx, cfg.MetricsAddr); err != nil {
			log.WithField("error", err).Warn("metrics server stopped")
		}
	}()

	if err := orchestrator.Start(ctx); err != nil {
		return fmt.Errorf("initial reconciliation: %w", err)
	}
	log.Info("initial reconciliation complete")

	log.WithField("channels", orchestrator.Channels()).Info("subscribing to configuration notifications")
	if err := db.Subscribe(ctx, orchestrator.Channels(), orchestrator.Handler()); err != nil {
		return fmt.Errorf("subscription error: %w", err)
	}

	log.Info("shutting down")
	return nil
}
