// Racoon SAI Synchronization Daemon
//
// syncd programs hardware through the vendor SAI library to match
// APPL_DB state. On start it bootstraps the port OID map, recovers its
// tracking tables from ASIC_STATE, bulk-reconciles against APPL_DB, and
// then blocks processing APPL_DB change notifications one at a time
// until terminated.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/racoon-project/racoon/pkg/config"
	"github.com/racoon-project/racoon/pkg/dbclient"
	"github.com/racoon-project/racoon/pkg/logging"
	"github.com/racoon-project/racoon/pkg/metrics"
	"github.com/racoon-project/racoon/pkg/sai"
	"github.com/racoon-project/racoon/pkg/schema"
	"github.com/racoon-project/racoon/pkg/syncd"
	"github.com/racoon-project/racoon/pkg/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "racoon-syncd",
	Short:         "SAI hardware synchronization daemon",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

var flags struct {
	dbURL       string
	saiLibrary  string
	switchID    string
	logLevel    string
	logFormat   string
	metricsAddr string
}

func init() {
	rootCmd.Flags().StringVar(&flags.dbURL, "db-url", "", "state store URL (overrides "+config.EnvDBURL+")")
	rootCmd.Flags().StringVar(&flags.saiLibrary, "sai-library", "", "vendor SAI library path (overrides "+config.EnvSAILibraryPath+")")
	rootCmd.Flags().StringVar(&flags.switchID, "switch-id", "", "switch object id, 0x-prefixed hex (overrides "+config.EnvSwitchID+")")
	rootCmd.Flags().StringVar(&flags.logLevel, "log-level", "", "log level (overrides "+config.EnvLogLevel+")")
	rootCmd.Flags().StringVar(&flags.logFormat, "log-format", "", "log format, text or json (overrides "+config.EnvLogFormat+")")
	rootCmd.Flags().StringVar(&flags.metricsAddr, "metrics-addr", "", "metrics listen address (overrides "+config.EnvMetricsAddr+")")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("racoon-syncd " + version.Info())
		},
	})
}

func run(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if flags.dbURL != "" {
		cfg.DBURL = flags.dbURL
	}
	if flags.saiLibrary != "" {
		cfg.SAILibraryPath = flags.saiLibrary
	}
	if flags.switchID != "" {
		cfg.SwitchID = flags.switchID
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
	log := logging.WithComponent("syncd")

	log.WithField("db_url", cfg.DBURL).Info("starting racoon sai synchronization daemon")

	db, err := dbclient.New(cfg.DBURL)
	if err != nil {
		return fmt.Errorf("connect to state store: %w", err)
	}
	defer db.Close()

	log.WithField("path", cfg.SAILibraryPath).Info("loading sai library")
	adapter, err := sai.Open(cfg.SAILibraryPath)
	if err != nil {
		return fmt.Errorf("load sai library: %w", err)
	}
	defer func() {
		if err := adapter.Close(); err != nil {
			log.WithField("error", err).Warn("error closing sai adapter")
		}
	}()

	switchID, err := parseSwitchID(cfg.SwitchID)
	if err != nil {
		return fmt.Errorf("invalid switch id %q: %w", cfg.SwitchID, err)
	}
	log.WithField("switch_id", cfg.SwitchID).Info("using switch id")

	synchronizer := syncd.New(db, adapter, switchID)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		<-sigCh
		log.Info("received shutdown signal")
		cancel()
	}()

	go metrics.Poller{Report: func() { metrics.ReportSyncd(synchronizer.Stats()) }}.Run(ctx)
	go func() {
		if err := metrics.Serve(ctx, cfg.MetricsAddr); err != nil {
			log.WithField("error", err).Warn("metrics server stopped")
		}
	}()

	if err := synchronizer.Start(ctx); err != nil {
		return fmt.Errorf("initial reconciliation: %w", err)
	}
	log.Info("initial reconciliation complete")

	log.WithField("channels", synchronizer.Channels()).Info("subscribing to appl_db notifications")
	if err := db.Subscribe(ctx, synchronizer.Channels(), synchronizer.Handler()); err != nil {
		return fmt.Errorf("subscription error: %w", err)
	}

	log.Info("shutting down")
	return nil
}

func parseSwitchID(s string) (schema.OID, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 64)
	if err != nil {
		return 0, err
	}
	return schema.OID(v), nil
}
