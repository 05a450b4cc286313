// Command etl runs one batch of the restaurant POS pipeline: raw CSV
// extracts in, KPI files and a warehouse load out.
//
// Usage:
//
//	etl -config configs/restaurant_daily.json
//	etl -config configs/restaurant_daily.json -validate
//	etl -config configs/restaurant_daily.json -metrics-backend pushgateway -pushgateway-url http://localhost:9091
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"posetl/internal/config"
	"posetl/internal/metrics"
	"posetl/internal/metrics/datadog"
	"posetl/internal/metrics/prompush"
	"posetl/internal/pipeline"
	_ "posetl/internal/storage/all"
)

func main() {
	var (
		configPath     = flag.String("config", "", "path to the pipeline JSON config (required)")
		validateOnly   = flag.Bool("validate", false, "validate the config and exit")
		metricsBackend = flag.String("metrics-backend", "none", "metrics backend: pushgateway, datadog, or none")
		pushgatewayURL = flag.String("pushgateway-url", "", "Prometheus Pushgateway base URL")
		dogstatsdAddr  = flag.String("dogstatsd-addr", "127.0.0.1:8125", "DogStatsD address for the datadog backend")
		verbose        = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "usage: etl -config <pipeline.json> [-validate] [-v]")
		os.Exit(2)
	}

	// Optional .env file; absence is not an error.
	_ = godotenv.Load()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	issues := config.ValidatePipeline(cfg)
	fatal := false
	for _, issue := range issues {
		ev := log.Warn()
		if issue.Severity == config.SeverityError {
			ev = log.Error()
			fatal = true
		}
		ev.Str("path", issue.Path).Msg(issue.Message)
	}
	if fatal {
		os.Exit(1)
	}
	if *validateOnly {
		log.Info().Int("warnings", len(issues)).Msg("config OK")
		return
	}

	if err := setupMetrics(cfg.Job, *metricsBackend, *pushgatewayURL, *dogstatsdAddr); err != nil {
		log.Fatal().Err(err).Msg("setup metrics")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, runErr := pipeline.Run(ctx, cfg)
	if err := metrics.Flush(); err != nil {
		log.Warn().Err(err).Msg("flush metrics")
	}
	if runErr != nil {
		log.Fatal().Err(runErr).Msg("pipeline failed")
	}

	log.Info().
		Str("run_id", res.RunID).
		Int("detail_rows", res.DetailRows).
		Int("kpis", len(res.KPIs)).
		Strs("skipped_kpis", res.SkippedKPIs).
		Int64("loaded_rows", res.LoadedRows).
		Msg("pipeline complete")
}

func loadConfig(path string) (config.Pipeline, error) {
	f, err := os.Open(path)
	if err != nil {
		return config.Pipeline{}, err
	}
	defer f.Close()

	cfg, err := config.Load(f)
	if err != nil {
		return config.Pipeline{}, err
	}
	return config.ApplyEnv(cfg)
}

func setupMetrics(job, backend, pushURL, dogAddr string) error {
	switch backend {
	case "", "none":
		return nil
	case "pushgateway":
		b, err := prompush.NewBackend(job, pushURL)
		if err != nil {
			return err
		}
		metrics.SetBackend(b)
		return nil
	case "datadog":
		b, err := datadog.NewBackend(datadog.Config{Addr: dogAddr, Namespace: "posetl."})
		if err != nil {
			return err
		}
		metrics.SetBackend(b)
		return nil
	default:
		return fmt.Errorf("unknown metrics backend %q", backend)
	}
}
