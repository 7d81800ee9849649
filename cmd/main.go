package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/picatlas/picatlas/internal/config"
	"github.com/picatlas/picatlas/internal/exifgps"
	"github.com/picatlas/picatlas/internal/format"
	"github.com/picatlas/picatlas/internal/geocoding"
	"github.com/picatlas/picatlas/internal/metrics"
	"github.com/picatlas/picatlas/internal/report"
	"github.com/picatlas/picatlas/internal/scan"
	"github.com/prometheus/client_golang/prometheus"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application. It scans the given photo
// paths, groups byte-identical files, extracts GPS coordinates, optionally
// resolves addresses, and writes the rendered report to the output
// destination.
func main() {
	// Create a context that will be canceled when an interrupt signal is
	// received, so a long scan can be stopped cleanly.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	formatFlag := flag.String("format", "text", "output format: text, json or kml")
	outFlag := flag.String("out", "", "output file (default: standard output)")
	recursiveFlag := flag.Bool("recursive", false, "descend into subdirectories")
	resolveFlag := flag.Bool("resolve", false, "resolve coordinates to addresses")
	skipFlag := flag.Bool("skip-no-location", false, "drop photos without GPS coordinates")
	flag.Parse()

	if flag.NArg() == 0 {
		log.Fatalf("Usage: %s [flags] <file-or-directory>...", os.Args[0])
	}

	// Load application configuration.
	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	mode, err := format.ParseMode(*formatFlag)
	if err != nil {
		log.Fatalf("Invalid output format: %v", err)
	}

	// Create a separate registry for the run's metrics.
	reg := prometheus.NewRegistry()
	appMetrics := metrics.NewMetrics(reg)

	// Gather the candidate set: directories are expanded by the walker,
	// plain files are taken as-is. A missing input is a whole-run failure.
	candidates, err := discover(flag.Args(), *recursiveFlag)
	if err != nil {
		log.Fatalf("Failed to list input files: %v", err)
	}

	logger.InfoContext(ctx, "Scan started", "candidates", len(candidates))

	scanner := scan.NewScanner(logger, appMetrics, scan.SniffImage)
	groups := scanner.Scan(ctx, candidates)

	// Create the reverse geocoding provider using the factory pattern based
	// on configuration. The resolver is an explicit dependency of the
	// assembler, never a process-wide singleton.
	var resolver geocoding.Provider
	if *resolveFlag {
		resolver, err = geocoding.NewProvider(geocoding.ProviderConfig{
			Type:      geocoding.ProviderType(cfg.ProviderType),
			APIKey:    cfg.APIKey,
			RateLimit: cfg.GeocodeRPS,
			Logger:    logger,
		})
		if err != nil {
			log.Fatalf("Failed to create geocoding provider: %v", err)
		}
		logger.InfoContext(ctx, "Geocoding provider initialized", "type", cfg.ProviderType)
	}

	assembler := report.NewAssembler(
		logger,
		exifgps.NewExtractor(logger),
		resolver,
		cfg.ProviderType,
		appMetrics,
		report.Options{
			SkipNoLocation: *skipFlag,
			ResolveTimeout: cfg.GeocodeTimeout,
		},
	)

	records := assembler.Assemble(ctx, groups)

	output, err := format.Render(mode, records)
	if err != nil {
		log.Fatalf("Failed to render report: %v", err)
	}

	if *outFlag == "" {
		fmt.Println(string(output))
	} else if err = os.WriteFile(*outFlag, output, 0o644); err != nil {
		log.Fatalf("Failed to write report to %s: %v", *outFlag, err)
	}

	logSummary(ctx, logger, reg)
	logger.InfoContext(ctx, "Report complete", "groups", len(groups), "records", len(records))
}

// discover expands the positional arguments into an ordered candidate list.
// Directory contents keep the walker's deterministic lexical order.
func discover(args []string, recursive bool) ([]string, error) {
	var candidates []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}

		if info.IsDir() {
			paths, err := scan.Walk(arg, recursive)
			if err != nil {
				return nil, err
			}
			candidates = append(candidates, paths...)
			continue
		}

		candidates = append(candidates, arg)
	}

	return candidates, nil
}

// logSummary gathers the run's counters and logs them once. A batch tool
// has no scrape endpoint, so this takes the place of a /metrics handler.
func logSummary(ctx context.Context, logger *slog.Logger, reg *prometheus.Registry) {
	families, err := reg.Gather()
	if err != nil {
		logger.WarnContext(ctx, "Failed to gather run metrics", "error", err)
		return
	}

	for _, family := range families {
		for _, metric := range family.GetMetric() {
			attrs := []any{}
			for _, label := range metric.GetLabel() {
				attrs = append(attrs, slog.String(label.GetName(), label.GetValue()))
			}
			switch {
			case metric.GetCounter() != nil:
				attrs = append(attrs, slog.Float64("value", metric.GetCounter().GetValue()))
			case metric.GetHistogram() != nil:
				attrs = append(attrs,
					slog.Uint64("count", metric.GetHistogram().GetSampleCount()),
					slog.Float64("sum", metric.GetHistogram().GetSampleSum()))
			default:
				continue
			}
			logger.DebugContext(ctx, family.GetName(), attrs...)
		}
	}
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var logger *slog.Logger

	switch env {
	case envLocal:
		logger = slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		logger = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
			}),
		)
	case envProd:
		logger = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level:     slog.LevelWarn,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)
	default:
		logger = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level:     slog.LevelError,
				AddSource: false,
			}),
		)

		logger.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return logger
}
