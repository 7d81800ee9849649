package report

import (
	"context"
	"log/slog"
	"time"

	"github.com/picatlas/picatlas/internal/geocoding"
	"github.com/picatlas/picatlas/internal/metrics"
	"github.com/picatlas/picatlas/internal/models"
)

// Extractor is the metadata collaborator the assembler queries, once per
// file group, on the group's representative path.
type Extractor interface {
	ExtractFile(path string) (models.Coordinate, error)
}

// Options controls how records are assembled.
type Options struct {
	// SkipNoLocation drops records whose coordinate has no latitude and
	// longitude. An altitude-only coordinate still counts as "no location".
	SkipNoLocation bool
	// ResolveTimeout bounds each address resolution call. Zero disables the
	// bound.
	ResolveTimeout time.Duration
}

// Record outcome labels for the report records counter.
const (
	statusLocated    = "located"
	statusNoLocation = "no_location"
	statusSkipped    = "skipped"
	statusFailed     = "failed"
)

// Assembler turns file groups into report records: one immutable record per
// fingerprint, carrying the full duplicate path list, the representative's
// coordinate and, when a resolver is configured, a resolved address.
type Assembler struct {
	log          *slog.Logger
	extractor    Extractor
	resolver     geocoding.Provider // nil disables address resolution
	providerName string             // Provider name for metrics labeling
	metrics      *metrics.Metrics
	opts         Options
}

// NewAssembler creates an Assembler. The resolver may be nil, in which case
// records are produced without addresses.
func NewAssembler(
	log *slog.Logger,
	extractor Extractor,
	resolver geocoding.Provider,
	providerName string,
	appMetrics *metrics.Metrics,
	opts Options,
) *Assembler {
	return &Assembler{
		log:          log,
		extractor:    extractor,
		resolver:     resolver,
		providerName: providerName,
		metrics:      appMetrics,
		opts:         opts,
	}
}

// Assemble builds one record per file group, preserving group order. The
// extractor is invoked exactly once per group, on Paths[0]; every path in
// the group is assumed byte-identical to the representative. Per-group
// failures are isolated: an unreadable representative drops only its own
// record, and a failed address lookup leaves the address empty.
func (a *Assembler) Assemble(ctx context.Context, groups []models.FileGroup) []models.ReportRecord {
	records := make([]models.ReportRecord, 0, len(groups))

	for _, group := range groups {
		representative := group.Paths[0]

		coord, err := a.extractor.ExtractFile(representative)
		if err != nil {
			a.metrics.Records.WithLabelValues(statusFailed).Inc()
			a.log.ErrorContext(ctx, "Failed to extract metadata", "path", representative, "error", err)
			continue
		}

		if a.opts.SkipNoLocation && !coord.HasLatLong() {
			a.metrics.Records.WithLabelValues(statusSkipped).Inc()
			a.log.DebugContext(ctx, "Dropping record without location", "path", representative)
			continue
		}

		record := models.ReportRecord{
			Fingerprint: group.Fingerprint,
			Paths:       group.Paths,
			Coordinate:  coord,
		}

		if coord.HasLatLong() {
			a.metrics.Records.WithLabelValues(statusLocated).Inc()
			if a.resolver != nil {
				record.Address = a.resolve(ctx, *coord.Latitude, *coord.Longitude)
			}
		} else {
			a.metrics.Records.WithLabelValues(statusNoLocation).Inc()
		}

		records = append(records, record)
	}

	return records
}

// resolve invokes the resolver once, bounded by the configured timeout.
// Resolution failures are non-fatal: the record keeps an empty address.
func (a *Assembler) resolve(ctx context.Context, lat, lon float64) string {
	if a.opts.ResolveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.opts.ResolveTimeout)
		defer cancel()
	}

	startTime := time.Now()
	address, err := a.resolver.ReverseGeocode(ctx, lat, lon)
	duration := time.Since(startTime).Seconds()
	a.metrics.GeocodeSeconds.WithLabelValues(a.providerName).Observe(duration)

	if err != nil {
		a.metrics.GeocodeResults.WithLabelValues("failure").Inc()
		a.log.WarnContext(ctx, "Address unavailable", "lat", lat, "lon", lon, "error", err)
		return ""
	}

	a.metrics.GeocodeResults.WithLabelValues("success").Inc()

	return address
}
