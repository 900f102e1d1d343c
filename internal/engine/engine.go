// Package engine serves recommendations, deals and market statistics from a
// cached, periodically refreshed catalog snapshot.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/donaldgifford/laptop-advisor/internal/metrics"
	"github.com/donaldgifford/laptop-advisor/internal/notify"
	"github.com/donaldgifford/laptop-advisor/internal/source"
	"github.com/donaldgifford/laptop-advisor/pkg/catalog"
	"github.com/donaldgifford/laptop-advisor/pkg/deals"
	"github.com/donaldgifford/laptop-advisor/pkg/market"
	score "github.com/donaldgifford/laptop-advisor/pkg/scorer"
	domain "github.com/donaldgifford/laptop-advisor/pkg/types"
)

const (
	// DefaultCacheTTL is how long a snapshot is served before a reload.
	DefaultCacheTTL = 10 * time.Minute
	// DefaultDigestSize is the number of deals in a change notification.
	DefaultDigestSize = 5
	// DigestTimeout bounds one digest notification.
	DigestTimeout = 30 * time.Second

	tracerName = "github.com/donaldgifford/laptop-advisor/internal/engine"
	reloadKey  = "catalog"
)

// ErrInvalidPreferences wraps preference validation failures.
var ErrInvalidPreferences = errors.New("invalid preferences")

// Reload results recorded in metrics.
const (
	reloadChanged   = "changed"
	reloadUnchanged = "unchanged"
	reloadError     = "error"
)

// Engine loads the catalog from a source and answers queries against the
// current snapshot. It is safe for concurrent use.
type Engine struct {
	source    source.Source
	processor *catalog.Processor
	detector  *deals.Detector
	notifier  notify.Notifier
	log       *slog.Logger
	tracer    trace.Tracer
	now       func() time.Time

	weights       score.Weights
	topK          int
	cacheTTL      time.Duration
	dealThreshold float64
	dealLimit     int
	digestSize    int
	marketOpts    market.Options

	current atomic.Pointer[Snapshot]
	loads   singleflight.Group
	digests sync.WaitGroup
}

// NewEngine creates a new Engine with injected dependencies. A nil notifier
// disables digest notifications.
func NewEngine(
	src source.Source,
	p *catalog.Processor,
	d *deals.Detector,
	n notify.Notifier,
	opts ...EngineOption,
) *Engine {
	eng := &Engine{
		source:        src,
		processor:     p,
		detector:      d,
		notifier:      n,
		log:           slog.Default(),
		tracer:        otel.Tracer(tracerName),
		now:           time.Now,
		weights:       score.DefaultWeights(),
		topK:          score.DefaultTopK,
		cacheTTL:      DefaultCacheTTL,
		dealThreshold: deals.DefaultThreshold,
		dealLimit:     deals.DefaultMaxResults,
		digestSize:    DefaultDigestSize,
		marketOpts:    market.DefaultOptions(),
	}
	for _, opt := range opts {
		opt(eng)
	}
	return eng
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// WithTracer sets the tracer used for engine spans.
func WithTracer(t trace.Tracer) EngineOption {
	return func(e *Engine) {
		e.tracer = t
	}
}

// WithClock sets the time source.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

// WithWeights sets the scoring weights.
func WithWeights(w score.Weights) EngineOption {
	return func(e *Engine) {
		e.weights = w
	}
}

// WithTopK sets how many recommendations are returned.
func WithTopK(k int) EngineOption {
	return func(e *Engine) {
		e.topK = k
	}
}

// WithCacheTTL sets how long a snapshot is served before it is reloaded.
// Zero or less reloads on every request.
func WithCacheTTL(d time.Duration) EngineOption {
	return func(e *Engine) {
		e.cacheTTL = d
	}
}

// WithDealThreshold sets the default minimum discount for Deals.
func WithDealThreshold(t float64) EngineOption {
	return func(e *Engine) {
		e.dealThreshold = t
	}
}

// WithDealLimit sets the default number of deals returned.
func WithDealLimit(n int) EngineOption {
	return func(e *Engine) {
		e.dealLimit = n
	}
}

// WithDigestSize sets the number of deals sent in a change notification.
func WithDigestSize(n int) EngineOption {
	return func(e *Engine) {
		e.digestSize = n
	}
}

// WithMarketOptions sets the market statistics options.
func WithMarketOptions(o market.Options) EngineOption {
	return func(e *Engine) {
		e.marketOpts = o
	}
}

// Snapshot returns the current snapshot, reloading it when it is missing or
// older than the cache TTL. If a reload fails while a previous snapshot
// exists, the previous snapshot is served and the failure logged.
func (e *Engine) Snapshot(ctx context.Context) (*Snapshot, error) {
	cur := e.current.Load()
	if cur.Fresh(e.now(), e.cacheTTL) {
		return cur, nil
	}

	snap, err := e.reload(ctx)
	if err != nil {
		if cur != nil {
			e.log.Warn("catalog reload failed, serving stale snapshot",
				"snapshot", cur.ID,
				"loaded_at", cur.LoadedAt,
				"error", err,
			)
			return cur, nil
		}
		return nil, err
	}
	return snap, nil
}

// Refresh reloads the catalog regardless of the snapshot's age.
func (e *Engine) Refresh(ctx context.Context) (*Snapshot, error) {
	return e.reload(ctx)
}

// reload loads and processes the catalog. Concurrent callers share one load.
func (e *Engine) reload(ctx context.Context) (*Snapshot, error) {
	ch := e.loads.DoChan(reloadKey, func() (any, error) {
		return e.load(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Snapshot), nil
	}
}

func (e *Engine) load(ctx context.Context) (snap *Snapshot, err error) {
	ctx, span := e.tracer.Start(ctx, "engine.load",
		trace.WithAttributes(attribute.String("source", e.source.Name())),
	)
	defer endSpan(span, &err)

	start := e.now()
	defer func() {
		metrics.SnapshotReloadDuration.Observe(e.now().Sub(start).Seconds())
		if err != nil {
			metrics.SnapshotReloadsTotal.WithLabelValues(reloadError).Inc()
		}
	}()

	rows, err := e.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog from %s: %w", e.source.Name(), err)
	}
	metrics.CatalogRowsTotal.Add(float64(len(rows)))

	digest := Digest(rows)
	tablesVersion := e.processor.Tables().Version
	prev := e.current.Load()

	if prev != nil && prev.Digest == digest && prev.TablesVersion == tablesVersion {
		snap = prev.touch(e.now())
		e.publish(snap)
		metrics.SnapshotReloadsTotal.WithLabelValues(reloadUnchanged).Inc()
		e.log.Debug("catalog unchanged", "snapshot", snap.ID, "digest", digest)
		span.SetAttributes(attribute.Bool("changed", false))
		return snap, nil
	}

	cat, err := e.processor.Process(rows)
	if err != nil {
		return nil, fmt.Errorf("processing catalog: %w", err)
	}
	recordReport(&cat.Report)

	snap = &Snapshot{
		ID:            uuid.New(),
		Digest:        digest,
		LoadedAt:      e.now(),
		TablesVersion: tablesVersion,
		Source:        e.source.Name(),
		Catalog:       cat,
	}
	e.publish(snap)
	metrics.SnapshotReloadsTotal.WithLabelValues(reloadChanged).Inc()
	span.SetAttributes(
		attribute.Bool("changed", true),
		attribute.Int("listings", len(cat.Listings)),
	)

	e.log.Info("catalog loaded",
		"snapshot", snap.ID,
		"source", snap.Source,
		"rows", len(rows),
		"listings", len(cat.Listings),
		"tables_version", tablesVersion,
	)

	if prev != nil {
		e.digestAsync(ctx, snap)
	}
	return snap, nil
}

func (e *Engine) publish(s *Snapshot) {
	e.current.Store(s)
	metrics.CatalogListings.Set(float64(len(s.Listings())))
	metrics.SnapshotAge.Set(float64(s.LoadedAt.Unix()))
}

func recordReport(r *catalog.Report) {
	for reason, n := range r.Dropped {
		metrics.CatalogDroppedTotal.WithLabelValues(reason).Add(float64(n))
	}
	for rule, n := range r.Anomalies {
		metrics.CatalogAnomaliesTotal.WithLabelValues(rule).Add(float64(n))
	}
}

// Recommendation is the result of a recommendation request.
type Recommendation struct {
	SnapshotID      uuid.UUID              `json:"snapshot_id"`
	Recommendations []domain.ScoredListing `json:"recommendations"`
	Summary         score.Summary          `json:"summary"`
}

// Recommend filters the catalog by p, scores the matches and returns the
// top results. No match is not an error.
func (e *Engine) Recommend(ctx context.Context, p *domain.Preferences) (rec *Recommendation, err error) {
	ctx, span := e.tracer.Start(ctx, "engine.Recommend", trace.WithAttributes(
		attribute.String("purpose", string(p.Purpose)),
		attribute.Float64("max_budget", p.MaxBudget),
	))
	defer endSpan(span, &err)

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPreferences, err)
	}

	snap, err := e.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	start := e.now()
	listings := snap.Listings()
	matched := score.Filter(listings, p)
	ranked := score.Rank(matched, p, e.weights, e.topK, e.log)
	summary := score.Summarize(ranked, len(matched), len(listings))

	metrics.RecommendDuration.Observe(e.now().Sub(start).Seconds())
	metrics.RecommendResults.Observe(float64(len(ranked)))
	if len(ranked) > 0 {
		metrics.ScoringDistribution.Observe(ranked[0].Score)
	}
	span.SetAttributes(attribute.Int("matched", len(matched)), attribute.Int("results", len(ranked)))

	return &Recommendation{
		SnapshotID:      snap.ID,
		Recommendations: ranked,
		Summary:         summary,
	}, nil
}

// DealReport is the result of a deal query.
type DealReport struct {
	SnapshotID uuid.UUID            `json:"snapshot_id"`
	Threshold  float64              `json:"threshold"`
	Deals      []domain.DealListing `json:"deals"`
	Summary    deals.Summary        `json:"summary"`
}

// Deals returns listings discounted by at least threshold percent, best
// first, capped at limit. A negative threshold or a non-positive limit uses
// the configured default.
func (e *Engine) Deals(ctx context.Context, threshold float64, limit int) (rep *DealReport, err error) {
	if threshold < 0 {
		threshold = e.dealThreshold
	}
	if limit <= 0 {
		limit = e.dealLimit
	}

	ctx, span := e.tracer.Start(ctx, "engine.Deals", trace.WithAttributes(
		attribute.Float64("threshold", threshold),
		attribute.Int("limit", limit),
	))
	defer endSpan(span, &err)

	snap, err := e.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	found, err := e.findDeals(ctx, snap, threshold, limit)
	if err != nil {
		return nil, err
	}
	metrics.DealsFound.Set(float64(len(found)))
	span.SetAttributes(attribute.Int("deals", len(found)))

	return &DealReport{
		SnapshotID: snap.ID,
		Threshold:  threshold,
		Deals:      found,
		Summary:    deals.Summarize(found),
	}, nil
}

func (e *Engine) findDeals(ctx context.Context, snap *Snapshot, threshold float64, limit int) ([]domain.DealListing, error) {
	start := e.now()
	defer func() {
		metrics.DealsDuration.Observe(e.now().Sub(start).Seconds())
	}()

	found, err := e.detector.Find(ctx, snap.Listings(), threshold)
	if err != nil {
		return nil, fmt.Errorf("finding deals: %w", err)
	}
	if limit > 0 && len(found) > limit {
		found = found[:limit]
	}
	return found, nil
}

// MarketReport is the market overview of one snapshot.
type MarketReport struct {
	SnapshotID uuid.UUID          `json:"snapshot_id"`
	Stats      domain.MarketStats `json:"stats"`
}

// Market computes market statistics for the current snapshot.
func (e *Engine) Market(ctx context.Context) (rep *MarketReport, err error) {
	ctx, span := e.tracer.Start(ctx, "engine.Market")
	defer endSpan(span, &err)

	snap, err := e.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return &MarketReport{
		SnapshotID: snap.ID,
		Stats:      market.Compute(snap.Listings(), e.marketOpts),
	}, nil
}

func endSpan(span trace.Span, err *error) {
	if *err != nil {
		span.RecordError(*err)
		span.SetStatus(codes.Error, (*err).Error())
	}
	span.End()
}
