package orchestrator

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dharmasatrya/flightvalue/internal/models"
	"github.com/dharmasatrya/flightvalue/internal/providers"
	"github.com/dharmasatrya/flightvalue/internal/ratelimit"
	"github.com/dharmasatrya/flightvalue/internal/reconcile"
	"github.com/dharmasatrya/flightvalue/internal/report"
)

var tracer = otel.Tracer("github.com/dharmasatrya/flightvalue/internal/orchestrator")

type Config struct {
	Timeout     time.Duration
	MaxRetries  int
	RetryDelays []time.Duration
	RateLimiter *ratelimit.ModeLimiter
}

func DefaultConfig() Config {
	return Config{
		Timeout:     5 * time.Minute,
		MaxRetries:  3,
		RetryDelays: []time.Duration{5 * time.Second},
	}
}

type Orchestrator struct {
	provider   providers.Provider
	reconciler *reconcile.Reconciler
	builder    *report.Builder
	config     Config
}

func New(provider providers.Provider, reconciler *reconcile.Reconciler, builder *report.Builder, config Config) *Orchestrator {
	return &Orchestrator{
		provider:   provider,
		reconciler: reconciler,
		builder:    builder,
		config:     config,
	}
}

// Run searches award then cash pricing on one session and turns the results
// into a report. Upstream failures are treated as empty results, so the only
// error is an invalid search.
func (o *Orchestrator) Run(ctx context.Context, params models.SearchParams) (models.Report, error) {
	if err := params.Validate(); err != nil {
		return models.Report{}, err
	}

	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()
	span.SetAttributes(
		attribute.String("origin", params.Origin),
		attribute.String("destination", params.Destination),
		attribute.String("date", params.Date),
	)

	result := o.Collect(ctx, params)

	_, reconcileSpan := tracer.Start(ctx, "Reconcile")
	merged := o.reconciler.Reconcile(result.AwardFlights, result.CashFlights)
	reconcileSpan.SetAttributes(attribute.Int("merged", len(merged)))
	reconcileSpan.End()

	_, buildSpan := tracer.Start(ctx, "BuildReport")
	rep := o.builder.Build(merged, params)
	buildSpan.SetAttributes(
		attribute.Int("total_results", rep.TotalResults),
		attribute.String("source", string(rep.Source)),
	)
	buildSpan.End()

	slog.InfoContext(ctx, "report built",
		"origin", params.Origin,
		"destination", params.Destination,
		"total_results", rep.TotalResults,
		"source", rep.Source,
	)
	return rep, nil
}

// Collect runs the award search and then the cash search. Either list may
// come back empty.
func (o *Orchestrator) Collect(ctx context.Context, params models.SearchParams) models.SearchResult {
	result := models.SearchResult{Params: params}

	if o.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.config.Timeout)
		defer cancel()
	}

	acquireCtx, acquireSpan := tracer.Start(ctx, "Acquire")
	session, err := o.acquireWithRetry(acquireCtx, params)
	if err != nil {
		failSpan(acquireSpan, err, "acquire failed")
		acquireSpan.End()
		slog.ErrorContext(ctx, "could not acquire browsing session", "provider", o.provider.Name(), "error", err)
		return result
	}
	acquireSpan.End()
	defer func() {
		if err := session.Close(); err != nil {
			slog.WarnContext(ctx, "close session", "provider", o.provider.Name(), "error", err)
		}
	}()

	result.AwardFlights = o.search(ctx, session, models.ModeAward)
	result.CashFlights = o.search(ctx, session, models.ModeCash)
	return result
}

func (o *Orchestrator) search(ctx context.Context, session providers.Session, mode models.SearchMode) []models.FlightRecord {
	ctx, span := tracer.Start(ctx, "Search")
	defer span.End()
	span.SetAttributes(attribute.String("mode", string(mode)))

	observations, err := o.searchWithRetry(ctx, session, mode)
	if err != nil {
		failSpan(span, err, "search failed")
		slog.ErrorContext(ctx, "search failed, continuing without results", "mode", mode, "error", err)
		return nil
	}

	records := models.ToRecords(observations)
	span.SetAttributes(attribute.Int("observations", len(records)))
	slog.InfoContext(ctx, "search finished", "mode", mode, "flights", len(records))
	return records
}

func (o *Orchestrator) acquireWithRetry(ctx context.Context, params models.SearchParams) (providers.Session, error) {
	var session providers.Session
	err := o.retry(ctx, "acquire", func() error {
		if o.config.RateLimiter != nil {
			if err := o.config.RateLimiter.WaitAcquire(ctx); err != nil {
				return err
			}
		}
		var err error
		session, err = o.provider.Acquire(ctx, params)
		return err
	})
	return session, err
}

func (o *Orchestrator) searchWithRetry(ctx context.Context, session providers.Session, mode models.SearchMode) ([]models.RawObservation, error) {
	var observations []models.RawObservation
	err := o.retry(ctx, string(mode), func() error {
		if o.config.RateLimiter != nil {
			if err := o.config.RateLimiter.Wait(ctx, mode); err != nil {
				return err
			}
		}
		var err error
		observations, err = session.Search(ctx, mode)
		return err
	})
	return observations, err
}

// retry runs fn up to MaxRetries+1 times, sleeping RetryDelays between
// attempts. Only temporary failures are retried.
func (o *Orchestrator) retry(ctx context.Context, step string, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt <= o.config.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if attempt > 0 && len(o.config.RetryDelays) > 0 {
			delayIdx := attempt - 1
			if delayIdx >= len(o.config.RetryDelays) {
				delayIdx = len(o.config.RetryDelays) - 1
			}
			delay := o.config.RetryDelays[delayIdx]

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		err := fn()
		if err == nil {
			return nil
		}

		lastErr = err
		slog.WarnContext(ctx, "attempt failed", "provider", o.provider.Name(), "step", step, "attempt", attempt+1, "error", err)
		if !providers.IsTemporary(err) {
			return err
		}
	}

	return lastErr
}

func failSpan(span trace.Span, err error, msg string) {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
}
