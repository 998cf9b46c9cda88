package pathcount

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Package-level tracer and meter for counting operations.
var (
	tracer = otel.Tracer("pathcount")
	meter  = otel.Meter("pathcount")
)

var (
	searchCalls   metric.Int64Counter
	memoHits      metric.Int64Counter
	countDuration metric.Float64Histogram

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the metrics. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		searchCalls, err = meter.Int64Counter(
			"pathcount_search_calls_total",
			metric.WithDescription("Number of recursive search calls"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		memoHits, err = meter.Int64Counter(
			"pathcount_memo_hits_total",
			metric.WithDescription("Number of constrained search calls answered from the memo table"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		countDuration, err = meter.Float64Histogram(
			"pathcount_count_duration_seconds",
			metric.WithDescription("Duration of path counting operations"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// startCount opens a span for one counting operation. The returned function
// ends the span and records the outcome.
func startCount(ctx context.Context, op, source, target string, required []string) (context.Context, func(s *stats, err error)) {
	ctx, span := tracer.Start(ctx, "pathcount."+op,
		trace.WithAttributes(
			attribute.String("pathcount.source", source),
			attribute.String("pathcount.target", target),
			attribute.StringSlice("pathcount.required", required),
		),
	)
	start := time.Now()
	return ctx, func(s *stats, err error) {
		defer span.End()
		attrs := metric.WithAttributes(attribute.String("op", op))
		if initMetrics() == nil {
			countDuration.Record(ctx, time.Since(start).Seconds(), attrs)
			if s != nil {
				searchCalls.Add(ctx, int64(s.calls), attrs)
				memoHits.Add(ctx, int64(s.memoHits), attrs)
			}
		}
		if s != nil {
			span.SetAttributes(
				attribute.Int64("pathcount.calls", int64(s.calls)),
				attribute.Int64("pathcount.memo_hits", int64(s.memoHits)),
			)
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}
}

// stats are collected by a single search.
type stats struct {
	calls    uint64
	memoHits uint64
}
