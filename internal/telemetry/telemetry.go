// Package telemetry records skillfield metrics with OpenTelemetry.
//
// [Hooks] implements every hook interface of package observability on top
// of an OTel meter. [Register] installs it using the global meter provider,
// which records nothing until a provider is configured.
package telemetry

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/skillfield/skillfield/pkg/observability"
)

const instrumentationName = "github.com/skillfield/skillfield/internal/telemetry"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Hooks turns observability events into OTel measurements.
type Hooks struct {
	layoutRuns      metric.Int64Counter
	layoutFallbacks metric.Int64Counter
	layoutAttempts  metric.Int64Histogram
	layoutDuration  metric.Float64Histogram

	renderArtifacts metric.Int64Counter
	renderSize      metric.Int64Histogram
	renderDuration  metric.Float64Histogram

	cacheRequests metric.Int64Counter
	cacheWrites   metric.Int64Counter

	httpRequests metric.Int64Counter
	httpDuration metric.Float64Histogram
}

var (
	_ observability.LayoutHooks = (*Hooks)(nil)
	_ observability.RenderHooks = (*Hooks)(nil)
	_ observability.CacheHooks  = (*Hooks)(nil)
	_ observability.ServeHooks  = (*Hooks)(nil)
)

// New creates the instruments on m.
func New(m metric.Meter) (*Hooks, error) {
	h := &Hooks{}
	var err error

	if h.layoutRuns, err = m.Int64Counter(
		"skillfield.layout.runs",
		metric.WithDescription("Layouts computed"),
	); err != nil {
		return nil, fmt.Errorf("creating layout runs counter: %w", err)
	}
	if h.layoutFallbacks, err = m.Int64Counter(
		"skillfield.layout.fallbacks",
		metric.WithDescription("Badges placed on a fallback anchor"),
	); err != nil {
		return nil, fmt.Errorf("creating fallbacks counter: %w", err)
	}
	if h.layoutAttempts, err = m.Int64Histogram(
		"skillfield.layout.attempts",
		metric.WithDescription("Candidates drawn per layout"),
	); err != nil {
		return nil, fmt.Errorf("creating attempts histogram: %w", err)
	}
	if h.layoutDuration, err = m.Float64Histogram(
		"skillfield.layout.duration",
		metric.WithDescription("Layout computation time"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("creating layout duration histogram: %w", err)
	}

	if h.renderArtifacts, err = m.Int64Counter(
		"skillfield.render.artifacts",
		metric.WithDescription("Artifacts rendered"),
	); err != nil {
		return nil, fmt.Errorf("creating artifacts counter: %w", err)
	}
	if h.renderSize, err = m.Int64Histogram(
		"skillfield.render.size",
		metric.WithDescription("Rendered artifact size"),
		metric.WithUnit("By"),
	); err != nil {
		return nil, fmt.Errorf("creating render size histogram: %w", err)
	}
	if h.renderDuration, err = m.Float64Histogram(
		"skillfield.render.duration",
		metric.WithDescription("Render time per artifact"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("creating render duration histogram: %w", err)
	}

	if h.cacheRequests, err = m.Int64Counter(
		"skillfield.cache.requests",
		metric.WithDescription("Cache lookups by result"),
	); err != nil {
		return nil, fmt.Errorf("creating cache requests counter: %w", err)
	}
	if h.cacheWrites, err = m.Int64Counter(
		"skillfield.cache.writes",
		metric.WithDescription("Cache entries written"),
	); err != nil {
		return nil, fmt.Errorf("creating cache writes counter: %w", err)
	}

	if h.httpRequests, err = m.Int64Counter(
		"skillfield.http.requests",
		metric.WithDescription("Preview server requests"),
	); err != nil {
		return nil, fmt.Errorf("creating http requests counter: %w", err)
	}
	if h.httpDuration, err = m.Float64Histogram(
		"skillfield.http.duration",
		metric.WithDescription("Preview server response time"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("creating http duration histogram: %w", err)
	}

	return h, nil
}

// Register creates hooks on the global meter and installs them.
func Register() (*Hooks, error) {
	h, err := New(meter())
	if err != nil {
		return nil, err
	}
	observability.SetLayoutHooks(h)
	observability.SetRenderHooks(h)
	observability.SetCacheHooks(h)
	observability.SetServeHooks(h)
	return h, nil
}

func (h *Hooks) OnLayoutStart(context.Context, string, int) {}

func (h *Hooks) OnLayoutComplete(ctx context.Context, stats observability.LayoutStats, d time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("strategy", stats.Strategy),
		attribute.Bool("seeded", stats.Seeded),
	)
	h.layoutRuns.Add(ctx, 1, attrs)
	h.layoutFallbacks.Add(ctx, int64(stats.Fallbacks), attrs)
	h.layoutAttempts.Record(ctx, int64(stats.Attempts), attrs)
	h.layoutDuration.Record(ctx, d.Seconds(), attrs)
}

func (h *Hooks) OnRenderStart(context.Context, []string) {}

func (h *Hooks) OnRenderComplete(ctx context.Context, format string, size int, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	h.renderArtifacts.Add(ctx, 1, metric.WithAttributes(
		attribute.String("format", format),
		attribute.String("status", status),
	))
	if err != nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("format", format))
	h.renderSize.Record(ctx, int64(size), attrs)
	h.renderDuration.Record(ctx, d.Seconds(), attrs)
}

func (h *Hooks) OnCacheHit(ctx context.Context, keyType string) {
	h.cacheRequests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", keyType),
		attribute.String("result", "hit"),
	))
}

func (h *Hooks) OnCacheMiss(ctx context.Context, keyType string) {
	h.cacheRequests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", keyType),
		attribute.String("result", "miss"),
	))
}

func (h *Hooks) OnCacheSet(ctx context.Context, keyType string, _ int) {
	h.cacheWrites.Add(ctx, 1, metric.WithAttributes(attribute.String("type", keyType)))
}

func (h *Hooks) OnRequest(ctx context.Context, method, route string, status int, d time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.String("status", strconv.Itoa(status)),
	)
	h.httpRequests.Add(ctx, 1, attrs)
	h.httpDuration.Record(ctx, d.Seconds(), attrs)
}
