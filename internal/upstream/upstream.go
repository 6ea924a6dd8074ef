// Package upstream is the JSON-over-HTTP plumbing shared by the Hydra and
// Kratos clients: request building, tracing spans, metrics and status mapping.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/dropDatabas3/loginconsent/internal/metrics"
	"github.com/dropDatabas3/loginconsent/internal/observability/logger"
)

// maxBody caps how much of an upstream response we read.
const maxBody = 4 << 20

// Error is returned when the upstream answered with a non-2xx status.
type Error struct {
	Upstream   string
	Op         string
	StatusCode int
	Body       []byte
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: http %d: %s", e.Upstream, e.Op, e.StatusCode, truncate(e.Body, 256))
}

// Caller performs JSON calls against one upstream.
type Caller struct {
	name   string
	http   *http.Client
	tracer trace.Tracer
}

// NewCaller builds a Caller. A nil client gets a fresh http.Client with the
// given timeout (0 = no timeout).
func NewCaller(name string, client *http.Client, timeout time.Duration) *Caller {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &Caller{
		name:   name,
		http:   client,
		tracer: otel.Tracer("github.com/dropDatabas3/loginconsent/internal/upstream"),
	}
}

// Request describes one call.
type Request struct {
	Op     string
	Method string
	URL    string
	Header http.Header
	Body   any
}

// Do sends req and decodes a 2xx JSON response into out (if out != nil).
// It returns the raw response body so callers can keep it verbatim.
func (c *Caller) Do(ctx context.Context, req Request, out any) ([]byte, error) {
	ctx, span := c.tracer.Start(ctx, c.name+"."+req.Op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("peer.service", c.name),
		))
	defer span.End()

	start := time.Now()
	raw, status, err := c.do(ctx, req)
	outcome := outcomeFor(status, err)
	metrics.ObserveUpstream(c.name, req.Op, outcome, time.Since(start))

	logger.From(ctx).Debug("upstream call",
		logger.Upstream(c.name),
		logger.Op(req.Op),
		logger.UpstreamStatus(status),
		logger.String("outcome", outcome),
		logger.DurationMs(time.Since(start).Milliseconds()),
	)

	if status != 0 {
		span.SetAttributes(attribute.Int("http.response.status_code", status))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		return raw, err
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "decode")
			return raw, fmt.Errorf("%s %s: decode response: %w", c.name, req.Op, err)
		}
	}
	return raw, nil
}

func (c *Caller) do(ctx context.Context, req Request) ([]byte, int, error) {
	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, 0, fmt.Errorf("%s %s: encode request: %w", c.name, req.Op, err)
		}
		body = bytes.NewReader(b)
	}

	hreq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, 0, fmt.Errorf("%s %s: build request: %w", c.name, req.Op, err)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			hreq.Header.Add(k, v)
		}
	}
	hreq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		hreq.Header.Set("Content-Type", "application/json")
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(hreq.Header))

	resp, err := c.http.Do(hreq)
	if err != nil {
		return nil, 0, fmt.Errorf("%s %s: %w", c.name, req.Op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%s %s: read response: %w", c.name, req.Op, err)
	}
	if resp.StatusCode/100 != 2 {
		return raw, resp.StatusCode, &Error{Upstream: c.name, Op: req.Op, StatusCode: resp.StatusCode, Body: raw}
	}
	return raw, resp.StatusCode, nil
}

func outcomeFor(status int, err error) string {
	switch {
	case err == nil:
		return "ok"
	case status >= 500:
		return "http_5xx"
	case status >= 400:
		return "http_4xx"
	case status != 0:
		return "decode"
	default:
		return "transport"
	}
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
