package rest

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Quinlan2018/SDMX/errors"
	"github.com/Quinlan2018/SDMX/pkg/retry"
	"github.com/Quinlan2018/SDMX/series"
)

// RequestIDHeader carries the id generated for each attempt.
const RequestIDHeader = "X-Request-ID"

// maxErrorBody bounds the response excerpt kept in a StatusError.
const maxErrorBody = 512

// Decoder parses an SDMX data message into time series.
type Decoder interface {
	Decode(r io.Reader) ([]*series.TimeSeries, error)
}

// DecoderFunc adapts a function to Decoder.
type DecoderFunc func(r io.Reader) ([]*series.TimeSeries, error)

// Decode calls f(r).
func (f DecoderFunc) Decode(r io.Reader) ([]*series.TimeSeries, error) {
	return f(r)
}

// StatusError is a non-2xx provider response.
type StatusError struct {
	URL    string
	Code   int
	Status string
	Body   string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("provider returned %s for %s", e.Status, e.URL)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Is maps the status code onto the error taxonomy: 404 is ErrNoResults,
// 429 is ErrRateLimited and 5xx is ErrServerError.
func (e *StatusError) Is(target error) bool {
	switch {
	case e.Code == http.StatusNotFound:
		return target == errors.ErrNoResults
	case e.Code == http.StatusTooManyRequests:
		return target == errors.ErrRateLimited
	case e.Code >= 500:
		return target == errors.ErrServerError
	}
	return false
}

// Fetch GETs u and returns the decoded response body. Network failures, 5xx
// and 429 responses are retried; other statuses fail immediately.
func (c *Client) Fetch(ctx context.Context, u *url.URL) ([]byte, error) {
	ctx, span := c.tracer.Start(ctx, "sdmx.fetch",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("sdmx.provider", c.name),
			attribute.String("url.full", u.String()),
		),
	)
	defer span.End()

	cfg := c.retry
	cfg.OnRetry = func(attempt int, err error, delay time.Duration) {
		c.metrics.RecordRetry(c.name)
		c.logger.Warn("Retrying provider request", "attempt", attempt, "delay", delay, "error", err)
	}

	start := time.Now()
	body, err := retry.DoWithResult(ctx, cfg, func() ([]byte, error) {
		return c.attempt(ctx, u)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Error("Provider request failed", "url", u.String(), "duration", time.Since(start), "error", err)
		return nil, errors.Wrap(err, "Client", "Fetch", "request "+u.String())
	}

	span.SetAttributes(attribute.Int("sdmx.response.bytes", len(body)))
	c.logger.Debug("Provider request completed", "url", u.String(), "bytes", len(body), "duration", time.Since(start))
	return body, nil
}

func (c *Client) attempt(ctx context.Context, u *url.URL) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, retry.NonRetryable(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, retry.NonRetryable(errors.WrapInvalid(err, "Client", "attempt", "build request"))
	}
	req.Header.Set("Accept", c.accept())
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, uuid.NewString())
	if c.supportsCompression {
		// Setting the header disables the transport's transparent gunzip.
		req.Header.Set("Accept-Encoding", "gzip")
	}
	if user, password := c.credentials(); user != "" {
		req.SetBasicAuth(user, password)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.RecordRequest(c.name, "error", time.Since(start))
		return nil, errors.WrapTransient(fmt.Errorf("%w: %w", errors.ErrConnectionLost, err),
			"Client", "attempt", "send request")
	}
	defer resp.Body.Close()

	c.metrics.RecordRequest(c.name, strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		serr := &StatusError{
			URL:    u.String(),
			Code:   resp.StatusCode,
			Status: resp.Status,
			Body:   strings.TrimSpace(string(excerpt)),
		}
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return nil, errors.WrapTransient(serr, "Client", "attempt", "read status")
		}
		return nil, retry.NonRetryable(errors.WrapInvalid(serr, "Client", "attempt", "read status"))
	}

	body, err := readBody(resp)
	if err != nil {
		return nil, err
	}
	c.metrics.RecordBytes(c.name, len(body))
	return body, nil
}

func readBody(resp *http.Response) ([]byte, error) {
	var r io.Reader = resp.Body
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, retry.NonRetryable(errors.WrapInvalid(fmt.Errorf("%w: %w", errors.ErrInvalidData, err),
				"Client", "readBody", "open gzip stream"))
		}
		defer gz.Close()
		r = gz
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WrapTransient(fmt.Errorf("%w: %w", errors.ErrConnectionLost, err),
			"Client", "readBody", "read response")
	}
	return body, nil
}

func (c *Client) accept() string {
	if c.dialect == DialectDotStat {
		return "application/xml"
	}
	return "application/vnd.sdmx.structurespecificdata+xml;version=2.1, application/xml;q=0.9"
}

// GetData fetches the series selected by q and decodes them with dec.
// Series without a dataflow get q.Dataflow.
func (c *Client) GetData(ctx context.Context, q DataQuery, dec Decoder) ([]*series.TimeSeries, error) {
	if dec == nil {
		return nil, errors.WrapInvalid(fmt.Errorf("%w: decoder is required", errors.ErrInvalidParameter),
			"Client", "GetData", "validate arguments")
	}

	u, err := c.DataURL(q)
	if err != nil {
		return nil, err
	}

	body, err := c.Fetch(ctx, u)
	if err != nil {
		return nil, err
	}

	out, err := dec.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, errors.WrapInvalid(fmt.Errorf("%w: %w", errors.ErrParsingFailed, err),
			"Client", "GetData", "decode "+q.Dataflow)
	}

	for _, ts := range out {
		if ts != nil && ts.Dataflow() == "" {
			ts.SetDataflow(q.Dataflow)
		}
	}
	return out, nil
}
