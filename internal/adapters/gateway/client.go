package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/portal-cli/internal/domain"
	"github.com/bnema/portal-cli/internal/ports"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	EndpointKey        = "api.url"
	RequestTimeoutKey  = "api.timeout"
	DefaultEndpoint    = "http://127.0.0.1:4001/api"
	maxResponseBytes   = 4 << 20
	defaultContentType = "application/json"
)

var tracer = otel.Tracer("portal.gateway")

// Client posts query documents to the remote endpoint. It never inspects
// the GraphQL payload it gets back.
type Client struct {
	Endpoint       string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

var _ ports.Gateway = (*Client)(nil)

func NewClient(cfg *viper.Viper) *Client {
	client := &Client{Endpoint: DefaultEndpoint}
	if cfg == nil {
		return client
	}

	if endpoint := strings.TrimSpace(cfg.GetString(EndpointKey)); endpoint != "" {
		client.Endpoint = endpoint
	}
	client.RequestTimeout = cfg.GetDuration(RequestTimeoutKey)

	return client
}

func (c *Client) Send(ctx context.Context, envelope domain.RequestEnvelope) (*domain.RawResponse, error) {
	target, err := c.targetURL(envelope.TargetURL)
	if err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "gateway.Send",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("portal.gateway.target", target)),
	)
	defer span.End()

	resp, err := c.post(ctx, target, envelope)
	if err != nil {
		recordSend(statusClassError)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	recordSend(statusClass(resp.StatusCode))
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.OK() {
		span.SetStatus(codes.Ok, "")
	} else {
		span.SetStatus(codes.Error, fmt.Sprintf("status %d", resp.StatusCode))
	}

	return resp, nil
}

func (c *Client) post(ctx context.Context, target string, envelope domain.RequestEnvelope) (*domain.RawResponse, error) {
	body, err := json.Marshal(struct {
		Query string `json:"query"`
	}{Query: envelope.Query})
	if err != nil {
		return nil, fmt.Errorf("encode query payload: %w", err)
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create gateway request: %w", err)
	}
	for name, value := range envelope.Headers {
		req.Header.Set(name, value)
	}
	if req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", defaultContentType)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &domain.TransportError{Err: fmt.Errorf("post query: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &domain.TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("read response body: %w", err)}
	}

	return &domain.RawResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header.Clone(),
		Body:       payload,
	}, nil
}

func (c *Client) targetURL(override string) (string, error) {
	target := strings.TrimSpace(override)
	if target == "" {
		target = strings.TrimSpace(c.Endpoint)
	}
	if target == "" {
		target = DefaultEndpoint
	}

	parsed, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("parse gateway url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("gateway url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("gateway url host is required")
	}

	return parsed.String(), nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := c.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}

	return context.WithTimeout(ctx, requestTimeout)
}
