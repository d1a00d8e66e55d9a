package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/Behnamfe76/directory-console/internal/observability"
	apperrors "github.com/Behnamfe76/directory-console/pkg/util/errorutil"
)

const defaultTimeout = 15 * time.Second

// TokenSource supplies the bearer credential attached to every request.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource that always returns the same credential.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) { return string(t), nil }

// ClientConfig configures the records API client.
type ClientConfig struct {
	BaseURL         string
	Timeout         time.Duration
	MaxConnsPerHost int
	// Dial overrides the connection dialer. Tests point it at an in-memory
	// listener.
	Dial fasthttp.DialFunc
}

// Client talks to the remote records API. It is safe for concurrent use and
// shared by every session; credentials travel with each call.
type Client struct {
	http    *fasthttp.Client
	baseURL string
	timeout time.Duration
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewClient builds a client over a pooled fasthttp.Client.
func NewClient(cfg ClientConfig, logger *zap.Logger, metrics *observability.Metrics) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxConns := cfg.MaxConnsPerHost
	if maxConns <= 0 {
		maxConns = 64
	}
	return &Client{
		http: &fasthttp.Client{
			Name:                "directory-console",
			MaxConnsPerHost:     maxConns,
			MaxIdleConnDuration: 90 * time.Second,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			Dial:                cfg.Dial,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: timeout,
		logger:  logger,
		metrics: metrics,
	}
}

// call describes one records API request.
type call struct {
	resource  string
	operation string
	method    string
	path      string
	body      any
	tokens    TokenSource
}

type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message,omitempty"`
}

// do executes rc and decodes the envelope's data into out. out may be nil
// when the caller only cares about success.
func (c *Client) do(ctx context.Context, rc call, out any) (err error) {
	start := time.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = strings.ToLower(apperrors.ToDomainError(err).Code)
		}
		c.metrics.RecordRemote(rc.resource, rc.operation, outcome, time.Since(start))
	}()

	if err := ctx.Err(); err != nil {
		return apperrors.NewTransportError(err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + rc.path)
	req.Header.SetMethod(rc.method)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	if rc.tokens != nil {
		token, err := rc.tokens.Token(ctx)
		if err != nil {
			return apperrors.NewUnauthorized(err.Error())
		}
		if token != "" {
			req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+token)
		}
	}
	if rc.body != nil {
		payload, err := sonic.Marshal(rc.body)
		if err != nil {
			return apperrors.NewInternalError(fmt.Errorf("encode %s %s: %w", rc.method, rc.path, err))
		}
		req.Header.SetContentType("application/json")
		req.SetBodyRaw(payload)
	}

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		c.logger.Warn("records api unreachable",
			zap.String("method", rc.method),
			zap.String("path", rc.path),
			zap.Error(err),
		)
		if errors.Is(err, fasthttp.ErrTimeout) {
			return apperrors.NewTransportError(errors.New("request timed out"))
		}
		return apperrors.NewTransportError(err)
	}

	status := resp.StatusCode()
	body := resp.Body()
	c.logger.Debug("records api response",
		zap.String("method", rc.method),
		zap.String("path", rc.path),
		zap.Int("status", status),
		zap.Int("bytes", len(body)),
	)

	if status < fasthttp.StatusOK || status >= fasthttp.StatusMultipleChoices {
		return apperrors.NewTransportError(fmt.Errorf("request failed with status code %d", status))
	}
	if len(body) == 0 {
		if out == nil {
			return nil
		}
		return apperrors.NewDecodeError(errors.New("empty response body"))
	}

	var env envelope
	if err := sonic.Unmarshal(body, &env); err != nil {
		if out == nil {
			return nil
		}
		return apperrors.NewDecodeError(err)
	}
	if env.Success == nil || !*env.Success {
		if env.Success == nil && out == nil {
			return nil
		}
		return apperrors.NewRejected(env.Message)
	}
	if out == nil {
		return nil
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return apperrors.NewDecodeError(errors.New("response has no data"))
	}
	if err := sonic.Unmarshal(env.Data, out); err != nil {
		return apperrors.NewDecodeError(err)
	}
	return nil
}
