// Package remote talks JSON over HTTP to the questionnaire backend.
//
// The client does not cache and never retries.
// Callers map *Error values to domain errors.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"anamnesis/internal/anamnesis/metrics"
	"anamnesis/internal/anamnesis/models"
	"anamnesis/internal/platform/config"
	id "anamnesis/pkg/domain"
	"anamnesis/pkg/platform/circuit"
)

const (
	opGetQuestions  = "get_questions"
	opGetAnswers    = "get_answers"
	opSubmitAnswer  = "submit_answer"
	opGetMarkers    = "get_markers"
	maxResponseSize = 4 << 20
)

var tracer = otel.Tracer("anamnesis.remote")

// Client calls the questionnaire backend.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	breaker    *circuit.Breaker
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// WithMetrics records latency and failures.
func WithMetrics(m *metrics.Metrics) Option {
	return func(cl *Client) {
		cl.metrics = m
	}
}

// WithLogger sets the logger used for circuit transitions.
func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) {
		if l != nil {
			cl.logger = l
		}
	}
}

// WithBreaker replaces the breaker built from config.
func WithBreaker(b *circuit.Breaker) Option {
	return func(cl *Client) {
		if b != nil {
			cl.breaker = b
		}
	}
}

// New builds a client from config.
func New(cfg config.RemoteConfig, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.ServiceToken,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker: circuit.New("questionnaire-backend",
			circuit.WithFailureThreshold(cfg.FailureThreshold),
			circuit.WithCooldown(cfg.Cooldown),
		),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetQuestions fetches the question set for a locale.
func (c *Client) GetQuestions(ctx context.Context, locale id.Locale) ([]models.Question, error) {
	q := url.Values{"locale": {locale.String()}}
	var out []models.Question
	if err := c.do(ctx, opGetQuestions, http.MethodGet, "/questions?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetUserAnswers fetches every stored answer of a user.
func (c *Client) GetUserAnswers(ctx context.Context, userID id.UserID, locale id.Locale) ([]models.UserAnswer, error) {
	q := url.Values{"locale": {locale.String()}}
	path := "/users/" + url.PathEscape(userID.String()) + "/answers?" + q.Encode()
	var out []models.UserAnswer
	if err := c.do(ctx, opGetAnswers, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SubmitAnswer posts one answer. The call is made once.
func (c *Client) SubmitAnswer(ctx context.Context, userID id.UserID, answer models.RemoteAnswer) error {
	body, err := json.Marshal(answer)
	if err != nil {
		return fmt.Errorf("encode answer: %w", err)
	}
	path := "/users/" + url.PathEscape(userID.String()) + "/answers"
	return c.do(ctx, opSubmitAnswer, http.MethodPost, path, body, nil)
}

// GetUserMarkers fetches the user's wellness markers.
func (c *Client) GetUserMarkers(ctx context.Context, userID id.UserID) ([]models.UserMarker, error) {
	path := "/users/" + url.PathEscape(userID.String()) + "/markers"
	var out []models.UserMarker
	if err := c.do(ctx, opGetMarkers, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BreakerState exposes the circuit state for health reporting.
func (c *Client) BreakerState() circuit.State {
	return c.breaker.State()
}

func (c *Client) do(ctx context.Context, op, method, path string, body []byte, out any) (err error) {
	ctx, span := tracer.Start(ctx, "remote."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("remote.operation", op),
		),
	)
	start := time.Now()
	defer func() {
		c.metrics.ObserveRemoteRequest(op, time.Since(start))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if !c.breaker.Allow() {
		c.metrics.IncrementRemoteFailure(op, string(KindNetwork))
		return &Error{Op: op, Kind: KindNetwork, Err: ErrCircuitOpen}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			c.metrics.IncrementRemoteFailure(op, string(KindCanceled))
			return &Error{Op: op, Kind: KindCanceled, Err: ctxErr}
		}
		c.recordFailure(ctx, op, KindNetwork)
		return &Error{Op: op, Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))
		if resp.StatusCode >= 500 {
			c.recordFailure(ctx, op, KindStatus)
		} else {
			c.recordSuccess(ctx)
			c.metrics.IncrementRemoteFailure(op, string(KindStatus))
		}
		return &Error{Op: op, Kind: KindStatus, StatusCode: resp.StatusCode, Err: statusSentinel(resp.StatusCode)}
	}
	c.recordSuccess(ctx)

	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(out); err != nil {
		c.metrics.IncrementRemoteFailure(op, string(KindDecode))
		return &Error{Op: op, Kind: KindDecode, StatusCode: resp.StatusCode, Err: err}
	}
	return nil
}

func (c *Client) recordFailure(ctx context.Context, op string, kind ErrorKind) {
	c.metrics.IncrementRemoteFailure(op, string(kind))
	if _, change := c.breaker.RecordFailure(); change.Opened {
		c.logger.WarnContext(ctx, "questionnaire backend circuit opened",
			"breaker", c.breaker.Name(),
			"operation", op,
		)
	}
}

func (c *Client) recordSuccess(ctx context.Context) {
	if _, change := c.breaker.RecordSuccess(); change.Closed {
		c.logger.InfoContext(ctx, "questionnaire backend circuit closed",
			"breaker", c.breaker.Name(),
		)
	}
}
