package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rogeecn/nchc-wrapper/internal/config"
	"github.com/rogeecn/nchc-wrapper/internal/metrics"
	"github.com/rogeecn/nchc-wrapper/pkg/types"
	"github.com/rs/zerolog/log"
)

const (
	defaultTimeout = 60 * time.Second
	// maxLoggedBody caps how much of an upstream error body reaches the logs.
	maxLoggedBody = 2048
)

// Client issues chat completion calls against the NCHC API. It holds no
// per-request state and is safe for concurrent use.
type Client struct {
	client        *http.Client
	baseURL       string
	headerBuilder *HeaderBuilder
	now           func() time.Time

	maxResponseBytes int64
}

func New(cfg *config.Config) *Client {
	baseURL := config.DefaultBaseURL
	timeout := defaultTimeout
	proxyURL := ""
	if cfg != nil {
		if trimmed := strings.TrimSpace(cfg.BaseURL); trimmed != "" {
			baseURL = trimmed
		}
		if cfg.UpstreamTimeout > 0 {
			timeout = cfg.UpstreamTimeout
		}
		proxyURL = cfg.Proxy
	}

	return &Client{
		client:        &http.Client{Timeout: timeout, Transport: newTransport(proxyURL)},
		baseURL:       strings.TrimSuffix(baseURL, "/"),
		headerBuilder: NewHeaderBuilder(),
		now:           time.Now,

		maxResponseBytes: maxResponseBytes,
	}
}

func newTransport(proxyURL string) http.RoundTripper {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if proxyURL == "" {
		return transport
	}

	parsed, err := url.Parse(proxyURL)
	if err != nil {
		log.Warn().Err(err).Str("proxy", proxyURL).Msg("ignoring invalid upstream proxy")
		return transport
	}
	transport.Proxy = http.ProxyURL(parsed)
	return transport
}

// Send posts payload to <base_url>/chat/completions. A 200 response yields the
// raw body; every other outcome is one of *StatusError, ErrTimeout or
// *TransportError.
func (c *Client) Send(ctx context.Context, payload *types.ChatCompletionRequest, apiKey string) ([]byte, error) {
	if payload == nil {
		return nil, fmt.Errorf("chat completions: nil payload")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("chat completions: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.chatCompletionsURL(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("chat completions: create request: %w", err)
	}
	for k, v := range c.headerBuilder.Build(apiKey) {
		req.Header.Set(k, v)
	}

	start := c.now()
	content, statusCode, err := c.do(req)
	elapsed := c.now().Sub(start)
	modelLabel := ModelLabel(payload.Model)
	metrics.UpstreamLatency.WithLabelValues(modelLabel).Observe(elapsed.Seconds())

	event := log.Debug().
		Str("model", payload.Model).
		Str("api_key", MaskToken(apiKey)).
		Dur("duration", elapsed)

	if err != nil {
		outcome := "transport"
		if errors.Is(err, ErrTimeout) {
			outcome = "timeout"
		}
		metrics.UpstreamRequestsTotal.WithLabelValues(modelLabel, outcome, "").Inc()
		event.Err(err).Str("outcome", outcome).Msg("upstream call failed")
		return nil, err
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(modelLabel, outcomeForStatus(statusCode), strconv.Itoa(statusCode)).Inc()
	event.Int("status", statusCode).Msg("upstream call completed")

	if statusCode != http.StatusOK {
		return nil, &StatusError{
			StatusCode: statusCode,
			Body:       strings.TrimSpace(string(content)),
		}
	}
	return content, nil
}

func (c *Client) do(req *http.Request) ([]byte, int, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, classifyTransportError(err)
	}

	content, err := readResponse(resp, c.maxResponseBytes)
	if err != nil {
		return nil, 0, classifyTransportError(err)
	}
	return content, resp.StatusCode, nil
}

func (c *Client) chatCompletionsURL() string {
	return c.baseURL + "/chat/completions"
}

func classifyTransportError(err error) error {
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return err
	}
	if isTimeout(err) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return &TransportError{Err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func outcomeForStatus(statusCode int) string {
	if statusCode == http.StatusOK {
		return "ok"
	}
	return "status"
}

// TruncateForLog shortens an upstream body so that a misbehaving upstream
// cannot flood the log.
func TruncateForLog(body string) string {
	if len(body) <= maxLoggedBody {
		return body
	}
	return body[:maxLoggedBody] + "...(truncated)"
}
