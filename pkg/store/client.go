package store

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
)

// entitiesPath is the NGSI-LD entities endpoint, relative to the broker URL.
const entitiesPath = "/ngsi-ld/v1/entities/"

// defaultTimeout bounds a single broker request when no timeout is configured.
const defaultTimeout = 30 * time.Second

// Config holds settings for the HTTP client.
type Config struct {
	// BrokerURL is the base URL of the entity store. Defaults to DefaultBrokerURL.
	BrokerURL string
	// ContextURL is the JSON-LD context advertised on every request via the
	// Link header. Defaults to DefaultContextURL.
	ContextURL string
	// Timeout bounds each request. Defaults to 30 seconds.
	Timeout time.Duration
}

// Client talks to an NGSI-LD entity store over HTTP. It performs exactly
// one attempt per call; retry policy, if any, belongs to the caller.
type Client struct {
	brokerURL  string
	contextURL string
	httpClient *http.Client
	logger     *slog.Logger
}

var (
	_ Store   = (*Client)(nil)
	_ Creator = (*Client)(nil)
)

// NewClient creates an entity store client. Zero-value config fields fall
// back to the package defaults.
func NewClient(config Config, logger *slog.Logger) (*Client, error) {
	if config.BrokerURL == "" {
		config.BrokerURL = DefaultBrokerURL
	}
	if config.ContextURL == "" {
		config.ContextURL = DefaultContextURL
	}
	if config.Timeout <= 0 {
		config.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	parsed, err := url.Parse(config.BrokerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid broker URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("broker URL must use http:// or https:// scheme")
	}

	return &Client{
		brokerURL:  strings.TrimRight(config.BrokerURL, "/"),
		contextURL: config.ContextURL,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     logger,
	}, nil
}

// QueryEntities issues one GET against the entities endpoint with the
// non-blank params and returns the JSON-decoded body. The broker reports
// request problems as JSON documents with an error status; those decode
// and pass through to the caller like any other result. Transport and
// decode failures surface as *UnavailableError.
func (c *Client) QueryEntities(ctx context.Context, params Params) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.brokerURL+entitiesPath, nil)
	if err != nil {
		return nil, NewUnavailableError(fmt.Errorf("build entities request: %w", err))
	}
	req.Header.Set("Link", c.contextLink())

	q := req.URL.Query()
	if params.Type != "" {
		q.Set("type", params.Type)
	}
	if params.ID != "" {
		q.Set("id", params.ID)
	}
	if params.Query != "" {
		q.Set("q", params.Query)
	}
	if params.Attrs != "" {
		q.Set("attrs", params.Attrs)
	}
	req.URL.RawQuery = q.Encode()

	c.logger.Debug("querying entity store", "url", req.URL.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, NewUnavailableError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewUnavailableError(fmt.Errorf("read response: %w", err))
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, NewUnavailableError(fmt.Errorf("decode response: %w", err))
	}

	return decoded, nil
}

// CreateEntity registers one entity with the store. The entity document
// is posted as JSON-LD, so it should carry its own @context. A non-2xx
// response surfaces as *RequestError.
func (c *Client) CreateEntity(ctx context.Context, entity any) error {
	payload, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("marshal entity: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.brokerURL+entitiesPath, bytes.NewReader(payload))
	if err != nil {
		return NewUnavailableError(fmt.Errorf("build create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/ld+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return NewUnavailableError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return NewUnavailableError(fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &RequestError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	return nil
}

// Health probes the broker by listing entities without parameters.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.brokerURL+entitiesPath, nil)
	if err != nil {
		return NewUnavailableError(fmt.Errorf("build health request: %w", err))
	}
	req.Header.Set("Link", c.contextLink())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return NewUnavailableError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &RequestError{StatusCode: resp.StatusCode}
	}
	return nil
}

// BrokerURL returns the configured broker base URL.
func (c *Client) BrokerURL() string {
	return c.brokerURL
}

func (c *Client) contextLink() string {
	return fmt.Sprintf(`<%s>; rel="http://www.w3.org/ns/json-ld#context"; type="application/ld+json"`, c.contextURL)
}
