package clients

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/clientry/clientry/core/cache"
	"github.com/clientry/clientry/core/factory"
	"github.com/clientry/clientry/core/logger"
)

func init() {
	factory.Clients.MustRegister("clients/http", func(bc factory.BuildContext) (any, error) {
		var cfg HTTPConfig
		if err := factory.Decode(bc.Params, &cfg); err != nil {
			return nil, err
		}
		return NewHTTPClient(bc.Name, cfg, bc.Cache, bc.TTL, bc.Log)
	})
}

// HTTPConfig defines the construction parameters of the retrying HTTP
// client.
type HTTPConfig struct {
	Endpoint    string `json:"endpoint"`
	AuthToken   string `json:"auth_token"`
	RetryMax    int    `json:"retry_max"`
	RetryWaitMS int    `json:"retry_wait_ms"`
	TimeoutMS   int    `json:"timeout_ms"`
}

// HTTPClient wraps a retrying HTTP client pointed at a fixed endpoint.
// When constructed with a cache binding, successful GET bodies are cached
// under a key derived from the full URL.
type HTTPClient struct {
	name     string
	endpoint string
	token    string
	http     *retryablehttp.Client
	store    cache.Store
	ttl      time.Duration
	log      logger.Logger
}

// NewHTTPClient validates cfg and builds the client. store may be nil, in
// which case responses are never cached.
func NewHTTPClient(name string, cfg HTTPConfig, store cache.Store, ttl time.Duration, log logger.Logger) (*HTTPClient, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("http client %s: endpoint is required", name)
	}
	if _, err := url.ParseRequestURI(cfg.Endpoint); err != nil {
		return nil, fmt.Errorf("http client %s: invalid endpoint: %w", name, err)
	}

	rc := retryablehttp.NewClient()
	rc.Logger = nil
	if cfg.RetryMax > 0 {
		rc.RetryMax = cfg.RetryMax
	}
	if cfg.RetryWaitMS > 0 {
		rc.RetryWaitMin = time.Duration(cfg.RetryWaitMS) * time.Millisecond
	}
	if cfg.TimeoutMS > 0 {
		rc.HTTPClient.Timeout = time.Duration(cfg.TimeoutMS) * time.Millisecond
	}

	return &HTTPClient{
		name:     name,
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		token:    cfg.AuthToken,
		http:     rc,
		store:    store,
		ttl:      ttl,
		log:      log,
	}, nil
}

// Endpoint returns the configured base URL.
func (c *HTTPClient) Endpoint() string { return c.endpoint }

// Get fetches path relative to the endpoint and returns the response body.
// Cached bodies are served without a request when a cache is bound.
func (c *HTTPClient) Get(ctx context.Context, path string) ([]byte, error) {
	target := c.endpoint + "/" + strings.TrimLeft(path, "/")
	key := "http:" + cache.Key(c.name+":"+target)

	if c.store != nil {
		if body, ok := c.store.Fetch(key); ok {
			return body, nil
		}
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", target, nil)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil && c.log != nil {
			c.log.Warnf("close response body: %v", cerr)
		}
	}()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: unexpected status %d", target, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if c.store != nil {
		if err := c.store.Save(key, body, c.ttl); err != nil && c.log != nil {
			c.log.Warnf("cache response for %s: %v", target, err)
		}
	}
	return body, nil
}
