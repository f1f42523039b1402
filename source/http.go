package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// DefaultAPIVersion is the dated content API version queried.
const DefaultAPIVersion = "2024-01-01"

// maxResponseBytes caps the size of a query response.
const maxResponseBytes = 8 << 20

// HTTPConfig configures the content API client.
type HTTPConfig struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	// Host overrides the API host, e.g. for tests. Defaults to
	// https://<project>.api.sanity.io, or the apicdn host when UseCDN is set.
	Host   string
	UseCDN bool
	Token  string

	Timeout time.Duration
	Client  *http.Client
	Log     *zap.Logger
}

// HTTP queries the hosted content API.
type HTTP struct {
	base   *url.URL
	token  string
	client *http.Client
	log    *zap.Logger
}

// NewHTTP validates cfg and returns a client.
func NewHTTP(cfg HTTPConfig) (*HTTP, error) {
	if cfg.ProjectID == "" || cfg.Dataset == "" {
		return nil, fmt.Errorf("source: project id and dataset are required")
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	host := cfg.Host
	if host == "" {
		domain := "api.sanity.io"
		if cfg.UseCDN {
			domain = "apicdn.sanity.io"
		}
		host = "https://" + cfg.ProjectID + "." + domain
	}
	base, err := url.Parse(host)
	if err != nil || base.Scheme == "" {
		return nil, fmt.Errorf("source: invalid api host %q", host)
	}
	base.Path = path.Join(base.Path, "v"+strings.TrimPrefix(cfg.APIVersion, "v"), "data", "query", cfg.Dataset)

	client := cfg.Client
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &HTTP{base: base, token: cfg.Token, client: client, log: log}, nil
}

// Document implements Source.
func (h *HTTP) Document(ctx context.Context, slug string) ([]byte, error) {
	result, err := h.query(ctx, documentQuery, map[string]string{"slug": slug})
	if err != nil {
		return nil, err
	}
	if !result.Exists() || result.Type == gjson.Null {
		return nil, ErrNotFound
	}
	return []byte(result.Raw), nil
}

// List implements Source.
func (h *HTTP) List(ctx context.Context, limit int) ([]byte, error) {
	result, err := h.query(ctx, listQuery(limit), nil)
	if err != nil {
		return nil, err
	}
	if !result.Exists() || result.Type == gjson.Null {
		return []byte("[]"), nil
	}
	return []byte(result.Raw), nil
}

func (h *HTTP) query(ctx context.Context, q string, params map[string]string) (gjson.Result, error) {
	u := *h.base
	values := url.Values{}
	values.Set("query", q)
	for k, v := range params {
		encoded, err := json.Marshal(v)
		if err != nil {
			return gjson.Result{}, fmt.Errorf("source: encode param %s: %w", k, err)
		}
		values.Set("$"+k, string(encoded))
	}
	u.RawQuery = values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("source: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	start := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("source: query: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return gjson.Result{}, fmt.Errorf("source: read response: %w", err)
	}
	h.log.Debug("content query",
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
		zap.Int("bytes", len(body)),
	)

	if resp.StatusCode != http.StatusOK {
		msg := gjson.GetBytes(body, "error.description").String()
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return gjson.Result{}, fmt.Errorf("source: query returned %d: %s", resp.StatusCode, msg)
	}
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("source: query returned invalid json")
	}
	return gjson.GetBytes(body, "result"), nil
}
