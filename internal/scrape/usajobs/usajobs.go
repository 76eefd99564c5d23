package usajobs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"usajobs-list/internal/common"
	"usajobs-list/internal/config"
	"usajobs-list/internal/domain"
)

const (
	DefaultEndpoint = "https://data.usajobs.gov/api/Search"
	ResultsPerPage  = 500
	WhoMayApply     = "All"
)

// Organizations are the agency sub-element codes searched (EPA).
var Organizations = []string{"EP00", "EPJF", "EPR1"}

type Client struct {
	endpoint string
	hc       *http.Client
	log      *slog.Logger
}

type Option func(*Client)

// WithEndpoint points the client at another search URL (tests, mirrors).
func WithEndpoint(u string) Option {
	return func(c *Client) { c.endpoint = u }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New builds a client whose single request is bounded by timeout.
func New(timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		endpoint: DefaultEndpoint,
		hc:       &http.Client{Timeout: timeout},
		log:      slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) Name() string { return "usajobs" }

// SearchURL is the fixed query. Organization codes stay ';'-joined and
// unescaped, as the API expects.
func (c *Client) SearchURL() string {
	return fmt.Sprintf("%s?ResultsPerPage=%d&Organization=%s&WhoMayApply=%s",
		c.endpoint, ResultsPerPage, strings.Join(Organizations, ";"), WhoMayApply)
}

// Fetch performs one GET and returns the decoded body as generic JSON.
// There is no retry and no pagination.
func (c *Client) Fetch(ctx context.Context, creds config.Credentials) (any, error) {
	if creds.Email == "" || creds.AuthKey == "" {
		return nil, common.ConfigError("usajobs credentials incomplete", common.ErrMissingCredential)
	}

	reqID := uuid.New().String()
	start := time.Now()
	searchURL := c.SearchURL()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, common.ConfigError("usajobs build request", err)
	}
	req.Header.Set("User-Agent", creds.Email)
	req.Header.Set("Authorization-Key", creds.AuthKey)
	req.Header.Set("Accept", "application/json")

	c.log.Info("usajobs.http.request", "req_id", reqID, "url", searchURL)

	res, err := c.hc.Do(req)
	if err != nil {
		c.log.Error("usajobs.http.send_error", "req_id", reqID, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return nil, common.TransportError("usajobs get", err)
	}
	defer res.Body.Close()

	c.log.Info("usajobs.http.response",
		"req_id", reqID,
		"status", res.StatusCode,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 256))
		return nil, common.TransportError(
			fmt.Sprintf("usajobs status %s body=%q", res.Status, string(b)),
			common.ErrUnexpectedStatus)
	}

	doc, err := domain.DecodeJSON(res.Body)
	if err != nil {
		return nil, common.DecodeError("usajobs decode", err)
	}

	if returned, all, ok := Counts(doc); ok && all > returned {
		c.log.Warn("usajobs.pagination.truncated",
			"req_id", reqID, "returned", returned, "available", all)
	}
	return doc, nil
}

// Counts reads SearchResult.SearchResultCount and SearchResultCountAll when
// both are present.
func Counts(doc any) (returned, all int, ok bool) {
	root, _ := doc.(map[string]any)
	sr, _ := root["SearchResult"].(map[string]any)
	if sr == nil {
		return 0, 0, false
	}
	returned, ok1 := toInt(sr["SearchResultCount"])
	all, ok2 := toInt(sr["SearchResultCountAll"])
	return returned, all, ok1 && ok2
}

func toInt(v any) (int, bool) {
	switch x := v.(type) {
	case float64:
		return int(x), true
	case json.Number:
		n, err := x.Int64()
		return int(n), err == nil
	default:
		return 0, false
	}
}
